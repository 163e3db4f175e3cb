package pipeline

import "testing"

func TestDebouncer_OnlyLatestGenerationSettles(t *testing.T) {
	var d Debouncer
	g1 := d.Bump("a")
	g2 := d.Bump("ac")
	g3 := d.Bump("acm")

	if _, ok := d.Settle(g1); ok {
		t.Error("stale generation 1 settled")
	}
	if _, ok := d.Settle(g2); ok {
		t.Error("stale generation 2 settled")
	}
	term, ok := d.Settle(g3)
	if !ok || term != "acm" {
		t.Errorf("expected latest term acm to settle, got %q ok=%v", term, ok)
	}
	if d.Pending() != "acm" {
		t.Errorf("Pending() = %q", d.Pending())
	}
}
