package ui

import (
	"strings"
	"testing"
)

func TestToasts_AddAndRemove(t *testing.T) {
	var ts Toasts
	if cmd := ts.Success("saved"); cmd == nil {
		t.Fatal("Add should return an expiry tick")
	}
	ts.Error("failed")

	items := ts.Items()
	if len(items) != 2 || items[0].Kind != ToastSuccess || items[1].Kind != ToastError {
		t.Fatalf("items = %+v", items)
	}
	if items[0].ID == items[1].ID {
		t.Error("toast IDs should be unique")
	}
	if out := ts.View(); !strings.Contains(out, "✓ saved") || !strings.Contains(out, "✗ failed") {
		t.Errorf("view = %q", out)
	}

	ts.Remove(items[0].ID)
	ts.Remove(999)
	if got := ts.Items(); len(got) != 1 || got[0].Text != "failed" {
		t.Errorf("after remove = %+v", got)
	}
}
