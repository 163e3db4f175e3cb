package ui

import "testing"

func TestOverlayStack_PushPopRemove(t *testing.T) {
	var s OverlayStack
	convert := NewConvertModal(testLeads()[0])
	confirm := NewConfirmModal("Quit?", "", nil)
	s.Push(Overlay{View: convert, Dismiss: "esc"})
	s.Push(Overlay{View: confirm, Dismiss: "esc"})

	top, ok := s.Peek()
	if !ok || top.View != View(confirm) || !top.IsDismissKey("esc") {
		t.Fatalf("top = %+v", top)
	}

	s.RemoveWhere(func(v View) bool {
		_, ok := v.(*ConvertModal)
		return ok
	})
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
	if _, ok := s.Pop(); !ok || s.Len() != 0 {
		t.Error("pop should empty the stack")
	}
	if _, ok := s.Pop(); ok {
		t.Error("pop on empty stack should report false")
	}
}

func TestFocusManager_Rotates(t *testing.T) {
	var changes []string
	f := FocusManager{
		Current:  FocusLeads,
		Order:    []string{FocusLeads, FocusOpportunities},
		OnChange: func(_, to string) { changes = append(changes, to) },
	}

	if got := f.Next(); got != FocusOpportunities {
		t.Errorf("Next = %s", got)
	}
	if got := f.Next(); got != FocusLeads {
		t.Errorf("Next wraps = %s", got)
	}
	if got := f.Prev(); got != FocusOpportunities {
		t.Errorf("Prev wraps = %s", got)
	}
	if f.SetFocus("nope") {
		t.Error("unknown ID should be rejected")
	}
	if len(changes) != 3 {
		t.Errorf("OnChange calls = %v", changes)
	}
}
