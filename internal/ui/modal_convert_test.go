package ui

import (
	"errors"
	"strings"
	"testing"

	"sellerconsole/internal/lead"
)

func TestConvertModal_Prefilled(t *testing.T) {
	m := NewConvertModal(testLeads()[2])
	d := m.Draft()
	if d.LeadID != "3" || d.Name != "Kernel Labs Opportunity" || d.AccountName != "Kernel Labs" {
		t.Errorf("draft = %+v", d)
	}
	if d.Stage != lead.StageProspecting || d.Amount != "" {
		t.Errorf("stage/amount = %q/%q", d.Stage, d.Amount)
	}
	if !strings.Contains(m.View(), "Convert to Opportunity") {
		t.Error("missing dialog title")
	}
}

func TestConvertModal_SubmitSendsDraft(t *testing.T) {
	m := NewConvertModal(testLeads()[2])
	msg, ok := run(m.Submit()).(SubmitOpportunityMsg)
	if !ok || msg.Draft.LeadID != "3" {
		t.Errorf("Submit = %#v", msg)
	}
}

func TestConvertModal_EscCancels(t *testing.T) {
	m := NewConvertModal(testLeads()[2])
	_, cmd := m.Update(keyMsg("esc"))
	if _, ok := run(cmd).(CancelConvertMsg); !ok {
		t.Error("esc should cancel")
	}
}

func TestConvertModal_LoadingIgnoresInput(t *testing.T) {
	m := NewConvertModal(testLeads()[2])
	m.SetLoading(true)

	if _, cmd := m.Update(keyMsg("esc")); cmd != nil {
		t.Error("esc should be ignored while converting")
	}
	if !strings.Contains(m.View(), "Converting...") {
		t.Error("expected Converting...")
	}
}

func TestConvertModal_RejectShowsError(t *testing.T) {
	m := NewConvertModal(testLeads()[2])
	m.SetLoading(true)
	m.Reject(errors.New("account name is required"))

	if m.Loading() || m.Submitted() {
		t.Error("Reject should make the form editable again")
	}
	if !strings.Contains(m.View(), "account name is required") {
		t.Error("expected the error in the dialog")
	}
	if m.Draft().AccountName != "Kernel Labs" {
		t.Error("Reject should keep the entered values")
	}
}
