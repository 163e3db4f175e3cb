package lead

import (
	"errors"
	"testing"
	"time"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"ana@acme.com", true},
		{"a.b+c@sub.example.org", true},
		{"not-an-email", false},
		{"missing@tld", false},
		{"@acme.com", false},
		{"two words@acme.com", false},
		{"a\u00a0b@x.io", false},
		{"a@x\u2003y.io", false},
		{"a\vb@x.io", false},
		{"\ufeffa@x.io", false},
		{"ünï@cödé.io", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidEmail(tt.email); got != tt.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestUpdate_Validate(t *testing.T) {
	if err := (Update{Email: "not-an-email", Status: StatusNew}).Validate(); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}
	if err := (Update{Email: "ok@acme.com", Status: "archived"}).Validate(); err == nil {
		t.Error("expected error for unknown status")
	}
	if err := (Update{Email: "ok@acme.com", Status: StatusQualified}).Validate(); err != nil {
		t.Errorf("expected valid update, got %v", err)
	}
}

func TestStatus_CycleAndLabel(t *testing.T) {
	if got := StatusNew.Next(); got != StatusContacted {
		t.Errorf("new.Next() = %q", got)
	}
	if got := StatusLost.Next(); got != StatusNew {
		t.Errorf("lost.Next() should wrap, got %q", got)
	}
	if got := StatusNew.Prev(); got != StatusLost {
		t.Errorf("new.Prev() should wrap, got %q", got)
	}
	if got := StatusQualified.Label(); got != "Qualified" {
		t.Errorf("Label() = %q", got)
	}
	if s, ok := ParseStatus(" Contacted "); !ok || s != StatusContacted {
		t.Errorf("ParseStatus: got %q ok=%v", s, ok)
	}
	if _, ok := ParseStatus("all"); ok {
		t.Error("ParseStatus(all) should not be a lead status")
	}
}

func TestNewDraft_PrefillsFromLead(t *testing.T) {
	l := Lead{ID: "7", Name: "Ana", Company: "Acme"}
	d := NewDraft(l)
	if d.Name != "Acme Opportunity" || d.AccountName != "Acme" || d.Stage != StageProspecting || d.LeadID != "7" {
		t.Errorf("unexpected draft %+v", d)
	}
	if d.Amount != "" {
		t.Errorf("expected empty amount, got %q", d.Amount)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		isNil   bool
		wantErr bool
	}{
		{raw: "", isNil: true},
		{raw: "  ", isNil: true},
		{raw: "1500", want: 1500},
		{raw: "$1,250.50", want: 1250.5},
		{raw: "0", want: 0},
		{raw: "-1", wantErr: true},
		{raw: "12.345", wantErr: true},
		{raw: "abc", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.raw)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidDraft) {
				t.Errorf("ParseAmount(%q): expected ErrInvalidDraft, got %v", tt.raw, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q): unexpected error %v", tt.raw, err)
			continue
		}
		if tt.isNil {
			if got != nil {
				t.Errorf("ParseAmount(%q): expected nil, got %v", tt.raw, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestDraft_Build(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	d := Draft{LeadID: "1", Name: "  Acme Opportunity ", AccountName: "Acme", Stage: StageProposal, Amount: "99.90"}
	opp, err := d.Build("OPP-1", now)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if opp.Name != "Acme Opportunity" || opp.ID != "OPP-1" || opp.LeadID != "1" || !opp.CreatedAt.Equal(now) {
		t.Errorf("unexpected opportunity %+v", opp)
	}
	if opp.Amount == nil || *opp.Amount != 99.9 {
		t.Errorf("expected amount 99.9, got %v", opp.Amount)
	}

	for name, bad := range map[string]Draft{
		"no name":    {LeadID: "1", AccountName: "Acme", Stage: StageProposal},
		"no account": {LeadID: "1", Name: "x", Stage: StageProposal},
		"bad stage":  {LeadID: "1", Name: "x", AccountName: "Acme", Stage: "Won?"},
		"no lead":    {Name: "x", AccountName: "Acme", Stage: StageProposal},
	} {
		if _, err := bad.Build("OPP-2", now); !errors.Is(err, ErrInvalidDraft) {
			t.Errorf("%s: expected ErrInvalidDraft, got %v", name, err)
		}
	}
}

func TestNewOpportunityID_Unique(t *testing.T) {
	a, b := NewOpportunityID(), NewOpportunityID()
	if a == b {
		t.Errorf("expected distinct IDs, got %q twice", a)
	}
	if a[:4] != "OPP-" {
		t.Errorf("expected OPP- prefix, got %q", a)
	}
}
