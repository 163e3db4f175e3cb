package lead

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stage is an opportunity's position in the sales pipeline.
type Stage string

const (
	StageProspecting   Stage = "Prospecting"
	StageQualification Stage = "Qualification"
	StageProposal      Stage = "Proposal"
	StageNegotiation   Stage = "Negotiation"
	StageClosedWon     Stage = "Closed Won"
	StageClosedLost    Stage = "Closed Lost"
)

// Stages lists the pipeline stages in order.
func Stages() []Stage {
	return []Stage{
		StageProspecting,
		StageQualification,
		StageProposal,
		StageNegotiation,
		StageClosedWon,
		StageClosedLost,
	}
}

// Valid reports whether s is a known pipeline stage.
func (s Stage) Valid() bool {
	for _, st := range Stages() {
		if st == s {
			return true
		}
	}
	return false
}

// Opportunity is created once per lead on conversion and never changes afterwards.
type Opportunity struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Stage       Stage     `json:"stage"`
	Amount      *float64  `json:"amount,omitempty"`
	AccountName string    `json:"accountName"`
	CreatedAt   time.Time `json:"createdAt"`
	LeadID      string    `json:"leadId"`
}

// NewOpportunityID returns a fresh opportunity identifier.
func NewOpportunityID() string {
	return "OPP-" + uuid.NewString()
}

// ErrInvalidDraft wraps every opportunity form validation failure.
var ErrInvalidDraft = errors.New("invalid opportunity")

// Draft is the conversion form payload before an ID and timestamp are assigned.
type Draft struct {
	LeadID      string
	Name        string
	AccountName string
	Stage       Stage
	Amount      string // raw form input; empty means no amount
}

// NewDraft prefills the conversion form from the lead being converted.
func NewDraft(l Lead) Draft {
	return Draft{
		LeadID:      l.ID,
		Name:        l.Company + " Opportunity",
		AccountName: l.Company,
		Stage:       StageProspecting,
	}
}

// ParseAmount parses an optional non-negative amount with at most two decimals.
// An empty string yields nil.
func ParseAmount(raw string) (*float64, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: amount must be a number", ErrInvalidDraft)
	}
	if v < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidDraft)
	}
	if math.Abs(v*100-math.Round(v*100)) > 1e-6 {
		return nil, fmt.Errorf("%w: amount allows at most two decimals", ErrInvalidDraft)
	}
	return &v, nil
}

// Validate checks the required fields and the amount.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.LeadID) == "" {
		return fmt.Errorf("%w: missing lead", ErrInvalidDraft)
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: opportunity name is required", ErrInvalidDraft)
	}
	if strings.TrimSpace(d.AccountName) == "" {
		return fmt.Errorf("%w: account name is required", ErrInvalidDraft)
	}
	if !d.Stage.Valid() {
		return fmt.Errorf("%w: unknown stage %q", ErrInvalidDraft, d.Stage)
	}
	_, err := ParseAmount(d.Amount)
	return err
}

// Build turns a valid draft into an opportunity.
func (d Draft) Build(id string, createdAt time.Time) (Opportunity, error) {
	if err := d.Validate(); err != nil {
		return Opportunity{}, err
	}
	amount, _ := ParseAmount(d.Amount)
	return Opportunity{
		ID:          id,
		Name:        strings.TrimSpace(d.Name),
		Stage:       d.Stage,
		Amount:      amount,
		AccountName: strings.TrimSpace(d.AccountName),
		CreatedAt:   createdAt,
		LeadID:      d.LeadID,
	}, nil
}
