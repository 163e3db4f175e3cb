// Package console is the state container behind the lead console: the
// canonical lead list, the derived view, the selection, the panel and
// dialog flags and the opportunities created so far.
//
// Mutations are split into Begin and Commit halves. Begin validates and
// marks the panel or dialog loading; the caller waits out the simulated
// request latency and then calls Commit. Only one mutation may be pending.
package console

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"sellerconsole/internal/lead"
)

// User-facing messages.
const (
	LoadFailedText       = "Failed to load leads. Please try again."
	AlreadyConvertedText = "This lead has already been converted to an opportunity."
)

var (
	ErrAlreadyConverted = errors.New("lead already converted")
	ErrLeadNotFound     = errors.New("lead not found")
	ErrBusy             = errors.New("another request is still pending")
)

// PanelState is the detail panel's visibility.
type PanelState struct {
	Open    bool
	Loading bool
}

// DialogState is the convert dialog's visibility.
type DialogState struct {
	Open    bool
	Loading bool
}

// LoadError is set when the start-up fetch failed.
type LoadError struct {
	Message string
}

// Console holds all console state. It is not safe for concurrent use; the
// UI drives it from its single update loop.
type Console struct {
	leads         []lead.Lead
	filtered      []lead.Lead
	opportunities []lead.Opportunity
	selectedID    string

	loading bool
	loadErr *LoadError
	panel   PanelState
	dialog  DialogState

	logger *zap.Logger
	tracer trace.Tracer
	now    func() time.Time
	newID  func() string
}

// Option configures a Console.
type Option func(*Console)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Console) { c.logger = l }
}

// WithTracer sets the tracer. Defaults to the global provider's tracer.
func WithTracer(t trace.Tracer) Option {
	return func(c *Console) { c.tracer = t }
}

// WithClock sets the creation-time source for opportunities.
func WithClock(now func() time.Time) Option {
	return func(c *Console) { c.now = now }
}

// WithIDs sets the opportunity ID generator.
func WithIDs(newID func() string) Option {
	return func(c *Console) { c.newID = newID }
}

// New returns an empty console.
func New(opts ...Option) *Console {
	c := &Console{
		logger: zap.NewNop(),
		tracer: otel.Tracer("sellerconsole/console"),
		now:    time.Now,
		newID:  lead.NewOpportunityID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BeginLoad marks the start-up fetch as pending.
func (c *Console) BeginLoad() {
	c.loading = true
	c.loadErr = nil
}

// FinishLoad stores the fetched leads, or the load error.
func (c *Console) FinishLoad(leads []lead.Lead, err error) {
	c.loading = false
	if err != nil {
		c.loadErr = &LoadError{Message: LoadFailedText}
		c.logger.Error("error loading leads", zap.Error(err))
		return
	}
	c.loadErr = nil
	c.leads = cloneLeads(leads)
	c.filtered = cloneLeads(leads)
	c.logger.Info("leads loaded", zap.Int("count", len(leads)))
}

// Loading reports whether the start-up fetch is pending.
func (c *Console) Loading() bool { return c.loading }

// LoadErr returns the load error, if any.
func (c *Console) LoadErr() (LoadError, bool) {
	if c.loadErr == nil {
		return LoadError{}, false
	}
	return *c.loadErr, true
}

// Leads returns a copy of the canonical lead list.
func (c *Console) Leads() []lead.Lead { return cloneLeads(c.leads) }

// Filtered returns a copy of the displayed view.
func (c *Console) Filtered() []lead.Lead { return cloneLeads(c.filtered) }

// Opportunities returns a copy of the opportunities in creation order.
func (c *Console) Opportunities() []lead.Opportunity {
	out := make([]lead.Opportunity, len(c.opportunities))
	copy(out, c.opportunities)
	return out
}

// Panel returns the detail panel state.
func (c *Console) Panel() PanelState { return c.panel }

// Dialog returns the convert dialog state.
func (c *Console) Dialog() DialogState { return c.dialog }

// Busy reports whether a save or conversion is pending.
func (c *Console) Busy() bool { return c.panel.Loading || c.dialog.Loading }

// Selected returns the selected lead, if any.
func (c *Console) Selected() (lead.Lead, bool) {
	if c.selectedID == "" {
		return lead.Lead{}, false
	}
	i := indexOf(c.leads, c.selectedID)
	if i < 0 {
		return lead.Lead{}, false
	}
	return c.leads[i], true
}

// SetFiltered replaces the displayed view.
func (c *Console) SetFiltered(leads []lead.Lead) {
	c.filtered = cloneLeads(leads)
}

// SelectLead selects a lead and opens the detail panel.
func (c *Console) SelectLead(id string) error {
	if c.Busy() {
		return ErrBusy
	}
	if indexOf(c.leads, id) < 0 {
		return fmt.Errorf("%w: %s", ErrLeadNotFound, id)
	}
	c.selectedID = id
	c.panel = PanelState{Open: true}
	return nil
}

// ClosePanel closes the detail panel and clears the selection.
func (c *Console) ClosePanel() {
	c.panel = PanelState{}
	c.selectedID = ""
}

// BeginUpdate validates an edit of the selected lead and marks the panel
// loading. On error nothing changes.
func (c *Console) BeginUpdate(id string, u lead.Update) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if c.Busy() {
		return ErrBusy
	}
	if id == "" || id != c.selectedID || indexOf(c.leads, id) < 0 {
		return fmt.Errorf("%w: %s", ErrLeadNotFound, id)
	}
	c.panel.Loading = true
	return nil
}

// CommitUpdate applies an update started with BeginUpdate to the canonical
// list and the displayed view.
func (c *Console) CommitUpdate(ctx context.Context, id string, u lead.Update) (lead.Lead, error) {
	_, span := c.tracer.Start(ctx, "console.update_lead",
		trace.WithAttributes(attribute.String("lead.id", id)))
	defer span.End()

	c.panel.Loading = false
	if err := u.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return lead.Lead{}, err
	}
	i := indexOf(c.leads, id)
	if i < 0 {
		err := fmt.Errorf("%w: %s", ErrLeadNotFound, id)
		span.SetStatus(codes.Error, err.Error())
		return lead.Lead{}, err
	}
	c.leads[i] = c.leads[i].Apply(u)
	if j := indexOf(c.filtered, id); j >= 0 {
		c.filtered[j] = c.filtered[j].Apply(u)
	}
	c.logger.Info("lead updated",
		zap.String("lead_id", id),
		zap.String("status", string(u.Status)))
	return c.leads[i], nil
}

// OpenConvert selects a lead for conversion, hides the panel and opens the dialog.
func (c *Console) OpenConvert(id string) error {
	if c.HasOpportunity(id) {
		return ErrAlreadyConverted
	}
	if c.Busy() {
		return ErrBusy
	}
	if indexOf(c.leads, id) < 0 {
		return fmt.Errorf("%w: %s", ErrLeadNotFound, id)
	}
	c.selectedID = id
	c.panel = PanelState{}
	c.dialog = DialogState{Open: true}
	return nil
}

// CancelConvert closes the dialog and clears the selection. It is ignored
// while the conversion is being submitted.
func (c *Console) CancelConvert() bool {
	if c.dialog.Loading {
		return false
	}
	c.dialog = DialogState{}
	c.selectedID = ""
	return true
}

// BeginCreateOpportunity validates the conversion form and marks the dialog loading.
func (c *Console) BeginCreateOpportunity(d lead.Draft) error {
	if c.Busy() {
		return ErrBusy
	}
	if err := d.Validate(); err != nil {
		return err
	}
	if c.HasOpportunity(d.LeadID) {
		return ErrAlreadyConverted
	}
	if indexOf(c.leads, d.LeadID) < 0 {
		return fmt.Errorf("%w: %s", ErrLeadNotFound, d.LeadID)
	}
	c.dialog.Loading = true
	return nil
}

// CommitCreateOpportunity records the opportunity and closes the dialog.
func (c *Console) CommitCreateOpportunity(ctx context.Context, d lead.Draft) (lead.Opportunity, error) {
	_, span := c.tracer.Start(ctx, "console.create_opportunity",
		trace.WithAttributes(attribute.String("lead.id", d.LeadID)))
	defer span.End()

	c.dialog.Loading = false
	if c.HasOpportunity(d.LeadID) {
		span.SetStatus(codes.Error, ErrAlreadyConverted.Error())
		return lead.Opportunity{}, ErrAlreadyConverted
	}
	opp, err := d.Build(c.newID(), c.now())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return lead.Opportunity{}, err
	}
	c.opportunities = append(c.opportunities, opp)
	c.dialog = DialogState{}
	c.selectedID = ""
	span.SetAttributes(attribute.String("opportunity.id", opp.ID))
	c.logger.Info("opportunity created",
		zap.String("opportunity_id", opp.ID),
		zap.String("lead_id", opp.LeadID),
		zap.String("stage", string(opp.Stage)))
	return opp, nil
}

// HasOpportunity reports whether the lead has already been converted.
func (c *Console) HasOpportunity(leadID string) bool {
	for _, o := range c.opportunities {
		if o.LeadID == leadID {
			return true
		}
	}
	return false
}

func indexOf(leads []lead.Lead, id string) int {
	for i, l := range leads {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func cloneLeads(leads []lead.Lead) []lead.Lead {
	if leads == nil {
		return nil
	}
	out := make([]lead.Lead, len(leads))
	copy(out, leads)
	return out
}
