package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"sellerconsole/internal/lead"
	"sellerconsole/internal/ui/textutil"
)

// ConvertModal is the convert-to-opportunity dialog. The form is prefilled
// from the lead; completing it sends SubmitOpportunityMsg, esc cancels.
type ConvertModal struct {
	lead    lead.Lead
	draft   lead.Draft
	form    *huh.Form
	loading bool
	// submitted stays set until Reject so a completed form is sent once.
	submitted bool
	err       string
}

// Ensure ConvertModal implements View.
var _ View = (*ConvertModal)(nil)

// NewConvertModal builds the dialog for l.
func NewConvertModal(l lead.Lead) *ConvertModal {
	m := &ConvertModal{lead: l, draft: lead.NewDraft(l)}
	m.form = m.buildForm()
	return m
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func validAmount(s string) error {
	if _, err := lead.ParseAmount(s); err != nil {
		return errors.New("amount must be a non-negative number")
	}
	return nil
}

func (m *ConvertModal) buildForm() *huh.Form {
	stages := make([]huh.Option[lead.Stage], 0, len(lead.Stages()))
	for _, s := range lead.Stages() {
		stages = append(stages, huh.NewOption(string(s), s))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Opportunity name").
				Value(&m.draft.Name).
				Validate(required("opportunity name")),
			huh.NewInput().
				Title("Account name").
				Value(&m.draft.AccountName).
				Validate(required("account name")),
			huh.NewSelect[lead.Stage]().
				Title("Stage").
				Options(stages...).
				Value(&m.draft.Stage),
			huh.NewInput().
				Title("Amount (optional)").
				Placeholder("0.00").
				Value(&m.draft.Amount).
				Validate(validAmount),
		),
	).
		WithTheme(huh.ThemeDracula()).
		WithShowHelp(false).
		WithWidth(48)
}

// Lead returns the lead being converted.
func (m *ConvertModal) Lead() lead.Lead { return m.lead }

// Draft returns the current form values.
func (m *ConvertModal) Draft() lead.Draft { return m.draft }

// SetLoading toggles the "Converting..." state.
func (m *ConvertModal) SetLoading(loading bool) { m.loading = loading }

// Loading reports whether the submission is pending.
func (m *ConvertModal) Loading() bool { return m.loading }

// Submitted reports whether the completed form has been sent.
func (m *ConvertModal) Submitted() bool { return m.submitted }

// Reject shows err and reopens the form with the values kept.
func (m *ConvertModal) Reject(err error) tea.Cmd {
	m.loading = false
	m.submitted = false
	m.err = err.Error()
	m.form = m.buildForm()
	return m.form.Init()
}

// Submit sends the current draft.
func (m *ConvertModal) Submit() tea.Cmd {
	d := m.draft
	return func() tea.Msg { return SubmitOpportunityMsg{Draft: d} }
}

// Init implements View.
func (m *ConvertModal) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements View.
func (m *ConvertModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		if m.loading {
			return m, nil
		}
		if km.String() == "esc" {
			return m, func() tea.Msg { return CancelConvertMsg{} }
		}
	}
	if m.loading || m.submitted {
		return m, nil
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		m.err = ""
		m.submitted = true
		return m, tea.Batch(cmd, m.Submit())
	case huh.StateAborted:
		return m, func() tea.Msg { return CancelConvertMsg{} }
	}
	return m, cmd
}

// View implements View.
func (m *ConvertModal) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Convert to Opportunity") + "\n")
	summary := fmt.Sprintf("%s · %s · %s", m.lead.Name, m.lead.Company, m.lead.Email)
	b.WriteString(Styles.Muted.Render(textutil.Truncate(summary, 48)) + "\n\n")

	if m.loading {
		b.WriteString(Styles.Status.Render("Converting..."))
		return Styles.Box.Render(b.String())
	}
	b.WriteString(m.form.View())
	if m.err != "" {
		b.WriteString("\n" + Styles.Error.Render(m.err))
	}
	b.WriteString("\n" + Styles.Hint.Render("enter: next/submit  shift+tab: back  esc: cancel"))
	return Styles.Box.Render(b.String())
}
