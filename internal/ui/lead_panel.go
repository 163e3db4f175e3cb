package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"sellerconsole/internal/lead"
	"sellerconsole/internal/ui/textutil"
)

const panelLabelWidth = 9

const (
	panelFieldEmail = iota
	panelFieldStatus
)

// LeadPanel is the side panel showing one lead. In edit mode the email and
// status can be changed and saved with ctrl+s.
type LeadPanel struct {
	lead     lead.Lead
	editing  bool
	email    textinput.Model
	status   lead.Status
	field    int
	emailErr string
	loading  bool
	width    int
}

// Ensure LeadPanel implements View.
var _ View = (*LeadPanel)(nil)

// NewLeadPanel opens the panel in read mode.
func NewLeadPanel(l lead.Lead) *LeadPanel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 254
	ti.Width = 32
	return &LeadPanel{lead: l, email: ti, status: l.Status, width: 48}
}

// Lead returns the lead the panel shows.
func (p *LeadPanel) Lead() lead.Lead { return p.lead }

// Editing reports whether the panel is in edit mode.
func (p *LeadPanel) Editing() bool { return p.editing }

// EmailError returns the inline validation message, if any.
func (p *LeadPanel) EmailError() string { return p.emailErr }

// SetEmailError shows a validation message under the email field.
func (p *LeadPanel) SetEmailError(msg string) { p.emailErr = msg }

// SetLoading toggles the "Saving..." state; input is ignored while saving.
func (p *LeadPanel) SetLoading(loading bool) { p.loading = loading }

// Loading reports whether a save is pending.
func (p *LeadPanel) Loading() bool { return p.loading }

// Saved shows the persisted lead and leaves edit mode.
func (p *LeadPanel) Saved(l lead.Lead) {
	p.lead = l
	p.loading = false
	p.stopEditing()
}

func (p *LeadPanel) startEditing() tea.Cmd {
	p.editing = true
	p.field = panelFieldEmail
	p.status = p.lead.Status
	p.email.SetValue(p.lead.Email)
	p.email.CursorEnd()
	p.emailErr = ""
	return p.email.Focus()
}

func (p *LeadPanel) stopEditing() {
	p.editing = false
	p.emailErr = ""
	p.status = p.lead.Status
	p.email.Blur()
}

// Draft returns the edit currently in the form.
func (p *LeadPanel) Draft() lead.Update {
	return lead.Update{Email: p.email.Value(), Status: p.status}
}

// Init implements View.
func (p *LeadPanel) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (p *LeadPanel) Update(msg tea.Msg) (View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if p.editing && p.field == panelFieldEmail {
			var cmd tea.Cmd
			p.email, cmd = p.email.Update(msg)
			return p, cmd
		}
		return p, nil
	}
	if p.loading {
		return p, nil
	}
	if p.editing {
		return p, p.updateEditing(km)
	}

	id := p.lead.ID
	switch km.String() {
	case "e":
		return p, p.startEditing()
	case "c":
		return p, func() tea.Msg { return OpenConvertMsg{ID: id} }
	case "esc":
		return p, func() tea.Msg { return ClosePanelMsg{} }
	}
	return p, nil
}

func (p *LeadPanel) updateEditing(km tea.KeyMsg) tea.Cmd {
	switch km.String() {
	case "esc":
		p.stopEditing()
		return nil
	case "ctrl+s":
		u := p.Draft()
		if !lead.ValidEmail(u.Email) {
			p.emailErr = lead.InvalidEmailText
			return nil
		}
		p.emailErr = ""
		id := p.lead.ID
		return func() tea.Msg { return SaveLeadMsg{ID: id, Update: u} }
	case "tab", "shift+tab":
		if p.field == panelFieldEmail {
			p.field = panelFieldStatus
			p.email.Blur()
			return nil
		}
		p.field = panelFieldEmail
		return p.email.Focus()
	}

	if p.field == panelFieldStatus {
		switch km.String() {
		case "left", "h", "up", "k":
			p.status = p.status.Prev()
		case "right", "l", "down", "j", " ":
			p.status = p.status.Next()
		}
		return nil
	}

	var cmd tea.Cmd
	p.email, cmd = p.email.Update(km)
	return cmd
}

func (p *LeadPanel) row(label, value string) string {
	return Styles.Label.Render(textutil.PadRightVisual(label, panelLabelWidth)) + " " + value
}

// View implements View.
func (p *LeadPanel) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Lead details") + "\n\n")
	b.WriteString(p.row("Name", p.lead.Name) + "\n")
	b.WriteString(p.row("Company", p.lead.Company) + "\n")

	if p.editing {
		email := p.email.View()
		if p.field == panelFieldEmail {
			email = Styles.Selected.Render("›") + " " + email
		} else {
			email = "  " + email
		}
		b.WriteString(p.row("Email", email) + "\n")
		if p.emailErr != "" {
			b.WriteString(p.row("", Styles.Error.Render(p.emailErr)) + "\n")
		}
	} else {
		b.WriteString(p.row("Email", p.lead.Email) + "\n")
	}

	b.WriteString(p.row("Source", p.lead.Source) + "\n")
	b.WriteString(p.row("Score", strconv.Itoa(p.lead.Score)) + "\n")

	if p.editing {
		st := "‹ " + p.status.Label() + " ›"
		if p.field == panelFieldStatus {
			st = Styles.Selected.Render(st)
		}
		b.WriteString(p.row("Status", st) + "\n\n")
	} else {
		b.WriteString(p.row("Status", p.lead.Status.Label()) + "\n\n")
	}

	switch {
	case p.loading:
		b.WriteString(Styles.Status.Render("Saving..."))
	case p.editing:
		b.WriteString(Styles.Hint.Render("ctrl+s: save  tab: field  esc: cancel"))
	default:
		b.WriteString(Styles.Hint.Render("e: edit  c: convert  esc: close"))
	}
	return Styles.BoxCompact.Width(p.width).Render(b.String())
}
