package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sellerconsole/internal/lead"
	"sellerconsole/internal/pipeline"
	"sellerconsole/internal/ui/textutil"
)

// EmailColumnWidth caps the email column; longer addresses end in an ellipsis.
const EmailColumnWidth = 30

// EmptyLeadsText is shown when no lead matches the search and filter.
const EmptyLeadsText = "No leads found matching your criteria."

type leadColumn struct {
	title string
	width int
	field pipeline.SortField // empty: not sortable
}

var leadColumns = []leadColumn{
	{"Name", 20, pipeline.FieldName},
	{"Company", 20, pipeline.FieldCompany},
	{"Email", EmailColumnWidth, ""},
	{"Source", 10, ""},
	{"Score", 7, pipeline.FieldScore},
	{"Status", 11, pipeline.FieldStatus},
}

// LeadsView is the filterable, sortable lead table with its search box.
type LeadsView struct {
	table   table.Model
	search  textinput.Model
	leads   []lead.Lead
	query   pipeline.Query
	focused bool
}

// Ensure LeadsView implements View.
var _ View = (*LeadsView)(nil)

// NewLeadsView creates an empty, focused lead table.
func NewLeadsView() *LeadsView {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search name or company"
	ti.CharLimit = 64
	ti.Width = 30

	v := &LeadsView{
		search:  ti,
		query:   pipeline.Default(),
		focused: true,
	}
	v.table = table.New(
		table.WithColumns(v.columns()),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	v.table.SetStyles(NewTableStyles(true))
	return v
}

func (v *LeadsView) columns() []table.Column {
	cols := make([]table.Column, len(leadColumns))
	for i, c := range leadColumns {
		title := c.title
		if c.field != "" && c.field == v.query.Field {
			title += " " + v.query.Dir.Arrow()
		}
		cols[i] = table.Column{Title: title, Width: c.width}
	}
	return cols
}

// SetLeads replaces the displayed rows, keeping the cursor in range.
func (v *LeadsView) SetLeads(leads []lead.Lead) {
	v.leads = leads
	rows := make([]table.Row, len(leads))
	for i, l := range leads {
		rows[i] = table.Row{
			l.Name,
			l.Company,
			textutil.Truncate(l.Email, EmailColumnWidth),
			l.Source,
			strconv.Itoa(l.Score),
			l.Status.Label(),
		}
	}
	cursor := v.table.Cursor()
	v.table.SetRows(rows)
	switch {
	case len(rows) == 0:
		v.table.SetCursor(0)
	case cursor >= len(rows):
		v.table.SetCursor(len(rows) - 1)
	}
}

// Leads returns the rows currently displayed.
func (v *LeadsView) Leads() []lead.Lead { return v.leads }

// SetQuery updates the header indicators and the filter summary. The search
// box is only overwritten while the user is not typing in it.
func (v *LeadsView) SetQuery(q pipeline.Query) {
	v.query = q
	v.table.SetColumns(v.columns())
	if !v.search.Focused() {
		v.search.SetValue(q.Search)
	}
}

// SelectedLead returns the lead under the cursor.
func (v *LeadsView) SelectedLead() (lead.Lead, bool) {
	i := v.table.Cursor()
	if i < 0 || i >= len(v.leads) {
		return lead.Lead{}, false
	}
	return v.leads[i], true
}

// FocusSearch moves keyboard input into the search box.
func (v *LeadsView) FocusSearch() tea.Cmd {
	v.table.Blur()
	return v.search.Focus()
}

// SearchFocused reports whether keys go to the search box.
func (v *LeadsView) SearchFocused() bool { return v.search.Focused() }

// SetFocused marks the table as the focused panel.
func (v *LeadsView) SetFocused(focused bool) {
	v.focused = focused
	if focused {
		v.table.Focus()
	} else {
		v.table.Blur()
		v.search.Blur()
	}
	v.table.SetStyles(NewTableStyles(focused))
}

// SetHeight sizes the table body.
func (v *LeadsView) SetHeight(h int) {
	if h < 3 {
		h = 3
	}
	v.table.SetHeight(h)
}

// Init implements View.
func (v *LeadsView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (v *LeadsView) Update(msg tea.Msg) (View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		if v.search.Focused() {
			return v, v.updateSearch(km)
		}
		if km.String() == "enter" {
			if l, ok := v.SelectedLead(); ok {
				id := l.ID
				return v, func() tea.Msg { return SelectLeadMsg{ID: id} }
			}
			return v, nil
		}
	}
	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

func (v *LeadsView) updateSearch(km tea.KeyMsg) tea.Cmd {
	switch km.String() {
	case "esc", "enter":
		v.search.Blur()
		if v.focused {
			v.table.Focus()
		}
		return nil
	}
	before := v.search.Value()
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(km)
	if after := v.search.Value(); after != before {
		return tea.Batch(cmd, func() tea.Msg { return searchChangedMsg{Term: after} })
	}
	return cmd
}

// View implements View.
func (v *LeadsView) View() string {
	var b strings.Builder
	title := Styles.Title.Render(fmt.Sprintf("Leads (%d)", len(v.leads)))
	if !v.focused {
		title = Styles.Muted.Render(fmt.Sprintf("Leads (%d)", len(v.leads)))
	}
	b.WriteString(title + "\n")

	status := "All"
	if v.query.Status != pipeline.StatusAll {
		status = lead.Status(v.query.Status).Label()
	}
	filters := lipgloss.JoinHorizontal(lipgloss.Top,
		v.search.View(),
		Styles.Hint.Render("   status: "),
		Styles.Section.Render(status),
		Styles.Hint.Render(fmt.Sprintf("   sort: %s %s", v.query.Field, v.query.Dir.Arrow())),
	)
	b.WriteString(filters + "\n\n")

	if len(v.leads) == 0 {
		b.WriteString(Styles.Empty.Render(EmptyLeadsText))
		return b.String()
	}
	b.WriteString(v.table.View())
	return b.String()
}
