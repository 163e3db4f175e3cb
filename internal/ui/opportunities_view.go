package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"sellerconsole/internal/lead"
)

// EmptyOpportunitiesText is shown before any lead has been converted.
const EmptyOpportunitiesText = "No opportunities yet. Convert leads to get started!"

// FormatAmount renders an optional amount as "$1,234.50", or "-" when it is
// absent or zero.
func FormatAmount(amount *float64) string {
	if amount == nil || *amount == 0 {
		return "-"
	}
	return "$" + humanize.FormatFloat("#,###.##", *amount)
}

// OpportunitiesView lists the opportunities created in this session.
type OpportunitiesView struct {
	table         table.Model
	opportunities []lead.Opportunity
	focused       bool
}

// Ensure OpportunitiesView implements View.
var _ View = (*OpportunitiesView)(nil)

func NewOpportunitiesView() *OpportunitiesView {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 28},
			{Title: "Account", Width: 20},
			{Title: "Stage", Width: 14},
			{Title: "Amount", Width: 14},
			{Title: "Created", Width: 16},
		}),
		table.WithHeight(6),
	)
	t.SetStyles(NewTableStyles(false))
	return &OpportunitiesView{table: t}
}

// SetOpportunities replaces the rows.
func (v *OpportunitiesView) SetOpportunities(opps []lead.Opportunity) {
	v.opportunities = opps
	rows := make([]table.Row, len(opps))
	for i, o := range opps {
		rows[i] = table.Row{
			o.Name,
			o.AccountName,
			string(o.Stage),
			FormatAmount(o.Amount),
			humanize.Time(o.CreatedAt),
		}
	}
	v.table.SetRows(rows)
	if len(rows) > 0 && v.table.Cursor() >= len(rows) {
		v.table.SetCursor(len(rows) - 1)
	}
}

// SetFocused marks the table as the focused panel.
func (v *OpportunitiesView) SetFocused(focused bool) {
	v.focused = focused
	if focused {
		v.table.Focus()
	} else {
		v.table.Blur()
	}
	v.table.SetStyles(NewTableStyles(focused))
}

// Init implements View.
func (v *OpportunitiesView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (v *OpportunitiesView) Update(msg tea.Msg) (View, tea.Cmd) {
	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

// View implements View.
func (v *OpportunitiesView) View() string {
	var b strings.Builder
	title := fmt.Sprintf("Opportunities (%d)", len(v.opportunities))
	if v.focused {
		b.WriteString(Styles.Title.Render(title) + "\n\n")
	} else {
		b.WriteString(Styles.Muted.Render(title) + "\n\n")
	}
	if len(v.opportunities) == 0 {
		b.WriteString(Styles.Empty.Render(EmptyOpportunitiesText))
		return b.String()
	}
	b.WriteString(v.table.View())
	return b.String()
}
