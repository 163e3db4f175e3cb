package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sellerconsole/internal/lead"
	"sellerconsole/internal/leadsource"
	"sellerconsole/internal/pipeline"
	"sellerconsole/internal/prefs"
)

// loadLeadsCmd waits out the simulated latency, then fetches the lead list.
func loadLeadsCmd(ctx context.Context, src leadsource.Source, delay time.Duration) tea.Cmd {
	return func() tea.Msg {
		if delay > 0 {
			t := time.NewTimer(delay)
			defer t.Stop()
			select {
			case <-t.C:
			case <-ctx.Done():
				return leadsLoadedMsg{Err: ctx.Err()}
			}
		}
		leads, err := src.Fetch(ctx)
		return leadsLoadedMsg{Leads: leads, Err: err}
	}
}

func loadPrefsCmd(ctx context.Context, store prefs.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		q, err := prefs.LoadQuery(ctx, store)
		return prefsLoadedMsg{Query: q, Err: err}
	}
}

// savePrefsCmd reserves a save generation now, in update order, so a slow
// earlier save can never overwrite a later one.
func savePrefsCmd(ctx context.Context, saver *prefs.Saver, q pipeline.Query) tea.Cmd {
	if saver == nil {
		return nil
	}
	gen := saver.Next()
	return func() tea.Msg {
		_, err := saver.Save(ctx, gen, q)
		return prefsSavedMsg{Err: err}
	}
}

// after runs msg after d, or on the next turn of the loop when d is zero.
func after(d time.Duration, msg tea.Msg) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func debounceCmd(d time.Duration, gen uint64) tea.Cmd {
	return after(d, searchSettledMsg{Gen: gen})
}

func saveLeadCmd(d time.Duration, id string, u lead.Update) tea.Cmd {
	return after(d, leadSaveDoneMsg{ID: id, Update: u})
}

func convertCmd(d time.Duration, draft lead.Draft) tea.Cmd {
	return after(d, opportunityDoneMsg{Draft: draft})
}
