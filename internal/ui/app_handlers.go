package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"sellerconsole/internal/console"
	"sellerconsole/internal/lead"
	"sellerconsole/internal/pipeline"
)

// Toast texts.
const (
	LeadUpdatedText        = "Lead updated successfully"
	LeadUpdateFailedText   = "Failed to update lead"
	OpportunityCreatedText = "Opportunity created successfully"
	OpportunityFailedText  = "Failed to create opportunity"
	RequestPendingText     = "Please wait for the current request to finish"
	prefsRestoreFailedText = "Could not restore saved filters"
)

// handleKey routes a key press. Order: global quit, the load screens, an
// open overlay, active text input, keybinds, the side panel, the focused table.
func (a *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := msg.String()
	if s == "ctrl+c" {
		return tea.Quit
	}

	switch a.Mode {
	case ModeLoading:
		if s == "q" {
			return tea.Quit
		}
		return nil
	case ModeLoadError:
		switch s {
		case "r":
			return func() tea.Msg { return RetryLoadMsg{} }
		case "q":
			return tea.Quit
		}
		return nil
	}

	if top, ok := a.Overlays.Peek(); ok {
		// a submitting dialog only lets the quit request through
		if m, isConvert := top.View.(*ConvertModal); isConvert && m.Loading() {
			if s == "q" {
				return func() tea.Msg { return RequestQuitMsg{} }
			}
			return nil
		}
		cmd, _ := a.Overlays.UpdateTop(msg)
		return cmd
	}

	if a.Leads.SearchFocused() {
		_, cmd := a.Leads.Update(msg)
		return cmd
	}
	if a.Panel != nil && a.Panel.Editing() && !a.Panel.Loading() {
		_, cmd := a.Panel.Update(msg)
		return cmd
	}

	if a.KeyHandler != nil {
		if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
			return cmd
		}
	}

	if a.Panel != nil && isPanelKey(s) {
		_, cmd := a.Panel.Update(msg)
		return cmd
	}

	if a.Focus.Current == FocusOpportunities {
		_, cmd := a.Opportunities.Update(msg)
		return cmd
	}
	_, cmd := a.Leads.Update(msg)
	return cmd
}

func isPanelKey(s string) bool {
	switch s {
	case "e", "c", "esc":
		return true
	}
	return false
}

func (a *AppModel) startLoad() tea.Cmd {
	a.Mode = ModeLoading
	a.Console.BeginLoad()
	return tea.Batch(a.spinner.Tick, loadLeadsCmd(a.ctx, a.Source, a.loadDelay))
}

func (a *AppModel) handleLeadsLoaded(msg leadsLoadedMsg) tea.Cmd {
	a.Console.FinishLoad(msg.Leads, msg.Err)
	if msg.Err != nil {
		a.Mode = ModeLoadError
		return nil
	}
	a.Mode = ModeConsole
	a.refresh()
	return nil
}

func (a *AppModel) handlePrefsLoaded(msg prefsLoadedMsg) tea.Cmd {
	var cmd tea.Cmd
	if msg.Err != nil {
		a.Logger.Warn("error loading preferences", zap.Error(msg.Err))
		cmd = a.Toasts.Warning(prefsRestoreFailedText)
	}
	if a.queryTouched {
		return cmd
	}
	a.Query = msg.Query
	a.refresh()
	return cmd
}

// refresh recomputes the displayed leads from the canonical list.
func (a *AppModel) refresh() {
	a.Console.SetFiltered(pipeline.Apply(a.Console.Leads(), a.Query))
	a.Leads.SetQuery(a.Query)
	a.Leads.SetLeads(a.Console.Filtered())
}

// queryChanged re-applies the query and persists it.
func (a *AppModel) queryChanged() tea.Cmd {
	a.refresh()
	return a.saveQuery()
}

// saveQuery persists the query as the user sees it: a typed search term is
// saved right away even though filtering waits for the debounce.
func (a *AppModel) saveQuery() tea.Cmd {
	q := a.Query
	if a.searching {
		q.Search = a.debouncer.Pending()
	}
	return savePrefsCmd(a.ctx, a.saver, q)
}

func (a *AppModel) handleSearchChanged(msg searchChangedMsg) tea.Cmd {
	a.queryTouched = true
	a.searching = true
	gen := a.debouncer.Bump(msg.Term)
	return tea.Batch(a.saveQuery(), debounceCmd(a.debounce, gen))
}

func (a *AppModel) handleSearchSettled(msg searchSettledMsg) tea.Cmd {
	term, ok := a.debouncer.Settle(msg.Gen)
	if !ok {
		return nil
	}
	a.searching = false
	if term == a.Query.Search {
		return nil
	}
	a.Query.Search = term
	a.refresh()
	return nil
}

func (a *AppModel) handleSelectLead(msg SelectLeadMsg) tea.Cmd {
	if err := a.Console.SelectLead(msg.ID); err != nil {
		if errors.Is(err, console.ErrBusy) {
			return a.Toasts.Warning(RequestPendingText)
		}
		a.Logger.Warn("error selecting lead", zap.String("lead_id", msg.ID), zap.Error(err))
		return nil
	}
	l, _ := a.Console.Selected()
	a.Panel = NewLeadPanel(l)
	return nil
}

func (a *AppModel) handleSaveLead(msg SaveLeadMsg) tea.Cmd {
	err := a.Console.BeginUpdate(msg.ID, msg.Update)
	switch {
	case err == nil:
	case errors.Is(err, lead.ErrInvalidEmail):
		if a.Panel != nil {
			a.Panel.SetEmailError(lead.InvalidEmailText)
		}
		return nil
	case errors.Is(err, console.ErrBusy):
		return a.Toasts.Warning(RequestPendingText)
	default:
		a.Logger.Error("error updating lead", zap.String("lead_id", msg.ID), zap.Error(err))
		return a.Toasts.Error(LeadUpdateFailedText)
	}
	if a.Panel != nil {
		a.Panel.SetLoading(true)
	}
	return saveLeadCmd(a.saveDelay, msg.ID, msg.Update)
}

func (a *AppModel) handleLeadSaved(msg leadSaveDoneMsg) tea.Cmd {
	l, err := a.Console.CommitUpdate(a.ctx, msg.ID, msg.Update)
	if err != nil {
		if a.Panel != nil {
			a.Panel.SetLoading(false)
		}
		a.Logger.Error("error updating lead", zap.String("lead_id", msg.ID), zap.Error(err))
		return a.Toasts.Error(LeadUpdateFailedText)
	}
	if a.Panel != nil && a.Panel.Lead().ID == l.ID {
		a.Panel.Saved(l)
	}
	a.refresh()
	return a.Toasts.Success(LeadUpdatedText)
}

func (a *AppModel) handleOpenConvert(msg OpenConvertMsg) tea.Cmd {
	err := a.Console.OpenConvert(msg.ID)
	switch {
	case err == nil:
	case errors.Is(err, console.ErrAlreadyConverted):
		return a.Toasts.Error(console.AlreadyConvertedText)
	case errors.Is(err, console.ErrBusy):
		return a.Toasts.Warning(RequestPendingText)
	default:
		a.Logger.Warn("error opening convert dialog", zap.String("lead_id", msg.ID), zap.Error(err))
		return nil
	}
	l, _ := a.Console.Selected()
	a.Panel = nil
	modal := NewConvertModal(l)
	a.Overlays.Push(Overlay{View: modal, Dismiss: "esc"})
	return modal.Init()
}

// convertModal returns the open convert dialog, if any.
func (a *AppModel) convertModal() *ConvertModal {
	for i := len(a.Overlays.Stack) - 1; i >= 0; i-- {
		if m, ok := a.Overlays.Stack[i].View.(*ConvertModal); ok {
			return m
		}
	}
	return nil
}

func (a *AppModel) removeConvertModal() {
	a.Overlays.RemoveWhere(func(v View) bool {
		_, ok := v.(*ConvertModal)
		return ok
	})
}

func (a *AppModel) handleSubmitOpportunity(msg SubmitOpportunityMsg) tea.Cmd {
	modal := a.convertModal()
	err := a.Console.BeginCreateOpportunity(msg.Draft)
	switch {
	case err == nil:
	case errors.Is(err, console.ErrBusy):
		return nil
	case errors.Is(err, console.ErrAlreadyConverted):
		a.Console.CancelConvert()
		a.removeConvertModal()
		return a.Toasts.Error(console.AlreadyConvertedText)
	default:
		if modal != nil {
			return modal.Reject(err)
		}
		return a.Toasts.Error(OpportunityFailedText)
	}
	if modal != nil {
		modal.SetLoading(true)
	}
	return convertCmd(a.convertDelay, msg.Draft)
}

func (a *AppModel) handleOpportunityDone(msg opportunityDoneMsg) tea.Cmd {
	opp, err := a.Console.CommitCreateOpportunity(a.ctx, msg.Draft)
	a.removeConvertModal()
	if err != nil {
		a.Console.CancelConvert()
		if errors.Is(err, console.ErrAlreadyConverted) {
			return a.Toasts.Error(console.AlreadyConvertedText)
		}
		a.Logger.Error("error creating opportunity", zap.String("lead_id", msg.Draft.LeadID), zap.Error(err))
		return a.Toasts.Error(OpportunityFailedText)
	}
	a.Opportunities.SetOpportunities(a.Console.Opportunities())
	a.Logger.Debug("opportunity shown", zap.String("opportunity_id", opp.ID))
	return a.Toasts.Success(OpportunityCreatedText)
}

func (a *AppModel) handleRequestQuit() tea.Cmd {
	if !a.Console.Busy() {
		return tea.Quit
	}
	if top, ok := a.Overlays.Peek(); ok {
		if _, isConfirm := top.View.(*ConfirmModal); isConfirm {
			return nil
		}
	}
	pending := "The lead update"
	if a.Console.Dialog().Loading {
		pending = "The new opportunity"
	}
	a.Overlays.Push(Overlay{View: NewQuitConfirmModal(pending), Dismiss: "esc"})
	return nil
}
