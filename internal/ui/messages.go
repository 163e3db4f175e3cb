package ui

import (
	"sellerconsole/internal/lead"
	"sellerconsole/internal/pipeline"
)

// leadsLoadedMsg carries the result of the start-up fetch.
type leadsLoadedMsg struct {
	Leads []lead.Lead
	Err   error
}

// prefsLoadedMsg carries the persisted filter and sort inputs.
type prefsLoadedMsg struct {
	Query pipeline.Query
	Err   error
}

// prefsSavedMsg reports a failed preference write; successful writes are silent.
type prefsSavedMsg struct {
	Err error
}

// RetryLoadMsg re-runs the start-up fetch from the load error screen.
type RetryLoadMsg struct{}

// searchChangedMsg is emitted by the leads view on every keystroke in the search box.
type searchChangedMsg struct {
	Term string
}

// searchSettledMsg fires when the debounce interval for generation Gen has elapsed.
type searchSettledMsg struct {
	Gen uint64
}

// SortMsg toggles the sort on a column (SPC s n|c|o|t).
type SortMsg struct {
	Field pipeline.SortField
}

// CycleStatusFilterMsg advances the status filter (f).
type CycleStatusFilterMsg struct{}

// SetStatusFilterMsg selects a status filter directly (SPC f <key>).
type SetStatusFilterMsg struct {
	Status string
}

// FocusSearchMsg moves input into the search box (/).
type FocusSearchMsg struct{}

// FocusNextMsg rotates focus between the tables (tab).
type FocusNextMsg struct{}

// SelectLeadMsg opens the detail panel for a lead (enter on the leads table).
type SelectLeadMsg struct {
	ID string
}

// ClosePanelMsg closes the detail panel (esc).
type ClosePanelMsg struct{}

// SaveLeadMsg submits an edit from the detail panel (ctrl+s).
type SaveLeadMsg struct {
	ID     string
	Update lead.Update
}

// leadSaveDoneMsg fires once the simulated save latency has elapsed.
type leadSaveDoneMsg struct {
	ID     string
	Update lead.Update
}

// OpenConvertMsg opens the convert dialog for a lead (c in the panel).
type OpenConvertMsg struct {
	ID string
}

// CancelConvertMsg closes the convert dialog without creating anything (esc).
type CancelConvertMsg struct{}

// SubmitOpportunityMsg is sent when the convert form is completed.
type SubmitOpportunityMsg struct {
	Draft lead.Draft
}

// opportunityDoneMsg fires once the simulated convert latency has elapsed.
type opportunityDoneMsg struct {
	Draft lead.Draft
}

// RequestQuitMsg asks to quit; confirmed first while a request is pending.
type RequestQuitMsg struct{}

// DismissModalMsg is sent when user cancels a modal (Esc).
type DismissModalMsg struct{}

// toastExpiredMsg removes a toast after its duration.
type toastExpiredMsg struct {
	ID int
}

// confirmQuitMsg quits after the user confirmed in the quit modal.
type confirmQuitMsg struct{}
