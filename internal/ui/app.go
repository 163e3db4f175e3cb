package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"sellerconsole/internal/console"
	"sellerconsole/internal/leadsource"
	"sellerconsole/internal/pipeline"
	"sellerconsole/internal/prefs"
)

// Options wires the app model to its collaborators. Zero delays run the
// simulated requests immediately.
type Options struct {
	Context       context.Context
	Console       *console.Console
	Source        leadsource.Source
	Prefs         prefs.Store // nil disables persistence
	Logger        *zap.Logger
	LoadDelay     time.Duration
	SaveDelay     time.Duration
	ConvertDelay  time.Duration
	Debounce      time.Duration
	ToastDuration time.Duration
}

// AppModel is the root model. It owns the console state and routes
// messages between the lead table, the side panel, the convert dialog and
// the opportunity table.
type AppModel struct {
	Mode          AppMode
	Console       *console.Console
	Source        leadsource.Source
	Prefs         prefs.Store
	Logger        *zap.Logger
	Leads         *LeadsView
	Opportunities *OpportunitiesView
	Panel         *LeadPanel // nil when closed
	Overlays      OverlayStack
	Focus         FocusManager
	KeyHandler    *KeyHandler
	Toasts        Toasts
	Query         pipeline.Query

	ctx          context.Context
	debouncer    pipeline.Debouncer
	searching    bool // a typed term is waiting for the debounce to settle
	queryTouched bool // user changed the query before saved prefs arrived
	saver        *prefs.Saver
	spinner      spinner.Model
	loadDelay    time.Duration
	saveDelay    time.Duration
	convertDelay time.Duration
	debounce     time.Duration
	width        int
	height       int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model in loading mode.
func NewAppModel(opts Options) *AppModel {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Console == nil {
		opts.Console = console.New()
	}
	if opts.Source == nil {
		opts.Source = leadsource.EmbeddedSource{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	a := &AppModel{
		Mode:          ModeLoading,
		Console:       opts.Console,
		Source:        opts.Source,
		Prefs:         opts.Prefs,
		Logger:        opts.Logger,
		Leads:         NewLeadsView(),
		Opportunities: NewOpportunitiesView(),
		KeyHandler:    NewKeyHandler(newRegistry()),
		Toasts:        Toasts{Duration: opts.ToastDuration},
		Query:         pipeline.Default(),
		ctx:           opts.Context,
		spinner:       newLoadingSpinner(),
		loadDelay:     opts.LoadDelay,
		saveDelay:     opts.SaveDelay,
		convertDelay:  opts.ConvertDelay,
		debounce:      opts.Debounce,
	}
	if opts.Prefs != nil {
		a.saver = prefs.NewSaver(opts.Prefs)
	}
	a.Focus = FocusManager{
		Current:  FocusLeads,
		Order:    []string{FocusLeads, FocusOpportunities},
		OnChange: a.focusChanged,
	}
	a.Leads.SetQuery(a.Query)
	return a
}

func newRegistry() *KeybindRegistry {
	reg := NewKeybindRegistry()
	quit := func() tea.Msg { return RequestQuitMsg{} }
	reg.Bind("q", "Quit", quit)
	reg.Bind("ctrl+c", "Quit", tea.Quit)
	reg.Bind("SPC q", "Quit", quit)
	reg.Bind("tab", "Next table", func() tea.Msg { return FocusNextMsg{} })
	reg.Bind("/", "Search", func() tea.Msg { return FocusSearchMsg{} })
	reg.Bind("f", "Cycle status filter", func() tea.Msg { return CycleStatusFilterMsg{} })

	for _, s := range []struct {
		key   string
		field pipeline.SortField
		desc  string
	}{
		{"n", pipeline.FieldName, "Sort by name"},
		{"c", pipeline.FieldCompany, "Sort by company"},
		{"o", pipeline.FieldScore, "Sort by score"},
		{"t", pipeline.FieldStatus, "Sort by status"},
	} {
		field := s.field
		reg.Bind("SPC s "+s.key, s.desc, func() tea.Msg { return SortMsg{Field: field} }, ModeConsole)
	}
	for _, f := range []struct {
		key    string
		status string
		desc   string
	}{
		{"a", pipeline.StatusAll, "All"},
		{"n", "new", "New"},
		{"c", "contacted", "Contacted"},
		{"q", "qualified", "Qualified"},
		{"l", "lost", "Lost"},
	} {
		status := f.status
		reg.Bind("SPC f "+f.key, f.desc, func() tea.Msg { return SetStatusFilterMsg{Status: status} }, ModeConsole)
	}
	return reg
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return tea.Batch(a.startLoad(), loadPrefsCmd(a.ctx, a.Prefs))
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	case spinner.TickMsg:
		if a.Mode != ModeLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case leadsLoadedMsg:
		return a, a.handleLeadsLoaded(msg)
	case RetryLoadMsg:
		if a.Mode != ModeLoadError {
			return a, nil
		}
		return a, a.startLoad()
	case prefsLoadedMsg:
		return a, a.handlePrefsLoaded(msg)
	case prefsSavedMsg:
		if msg.Err != nil {
			a.Logger.Warn("error saving preferences", zap.Error(msg.Err))
			return a, a.Toasts.Warning("Could not save filter preferences")
		}
		return a, nil

	case searchChangedMsg:
		return a, a.handleSearchChanged(msg)
	case searchSettledMsg:
		return a, a.handleSearchSettled(msg)
	case SortMsg:
		a.queryTouched = true
		a.Query = a.Query.Toggle(msg.Field)
		return a, a.queryChanged()
	case CycleStatusFilterMsg:
		a.queryTouched = true
		a.Query.Status = pipeline.NextStatusFilter(a.Query.Status)
		return a, a.queryChanged()
	case SetStatusFilterMsg:
		status, ok := pipeline.ParseStatusFilter(msg.Status)
		if !ok {
			return a, nil
		}
		a.queryTouched = true
		a.Query.Status = status
		return a, a.queryChanged()
	case FocusSearchMsg:
		a.Focus.SetFocus(FocusLeads)
		return a, a.Leads.FocusSearch()
	case FocusNextMsg:
		a.Focus.Next()
		return a, nil

	case SelectLeadMsg:
		return a, a.handleSelectLead(msg)
	case ClosePanelMsg:
		if a.Console.Panel().Loading {
			return a, nil
		}
		a.Console.ClosePanel()
		a.Panel = nil
		return a, nil
	case SaveLeadMsg:
		return a, a.handleSaveLead(msg)
	case leadSaveDoneMsg:
		return a, a.handleLeadSaved(msg)

	case OpenConvertMsg:
		return a, a.handleOpenConvert(msg)
	case CancelConvertMsg:
		if a.Console.CancelConvert() {
			a.removeConvertModal()
		}
		return a, nil
	case SubmitOpportunityMsg:
		return a, a.handleSubmitOpportunity(msg)
	case opportunityDoneMsg:
		return a, a.handleOpportunityDone(msg)

	case RequestQuitMsg:
		return a, a.handleRequestQuit()
	case confirmQuitMsg:
		return a, tea.Quit
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	case toastExpiredMsg:
		a.Toasts.Remove(msg.ID)
		return a, nil
	}

	return a, a.forward(msg)
}

// forward hands messages the app does not handle (cursor blinks, form
// field transitions) to whatever currently has input.
func (a *appModelAdapter) forward(msg tea.Msg) tea.Cmd {
	if cmd, ok := a.Overlays.UpdateTop(msg); ok {
		return cmd
	}
	if a.Panel != nil && a.Panel.Editing() {
		_, cmd := a.Panel.Update(msg)
		return cmd
	}
	if a.Leads.SearchFocused() {
		_, cmd := a.Leads.Update(msg)
		return cmd
	}
	return nil
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	var body string
	switch a.Mode {
	case ModeLoading:
		body = loadingScreen(a.spinner, a.Source.Describe())
	case ModeLoadError:
		le, _ := a.Console.LoadErr()
		body = loadErrorScreen(le.Message)
	default:
		body = a.consoleView()
	}

	if top, ok := a.Overlays.Peek(); ok {
		modal := top.View.View()
		if a.width > 0 && a.height > 0 {
			return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
		}
		body += "\n" + modal
	}

	if a.KeyHandler != nil && a.KeyHandler.Waiting() {
		body += "\n" + RenderKeybindHelp(a.KeyHandler, a.Mode)
	}
	if toasts := a.Toasts.View(); toasts != "" {
		body += "\n" + toasts
	}
	return body
}

func (a *AppModel) consoleView() string {
	header := Styles.Title.Render("Seller Console") + "  " +
		Styles.Hint.Render("/: search  f: filter  SPC: commands  tab: switch table  q: quit")

	top := Styles.Box.Render(a.Leads.View())
	if a.Panel != nil {
		top = lipgloss.JoinHorizontal(lipgloss.Top, top, a.Panel.View())
	}
	return header + "\n" + top + "\n" + Styles.Box.Render(a.Opportunities.View())
}

func (a *AppModel) resize(width, height int) {
	a.width = width
	a.height = height
	// header, two box borders, the leads title and filter lines and the
	// opportunity table below
	a.Leads.SetHeight(height - 22)
}

func (a *AppModel) focusChanged(_, to string) {
	a.Leads.SetFocused(to == FocusLeads)
	a.Opportunities.SetFocused(to == FocusOpportunities)
}
