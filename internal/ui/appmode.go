package ui

// AppMode is the top-level screen: the start-up load, the full-page load
// error, or the console itself.
type AppMode int

const (
	ModeLoading AppMode = iota
	ModeLoadError
	ModeConsole
)

func (m AppMode) String() string {
	switch m {
	case ModeLoading:
		return "Loading"
	case ModeLoadError:
		return "LoadError"
	case ModeConsole:
		return "Console"
	default:
		return "Unknown"
	}
}
