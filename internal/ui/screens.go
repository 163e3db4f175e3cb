package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"sellerconsole/internal/console"
)

// LoadingText is shown while the leads are fetched.
const LoadingText = "Loading leads..."

func newLoadingSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))
	return s
}

func loadingScreen(s spinner.Model, source string) string {
	content := s.View() + " " + Styles.Normal.Render(LoadingText)
	if source != "" {
		content += "\n" + Styles.Muted.Render("from "+source)
	}
	return Styles.Box.Render(content)
}

func loadErrorScreen(message string) string {
	if message == "" {
		message = console.LoadFailedText
	}
	content := Styles.TitleWarning.Render("Error") + "\n\n" +
		Styles.Normal.Render(message) + "\n\n" +
		Styles.Hint.Render("r: retry  q: quit")
	return Styles.BoxDanger.Render(content)
}
