package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// RenderKeybindHelp draws the hint bar shown while a leader sequence is
// pending, e.g. the sort fields after "SPC s".
func RenderKeybindHelp(h *KeyHandler, mode AppMode) string {
	if h == nil || !h.Waiting() {
		return ""
	}
	bindings := leaderBindings(h, mode)
	if len(bindings) == 0 {
		return ""
	}

	hm := help.New()
	hm.Styles.ShortKey = Styles.Selected
	hm.Styles.ShortDesc = Styles.Muted
	hm.Styles.ShortSeparator = Styles.Muted

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1)
	prefix := strings.Join(h.Buffer, " ")
	return box.Render(Styles.Muted.Render(prefix) + " " + hm.ShortHelpView(bindings))
}

// leaderBindings lists the next keys of the pending sequence in key order,
// followed by esc.
func leaderBindings(h *KeyHandler, mode AppMode) []key.Binding {
	hints := h.Registry.LeaderHints(strings.Join(h.Buffer, " "), mode)
	if len(hints) == 0 {
		return nil
	}
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]key.Binding, 0, len(keys)+1)
	for _, k := range keys {
		out = append(out, key.NewBinding(key.WithKeys(k), key.WithHelp(k, hints[k])))
	}
	return append(out, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))
}
