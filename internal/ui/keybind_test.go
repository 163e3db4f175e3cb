package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type quitTestMsg struct{}

func quitTest() tea.Msg { return quitTestMsg{} }

func TestKeybindRegistry_LookupNormalizesSpace(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("space s n", "Sort by name", quitTest)

	if reg.Lookup("SPC s n") == nil {
		t.Error("space and SPC should name the same sequence")
	}
	if !reg.HasPrefix("SPC s") || reg.HasPrefix("SPC s n") {
		t.Error("HasPrefix should only hold for incomplete sequences")
	}
	if reg.Lookup("SPC s") != nil {
		t.Error("a submenu prefix is not a binding")
	}
}

func TestKeyHandler_Sequences(t *testing.T) {
	tests := []struct {
		name         string
		keys         []string
		wantConsumed bool
		wantCmd      bool
		wantWaiting  bool
	}{
		{"single key", []string{"q"}, true, true, false},
		{"unbound key falls through", []string{"j"}, false, false, false},
		{"leader waits", []string{" "}, true, false, true},
		{"submenu keeps waiting", []string{" ", "s"}, true, false, true},
		{"full sequence runs", []string{" ", "s", "n"}, true, true, false},
		{"unknown key leaves leader mode", []string{" ", "z"}, true, false, false},
		{"esc cancels", []string{" ", "s", "esc"}, true, false, false},
		{"esc outside a sequence falls through", []string{"esc"}, false, false, false},
		{"ctrl+c interrupts a sequence", []string{" ", "s", "ctrl+c"}, true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewKeybindRegistry()
			reg.Bind("q", "Quit", quitTest)
			reg.Bind("ctrl+c", "Quit", quitTest)
			reg.Bind("SPC s n", "Sort by name", quitTest)
			h := NewKeyHandler(reg)

			var consumed bool
			var cmd tea.Cmd
			for _, k := range tt.keys {
				consumed, cmd = h.Handle(keyMsg(k))
			}
			if consumed != tt.wantConsumed {
				t.Errorf("consumed = %v, want %v", consumed, tt.wantConsumed)
			}
			if (cmd != nil) != tt.wantCmd {
				t.Errorf("cmd = %v, want cmd %v", cmd, tt.wantCmd)
			}
			if tt.wantCmd {
				if _, ok := cmd().(quitTestMsg); !ok {
					t.Error("bound command did not run")
				}
			}
			if h.Waiting() != tt.wantWaiting {
				t.Errorf("Waiting() = %v, want %v (buffer %v)", h.Waiting(), tt.wantWaiting, h.Buffer)
			}
		})
	}
}

func TestLeaderHints_SubmenuLabels(t *testing.T) {
	reg := newRegistry()

	top := reg.LeaderHints("", ModeConsole)
	if top["s"] != "Sort" || top["f"] != "Filter" || top["q"] != "Quit" {
		t.Errorf("first-level hints = %v", top)
	}

	sortHints := reg.LeaderHints("SPC s", ModeConsole)
	for _, k := range []string{"n", "c", "o", "t"} {
		if _, ok := sortHints[k]; !ok {
			t.Errorf("SPC s hints missing %q: %v", k, sortHints)
		}
	}

	if hints := reg.LeaderHints("SPC s", ModeLoading); len(hints) != 0 {
		t.Errorf("sort hints should be hidden while loading, got %v", hints)
	}
	if _, ok := reg.LeaderHints("", ModeLoading)["s"]; ok {
		t.Error("sort submenu should be hidden while loading")
	}
}

func TestRenderKeybindHelp(t *testing.T) {
	h := NewKeyHandler(newRegistry())
	if got := RenderKeybindHelp(h, ModeConsole); got != "" {
		t.Errorf("help without a pending sequence = %q", got)
	}

	h.Handle(keyMsg(" "))
	h.Handle(keyMsg("f"))
	got := RenderKeybindHelp(h, ModeConsole)
	for _, want := range []string{"SPC f", "Qualified", "Lost", "cancel"} {
		if !strings.Contains(got, want) {
			t.Errorf("help %q missing %q", got, want)
		}
	}
}

// keyMsg creates a tea.KeyMsg for testing. Bubble Tea uses KeyType and Runes.
// KeySpace.String() returns " ", KeyEsc returns "esc", etc.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "q":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	case "x":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}
	case "j":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
