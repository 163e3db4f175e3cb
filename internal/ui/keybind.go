package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// leader starts a multi-key sequence. Bubble Tea reports the space bar as " ".
const leader = "SPC"

type binding struct {
	cmd   tea.Cmd
	desc  string
	modes []AppMode // empty: every mode
}

func (b binding) activeIn(mode AppMode) bool {
	if len(b.modes) == 0 {
		return true
	}
	for _, m := range b.modes {
		if m == mode {
			return true
		}
	}
	return false
}

// KeybindRegistry maps key sequences such as "q", "ctrl+c" or "SPC s n" to
// commands.
type KeybindRegistry struct {
	bindings map[string]binding
}

func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{bindings: make(map[string]binding)}
}

// Bind registers seq, replacing any earlier binding. When modes are given the
// leader hint for seq only shows in those modes.
func (r *KeybindRegistry) Bind(seq, desc string, cmd tea.Cmd, modes ...AppMode) {
	r.bindings[normalizeSeq(seq)] = binding{cmd: cmd, desc: desc, modes: modes}
}

// Lookup returns the command bound to seq, or nil.
func (r *KeybindRegistry) Lookup(seq string) tea.Cmd {
	return r.bindings[normalizeSeq(seq)].cmd
}

// HasPrefix reports whether some binding continues past seq.
func (r *KeybindRegistry) HasPrefix(seq string) bool {
	prefix := normalizeSeq(seq) + " "
	for k := range r.bindings {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// submenuLabels names the leader prefixes that open a submenu.
var submenuLabels = map[string]string{
	"SPC s": "Sort",
	"SPC f": "Filter",
}

// LeaderHints returns the keys that may follow current (empty means right
// after SPC) mapped to their labels, limited to bindings active in mode.
func (r *KeybindRegistry) LeaderHints(current string, mode AppMode) map[string]string {
	prefix := leader
	if current != "" {
		prefix = normalizeSeq(current)
	}
	out := make(map[string]string)
	for seq, b := range r.bindings {
		rest, ok := strings.CutPrefix(seq, prefix+" ")
		if !ok || b.cmd == nil || !b.activeIn(mode) {
			continue
		}
		parts := strings.Fields(rest)
		next := parts[0]
		switch {
		case len(parts) > 1:
			label, ok := submenuLabels[prefix+" "+next]
			if !ok {
				label = next + "…"
			}
			out[next] = label
		case b.desc != "":
			out[next] = b.desc
		default:
			out[next] = seq
		}
	}
	return out
}

func normalizeSeq(seq string) string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		parts[i] = seqPart(p)
	}
	return strings.Join(parts, " ")
}

func seqPart(key string) string {
	if key == " " || key == "space" {
		return leader
	}
	return key
}

// KeyHandler feeds key presses through the registry, holding the keys typed
// since SPC until they complete a binding.
type KeyHandler struct {
	Registry *KeybindRegistry
	Buffer   []string // starts with "SPC" while a sequence is pending
}

func NewKeyHandler(reg *KeybindRegistry) *KeyHandler {
	return &KeyHandler{Registry: reg}
}

// Waiting reports whether a leader sequence is in progress.
func (h *KeyHandler) Waiting() bool {
	return len(h.Buffer) > 0
}

// Reset abandons the pending sequence.
func (h *KeyHandler) Reset() {
	h.Buffer = nil
}

// Handle reports whether msg belonged to the key bindings and the command to
// run, if any. Unconsumed keys go to the focused view.
func (h *KeyHandler) Handle(msg tea.KeyMsg) (bool, tea.Cmd) {
	k := seqPart(msg.String())
	switch k {
	case "ctrl+c":
		if c := h.Registry.Lookup(k); c != nil {
			h.Reset()
			return true, c
		}
	case "esc":
		if !h.Waiting() {
			return false, nil
		}
		h.Reset()
		return true, nil
	case leader:
		h.Buffer = []string{leader}
		return true, nil
	}

	if !h.Waiting() {
		c := h.Registry.Lookup(k)
		return c != nil, c
	}

	h.Buffer = append(h.Buffer, k)
	seq := strings.Join(h.Buffer, " ")
	if c := h.Registry.Lookup(seq); c != nil {
		h.Reset()
		return true, c
	}
	if !h.Registry.HasPrefix(seq) {
		h.Reset()
	}
	return true, nil
}
