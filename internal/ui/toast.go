package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultToastDuration is how long a notification stays up.
const DefaultToastDuration = 5 * time.Second

// ToastKind selects a notification's icon and color.
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
	ToastWarning
	ToastInfo
)

func (k ToastKind) icon() string {
	switch k {
	case ToastSuccess:
		return "✓"
	case ToastError:
		return "✗"
	case ToastWarning:
		return "!"
	default:
		return "i"
	}
}

// Toast is a transient notification.
type Toast struct {
	ID   int
	Kind ToastKind
	Text string
}

// Toasts is the notification stack rendered under the console. Each toast
// removes itself via a toastExpiredMsg tick.
type Toasts struct {
	Duration time.Duration
	items    []Toast
	nextID   int
}

// Add appends a toast and returns the tick that expires it.
func (t *Toasts) Add(kind ToastKind, text string) tea.Cmd {
	t.nextID++
	id := t.nextID
	t.items = append(t.items, Toast{ID: id, Kind: kind, Text: text})
	d := t.Duration
	if d <= 0 {
		d = DefaultToastDuration
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{ID: id}
	})
}

func (t *Toasts) Success(text string) tea.Cmd { return t.Add(ToastSuccess, text) }
func (t *Toasts) Error(text string) tea.Cmd   { return t.Add(ToastError, text) }
func (t *Toasts) Warning(text string) tea.Cmd { return t.Add(ToastWarning, text) }
func (t *Toasts) Info(text string) tea.Cmd    { return t.Add(ToastInfo, text) }

// Remove drops the toast with the given ID, if still shown.
func (t *Toasts) Remove(id int) {
	for i, it := range t.items {
		if it.ID == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return
		}
	}
}

// Items returns the visible toasts, oldest first.
func (t *Toasts) Items() []Toast {
	out := make([]Toast, len(t.items))
	copy(out, t.items)
	return out
}

// View renders one line per toast.
func (t *Toasts) View() string {
	if len(t.items) == 0 {
		return ""
	}
	lines := make([]string, len(t.items))
	for i, it := range t.items {
		style := Styles.ToastInfo
		switch it.Kind {
		case ToastSuccess:
			style = Styles.ToastSuccess
		case ToastError:
			style = Styles.ToastError
		case ToastWarning:
			style = Styles.ToastWarning
		}
		lines[i] = style.Render(it.Kind.icon() + " " + it.Text)
	}
	return strings.Join(lines, "\n")
}
