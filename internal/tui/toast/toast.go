// ABOUTME: Transient notification banner for the console
// ABOUTME: A newer toast replaces the current one; each expires on its own timer

package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/markalston/moto-admin/internal/tui/widgets"
)

// Level is the kind of notification
type Level int

const (
	Success Level = iota
	Error
	Info
)

// DefaultTTL is how long a toast stays visible
const DefaultTTL = 4 * time.Second

// Msg asks the console to show a toast
type Msg struct {
	Level Level
	Text  string
}

// Notify returns a command that shows a toast
func Notify(level Level, text string) tea.Cmd {
	return func() tea.Msg {
		return Msg{Level: level, Text: text}
	}
}

type expireMsg struct {
	seq int
}

// Model holds the visible toast
type Model struct {
	ttl   time.Duration
	seq   int
	level Level
	text  string
}

// New creates an empty toast area
func New(ttl time.Duration) *Model {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Model{ttl: ttl}
}

// Show displays text and schedules its removal
func (m *Model) Show(level Level, text string) tea.Cmd {
	m.seq++
	m.level = level
	m.text = text
	seq := m.seq
	return tea.Tick(m.ttl, func(time.Time) tea.Msg {
		return expireMsg{seq: seq}
	})
}

// Update clears the toast when its own timer fires
func (m *Model) Update(msg tea.Msg) {
	if e, ok := msg.(expireMsg); ok && e.seq == m.seq {
		m.text = ""
	}
}

// Visible reports whether a toast is showing
func (m *Model) Visible() bool {
	return m.text != ""
}

// Text returns the visible message
func (m *Model) Text() string {
	return m.text
}

func (m *Model) View() string {
	if m.text == "" {
		return ""
	}
	switch m.level {
	case Success:
		return widgets.StatusText(m.text, widgets.StatusOK)
	case Error:
		return widgets.StatusText(m.text, widgets.StatusCritical)
	default:
		return widgets.StatusText(m.text, widgets.StatusInfo)
	}
}
