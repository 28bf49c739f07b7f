// ABOUTME: Single-record fetch state for dashboard and detail screens
// ABOUTME: Results from a superseded fetch are ignored

package pages

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/markalston/moto-admin/internal/tui/styles"
)

type loadedMsg[T any] struct {
	owner *loader[T]
	gen   int
	value T
	err   error
}

type loader[T any] struct {
	fetch   func(ctx context.Context) (T, error)
	spinner spinner.Model

	gen     int
	loading bool
	loaded  bool
	value   T
	err     error
}

func newLoader[T any](fetch func(ctx context.Context) (T, error)) *loader[T] {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = styles.Selected
	return &loader[T]{fetch: fetch, spinner: s}
}

func (l *loader[T]) start() tea.Cmd {
	l.gen++
	l.loading = true
	l.err = nil

	gen := l.gen
	fetch := l.fetch
	return tea.Batch(l.spinner.Tick, func() tea.Msg {
		v, err := fetch(context.Background())
		return loadedMsg[T]{owner: l, gen: gen, value: v, err: err}
	})
}

// update applies msg and reports whether it changed the loaded value
func (l *loader[T]) update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg[T]:
		if msg.owner != l || msg.gen != l.gen {
			return false, nil
		}
		l.loading = false
		if msg.err != nil {
			l.err = msg.err
			return false, nil
		}
		l.loaded = true
		l.value = msg.value
		return true, nil

	case spinner.TickMsg:
		if !l.loading {
			return false, nil
		}
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		return false, cmd
	}
	return false, nil
}

// status is the one-line loading or error indicator, empty when idle
func (l *loader[T]) status() string {
	switch {
	case l.loading:
		return l.spinner.View() + " " + styles.Faint.Render("Loading...")
	case l.err != nil:
		return styles.ErrorText.Render("Failed to load: " + ErrorText(l.err))
	}
	return ""
}
