// ABOUTME: Session guard deciding whether protected pages may render
// ABOUTME: Validates the stored token, follows invalidation events and external session changes

package guard

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/moto-admin/internal/session"
	"github.com/markalston/moto-admin/internal/tui/styles"
)

// State is the guard's belief about the session
type State int

const (
	Unknown State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Authenticator is the part of the gateway the guard needs
type Authenticator interface {
	IsAuthenticated(ctx context.Context) bool
	ValidateToken(ctx context.Context) bool
}

// validatedMsg carries a probe result tagged with the generation that started it
type validatedMsg struct {
	gen int
	ok  bool
}

// invalidatedMsg is an auth:invalid-token event delivered to the program loop
type invalidatedMsg struct {
	event session.Event
}

// changedMsg signals that another process changed the stored session
type changedMsg struct{}

// Guard is a bubbletea model. Results from a validation started before the
// latest invalidation, external change, or Close are discarded.
type Guard struct {
	auth    Authenticator
	session *session.Manager

	state   State
	gen     int
	closed  bool
	spinner spinner.Model

	events      <-chan session.Event
	unsubscribe func()
	changes     <-chan struct{}
	cancel      context.CancelFunc
}

// New subscribes to invalidation events and external session changes.
// Call Close when the guard is torn down.
func New(auth Authenticator, sess *session.Manager) *Guard {
	ctx, cancel := context.WithCancel(context.Background())

	events, unsubscribe := sess.Broker().Subscribe()
	changes, err := sess.Watch(ctx)
	if err != nil {
		slog.Warn("Session watch unavailable", "error", err)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &Guard{
		auth:        auth,
		session:     sess,
		spinner:     s,
		events:      events,
		unsubscribe: unsubscribe,
		changes:     changes,
		cancel:      cancel,
	}
}

// Init starts the first check and the event listeners
func (g *Guard) Init() tea.Cmd {
	return tea.Batch(g.Check(), g.listen(), g.watch())
}

// State returns the current decision
func (g *Guard) State() State {
	return g.state
}

// NeedsLogin reports whether protected content must give way to the login screen
func (g *Guard) NeedsLogin() bool {
	return g.state == Unauthenticated
}

// Check re-evaluates the stored session. Without a token the guard settles on
// Unauthenticated immediately and no request is sent.
func (g *Guard) Check() tea.Cmd {
	if g.closed {
		return nil
	}
	g.gen++
	if !g.auth.IsAuthenticated(context.Background()) {
		g.state = Unauthenticated
		return nil
	}

	g.state = Unknown
	gen := g.gen
	auth := g.auth
	return tea.Batch(g.spinner.Tick, func() tea.Msg {
		return validatedMsg{gen: gen, ok: auth.ValidateToken(context.Background())}
	})
}

// Authenticated records a fresh login and cancels any pending check
func (g *Guard) Authenticated() {
	if g.closed {
		return
	}
	g.gen++
	g.state = Authenticated
}

// Update handles guard messages; anything else is ignored
func (g *Guard) Update(msg tea.Msg) tea.Cmd {
	if g.closed {
		return nil
	}

	switch msg := msg.(type) {
	case validatedMsg:
		if msg.gen != g.gen {
			return nil
		}
		if msg.ok {
			g.state = Authenticated
		} else {
			g.state = Unauthenticated
		}
		return nil

	case invalidatedMsg:
		slog.Debug("Guard received invalidation", "reason", msg.event.Reason)
		g.gen++
		g.state = Unauthenticated
		return g.listen()

	case changedMsg:
		if err := g.session.Reload(context.Background()); err != nil {
			slog.Warn("Failed to reload session after external change", "error", err)
		}
		return tea.Batch(g.Check(), g.watch())

	case spinner.TickMsg:
		if g.state != Unknown {
			return nil
		}
		var cmd tea.Cmd
		g.spinner, cmd = g.spinner.Update(msg)
		return cmd
	}
	return nil
}

// View renders the loading indicator while the session is being checked
func (g *Guard) View() string {
	if g.state != Unknown {
		return ""
	}
	return g.spinner.View() + " " + styles.Faint.Render("Checking session...")
}

// Close unsubscribes from events and discards any later results. It is idempotent.
func (g *Guard) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.gen++
	g.unsubscribe()
	g.cancel()
}

func (g *Guard) listen() tea.Cmd {
	events := g.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return invalidatedMsg{event: ev}
	}
}

func (g *Guard) watch() tea.Cmd {
	changes := g.changes
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return changedMsg{}
	}
}
