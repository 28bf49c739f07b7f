// ABOUTME: Single owner of session state with a narrow mutation API
// ABOUTME: Keeps durable storage, in-memory copy, and validity in step

package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrNoSession is returned when an operation needs a stored token and none exists
var ErrNoSession = errors.New("not logged in")

// Manager wraps a Store and a Broker. All session mutation goes through it:
// Establish (login), Clear (logout), Invalidate (401/403), MarkValid (probe succeeded).
type Manager struct {
	store  Store
	broker *Broker

	mu       sync.RWMutex
	snap     Snapshot
	validity Validity
}

// NewManager creates a manager. Call Reload to pick up a persisted session.
func NewManager(store Store, broker *Broker) *Manager {
	if broker == nil {
		broker = NewBroker()
	}
	return &Manager{store: store, broker: broker, validity: Invalid}
}

// Broker returns the invalidation broker
func (m *Manager) Broker() *Broker {
	return m.broker
}

// Reload replaces the in-memory copy with what durable storage holds.
// A stored token starts out Unknown until validated.
func (m *Manager) Reload(ctx context.Context) error {
	snap, err := m.store.Load(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if snap.Token != m.snap.Token || m.validity == Invalid {
		m.validity = validityFor(snap)
	}
	m.snap = snap
	return nil
}

// Token reads the current token from durable storage, falling back to the
// in-memory copy if storage cannot be read.
func (m *Manager) Token(ctx context.Context) string {
	snap, err := m.store.Load(ctx)
	if err != nil {
		slog.Debug("Session store unreadable, using cached token", "error", err)
		m.mu.RLock()
		defer m.mu.RUnlock()
		return m.snap.Token
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if snap.Token != m.snap.Token {
		m.validity = validityFor(snap)
	}
	m.snap = snap
	return snap.Token
}

// HasToken reports whether a token is stored. It does not prove validity.
func (m *Manager) HasToken(ctx context.Context) bool {
	return m.Token(ctx) != ""
}

// User returns the cached profile, nil when logged out
func (m *Manager) User() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snap.User == nil {
		return nil
	}
	u := *m.snap.User
	return &u
}

// Validity returns the current belief about the stored token
func (m *Manager) Validity() Validity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.validity
}

// TokenExpiry returns the token's exp claim for display
func (m *Manager) TokenExpiry() (time.Time, bool) {
	m.mu.RLock()
	token := m.snap.Token
	m.mu.RUnlock()
	return TokenExpiry(token)
}

// Establish persists a freshly issued token and profile
func (m *Manager) Establish(ctx context.Context, token string, user *User) error {
	snap := Snapshot{Token: token, User: user}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Save(ctx, snap); err != nil {
		return err
	}
	m.snap = snap
	m.validity = Valid
	return nil
}

// MarkValid records a successful validation of the current token
func (m *Manager) MarkValid() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap.Token != "" {
		m.validity = Valid
	}
}

// Clear drops the session locally. It is idempotent and does not publish an event.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = Snapshot{}
	m.validity = Invalid
	return m.store.Clear(ctx)
}

// Invalidate clears storage and memory in one step, then publishes exactly one event
func (m *Manager) Invalidate(ctx context.Context, ev Event) {
	m.mu.Lock()
	if err := m.store.Clear(ctx); err != nil {
		slog.Error("Failed to clear session store", "error", err)
	}
	m.snap = Snapshot{}
	m.validity = Invalid
	m.mu.Unlock()

	slog.Warn("Session invalidated", "reason", ev.Reason, "status", ev.Status)
	m.broker.Publish(ev)
}

// Watch forwards external session changes from the store
func (m *Manager) Watch(ctx context.Context) (<-chan struct{}, error) {
	return m.store.Watch(ctx)
}

func validityFor(snap Snapshot) Validity {
	if snap.Empty() {
		return Invalid
	}
	return Unknown
}
