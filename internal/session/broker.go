// ABOUTME: In-process broadcast for the auth:invalid-token signal
// ABOUTME: Subscribers own an explicit channel and unsubscribe on teardown

package session

import (
	"sync"
	"time"
)

// EventInvalidToken is the name of the session invalidated signal
const EventInvalidToken = "auth:invalid-token"

// Event describes one session invalidation
type Event struct {
	Name   string
	Reason string
	Status int
	At     time.Time
}

const subscriberBuffer = 8

// Broker fans out invalidation events to subscribers.
// Publish never blocks; a subscriber whose buffer is full misses the event.
type Broker struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Event
}

// NewBroker creates an empty broker
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan Event)}
}

// Subscribe registers a listener. The returned func unsubscribes and closes the channel;
// calling it more than once is safe.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
}

// Publish delivers ev to every current subscriber
func (b *Broker) Publish(ev Event) {
	if ev.Name == "" {
		ev.Name = EventInvalidToken
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribers returns the number of active subscriptions
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
