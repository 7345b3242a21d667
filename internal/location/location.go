// Package location provides the shareable application location.
//
// The Location is a one-slot mailbox holding an addressable string (the
// terminal analog of a URL fragment). It is written only in response to
// explicit user actions and observed by subscribers; setting the current
// value again is a no-op, which is what prevents write-observe feedback
// loops.
package location

import "sync"

// subscriberBuffer is the per-subscriber channel capacity. Sends are
// non-blocking; a slow subscriber misses intermediate values, never the
// ability to read the current one via Get.
const subscriberBuffer = 8

// Location is an observable string slot. Safe for concurrent use.
type Location struct {
	mu     sync.Mutex
	value  string
	subs   map[int]chan string
	nextID int
	closed bool
}

// New creates a Location holding the initial value. Subscribers only see
// changes made after they subscribe; the initial value is read with Get.
func New(initial string) *Location {
	return &Location{
		value: initial,
		subs:  make(map[int]chan string),
	}
}

// Get returns the current value.
func (l *Location) Get() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value
}

// Set updates the value and notifies subscribers. Setting the current
// value again does nothing.
func (l *Location) Set(v string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || v == l.value {
		return
	}
	l.value = v

	// The sends never block, so they stay under the lock. That serializes
	// them against Unsubscribe/Close closing a channel out from under us.
	for _, ch := range l.subs {
		select {
		case ch <- v:
		default:
			// Drop - subscriber will catch up via Get
		}
	}
}

// Subscribe registers a change observer. The returned id deregisters it.
func (l *Location) Subscribe() (int, <-chan string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	ch := make(chan string, subscriberBuffer)
	l.subs[id] = ch
	return id, ch
}

// Unsubscribe removes the observer and closes its channel. Must be called
// when the observer is torn down or the registration leaks.
func (l *Location) Unsubscribe(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ch, ok := l.subs[id]; ok {
		delete(l.subs, id)
		close(ch)
	}
}

// Close deregisters every observer and rejects further writes.
func (l *Location) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true
	for id, ch := range l.subs {
		delete(l.subs, id)
		close(ch)
	}
}
