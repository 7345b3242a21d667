// Package selection derives the active job id from the shareable location.
//
// The Tracker is a two-state machine: no selection, or Selected(id). It
// follows the location: the location is never written except through
// Select, and the tracked id only ever changes because the location did.
// Construct exactly one Tracker and fan it out to consumers: a second
// instance would duplicate observer registrations and state.
package selection

import (
	"strconv"
	"strings"
	"sync"

	"github.com/libertycoverage/jobdeck/internal/location"
)

// Tracker mirrors the location's job id. Safe for concurrent use.
type Tracker struct {
	loc   *location.Location
	subID int

	mu      sync.RWMutex
	current int // 0 = no selection

	updates chan int
	done    chan struct{}
	closer  sync.Once
}

// NewTracker subscribes to loc and reads its current value synchronously,
// so a deep link (a location already carrying an id at startup) is honored
// immediately rather than on the first change event.
func NewTracker(loc *location.Location) *Tracker {
	t := &Tracker{
		loc:     loc,
		updates: make(chan int, 1),
		done:    make(chan struct{}),
	}

	if id, ok := parseID(loc.Get()); ok {
		t.current = id
	}

	subID, ch := loc.Subscribe()
	t.subID = subID
	go t.follow(ch)

	return t
}

// follow translates inbound location changes into selection state.
// Transition to "no selection" is unreachable from here: a location value
// that does not encode an id leaves the current selection in place.
func (t *Tracker) follow(ch <-chan string) {
	for {
		select {
		case <-t.done:
			return
		case v, ok := <-ch:
			if !ok {
				return
			}
			id, valid := parseID(v)
			if !valid {
				continue
			}
			t.mu.Lock()
			changed := id != t.current
			t.current = id
			t.mu.Unlock()
			if changed {
				select {
				case t.updates <- id:
				default:
				}
			}
		}
	}
}

// Current returns the selected id, or false when nothing is selected.
func (t *Tracker) Current() (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current, t.current != 0
}

// Updates returns the wake-up channel carrying newly selected ids.
func (t *Tracker) Updates() <-chan int {
	return t.updates
}

// Select is the only sanctioned mutation path: it writes the location and
// lets the subscription carry the change back into the tracker, exactly as
// an externally shared link would.
func (t *Tracker) Select(id int) {
	if id <= 0 {
		return
	}
	t.loc.Set(strconv.Itoa(id))
}

// Close deregisters the location observer. Forgetting this leaks the
// registration, which is why consumers share one Tracker instead of
// constructing their own.
func (t *Tracker) Close() {
	t.closer.Do(func() {
		close(t.done)
		t.loc.Unsubscribe(t.subID)
	})
}

// parseID extracts a positive integer id from a location value. A leading
// "#" is tolerated so pasted URL fragments work as deep links.
func parseID(v string) (int, bool) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "#")
	if v == "" {
		return 0, false
	}
	id, err := strconv.Atoi(v)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
