// Package bookmarks maintains the persisted set of bookmarked job ids.
//
// The id set is seeded from durable storage exactly once at construction
// and every toggle writes through synchronously, so there is no flush step
// and a crash right after a toggle loses nothing. The store must therefore
// be owned by one long-lived component and shared, never reconstructed per
// consumer.
package bookmarks

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/libertycoverage/jobdeck/internal/api"
	"github.com/libertycoverage/jobdeck/internal/logging"
	"github.com/libertycoverage/jobdeck/internal/store"
)

// storageKey is the fixed key the id set is persisted under, as a
// JSON-encoded array of integers.
const storageKey = "bookmarkedIds"

// maxConcurrentResolves limits parallel detail fetches during Resolve.
const maxConcurrentResolves = 5

// Fetcher retrieves one full record for resolution. In production this is
// the cached detail service so bookmark resolution shares its cache.
type Fetcher interface {
	GetJob(ctx context.Context, id int) (*api.JobDetails, error)
}

// Store holds the bookmarked id set. Safe for concurrent use.
type Store struct {
	kv      *store.Store
	fetcher Fetcher
	log     *log.Logger

	mu  sync.RWMutex
	ids map[int]struct{}
}

// New seeds the in-memory set from durable storage. A missing key means an
// empty set; a corrupt value is discarded with a warning rather than
// wedging startup.
func New(kv *store.Store, fetcher Fetcher) (*Store, error) {
	s := &Store{
		kv:      kv,
		fetcher: fetcher,
		log:     logging.WithPrefix("bookmarks"),
		ids:     make(map[int]struct{}),
	}

	raw, ok, err := kv.Get(storageKey)
	if err != nil {
		return nil, fmt.Errorf("load bookmarks: %w", err)
	}
	if ok {
		var ids []int
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			s.log.Warn("discarding corrupt bookmark data", "err", err)
		} else {
			for _, id := range ids {
				s.ids[id] = struct{}{}
			}
		}
	}

	return s, nil
}

// Toggle adds id if absent, removes it if present, and persists the
// updated set before returning. On a persistence failure the in-memory
// set is rolled back so memory and disk never diverge.
func (s *Store) Toggle(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, had := s.ids[id]
	if had {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}

	if err := s.persistLocked(); err != nil {
		if had {
			s.ids[id] = struct{}{}
		} else {
			delete(s.ids, id)
		}
		return fmt.Errorf("persist bookmarks: %w", err)
	}
	return nil
}

// persistLocked writes the current set under storageKey as a JSON array,
// ascending, so the stored form is deterministic. Caller holds mu.
func (s *Store) persistLocked() error {
	ids := make([]int, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.kv.Set(storageKey, string(data))
}

// Clear removes every bookmark and deletes the stored key, so a cleared
// set is indistinguishable from one that never existed.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(storageKey); err != nil {
		return fmt.Errorf("clear bookmarks: %w", err)
	}
	s.ids = make(map[int]struct{})
	return nil
}

// Contains reports whether id is bookmarked.
func (s *Store) Contains(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// IDs returns the bookmarked ids in ascending order.
func (s *Store) IDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of bookmarked ids.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Resolve fetches the full record for every bookmarked id, in parallel
// with a concurrency bound. An empty set short-circuits without any
// network call. Stale bookmarks (ids the backend no longer knows) are
// skipped with a warning; the rest still resolve (failure isolation).
// Results come back in ascending id order.
func (s *Store) Resolve(ctx context.Context) ([]api.JobDetails, error) {
	ids := s.IDs()
	if len(ids) == 0 {
		return nil, nil
	}

	results := make([]*api.JobDetails, len(ids))

	var g errgroup.Group
	g.SetLimit(maxConcurrentResolves)
	for i, id := range ids {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			d, err := s.fetcher.GetJob(ctx, id)
			if err != nil {
				s.log.Warn("bookmark did not resolve", "id", id, "err", err)
				return nil // never fail the group - absent records are tolerated
			}
			results[i] = d
			return nil
		})
	}
	_ = g.Wait()

	resolved := make([]api.JobDetails, 0, len(ids))
	for _, d := range results {
		if d != nil {
			resolved = append(resolved, *d)
		}
	}
	return resolved, ctx.Err()
}
