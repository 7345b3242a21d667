// Package search coordinates the query → fetch → derive read model.
//
// The Service owns the search state (raw query, committed query, sort mode,
// page) and is the only place that mutates it. Consumers read immutable
// Snapshots and are woken through a notification channel. Mutation happens
// only through the named methods; no partial update is ever observable.
package search

import (
	"context"
	"sync"
	"time"

	"github.com/libertycoverage/jobdeck/internal/api"
	"github.com/libertycoverage/jobdeck/internal/filter"
)

// DefaultPageSize is how many results one page shows.
const DefaultPageSize = 7

// Fetcher executes a list query. Implemented by *api.Client; an interface
// for dependency injection (testing).
type Fetcher interface {
	SearchJobs(ctx context.Context, query string) ([]api.JobItem, error)
}

// Snapshot is an atomic view of the search read model.
//
// Items == nil means "no data yet": either nothing has been searched,
// a query is still in flight, or the last fetch failed (Err set). This is
// distinct from an empty, successful result set (Items != nil, len 0).
type Snapshot struct {
	Query      string        // committed (debounced) query the state belongs to
	Items      []api.JobItem // raw response, unsorted
	Loading    bool
	Err        error // last list-fetch failure, nil while loading or on success
	SortBy     filter.SortMode
	Page       int // 1-based
	PageSize   int
	Visible    []api.JobItem // sorted page slice derived from Items
	TotalPages int
}

// Service is the search coordinator. Construct exactly one per application
// and share it; all methods are safe for concurrent use.
type Service struct {
	fetcher   Fetcher
	debouncer *Debouncer

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	rawQuery string
	query    string
	sortBy   filter.SortMode
	page     int
	pageSize int
	items    []api.JobItem
	loading  bool
	err      error
	gen      uint64 // bumped on every commit; stale responses are discarded
	deriver  filter.Deriver

	updates chan struct{}
}

// NewService creates a Service. A pending debounce is cancelled and any
// in-flight response discarded once Close is called.
func NewService(fetcher Fetcher, debounce time.Duration, pageSize int) *Service {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		fetcher:   fetcher,
		debouncer: NewDebouncer(debounce),
		ctx:       ctx,
		cancel:    cancel,
		sortBy:    filter.SortRelevant,
		page:      1,
		pageSize:  pageSize,
		updates:   make(chan struct{}, 1),
	}
}

// Updates returns the wake-up channel. A receive means the snapshot may
// have changed; intermediate states can be coalesced, never reordered.
func (s *Service) Updates() <-chan struct{} {
	return s.updates
}

// SetQuery records every keystroke and schedules a debounced commit.
// Only the last value within a quiet window ever reaches the fetcher.
func (s *Service) SetQuery(q string) {
	s.mu.Lock()
	s.rawQuery = q
	s.mu.Unlock()

	s.debouncer.Debounce(func() { s.commit(q) })
}

// RawQuery returns the latest keystroke value, debounced or not.
func (s *Service) RawQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rawQuery
}

// commit makes q the active query and, when non-empty, issues the fetch.
// Bumping gen here is what discards any response still in flight for a
// previous query: last-committed wins regardless of response order.
func (s *Service) commit(q string) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.query = q
	s.page = 1

	if q == "" {
		// Empty query never touches the network: state returns to "no data yet".
		s.items = nil
		s.loading = false
		s.err = nil
		s.mu.Unlock()
		s.notify()
		return
	}

	s.loading = true
	s.err = nil
	s.mu.Unlock()
	s.notify()

	go func() {
		items, err := s.fetcher.SearchJobs(s.ctx, q)

		s.mu.Lock()
		if s.gen != gen {
			// A newer query was committed while this one was in flight.
			s.mu.Unlock()
			return
		}
		if err != nil {
			s.items = nil
			s.err = err
		} else {
			s.items = items
			s.err = nil
		}
		s.loading = false
		s.mu.Unlock()
		s.notify()
	}()
}

// SetSortBy changes the ordering. The page always resets to 1; switching
// sort order while deep into pagination would otherwise show an arbitrary
// window of the re-sorted list.
func (s *Service) SetSortBy(mode filter.SortMode) {
	s.mu.Lock()
	s.sortBy = mode
	s.page = 1
	s.mu.Unlock()
	s.notify()
}

// SetPage moves to a 1-based page. Values below 1 are ignored; values past
// the end simply derive an empty visible slice.
func (s *Service) SetPage(page int) {
	if page < 1 {
		return
	}
	s.mu.Lock()
	s.page = page
	s.mu.Unlock()
	s.notify()
}

// Snapshot returns the current read model, including the derived page.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible, total := s.deriver.Derive(s.items, s.sortBy, s.page, s.pageSize)
	return Snapshot{
		Query:      s.query,
		Items:      s.items,
		Loading:    s.loading,
		Err:        s.err,
		SortBy:     s.sortBy,
		Page:       s.page,
		PageSize:   s.pageSize,
		Visible:    visible,
		TotalPages: total,
	}
}

// Close cancels the debounce timer and invalidates in-flight fetches.
func (s *Service) Close() {
	s.debouncer.Cancel()
	s.cancel()
	s.mu.Lock()
	s.gen++ // orphan any response that already escaped the context
	s.mu.Unlock()
}

// notify is non-blocking: the channel holds one pending wake-up and
// consumers re-read the full snapshot, so drops lose nothing.
func (s *Service) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}
