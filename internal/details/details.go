// Package details fetches full job records by id, cached by id.
//
// Cache policy: bounded LRU with a staleness timer as a secondary check.
// A fresh hit is returned without touching the network; a miss or stale
// entry refetches. There is no automatic retry; the demo backend is flaky
// and redundant calls only make it flakier.
package details

import (
	"context"
	"sync"
	"time"

	"github.com/libertycoverage/jobdeck/internal/api"
)

// DefaultStaleAfter is how long a cached record is served without refetch.
const DefaultStaleAfter = 60 * time.Second

// DefaultCacheSize bounds the cache. Old entries are evicted LRU-first.
const DefaultCacheSize = 256

// Fetcher retrieves one full record. Implemented by *api.Client.
type Fetcher interface {
	GetJob(ctx context.Context, id int) (*api.JobDetails, error)
}

// Service is the cached detail fetcher. Safe for concurrent use.
type Service struct {
	fetcher    Fetcher
	staleAfter time.Duration

	mu    sync.Mutex
	cache *lruCache

	now func() time.Time // injectable for staleness tests
}

// NewService creates a Service with the given cache bound and staleness
// threshold. Zero values select the defaults.
func NewService(fetcher Fetcher, cacheSize int, staleAfter time.Duration) *Service {
	if cacheSize < 1 {
		cacheSize = DefaultCacheSize
	}
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &Service{
		fetcher:    fetcher,
		staleAfter: staleAfter,
		cache:      newLRUCache(cacheSize),
		now:        time.Now,
	}
}

// Get returns the record for id, from cache when fresh. A non-2xx backend
// response surfaces as *api.APIError so callers can render its description
// in place of the detail panel. The failed fetch is not cached.
func (s *Service) Get(ctx context.Context, id int) (*api.JobDetails, error) {
	s.mu.Lock()
	if entry := s.cache.get(id); entry != nil && s.now().Sub(entry.fetchedAt) < s.staleAfter {
		d := entry.details
		s.mu.Unlock()
		return d, nil
	}
	s.mu.Unlock()

	// Fetch outside the lock; a slow backend must not block cache hits
	// for other ids.
	d, err := s.fetcher.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache.put(id, d, s.now())
	s.mu.Unlock()
	return d, nil
}

// CachedCount returns the number of cached records.
func (s *Service) CachedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.len()
}
