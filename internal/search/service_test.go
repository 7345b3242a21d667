package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/libertycoverage/jobdeck/internal/api"
	"github.com/libertycoverage/jobdeck/internal/filter"
)

// mockFetcher returns canned results per query, with an optional per-query
// delay to simulate a slow backend.
type mockFetcher struct {
	mu      sync.Mutex
	results map[string][]api.JobItem
	delays  map[string]time.Duration
	err     error
	calls   atomic.Int32
}

func (m *mockFetcher) SearchJobs(ctx context.Context, query string) ([]api.JobItem, error) {
	m.calls.Add(1)

	m.mu.Lock()
	delay := m.delays[query]
	items := m.results[query]
	err := m.err
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

func jobs(ids ...int) []api.JobItem {
	out := make([]api.JobItem, len(ids))
	for i, id := range ids {
		out[i] = api.JobItem{ID: id, Title: "Job", DaysAgo: i}
	}
	return out
}

// waitFor polls the snapshot until cond holds or the deadline passes.
func waitFor(t *testing.T, svc *Service, cond func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap := svc.Snapshot()
		if cond(snap) {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition never held; last snapshot: %+v", svc.Snapshot())
	return Snapshot{}
}

func TestCommitFetchesAndDerives(t *testing.T) {
	f := &mockFetcher{results: map[string][]api.JobItem{"go": jobs(1, 2, 3)}}
	svc := NewService(f, time.Millisecond, 2)
	defer svc.Close()

	svc.SetQuery("go")

	snap := waitFor(t, svc, func(s Snapshot) bool { return s.Items != nil })
	if snap.Query != "go" {
		t.Errorf("Query = %q, want go", snap.Query)
	}
	if len(snap.Items) != 3 || len(snap.Visible) != 2 || snap.TotalPages != 2 {
		t.Errorf("items=%d visible=%d pages=%d", len(snap.Items), len(snap.Visible), snap.TotalPages)
	}
	if snap.Loading || snap.Err != nil {
		t.Errorf("settled snapshot still loading=%v err=%v", snap.Loading, snap.Err)
	}
}

func TestEmptyQueryNeverFetches(t *testing.T) {
	f := &mockFetcher{}
	svc := NewService(f, time.Millisecond, 7)
	defer svc.Close()

	svc.SetQuery("")

	snap := waitFor(t, svc, func(s Snapshot) bool { return s.Query == "" && !s.Loading })
	if snap.Items != nil {
		t.Error("empty query should leave Items nil")
	}
	time.Sleep(30 * time.Millisecond)
	if got := f.calls.Load(); got != 0 {
		t.Errorf("empty query hit the fetcher %d times", got)
	}
}

func TestClearingQueryDropsResults(t *testing.T) {
	f := &mockFetcher{results: map[string][]api.JobItem{"go": jobs(1)}}
	svc := NewService(f, time.Millisecond, 7)
	defer svc.Close()

	svc.SetQuery("go")
	waitFor(t, svc, func(s Snapshot) bool { return s.Items != nil })

	svc.SetQuery("")
	snap := waitFor(t, svc, func(s Snapshot) bool { return s.Query == "" })
	if snap.Items != nil || snap.Err != nil || snap.Loading {
		t.Errorf("cleared query left state behind: %+v", snap)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	f := &mockFetcher{
		results: map[string][]api.JobItem{
			"slow": jobs(1, 2),
			"fast": jobs(9),
		},
		delays: map[string]time.Duration{"slow": 150 * time.Millisecond},
	}
	svc := NewService(f, time.Millisecond, 7)
	defer svc.Close()

	svc.SetQuery("slow")
	// Let the slow query commit and its fetch get in flight.
	waitFor(t, svc, func(s Snapshot) bool { return s.Query == "slow" && s.Loading })

	svc.SetQuery("fast")
	snap := waitFor(t, svc, func(s Snapshot) bool { return s.Query == "fast" && s.Items != nil })
	if len(snap.Items) != 1 || snap.Items[0].ID != 9 {
		t.Fatalf("fast result not applied: %+v", snap.Items)
	}

	// The slow response lands now; it must not clobber the newer state.
	time.Sleep(200 * time.Millisecond)
	snap = svc.Snapshot()
	if snap.Query != "fast" || len(snap.Items) != 1 || snap.Items[0].ID != 9 {
		t.Errorf("stale response overwrote newer state: %+v", snap)
	}
}

func TestFetchErrorSurfaced(t *testing.T) {
	f := &mockFetcher{err: errors.New("backend down")}
	svc := NewService(f, time.Millisecond, 7)
	defer svc.Close()

	svc.SetQuery("go")
	snap := waitFor(t, svc, func(s Snapshot) bool { return s.Err != nil })
	if snap.Items != nil || snap.Loading {
		t.Errorf("failed fetch: items=%v loading=%v", snap.Items, snap.Loading)
	}
}

func TestSortResetsPage(t *testing.T) {
	f := &mockFetcher{results: map[string][]api.JobItem{"go": jobs(1, 2, 3, 4)}}
	svc := NewService(f, time.Millisecond, 2)
	defer svc.Close()

	svc.SetQuery("go")
	waitFor(t, svc, func(s Snapshot) bool { return s.Items != nil })

	svc.SetPage(2)
	if snap := svc.Snapshot(); snap.Page != 2 {
		t.Fatalf("Page = %d, want 2", snap.Page)
	}

	svc.SetSortBy(filter.SortRecent)
	snap := svc.Snapshot()
	if snap.Page != 1 {
		t.Errorf("sort change left Page = %d, want 1", snap.Page)
	}
	if snap.SortBy != filter.SortRecent {
		t.Errorf("SortBy = %q", snap.SortBy)
	}
}

func TestSetPageBounds(t *testing.T) {
	f := &mockFetcher{results: map[string][]api.JobItem{"go": jobs(1, 2, 3)}}
	svc := NewService(f, time.Millisecond, 2)
	defer svc.Close()

	svc.SetQuery("go")
	waitFor(t, svc, func(s Snapshot) bool { return s.Items != nil })

	svc.SetPage(0)
	if snap := svc.Snapshot(); snap.Page != 1 {
		t.Errorf("SetPage(0) moved the page to %d", snap.Page)
	}

	// Past-the-end pages derive empty, they do not error.
	svc.SetPage(50)
	snap := svc.Snapshot()
	if len(snap.Visible) != 0 || snap.TotalPages != 2 {
		t.Errorf("page 50: visible=%d pages=%d", len(snap.Visible), snap.TotalPages)
	}
}

func TestNewQueryResetsPage(t *testing.T) {
	f := &mockFetcher{results: map[string][]api.JobItem{
		"go":   jobs(1, 2, 3, 4),
		"rust": jobs(5),
	}}
	svc := NewService(f, time.Millisecond, 2)
	defer svc.Close()

	svc.SetQuery("go")
	waitFor(t, svc, func(s Snapshot) bool { return s.Items != nil })
	svc.SetPage(2)

	svc.SetQuery("rust")
	snap := waitFor(t, svc, func(s Snapshot) bool { return s.Query == "rust" && s.Items != nil })
	if snap.Page != 1 {
		t.Errorf("new query left Page = %d, want 1", snap.Page)
	}
}

func TestCloseDiscardsInflight(t *testing.T) {
	f := &mockFetcher{
		results: map[string][]api.JobItem{"go": jobs(1)},
		delays:  map[string]time.Duration{"go": 100 * time.Millisecond},
	}
	svc := NewService(f, time.Millisecond, 7)

	svc.SetQuery("go")
	waitFor(t, svc, func(s Snapshot) bool { return s.Loading })

	svc.Close()
	time.Sleep(150 * time.Millisecond)

	if snap := svc.Snapshot(); snap.Items != nil {
		t.Errorf("response applied after Close: %+v", snap.Items)
	}
}
