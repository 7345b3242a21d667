// Package filter provides pure projection functions for job items.
// All functions are simple: []JobItem in, []JobItem out. No side effects.
package filter

import (
	"fmt"
	"sort"

	"github.com/libertycoverage/jobdeck/internal/api"
)

// SortMode selects the ordering applied before pagination.
type SortMode string

const (
	// SortRelevant orders by relevanceScore descending.
	SortRelevant SortMode = "relevant"
	// SortRecent orders by daysAgo ascending (fewer days = more recent).
	SortRecent SortMode = "recent"
)

// ParseSortMode converts a user-supplied string into a SortMode.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case SortRelevant:
		return SortRelevant, nil
	case SortRecent:
		return SortRecent, nil
	}
	return "", fmt.Errorf("unknown sort mode %q (want %q or %q)", s, SortRelevant, SortRecent)
}

// SortJobs returns a sorted copy of items. The input is never mutated.
// The sort is stable so that ties keep their response order across
// re-derivations with unchanged input.
func SortJobs(items []api.JobItem, mode SortMode) []api.JobItem {
	sorted := make([]api.JobItem, len(items))
	copy(sorted, items)

	switch mode {
	case SortRecent:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].DaysAgo < sorted[j].DaysAgo
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].RelevanceScore > sorted[j].RelevanceScore
		})
	}
	return sorted
}

// Paginate returns the half-open slice [(page-1)*size, page*size) of items.
// Pages are 1-based. Out-of-range pages yield an empty slice, never an error.
func Paginate(items []api.JobItem, page, size int) []api.JobItem {
	if page < 1 || size < 1 {
		return []api.JobItem{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []api.JobItem{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages returns ceil(total/size). Zero items means zero pages.
func TotalPages(total, size int) int {
	if total <= 0 || size < 1 {
		return 0
	}
	return (total + size - 1) / size
}

// Deriver memoizes the sorted projection so repeated reads with unchanged
// inputs do not re-sort. At this data scale re-sorting is cheap anyway;
// the gate is simple input equality, keyed by slice identity and mode.
type Deriver struct {
	lastItems []api.JobItem
	lastMode  SortMode
	sorted    []api.JobItem
}

// Derive returns the visible page plus the total page count for the given
// inputs, re-sorting only when items or mode changed since the last call.
// Not safe for concurrent use; each owner keeps its own Deriver.
func (d *Deriver) Derive(items []api.JobItem, mode SortMode, page, size int) (visible []api.JobItem, totalPages int) {
	if !sameSlice(d.lastItems, items) || d.lastMode != mode {
		d.sorted = SortJobs(items, mode)
		d.lastItems = items
		d.lastMode = mode
	}
	return Paginate(d.sorted, page, size), TotalPages(len(d.sorted), size)
}

// sameSlice reports whether two slices share identity (same backing array
// and length). Search results are immutable once fetched, so identity is a
// sound equality gate.
func sameSlice(a, b []api.JobItem) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return a == nil && b == nil
	}
	return &a[0] == &b[0]
}
