// Package ui provides the Bubble Tea TUI for jobdeck.
package ui

import "github.com/libertycoverage/jobdeck/internal/api"

// SearchUpdated is sent when the search service's read model changed.
type SearchUpdated struct{}

// SelectionChanged is sent when the shareable location selected a new id.
type SelectionChanged struct {
	ID int
}

// DetailLoaded is sent when a detail fetch settles. Err carries the typed
// failure to render in place of the detail panel.
type DetailLoaded struct {
	ID      int
	Details *api.JobDetails
	Err     error
}

// BookmarksResolved is sent when the bookmark set has been resolved to
// full records.
type BookmarksResolved struct {
	Items []api.JobDetails
	Err   error
}

// BookmarkToggled is sent after a bookmark toggle persisted.
type BookmarkToggled struct {
	ID  int
	Err error
}
