package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/libertycoverage/jobdeck/internal/api"
	"github.com/libertycoverage/jobdeck/internal/bookmarks"
	"github.com/libertycoverage/jobdeck/internal/details"
	"github.com/libertycoverage/jobdeck/internal/filter"
	"github.com/libertycoverage/jobdeck/internal/search"
	"github.com/libertycoverage/jobdeck/internal/selection"
)

// detailTimeout bounds a single detail fetch issued from the UI.
const detailTimeout = 15 * time.Second

// viewMode selects which panel set is on screen.
type viewMode int

const (
	modeSearch viewMode = iota
	modeBookmarks
)

// App is the root Bubble Tea model. It owns no domain state of its own:
// search state lives in the search service, the bookmark set in the
// bookmark store, and the active selection in the tracker. The App reads
// snapshots and issues named mutations, nothing more.
type App struct {
	search    *search.Service
	details   *details.Service
	bookmarks *bookmarks.Store
	tracker   *selection.Tracker

	input textinput.Model
	spin  spinner.Model

	snap   search.Snapshot
	cursor int // index into snap.Visible

	detailID      int
	detail        *api.JobDetails
	detailLoading bool
	detailErr     error

	resolved  []api.JobDetails
	resolving bool

	toggleErr error // last bookmark persistence failure, shown on the status line

	mode   viewMode
	width  int
	height int
	ready  bool
}

// NewApp wires the shared services into the root model.
func NewApp(svc *search.Service, det *details.Service, bm *bookmarks.Store, tr *selection.Tracker) App {
	input := textinput.New()
	input.Placeholder = "Search for a job..."
	input.Prompt = "/ "
	input.CharLimit = 100
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	a := App{
		search:    svc,
		details:   det,
		bookmarks: bm,
		tracker:   tr,
		input:     input,
		spin:      sp,
		snap:      svc.Snapshot(),
	}
	// A deep link (location seeded with an id) is visible before the first
	// change event; honor it here so Init can issue the detail load.
	if id, ok := tr.Current(); ok {
		a.detailID = id
		a.detailLoading = true
	}
	return a
}

// Init arms the service listeners and starts any deep-linked detail load.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		a.spin.Tick,
		a.waitForSearch(),
		a.waitForSelection(),
	}
	if a.detailID != 0 {
		cmds = append(cmds, a.loadDetail(a.detailID))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = min(msg.Width-10, 60)
		a.ready = true
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case SearchUpdated:
		a.snap = a.search.Snapshot()
		if a.cursor >= len(a.snap.Visible) {
			a.cursor = max(0, len(a.snap.Visible)-1)
		}
		return a, a.waitForSearch()

	case SelectionChanged:
		a.detailID = msg.ID
		a.detailLoading = true
		a.detailErr = nil
		return a, tea.Batch(a.loadDetail(msg.ID), a.waitForSelection())

	case DetailLoaded:
		// A stale load (selection moved on while the fetch was in
		// flight) is dropped, same as stale list responses.
		if msg.ID != a.detailID {
			return a, nil
		}
		a.detailLoading = false
		a.detail = msg.Details
		a.detailErr = msg.Err
		return a, nil

	case BookmarkToggled:
		a.toggleErr = msg.Err
		if msg.Err != nil {
			return a, nil
		}
		if a.mode == modeBookmarks {
			a.resolving = true
			return a, a.resolveBookmarks()
		}
		return a, nil

	case BookmarksResolved:
		a.resolving = false
		a.resolved = msg.Items
		if a.cursor >= len(a.resolved) && a.mode == modeBookmarks {
			a.cursor = max(0, len(a.resolved)-1)
		}
		return a, nil
	}

	return a, nil
}

// handleKeyMsg processes keyboard input. Plain runes belong to the search
// box; navigation and actions use non-rune keys so the two never collide.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return a, tea.Quit

	case "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case "down":
		if a.cursor < a.listLen()-1 {
			a.cursor++
		}
		return a, nil

	case "left":
		if a.mode == modeSearch && a.snap.Page > 1 {
			a.search.SetPage(a.snap.Page - 1)
		}
		return a, nil

	case "right":
		if a.mode == modeSearch && a.snap.Page < a.snap.TotalPages {
			a.search.SetPage(a.snap.Page + 1)
		}
		return a, nil

	case "tab":
		if a.snap.SortBy == filter.SortRelevant {
			a.search.SetSortBy(filter.SortRecent)
		} else {
			a.search.SetSortBy(filter.SortRelevant)
		}
		return a, nil

	case "enter":
		if id, ok := a.cursorID(); ok {
			// Location first; the tracker's subscription brings the
			// selection back as a SelectionChanged message.
			a.tracker.Select(id)
		}
		return a, nil

	case "ctrl+b":
		if id, ok := a.cursorID(); ok {
			return a, a.toggleBookmark(id)
		}
		return a, nil

	case "ctrl+l":
		if a.mode == modeSearch {
			a.mode = modeBookmarks
			a.cursor = 0
			a.resolving = true
			return a, a.resolveBookmarks()
		}
		a.mode = modeSearch
		a.cursor = 0
		return a, nil
	}

	// Everything else is typing.
	if a.mode != modeSearch {
		return a, nil
	}
	var cmd tea.Cmd
	before := a.input.Value()
	a.input, cmd = a.input.Update(msg)
	if v := a.input.Value(); v != before {
		a.search.SetQuery(v)
	}
	return a, cmd
}

// listLen returns the length of whichever list the cursor walks.
func (a App) listLen() int {
	if a.mode == modeBookmarks {
		return len(a.resolved)
	}
	return len(a.snap.Visible)
}

// cursorID returns the job id under the cursor, if any.
func (a App) cursorID() (int, bool) {
	if a.mode == modeBookmarks {
		if a.cursor < len(a.resolved) {
			return a.resolved[a.cursor].ID, true
		}
		return 0, false
	}
	if a.cursor < len(a.snap.Visible) {
		return a.snap.Visible[a.cursor].ID, true
	}
	return 0, false
}

// waitForSearch blocks on the search service's wake-up channel.
func (a App) waitForSearch() tea.Cmd {
	ch := a.search.Updates()
	return func() tea.Msg {
		<-ch
		return SearchUpdated{}
	}
}

// waitForSelection blocks on the tracker's update channel.
func (a App) waitForSelection() tea.Cmd {
	ch := a.tracker.Updates()
	return func() tea.Msg {
		id, ok := <-ch
		if !ok {
			return nil
		}
		return SelectionChanged{ID: id}
	}
}

// loadDetail fetches one record through the cached detail service.
func (a App) loadDetail(id int) tea.Cmd {
	det := a.details
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), detailTimeout)
		defer cancel()

		d, err := det.Get(ctx, id)
		return DetailLoaded{ID: id, Details: d, Err: err}
	}
}

// toggleBookmark flips one id in the bookmark store.
func (a App) toggleBookmark(id int) tea.Cmd {
	bm := a.bookmarks
	return func() tea.Msg {
		return BookmarkToggled{ID: id, Err: bm.Toggle(id)}
	}
}

// resolveBookmarks fetches full records for the bookmarked set.
func (a App) resolveBookmarks() tea.Cmd {
	bm := a.bookmarks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), detailTimeout)
		defer cancel()

		items, err := bm.Resolve(ctx)
		return BookmarksResolved{Items: items, Err: err}
	}
}

// Cursor returns the current cursor position (for testing).
func (a App) Cursor() int {
	return a.cursor
}
