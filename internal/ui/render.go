package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/libertycoverage/jobdeck/internal/api"
	"github.com/libertycoverage/jobdeck/internal/filter"
)

// View renders the full screen.
func (a App) View() string {
	if !a.ready {
		return "starting..."
	}

	var b strings.Builder

	b.WriteString(TitleBar.Render("jobdeck"))
	b.WriteString("\n\n")
	b.WriteString(a.input.View())
	b.WriteString("\n\n")

	if a.mode == modeBookmarks {
		b.WriteString(a.renderBookmarks())
	} else {
		b.WriteString(a.renderResults())
	}

	b.WriteString("\n")
	if a.toggleErr != nil {
		b.WriteString(ErrorStyle.Render("bookmark not saved: " + a.toggleErr.Error()))
		b.WriteString("\n")
	}
	b.WriteString(a.renderStatusBar())
	return b.String()
}

// renderResults draws the sort tabs, the visible page and the detail panel.
func (a App) renderResults() string {
	var b strings.Builder

	b.WriteString(a.renderSortTabs())
	b.WriteString("\n\n")

	switch {
	case a.snap.Err != nil:
		b.WriteString(ErrorStyle.Render("search failed: " + a.snap.Err.Error()))
		b.WriteString("\n")
	case a.snap.Loading:
		b.WriteString(a.spin.View())
		b.WriteString(StatusBarText.Render(" searching..."))
		b.WriteString("\n")
	case a.snap.Items == nil:
		b.WriteString(HelpStyle.Render("Start typing to search for remote developer jobs."))
		b.WriteString("\n")
	case len(a.snap.Items) == 0:
		b.WriteString(HelpStyle.Render("No jobs match \"" + a.snap.Query + "\"."))
		b.WriteString("\n")
	default:
		for i, item := range a.snap.Visible {
			b.WriteString(a.renderItem(item, i == a.cursor))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(StatusBarText.Render(fmt.Sprintf("page %d/%d · %d jobs",
			a.snap.Page, a.snap.TotalPages, len(a.snap.Items))))
		b.WriteString("\n")
	}

	if a.detailID != 0 {
		b.WriteString("\n")
		b.WriteString(a.renderDetail())
	}
	return b.String()
}

// renderBookmarks draws the resolved bookmark list.
func (a App) renderBookmarks() string {
	var b strings.Builder

	b.WriteString(DetailTitle.Render("Bookmarks"))
	b.WriteString("\n\n")

	switch {
	case a.resolving:
		b.WriteString(a.spin.View())
		b.WriteString(StatusBarText.Render(" loading bookmarks..."))
		b.WriteString("\n")
	case len(a.resolved) == 0:
		b.WriteString(HelpStyle.Render("Nothing bookmarked yet. Press ctrl+b on a job to save it."))
		b.WriteString("\n")
	default:
		for i, d := range a.resolved {
			b.WriteString(a.renderItem(d.JobItem, i == a.cursor))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderItem draws one list row.
func (a App) renderItem(item api.JobItem, selected bool) string {
	mark := "  "
	if a.bookmarks.Contains(item.ID) {
		mark = BookmarkMark.Render("★ ")
	}

	age := humanize.Time(time.Now().AddDate(0, 0, -item.DaysAgo))
	line := fmt.Sprintf("%s%s %s · %s · %s",
		mark,
		CompanyBadge.Render(item.BadgeLetters),
		item.Title,
		item.Company,
		age,
	)
	if selected {
		return SelectedItem.Render(line)
	}
	return NormalItem.Render(line)
}

// renderSortTabs draws the relevant/recent toggle.
func (a App) renderSortTabs() string {
	relevant := SortInactive.Render("relevant")
	recent := SortInactive.Render("recent")
	if a.snap.SortBy == filter.SortRecent {
		recent = SortActive.Render("recent")
	} else {
		relevant = SortActive.Render("relevant")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		StatusBarText.Render("sort: "), relevant, " ", recent)
}

// renderDetail draws the panel for the active selection.
func (a App) renderDetail() string {
	var b strings.Builder

	switch {
	case a.detailLoading:
		b.WriteString(a.spin.View())
		b.WriteString(StatusBarText.Render(" loading job..."))
		b.WriteString("\n")
	case a.detailErr != nil:
		b.WriteString(ErrorStyle.Render("could not load job: " + a.detailErr.Error()))
		b.WriteString("\n")
	case a.detail != nil:
		d := a.detail
		b.WriteString(DetailTitle.Render(d.Title))
		b.WriteString("\n")
		b.WriteString(DetailLabel.Render(d.Company))
		if d.Location != "" {
			b.WriteString(DetailLabel.Render(" · " + d.Location))
		}
		if d.Salary != "" {
			b.WriteString(DetailLabel.Render(" · " + d.Salary))
		}
		if d.Duration != "" {
			b.WriteString(DetailLabel.Render(" · " + d.Duration))
		}
		b.WriteString("\n\n")
		b.WriteString(DetailBody.Render(d.Description))
		b.WriteString("\n")
		if len(d.Qualifications) > 0 {
			b.WriteString("\n")
			b.WriteString(DetailLabel.Render("Qualifications"))
			b.WriteString("\n")
			for _, q := range d.Qualifications {
				b.WriteString(DetailBody.Render("  · " + q))
				b.WriteString("\n")
			}
		}
		if len(d.Reviews) > 0 {
			b.WriteString("\n")
			b.WriteString(DetailLabel.Render("Reviews"))
			b.WriteString("\n")
			for _, r := range d.Reviews {
				b.WriteString(DetailBody.Render("  · " + r))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// renderStatusBar draws the key hints at the bottom of the screen.
func (a App) renderStatusBar() string {
	hints := []struct{ key, desc string }{
		{"↑/↓", "move"},
		{"←/→", "page"},
		{"enter", "open"},
		{"tab", "sort"},
		{"ctrl+b", "bookmark"},
		{"ctrl+l", "bookmarks"},
		{"esc", "quit"},
	}
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, StatusBarKey.Render(h.key)+" "+StatusBarText.Render(h.desc))
	}
	return StatusBar.Render(strings.Join(parts, "  "))
}
