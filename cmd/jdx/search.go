package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/libertycoverage/jobdeck/internal/filter"
)

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	sortBy := fs.String("sort", "relevant", "Sort mode: relevant or recent")
	page := fs.Int("page", 1, "Page number (1-based)")
	size := fs.Int("size", 7, "Page size")
	fs.Parse(os.Args[1:])

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "jdx search: missing query")
		os.Exit(1)
	}
	query := fs.Arg(0)

	mode, err := filter.ParseSortMode(*sortBy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jdx search: %v\n", err)
		os.Exit(1)
	}

	client := newClient()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	items, err := client.SearchJobs(ctx, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jdx search: %v\n", err)
		os.Exit(1)
	}

	sorted := filter.SortJobs(items, mode)
	visible := filter.Paginate(sorted, *page, *size)
	total := filter.TotalPages(len(sorted), *size)

	fmt.Printf("%d jobs for %q, page %d/%d (%s)\n\n", len(sorted), query, *page, total, mode)
	for _, item := range visible {
		fmt.Printf("  %6d  [%s]  %-45s %-25s score=%.1f  %dd ago\n",
			item.ID, item.BadgeLetters, item.Title, item.Company,
			item.RelevanceScore, item.DaysAgo)
	}
}
