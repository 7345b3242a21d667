package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/libertycoverage/jobdeck/internal/api"
	"github.com/libertycoverage/jobdeck/internal/bookmarks"
	"github.com/libertycoverage/jobdeck/internal/config"
	"github.com/libertycoverage/jobdeck/internal/details"
	"github.com/libertycoverage/jobdeck/internal/filter"
	"github.com/libertycoverage/jobdeck/internal/location"
	"github.com/libertycoverage/jobdeck/internal/logging"
	"github.com/libertycoverage/jobdeck/internal/search"
	"github.com/libertycoverage/jobdeck/internal/selection"
	"github.com/libertycoverage/jobdeck/internal/store"
	"github.com/libertycoverage/jobdeck/internal/ui"
)

// cachedFetcher routes bookmark resolution through the detail cache so a
// bookmarked job opened from the list does not refetch.
type cachedFetcher struct {
	det *details.Service
}

func (f cachedFetcher) GetJob(ctx context.Context, id int) (*api.JobDetails, error) {
	return f.det.Get(ctx, id)
}

func main() {
	jobID := flag.Int("job", 0, "Open with this job id already selected")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logging.Init(); err != nil {
		log.Fatalf("Failed to init logging: %v", err)
	}
	defer logging.Close()

	// First run: materialize the defaults so the file is there to edit.
	if _, err := os.Stat(config.ConfigPath()); os.IsNotExist(err) {
		if err := cfg.Save(); err != nil {
			logging.Warn("could not write default config", "err", err)
		}
	}

	// Data directory: ~/.jobdeck/
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}
	dataDir := filepath.Join(homeDir, ".jobdeck")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	kv, err := store.Open(filepath.Join(dataDir, "jobdeck.db"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer kv.Close()

	client := api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)

	svc := search.NewService(client,
		time.Duration(cfg.Search.DebounceMs)*time.Millisecond,
		cfg.Search.PageSize)
	defer svc.Close()

	if mode, err := filter.ParseSortMode(cfg.UI.DefaultSort); err == nil {
		svc.SetSortBy(mode)
	}

	det := details.NewService(client,
		cfg.Search.DetailCacheSize,
		time.Duration(cfg.Search.DetailStaleSecs)*time.Second)

	bm, err := bookmarks.New(kv, cachedFetcher{det})
	if err != nil {
		log.Fatalf("Failed to load bookmarks: %v", err)
	}

	// The location slot stands in for a shareable address bar; --job
	// seeds it so a deep link opens with the detail panel populated.
	initial := ""
	if *jobID > 0 {
		initial = strconv.Itoa(*jobID)
	}
	loc := location.New(initial)
	defer loc.Close()

	tracker := selection.NewTracker(loc)
	defer tracker.Close()

	logging.Info("starting", "base_url", cfg.API.BaseURL, "job", *jobID)

	app := ui.NewApp(svc, det, bm, tracker)
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logging.Error("program exited", "error", err)
		fmt.Fprintf(os.Stderr, "jobdeck: %v\n", err)
		os.Exit(1)
	}
}
