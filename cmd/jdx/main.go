// Command jdx is the jobdeck debug and maintenance CLI.
//
// Usage:
//
//	jdx                     Show help
//	jdx search <query>      Search jobs and print the sorted, paged result
//	jdx show <id>           Fetch and print one job's details
//	jdx bookmarks           Inspect or mutate the bookmark store
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/libertycoverage/jobdeck/internal/api"
	"github.com/libertycoverage/jobdeck/internal/config"
	"github.com/libertycoverage/jobdeck/internal/store"
)

const usage = `jdx — jobdeck debug & maintenance CLI

Usage:
  jdx <command> [flags]

Commands:
  search      Search jobs and print the sorted, paged result
  show        Fetch and print one job's details
  bookmarks   List, toggle or resolve bookmarked jobs

Environment:
  JOBDECK_API_URL   Override the API base URL

Run 'jdx <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "search":
		runSearch()
	case "show":
		runShow()
	case "bookmarks":
		runBookmarks()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "jdx: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}

// newClient builds an API client from the on-disk config plus env overrides.
func newClient() *api.Client {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
}

// openDB opens the shared KV store at ~/.jobdeck/jobdeck.db.
func openDB() *store.Store {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}
	dataDir := filepath.Join(homeDir, ".jobdeck")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	st, err := store.Open(filepath.Join(dataDir, "jobdeck.db"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	return st
}
