package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/libertycoverage/jobdeck/internal/bookmarks"
)

func runBookmarks() {
	fs := flag.NewFlagSet("bookmarks", flag.ExitOnError)
	toggle := fs.Int("toggle", 0, "Toggle this job id in the bookmark set")
	resolve := fs.Bool("resolve", false, "Fetch full details for every bookmarked job")
	clear := fs.Bool("clear", false, "Remove every bookmark")
	fs.Parse(os.Args[1:])

	st := openDB()
	defer st.Close()

	bm, err := bookmarks.New(st, newClient())
	if err != nil {
		fmt.Fprintf(os.Stderr, "jdx bookmarks: %v\n", err)
		os.Exit(1)
	}

	if *clear {
		if err := bm.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "jdx bookmarks: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("bookmarks cleared")
		return
	}

	if *toggle > 0 {
		if err := bm.Toggle(*toggle); err != nil {
			fmt.Fprintf(os.Stderr, "jdx bookmarks: %v\n", err)
			os.Exit(1)
		}
		state := "removed"
		if bm.Contains(*toggle) {
			state = "added"
		}
		fmt.Printf("%s %s\n", strconv.Itoa(*toggle), state)
		return
	}

	if *resolve {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		items, err := bm.Resolve(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "jdx bookmarks: %v\n", err)
			os.Exit(1)
		}
		for _, d := range items {
			fmt.Printf("  %6d  %-45s %s\n", d.ID, d.Title, d.Company)
		}
		return
	}

	ids := bm.IDs()
	fmt.Printf("%d bookmarked\n", len(ids))
	for _, id := range ids {
		fmt.Printf("  %d\n", id)
	}
}
