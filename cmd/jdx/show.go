package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

func runShow() {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	fs.Parse(os.Args[1:])

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "jdx show: missing job id")
		os.Exit(1)
	}
	id, err := strconv.Atoi(fs.Arg(0))
	if err != nil || id <= 0 {
		fmt.Fprintf(os.Stderr, "jdx show: invalid job id %q\n", fs.Arg(0))
		os.Exit(1)
	}

	client := newClient()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	d, err := client.GetJob(ctx, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jdx show: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n%s", d.Title, d.Company)
	if d.Location != "" {
		fmt.Printf(" · %s", d.Location)
	}
	if d.Salary != "" {
		fmt.Printf(" · %s", d.Salary)
	}
	if d.Duration != "" {
		fmt.Printf(" · %s", d.Duration)
	}
	fmt.Printf("\n\n%s\n", d.Description)

	if len(d.Qualifications) > 0 {
		fmt.Println("\nQualifications:")
		for _, q := range d.Qualifications {
			fmt.Printf("  - %s\n", q)
		}
	}
	if len(d.Reviews) > 0 {
		fmt.Println("\nReviews:")
		for _, r := range d.Reviews {
			fmt.Printf("  - %s\n", r)
		}
	}
	if d.CompanyURL != "" {
		fmt.Printf("\n%s\n", d.CompanyURL)
	}
}
