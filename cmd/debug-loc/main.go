// Debug tool to test a single Chronicling America window query directly
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/thisday/internal/api"
	"github.com/thesavant42/thisday/internal/models"
	"github.com/thesavant42/thisday/internal/scan"
)

func main() {
	date := "1924-10-15"
	if len(os.Args) > 1 {
		date = os.Args[1]
	}

	target, err := time.Parse(models.DateLayout, date)
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
	})

	window := scan.BuildWindow(target.Year(), target.Month(), target.Day(), scan.WindowRadius)
	criteria := models.SearchFilters{Limit: models.DefaultLimit}.WithWindow(window)

	fmt.Printf("Testing window query for: %s\n", date)
	fmt.Printf("Query: %s\n", api.BuildSearchQuery(criteria))

	client := api.NewClient(api.WithLogger(logger))

	fmt.Println("\n--- Fetching single window ---")
	outcome := client.FetchWindow(context.Background(), criteria)
	d := outcome.Diagnostic
	if !outcome.OK() {
		fmt.Printf("ERROR (%s): %s\n", d.Kind, d.Error)
		if d.Snippet != "" {
			fmt.Printf("Snippet: %s\n", d.Snippet)
		}
		os.Exit(1)
	}

	results := api.ExtractResults(outcome.Payload)
	exact := api.FilterExactDate(results, target.Month(), target.Day())
	fmt.Printf("Content-Type: %s\n", d.ContentType)
	fmt.Printf("Results: %d, exact matches: %d\n", len(results), len(exact))

	// Show first 3 records with their resolved dates
	fmt.Println("\nFirst records:")
	for i, rec := range results {
		if i >= 3 {
			fmt.Printf("  ... and %d more\n", len(results)-3)
			break
		}
		resolved := "-"
		if t, ok := api.ResolveDate(rec); ok {
			resolved = t.Format(models.DateLayout)
		}
		fmt.Printf("  %d. %s (resolved: %s)\n", i+1, rec.Title(), resolved)
	}
}
