// thisday finds the most recent historical newspaper page for a month and day
// in the Chronicling America collection on loc.gov.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/thesavant42/thisday/internal/api"
	"github.com/thesavant42/thisday/internal/models"
	"github.com/thesavant42/thisday/internal/ui"
	"github.com/urfave/cli/v2"
)

const defaultProbeYear = 1924

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "thisday",
		Usage: "This day in history: newspapers from Chronicling America",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to YAML config (default ~/.thisday/config.yaml)"},
			&cli.StringFlag{Name: "base-url", Usage: "collection search endpoint"},
			&cli.StringFlag{Name: "cache", Usage: "response cache: memory, sqlite, redis or none"},
			&cli.StringFlag{Name: "cache-path", Usage: "SQLite cache DSN"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.DurationFlag{Name: "pause", Usage: "minimum pause between requests"},
			&cli.StringFlag{Name: "state", Value: api.RegionAll, Usage: "filter by state (lowercase name) or ALL"},
			&cli.StringFlag{Name: "keyword", Usage: "optional OCR keyword search"},
			&cli.BoolFlag{Name: "front-pages", Value: true, Usage: "front pages only"},
			&cli.IntFlag{Name: "limit", Usage: "results per request (1-100)"},
			&cli.BoolFlag{Name: "plain", Usage: "no spinner"},
			&cli.StringFlag{Name: "export", Usage: "also write the result as markdown into this directory"},
		},
		Commands: []*cli.Command{
			{
				Name:  "probe",
				Usage: "test one year for the date (one request, easy debugging)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Usage: "YYYY-MM-DD, or MM-DD with --year"},
					&cli.IntFlag{Name: "year", Value: defaultProbeYear, Usage: "year to test when --date has none"},
				},
				Action: probeAction,
			},
			{
				Name:   "scan",
				Usage:  "find the most recent year with a page for the date (decade-step scan)",
				Flags:  []cli.Flag{&cli.StringFlag{Name: "date", Usage: "MM-DD (default today)"}},
				Action: scanAction,
			},
			{
				Name:   "pick",
				Usage:  "choose date and filters interactively, then scan",
				Action: pickAction,
			},
			{
				Name:   "check",
				Usage:  "run the documented known-good query to confirm the API is reachable",
				Action: checkAction,
			},
		},
	}
}

// targetDate resolves --date, defaulting to today
func targetDate(c *cli.Context) (year int, month time.Month, day int, err error) {
	if s := c.String("date"); s != "" {
		return ui.ParseMonthDay(s)
	}
	now := time.Now()
	return 0, now.Month(), now.Day(), nil
}

func probeAction(c *cli.Context) error {
	rt, err := newRuntime(c)
	if err != nil {
		return err
	}
	defer rt.Close()

	year, month, day, err := targetDate(c)
	if err != nil {
		return err
	}
	if year == 0 {
		year = c.Int("year")
	}

	res, err := rt.scanner.ProbeYear(c.Context, year, month, day, rt.filters)
	if err != nil {
		return err
	}
	ui.WriteScanResult(os.Stdout, res)
	return exportResult(c, month, day, res)
}

func scanAction(c *cli.Context) error {
	rt, err := newRuntime(c)
	if err != nil {
		return err
	}
	defer rt.Close()

	_, month, day, err := targetDate(c)
	if err != nil {
		return err
	}
	return runScan(c, rt, month, day, rt.filters)
}

func pickAction(c *cli.Context) error {
	rt, err := newRuntime(c)
	if err != nil {
		return err
	}
	defer rt.Close()

	now := time.Now()
	target, err := ui.PromptForTarget(ui.Target{Month: now.Month(), Day: now.Day(), Filters: rt.filters})
	if err != nil {
		return err
	}
	return runScan(c, rt, target.Month, target.Day, target.Filters)
}

func runScan(c *cli.Context, rt *runtime, month time.Month, day int, filters models.SearchFilters) error {
	fmt.Println(ui.RenderNormal(fmt.Sprintf("Target date: %s %d", month, day)))

	var res models.ScanResult
	scanFn := func(ctx context.Context) error {
		var scanErr error
		res, scanErr = rt.scanner.MostRecent(ctx, month, day, filters)
		return scanErr
	}

	var err error
	if c.Bool("plain") {
		err = scanFn(c.Context)
	} else {
		err = ui.RunWithSpinner(c.Context, "Scanning by decade to reduce requests...", scanFn)
	}
	if errors.Is(err, context.Canceled) {
		ui.PrintWarning(fmt.Sprintf("Scan cancelled after %d request(s).", res.Requests))
		return nil
	}
	if err != nil {
		return err
	}

	ui.WriteScanResult(os.Stdout, res)
	rt.logger.Debug("Scan finished", "requests", res.Requests, "networkCalls", rt.client.NetworkCalls())
	return exportResult(c, month, day, res)
}

// exportResult writes the markdown report when --export is set
func exportResult(c *cli.Context, month time.Month, day int, res models.ScanResult) error {
	dir := c.String("export")
	if dir == "" {
		return nil
	}
	path, err := ui.ExportScanToMarkdown(dir, month, day, res)
	if err != nil {
		return err
	}
	ui.PrintSuccess("Exported to " + path)
	return nil
}

func checkAction(c *cli.Context) error {
	rt, err := newRuntime(c)
	if err != nil {
		return err
	}
	defer rt.Close()

	knownGood := api.BuildKnownGoodURL(rt.client.BaseURL())
	outcome := rt.client.Fetch(c.Context, knownGood)
	fmt.Println(ui.RenderNormal("Query used: " + knownGood))
	if !outcome.OK() {
		fmt.Println(ui.RenderDiagnostic(outcome.Diagnostic))
		if hint := ui.Hint(outcome.Diagnostic); hint != "" {
			ui.PrintWarning(hint)
		}
		return api.OutcomeErr(outcome)
	}

	results := api.ExtractResults(outcome.Payload)
	ui.PrintSuccess(fmt.Sprintf("Got %d result(s).", len(results)))
	if len(results) > 0 {
		fmt.Println(ui.RenderRecord(results[0]))
	}
	return nil
}
