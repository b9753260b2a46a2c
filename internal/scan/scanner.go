// Package scan finds the most recent year in which the archive holds a record
// for a given month and day.
//
// The archive can only be searched by date range, so every year is probed with
// a small window around the target (fetch-candidate-window) and the results are
// then reduced to exact month/day matches (filter-exact). To keep the request
// count low, the scanner first probes one anchor year per decade walking
// backward from the ceiling, then walks year by year inside the first
// productive decade. Probes are strictly sequential.
package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/thesavant42/thisday/internal/api"
	"github.com/thesavant42/thisday/internal/models"
)

const (
	// DefaultCeilingYear is the last year commonly covered by the collection
	DefaultCeilingYear = 1963
	// DefaultFloorYear is the first year covered by the collection
	DefaultFloorYear = 1690
)

// WindowFetcher fetches one encoded date window. *api.Client satisfies it.
type WindowFetcher interface {
	FetchWindow(ctx context.Context, criteria models.SearchCriteria) models.Outcome
}

// Scanner runs single-year probes and backward decade scans
type Scanner struct {
	fetcher WindowFetcher
	floor   int
	ceiling int
	logger  *log.Logger
}

// Option configures a Scanner
type Option func(*Scanner)

// WithYearBounds limits the years a scan may probe
func WithYearBounds(floor, ceiling int) Option {
	return func(s *Scanner) {
		s.floor = floor
		s.ceiling = ceiling
	}
}

// WithLogger enables logging
func WithLogger(logger *log.Logger) Option {
	return func(s *Scanner) { s.logger = logger }
}

// New creates a Scanner over the default 1690-1963 range
func New(fetcher WindowFetcher, opts ...Option) *Scanner {
	s := &Scanner{
		fetcher: fetcher,
		floor:   DefaultFloorYear,
		ceiling: DefaultCeilingYear,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateTarget rejects month/day pairs that exist in no year
func ValidateTarget(month time.Month, day int) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("invalid month %d", month)
	}
	// 2000 is a leap year, so Feb 29 is accepted
	if day < 1 || day > DaysIn(2000, month) {
		return fmt.Errorf("invalid day %d for %s", day, month)
	}
	return nil
}

// probe is the outcome of one year's fetch-candidate-window/filter-exact step
type probe struct {
	year    int
	window  models.DateWindow
	diag    models.Diagnostic
	matches []models.Record
}

func (s *Scanner) probe(ctx context.Context, year int, month time.Month, day int, filters models.SearchFilters) probe {
	window := BuildWindow(year, month, day, WindowRadius)
	outcome := s.fetcher.FetchWindow(ctx, filters.WithWindow(window))

	p := probe{year: year, window: window, diag: outcome.Diagnostic}
	if outcome.OK() {
		p.matches = api.FilterExactDate(api.ExtractResults(outcome.Payload), month, day)
	}
	return p
}

func (p probe) hit() bool {
	return len(p.matches) > 0
}

// result turns a probe into a ScanResult; a probe without matches yields
// only its diagnostic and window
func (p probe) result(requests int) models.ScanResult {
	res := models.ScanResult{
		Diagnostic: p.diag,
		Window:     p.window,
		Requests:   requests,
	}
	if p.hit() {
		res.Year = p.year
		res.Record = p.matches[0]
		res.URL = p.diag.URL
		res.MatchCount = len(p.matches)
	}
	return res
}

// ProbeYear queries a single year for the target month/day.
// Failure diagnostics are returned as-is; err is only set for an invalid
// target, a year outside the scanner's bounds or a done context.
func (s *Scanner) ProbeYear(ctx context.Context, year int, month time.Month, day int, filters models.SearchFilters) (models.ScanResult, error) {
	if err := ValidateTarget(month, day); err != nil {
		return models.ScanResult{}, err
	}
	if year < 1 || year < s.floor || year > s.ceiling {
		return models.ScanResult{}, fmt.Errorf("year %d is outside %d-%d", year, max(s.floor, 1), s.ceiling)
	}
	if err := ctx.Err(); err != nil {
		return models.ScanResult{}, err
	}

	p := s.probe(ctx, year, month, day, filters)
	if s.logger != nil {
		s.logger.Info("Probed year", "year", year, "window", p.window, "matches", len(p.matches), "ok", p.diag.OK)
	}
	return p.result(1), nil
}

// Anchors returns the decade anchor years probed in phase one, most recent first
func (s *Scanner) Anchors() []int {
	var anchors []int
	lowest := decadeOf(s.floor)
	for a := decadeOf(s.ceiling); a >= lowest; a -= 10 {
		anchors = append(anchors, a)
	}
	return anchors
}

// MostRecent finds the most recent year at or before the ceiling holding an
// exact month/day match.
//
// Phase one probes decade anchors backward until one matches; phase two walks
// that decade from min(anchor+9, ceiling) down to the anchor. Per-year failures
// count as "no match" and the scan moves on; if nothing is found the
// diagnostic of the last request is returned so callers can tell a block from
// a genuine absence. An anchor hit whose window bled in from a neighbouring
// decade can leave phase two empty; the scan then reports no result rather
// than searching older decades.
//
// The context is checked between years; on cancellation the partial result
// and ctx.Err() are returned.
func (s *Scanner) MostRecent(ctx context.Context, month time.Month, day int, filters models.SearchFilters) (models.ScanResult, error) {
	if err := ValidateTarget(month, day); err != nil {
		return models.ScanResult{}, err
	}

	logger := s.logger
	if logger != nil {
		logger = logger.With("scan", uuid.NewString())
		logger.Info("Starting backward scan", "month", month, "day", day, "ceiling", s.ceiling, "floor", s.floor)
	}

	var last probe
	requests := 0

	// Phase 1: locate a productive decade
	anchor, found := 0, false
	for _, a := range s.Anchors() {
		if err := ctx.Err(); err != nil {
			return last.result(requests), err
		}
		last = s.probe(ctx, a, month, day, filters)
		requests++
		if logger != nil {
			logger.Debug("Decade anchor probed", "anchor", a, "matches", len(last.matches), "ok", last.diag.OK)
		}
		if last.hit() {
			anchor, found = a, true
			break
		}
	}

	if !found {
		if logger != nil {
			logger.Info("No productive decade", "requests", requests, "lastError", last.diag.Error)
		}
		return last.result(requests), nil
	}

	// Phase 2: most recent year inside the decade
	top := min(anchor+9, s.ceiling)
	bottom := max(anchor, s.floor)
	for year := top; year >= bottom; year-- {
		if err := ctx.Err(); err != nil {
			return noMatch(last, requests), err
		}
		last = s.probe(ctx, year, month, day, filters)
		requests++
		if last.hit() {
			if logger != nil {
				logger.Info("Found most recent year", "year", year, "matches", len(last.matches), "requests", requests)
			}
			return last.result(requests), nil
		}
	}

	if logger != nil {
		logger.Info("Decade matched but no year did", "anchor", anchor, "requests", requests)
	}
	return last.result(requests), nil
}

// noMatch drops any matches so a partial scan never reports a year
func noMatch(p probe, requests int) models.ScanResult {
	p.matches = nil
	return p.result(requests)
}

// decadeOf rounds a year down to its decade, also for negative years
func decadeOf(year int) int {
	d := year - year%10
	if year%10 < 0 {
		d -= 10
	}
	return d
}
