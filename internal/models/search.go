package models

import "time"

// DefaultLimit is the result count requested when none is given
const DefaultLimit = 25

// SearchFilters holds everything about a collection search except the date range.
// A scan shares one SearchFilters value across every year it probes.
type SearchFilters struct {
	Region         string // lowercase state name, "" or "ALL" for no filter
	Keyword        string // free text OCR search, "" for none
	FrontPagesOnly bool
	Limit          int // clamped into [1, 100] when encoded
}

// DateWindow is an inclusive range of calendar dates
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls inside the window, ignoring time of day
func (w DateWindow) Contains(d time.Time) bool {
	day := truncateDay(d)
	return !day.Before(truncateDay(w.Start)) && !day.After(truncateDay(w.End))
}

// String renders the window as "YYYY-MM-DD..YYYY-MM-DD"
func (w DateWindow) String() string {
	return w.Start.Format(DateLayout) + ".." + w.End.Format(DateLayout)
}

// DateLayout is the ISO calendar date layout used by the archive
const DateLayout = "2006-01-02"

// SearchCriteria fully determines one request sent to the archive
type SearchCriteria struct {
	Window DateWindow
	SearchFilters
}

// WithWindow returns criteria for the given date window using these filters
func (f SearchFilters) WithWindow(w DateWindow) SearchCriteria {
	return SearchCriteria{Window: w, SearchFilters: f}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
