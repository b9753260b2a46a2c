package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/thesavant42/thisday/internal/api"
	"github.com/thesavant42/thisday/internal/models"
)

// Target is what the interactive picker collects
type Target struct {
	Month   time.Month
	Day     int
	Filters models.SearchFilters
}

// sanitizeInput removes null bytes and other invisible control characters from input
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 || (r < 32 && r != '\t' && r != '\n' && r != '\r') {
			return -1
		}
		return r
	}, s)
}

// ParseMonthDay accepts "MM-DD" or "YYYY-MM-DD" and returns the month and day.
// The year, if present, is returned too (0 otherwise).
func ParseMonthDay(s string) (year int, month time.Month, day int, err error) {
	s = strings.TrimSpace(s)
	if t, perr := time.Parse(models.DateLayout, s); perr == nil {
		return t.Year(), t.Month(), t.Day(), nil
	}
	// Parse against a leap year so 02-29 is accepted
	if t, perr := time.Parse("2006-01-02", "2000-"+s); perr == nil {
		return 0, t.Month(), t.Day(), nil
	}
	return 0, 0, 0, fmt.Errorf("invalid date %q: use MM-DD or YYYY-MM-DD", s)
}

// PromptForTarget asks for the month/day, state and keyword to search.
// defaults pre-fills the form.
func PromptForTarget(defaults Target) (Target, error) {
	dateInput := fmt.Sprintf("%02d-%02d", int(defaults.Month), defaults.Day)
	region := defaults.Filters.Region
	if region == "" {
		region = api.RegionAll
	}
	keyword := defaults.Filters.Keyword
	frontPagesOnly := defaults.Filters.FrontPagesOnly

	options := []huh.Option[string]{huh.NewOption("All states", api.RegionAll)}
	for _, r := range api.Regions {
		options = append(options, huh.NewOption(r, r))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Pick a date").
				Description("Month and day are used; format MM-DD").
				Placeholder("07-04").
				Value(&dateInput).
				Validate(func(s string) error {
					_, _, _, err := ParseMonthDay(sanitizeInput(s))
					return err
				}),
			huh.NewSelect[string]().
				Title("Filter by state (optional)").
				Options(options...).
				Height(10).
				Value(&region),
			huh.NewInput().
				Title("Optional keyword (OCR search)").
				Description("Example: yankees, hurricane, election").
				Value(&keyword),
			huh.NewConfirm().
				Title("Front pages only?").
				Affirmative("Yes").
				Negative("No").
				Value(&frontPagesOnly),
		),
	)

	if err := form.Run(); err != nil {
		return Target{}, fmt.Errorf("prompt cancelled: %w", err)
	}

	_, month, day, err := ParseMonthDay(sanitizeInput(dateInput))
	if err != nil {
		return Target{}, err
	}

	filters := defaults.Filters
	filters.Region = region
	filters.Keyword = strings.TrimSpace(sanitizeInput(keyword))
	filters.FrontPagesOnly = frontPagesOnly

	return Target{Month: month, Day: day, Filters: filters}, nil
}
