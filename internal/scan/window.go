package scan

import (
	"time"

	"github.com/thesavant42/thisday/internal/models"
)

// WindowRadius is the number of days queried on each side of the target date.
// The archive only answers date-range queries and often attributes records a
// day or two off, so the window is queried broadly and then filtered exactly.
const WindowRadius = 3

// DaysIn returns the number of days in the given month of the given year
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// BuildWindow clamps day into the month (so 2023-02-29 becomes 2023-02-28)
// and returns [center-radius, center+radius]
func BuildWindow(year int, month time.Month, day, radius int) models.DateWindow {
	month = max(time.January, min(month, time.December))
	day = max(1, min(day, DaysIn(year, month)))
	if radius < 0 {
		radius = -radius
	}

	center := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return models.DateWindow{
		Start: center.AddDate(0, 0, -radius),
		End:   center.AddDate(0, 0, radius),
	}
}
