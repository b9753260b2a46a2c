package api

import (
	"regexp"
	"time"

	"github.com/thesavant42/thisday/internal/models"
)

// pathDatePattern matches an ISO date used as a whole path segment, e.g. /1924-10-15/
var pathDatePattern = regexp.MustCompile(`/(\d{4}-\d{2}-\d{2})/`)

// DateExtractor derives a calendar date from one part of a record
type DateExtractor func(models.Record) (time.Time, bool)

// DefaultDateExtractors is the fixed priority order used by ResolveDate:
// primary date field, published date fields, alternate URLs, item URL
var DefaultDateExtractors = []DateExtractor{
	PrimaryDate,
	PublishedDate,
	AlternateURLDate,
	ItemURLDate,
}

// ExtractResults returns the records in a payload's results field.
// A missing or non-list field is an empty result set, not an error.
func ExtractResults(payload any) []models.Record {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	list, ok := obj["results"].([]any)
	if !ok {
		return nil
	}

	records := make([]models.Record, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			records = append(records, models.Record(m))
		}
	}
	return records
}

// ResolveDate runs the default extractor chain and returns the first date found
func ResolveDate(r models.Record) (time.Time, bool) {
	return ResolveDateWith(r, DefaultDateExtractors)
}

// ResolveDateWith tries each extractor in order until one yields a date
func ResolveDateWith(r models.Record, extractors []DateExtractor) (time.Time, bool) {
	for _, extract := range extractors {
		if d, ok := extract(r); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// FilterExactDate keeps records whose resolved month and day equal the
// target, in the archive's order. Records without a date are dropped.
func FilterExactDate(records []models.Record, month time.Month, day int) []models.Record {
	var matches []models.Record
	for _, r := range records {
		d, ok := ResolveDate(r)
		if !ok {
			continue
		}
		if d.Month() == month && d.Day() == day {
			matches = append(matches, r)
		}
	}
	return matches
}

// PrimaryDate reads the "date" field (scalar or first list element)
func PrimaryDate(r models.Record) (time.Time, bool) {
	return parseISOPrefix(first(r["date"]))
}

// PublishedDate reads the secondary published-date fields in order
func PublishedDate(r models.Record) (time.Time, bool) {
	for _, key := range []string{"created_published_date", "created_published", "dates"} {
		if d, ok := parseISOPrefix(first(r[key])); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// AlternateURLDate scans the "aka" URLs for a /YYYY-MM-DD/ path segment
func AlternateURLDate(r models.Record) (time.Time, bool) {
	switch v := r["aka"].(type) {
	case string:
		return pathDate(v)
	case []any:
		// Only the first URL carrying a date segment counts
		for _, item := range v {
			if s, ok := item.(string); ok && pathDatePattern.MatchString(s) {
				return pathDate(s)
			}
		}
	}
	return time.Time{}, false
}

// ItemURLDate reads a /YYYY-MM-DD/ path segment from the canonical item URL
func ItemURLDate(r models.Record) (time.Time, bool) {
	for _, key := range []string{"url", "id"} {
		if s, ok := r[key].(string); ok {
			if d, ok := pathDate(s); ok {
				return d, true
			}
		}
	}
	return time.Time{}, false
}

func first(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) > 0 {
			if s, ok := t[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

// parseISOPrefix interprets the first 10 characters as YYYY-MM-DD
func parseISOPrefix(s string) (time.Time, bool) {
	if len(s) < 10 {
		return time.Time{}, false
	}
	d, err := time.Parse(models.DateLayout, s[:10])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func pathDate(s string) (time.Time, bool) {
	m := pathDatePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	return parseISOPrefix(m[1])
}
