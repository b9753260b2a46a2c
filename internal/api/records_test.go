package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesavant42/thisday/internal/models"
)

func decode(t *testing.T, body string) any {
	t.Helper()
	var payload any
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	return payload
}

func TestExtractResults(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"no results field", `{"pagination":{}}`, 0},
		{"results not a list", `{"results":"nope"}`, 0},
		{"empty list", `{"results":[]}`, 0},
		{"non-object items skipped", `{"results":[{"title":"a"}, 3, "x", null, {"title":"b"}]}`, 2},
		{"payload not an object", `[1,2,3]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, ExtractResults(decode(t, tt.body)), tt.want)
		})
	}

	assert.Empty(t, ExtractResults(nil))
}

func TestResolveDate(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name   string
		record models.Record
		want   time.Time
		wantOK bool
	}{
		{
			name:   "primary date scalar",
			record: models.Record{"date": "1924-10-15"},
			want:   day(1924, 10, 15), wantOK: true,
		},
		{
			name:   "primary date list takes first element",
			record: models.Record{"date": []any{"1924-10-15T00:00:00Z", "1924-10-16"}},
			want:   day(1924, 10, 15), wantOK: true,
		},
		{
			name: "scalar beats url",
			record: models.Record{
				"date": "1924-10-15",
				"url":  "https://www.loc.gov/resource/sn1/1924-10-16/ed-1/",
			},
			want: day(1924, 10, 15), wantOK: true,
		},
		{
			name:   "published date fallback",
			record: models.Record{"date": "unknown", "created_published_date": "1901-07-04"},
			want:   day(1901, 7, 4), wantOK: true,
		},
		{
			name:   "dates list fallback",
			record: models.Record{"dates": []any{"1899-12-31"}},
			want:   day(1899, 12, 31), wantOK: true,
		},
		{
			name:   "aka first dated url",
			record: models.Record{"aka": []any{"https://chroniclingamerica.loc.gov/lccn/sn1/", "https://example.org/x/1950-10-15/ed-1/", "https://example.org/x/1950-10-16/ed-1/"}},
			want:   day(1950, 10, 15), wantOK: true,
		},
		{
			name:   "url only",
			record: models.Record{"url": "https://www.loc.gov/resource/sn85066387/1924-10-15/ed-1/?sp=1"},
			want:   day(1924, 10, 15), wantOK: true,
		},
		{
			name:   "id used when url has no date",
			record: models.Record{"url": "https://www.loc.gov/item/x/", "id": "https://www.loc.gov/resource/sn1/1950-03-01/ed-1/"},
			want:   day(1950, 3, 1), wantOK: true,
		},
		{
			name:   "first url match only",
			record: models.Record{"url": "https://example.org/1950-13-45/ed/1950-10-15/"},
			wantOK: false,
		},
		{
			name:   "nothing parseable",
			record: models.Record{"title": "Evening star", "date": "1924"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveDate(tt.record)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveDateWith_CustomOrder(t *testing.T) {
	r := models.Record{
		"date": "1924-10-15",
		"url":  "https://www.loc.gov/resource/sn1/1924-10-16/ed-1/",
	}

	got, ok := ResolveDateWith(r, []DateExtractor{ItemURLDate, PrimaryDate})
	require.True(t, ok)
	assert.Equal(t, 16, got.Day())

	_, ok = ResolveDateWith(r, nil)
	assert.False(t, ok)
}

func TestFilterExactDate(t *testing.T) {
	records := []models.Record{
		{"title": "a", "date": "1924-10-14"},
		{"title": "b", "date": "1924-10-15"},
		{"title": "c"},
		{"title": "d", "url": "https://www.loc.gov/resource/sn1/1924-10-15/ed-2/"},
		{"title": "e", "date": "not-a-date"},
		{"title": "f", "date": "1925-10-15"},
	}

	matches := FilterExactDate(records, time.October, 15)
	require.Len(t, matches, 3)
	assert.Equal(t, "b", matches[0].Title())
	assert.Equal(t, "d", matches[1].Title())
	assert.Equal(t, "f", matches[2].Title())

	// Filtering is idempotent
	again := FilterExactDate(matches, time.October, 15)
	assert.Equal(t, matches, again)

	assert.Empty(t, FilterExactDate(records, time.February, 29))
	assert.Empty(t, FilterExactDate(nil, time.October, 15))
}
