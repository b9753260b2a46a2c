package api

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/thesavant42/thisday/internal/models"
)

func criteria(filters models.SearchFilters) models.SearchCriteria {
	return filters.WithWindow(models.DateWindow{
		Start: time.Date(1924, 10, 12, 0, 0, 0, 0, time.UTC),
		End:   time.Date(1924, 10, 18, 0, 0, 0, 0, time.UTC),
	})
}

func parseQuery(t *testing.T, query string) url.Values {
	t.Helper()
	values, err := url.ParseQuery(query)
	if err != nil {
		t.Fatalf("ParseQuery(%q) error = %v", query, err)
	}
	return values
}

// TestBuildSearchQuery_FixedParams verifies the always-present parameters
func TestBuildSearchQuery_FixedParams(t *testing.T) {
	values := parseQuery(t, BuildSearchQuery(criteria(models.SearchFilters{Limit: 25})))

	want := map[string]string{
		"fo":         "json",
		"dl":         "page",
		"start_date": "1924-10-12",
		"end_date":   "1924-10-18",
		"c":          "25",
	}
	for key, wantValue := range want {
		if got := values.Get(key); got != wantValue {
			t.Errorf("BuildSearchQuery() %s = %q, want %q", key, got, wantValue)
		}
	}
}

// TestBuildSearchQuery_LimitClamped verifies the count stays in [1, 100]
func TestBuildSearchQuery_LimitClamped(t *testing.T) {
	tests := []struct {
		limit int
		want  string
	}{
		{-5, "1"},
		{0, "1"},
		{1, "1"},
		{57, "57"},
		{100, "100"},
		{500, "100"},
	}

	for _, tt := range tests {
		values := parseQuery(t, BuildSearchQuery(criteria(models.SearchFilters{Limit: tt.limit})))
		if got := values.Get("c"); got != tt.want {
			t.Errorf("BuildSearchQuery() with limit %d: c = %q, want %q", tt.limit, got, tt.want)
		}
	}
}

// TestBuildSearchQuery_Keyword verifies the keyword trio is all-or-nothing
func TestBuildSearchQuery_Keyword(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		wantQS  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"single", "hurricane", "hurricane"},
		{"normalized", "  babe   ruth\tyankees ", "babe ruth yankees"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := parseQuery(t, BuildSearchQuery(criteria(models.SearchFilters{Keyword: tt.keyword})))

			present := 0
			for _, key := range []string{"qs", "ops", "searchType"} {
				if values.Has(key) {
					present++
				}
			}

			if tt.wantQS == "" {
				if present != 0 {
					t.Errorf("BuildSearchQuery(%q) has %d keyword parameters, want none", tt.keyword, present)
				}
				return
			}
			if present != 3 {
				t.Fatalf("BuildSearchQuery(%q) has %d keyword parameters, want all 3", tt.keyword, present)
			}
			if got := values.Get("qs"); got != tt.wantQS {
				t.Errorf("qs = %q, want %q", got, tt.wantQS)
			}
			if got := values.Get("ops"); got != "AND" {
				t.Errorf("ops = %q, want AND", got)
			}
			if got := values.Get("searchType"); got != "Advanced" {
				t.Errorf("searchType = %q, want Advanced", got)
			}
		})
	}
}

// TestBuildSearchQuery_Region verifies location_state appears iff a state is chosen
func TestBuildSearchQuery_Region(t *testing.T) {
	tests := []struct {
		region string
		want   bool
	}{
		{"", false},
		{RegionAll, false},
		{"california", true},
		{"new york", true},
	}

	for _, tt := range tests {
		values := parseQuery(t, BuildSearchQuery(criteria(models.SearchFilters{Region: tt.region})))
		if got := values.Has("location_state"); got != tt.want {
			t.Errorf("region %q: location_state present = %v, want %v", tt.region, got, tt.want)
		}
		if tt.want && values.Get("location_state") != tt.region {
			t.Errorf("location_state = %q, want %q", values.Get("location_state"), tt.region)
		}
	}
}

// TestBuildSearchQuery_FrontPages verifies the flag is omitted, not sent as false
func TestBuildSearchQuery_FrontPages(t *testing.T) {
	on := parseQuery(t, BuildSearchQuery(criteria(models.SearchFilters{FrontPagesOnly: true})))
	if got := on.Get("front_pages_only"); got != "true" {
		t.Errorf("front_pages_only = %q, want true", got)
	}

	off := BuildSearchQuery(criteria(models.SearchFilters{FrontPagesOnly: false}))
	if strings.Contains(off, "front_pages_only") {
		t.Errorf("BuildSearchQuery() = %q, want no front_pages_only", off)
	}
}

// TestBuildSearchQuery_Deterministic verifies identical criteria give identical URLs (cache keys)
func TestBuildSearchQuery_Deterministic(t *testing.T) {
	f := models.SearchFilters{Region: "ohio", Keyword: "fire", FrontPagesOnly: true, Limit: 10}
	if a, b := BuildSearchQuery(criteria(f)), BuildSearchQuery(criteria(f)); a != b {
		t.Errorf("BuildSearchQuery() not deterministic: %q vs %q", a, b)
	}
}

// TestBuildSearchURL verifies the endpoint is joined without double-encoding
func TestBuildSearchURL(t *testing.T) {
	u := BuildSearchURL("", criteria(models.SearchFilters{Limit: 25}))
	if !strings.HasPrefix(u, DefaultBaseURL+"?") {
		t.Errorf("BuildSearchURL() = %q, want prefix %q", u, DefaultBaseURL+"?")
	}

	parsed, err := url.Parse(u)
	if err != nil {
		t.Fatalf("url.Parse(%q) error = %v", u, err)
	}
	if parsed.Host != "www.loc.gov" {
		t.Errorf("host = %q, want www.loc.gov", parsed.Host)
	}
	if got := parsed.Query().Get("start_date"); got != "1924-10-12" {
		t.Errorf("start_date = %q, want 1924-10-12", got)
	}

	custom := BuildSearchURL("http://127.0.0.1:8080/search/", criteria(models.SearchFilters{}))
	if !strings.HasPrefix(custom, "http://127.0.0.1:8080/search/?") {
		t.Errorf("BuildSearchURL() = %q, want custom endpoint", custom)
	}

	t.Logf("Generated URL: %s", u)
}

// TestBuildKnownGoodURL verifies the example query follows the configured endpoint
func TestBuildKnownGoodURL(t *testing.T) {
	tests := []struct {
		baseURL string
		want    string
	}{
		{"", KnownGoodURL},
		{DefaultBaseURL, KnownGoodURL},
		{"http://127.0.0.1:8080/search/", "http://127.0.0.1:8080/search/?" + KnownGoodQuery},
	}

	for _, tt := range tests {
		if got := BuildKnownGoodURL(tt.baseURL); got != tt.want {
			t.Errorf("BuildKnownGoodURL(%q) = %q, want %q", tt.baseURL, got, tt.want)
		}
	}

	values := parseQuery(t, KnownGoodQuery)
	if values.Get("qs") != "cat" || values.Get("location_state") != "california" || values.Get("fo") != "json" {
		t.Errorf("KnownGoodQuery = %q, missing documented parameters", KnownGoodQuery)
	}
}

// TestValidRegion covers the sentinel, known states and unknown names
func TestValidRegion(t *testing.T) {
	tests := []struct {
		region string
		want   bool
	}{
		{"", true},
		{RegionAll, true},
		{"west virginia", true},
		{"West Virginia", false},
		{"atlantis", false},
	}

	for _, tt := range tests {
		if got := ValidRegion(tt.region); got != tt.want {
			t.Errorf("ValidRegion(%q) = %v, want %v", tt.region, got, tt.want)
		}
	}
	if len(Regions) != 50 {
		t.Errorf("len(Regions) = %d, want 50", len(Regions))
	}
}
