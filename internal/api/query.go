package api

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/thesavant42/thisday/internal/models"
)

const (
	// DefaultBaseURL is the Chronicling America collection search endpoint on loc.gov
	DefaultBaseURL = "https://www.loc.gov/collections/chronicling-america/"

	// RegionAll disables the state filter
	RegionAll = "ALL"

	documentLevel = "page"
	minLimit      = 1
	maxLimit      = 100
)

// KnownGoodQuery is the documented example query (Oct-Dec 1924, "cat", California).
// If this fails the archive is unreachable or we are blocked.
const KnownGoodQuery = "dl=page&end_date=1924-12-31&qs=cat&start_date=1924-10-01&location_state=california&fo=json"

// KnownGoodURL is KnownGoodQuery against the loc.gov endpoint
const KnownGoodURL = DefaultBaseURL + "?" + KnownGoodQuery

// BuildKnownGoodURL returns KnownGoodQuery against baseURL ("" means DefaultBaseURL)
func BuildKnownGoodURL(baseURL string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return baseURL + "?" + KnownGoodQuery
}

// Regions lists the location_state values the collection accepts
var Regions = []string{
	"alabama", "alaska", "arizona", "arkansas", "california", "colorado", "connecticut", "delaware",
	"florida", "georgia", "hawaii", "idaho", "illinois", "indiana", "iowa", "kansas", "kentucky",
	"louisiana", "maine", "maryland", "massachusetts", "michigan", "minnesota", "mississippi",
	"missouri", "montana", "nebraska", "nevada", "new hampshire", "new jersey", "new mexico",
	"new york", "north carolina", "north dakota", "ohio", "oklahoma", "oregon", "pennsylvania",
	"rhode island", "south carolina", "south dakota", "tennessee", "texas", "utah", "vermont",
	"virginia", "washington", "west virginia", "wisconsin", "wyoming",
}

// ValidRegion reports whether region is RegionAll, empty, or a known state name
func ValidRegion(region string) bool {
	if region == "" || region == RegionAll {
		return true
	}
	return slices.Contains(Regions, region)
}

// ClampLimit restricts a result count to what the API accepts
func ClampLimit(n int) int {
	if n < minLimit {
		return minLimit
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}

// BuildSearchQuery constructs the raw query string for a collection search.
// Returns the query string WITHOUT the leading '?'.
// Optional parameters are omitted entirely rather than sent empty or "false":
// the API treats presence of front_pages_only as true.
func BuildSearchQuery(c models.SearchCriteria) string {
	params := url.Values{}
	params.Set("fo", "json")
	params.Set("dl", documentLevel)
	params.Set("start_date", c.Window.Start.Format(models.DateLayout))
	params.Set("end_date", c.Window.End.Format(models.DateLayout))
	params.Set("c", strconv.Itoa(ClampLimit(c.Limit)))

	if c.FrontPagesOnly {
		params.Set("front_pages_only", "true")
	}

	// Keyword search is all-or-nothing: qs, ops and searchType travel together
	if tokens := strings.Fields(c.Keyword); len(tokens) > 0 {
		params.Set("qs", strings.Join(tokens, " "))
		params.Set("ops", "AND")
		params.Set("searchType", "Advanced")
	}

	if c.Region != "" && c.Region != RegionAll {
		params.Set("location_state", c.Region)
	}

	return params.Encode()
}

// BuildSearchURL joins the endpoint and the encoded query
func BuildSearchURL(baseURL string, c models.SearchCriteria) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return baseURL + "?" + BuildSearchQuery(c)
}
