package models

// ScanResult is what a single-year probe or a backward scan reports.
// Year, Record and URL are set together or not at all.
type ScanResult struct {
	Year       int    // 0 when nothing was found
	Record     Record // first exact match in archive order
	URL        string // request URL that produced Record
	Diagnostic Diagnostic
	MatchCount int // exact matches in the winning year
	Window     DateWindow
	Requests   int // probes issued, cached ones included
}

// Found reports whether the scan located an exact-date record
func (r ScanResult) Found() bool {
	return r.Year != 0 && r.Record != nil && r.URL != ""
}
