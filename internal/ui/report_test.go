package ui

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesavant42/thisday/internal/models"
)

func TestParseMonthDay(t *testing.T) {
	tests := []struct {
		input     string
		wantYear  int
		wantMonth time.Month
		wantDay   int
		wantErr   bool
	}{
		{"10-15", 0, time.October, 15, false},
		{" 02-29 ", 0, time.February, 29, false},
		{"1924-10-15", 1924, time.October, 15, false},
		{"02-30", 0, 0, 0, true},
		{"13-01", 0, 0, 0, true},
		{"October 15", 0, 0, 0, true},
		{"", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			year, month, day, err := ParseMonthDay(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, year)
			assert.Equal(t, tt.wantMonth, month)
			assert.Equal(t, tt.wantDay, day)
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "10-15", sanitizeInput("10\x00-15\x1b"))
	assert.Equal(t, "a\tb", sanitizeInput("a\tb"))
}

func TestHint(t *testing.T) {
	status429 := 429
	status500 := 500

	assert.Contains(t, Hint(models.Diagnostic{Kind: models.FailureHTTPStatus, Status: &status429}), "rate-limited")
	assert.Contains(t, Hint(models.Diagnostic{Kind: models.FailureUnexpectedContentType}), "rate-limited")
	assert.Contains(t, Hint(models.Diagnostic{OK: true}), "front pages only")
	assert.Contains(t, Hint(models.Diagnostic{Kind: models.FailureTransport}), "known-good")
	assert.Empty(t, Hint(models.Diagnostic{Kind: models.FailureHTTPStatus, Status: &status500}))
}

func TestRenderRecord(t *testing.T) {
	out := RenderRecord(models.Record{
		"title":     "The San Francisco call",
		"date":      "1924-10-15",
		"url":       "https://www.loc.gov/resource/sn85066387/1924-10-15/ed-1/",
		"full_text": "EXTRA   EDITION",
	})

	assert.Contains(t, out, "The San Francisco call")
	assert.Contains(t, out, "1924-10-15")
	assert.Contains(t, out, "EXTRA EDITION")
	assert.Contains(t, out, "No image_url found")
}

func TestRenderDiagnostic(t *testing.T) {
	status := 429
	out := RenderDiagnostic(models.Diagnostic{
		Kind:      models.FailureHTTPStatus,
		Status:    &status,
		Error:     "HTTP 429: Too Many Requests",
		PageTitle: "Slow down",
		URL:       "https://archive.test/",
		Snippet:   "<html>",
	})

	assert.Contains(t, out, "HTTP 429: Too Many Requests")
	assert.Contains(t, out, "429")
	assert.Contains(t, out, "Slow down")
	assert.Contains(t, out, "https://archive.test/")

	assert.Contains(t, RenderDiagnostic(models.Diagnostic{}), "Request failed")
}

func TestWriteScanResult(t *testing.T) {
	var found bytes.Buffer
	WriteScanResult(&found, models.ScanResult{
		Year:       1950,
		Record:     models.Record{"title": "Evening star"},
		URL:        "https://archive.test/?start_date=1950-10-12",
		MatchCount: 2,
		Requests:   12,
		Diagnostic: models.Diagnostic{OK: true},
	})
	assert.Contains(t, found.String(), "Found a hit in 1950")
	assert.Contains(t, found.String(), "12 request(s)")
	assert.Contains(t, found.String(), "Evening star")

	status := 429
	var missed bytes.Buffer
	WriteScanResult(&missed, models.ScanResult{
		Requests: 28,
		Diagnostic: models.Diagnostic{
			Kind:   models.FailureHTTPStatus,
			Status: &status,
			Error:  "HTTP 429: Too Many Requests",
			URL:    "https://archive.test/",
		},
	})
	assert.Contains(t, missed.String(), "No hit found (or blocked) after 28 request(s).")
	assert.Contains(t, missed.String(), "HTTP 429: Too Many Requests")
	assert.Contains(t, missed.String(), "rate-limited")
}

func TestExportScanToMarkdown(t *testing.T) {
	res := models.ScanResult{
		Year:       1950,
		Record:     models.Record{"title": "Evening star | Washington", "date": "1950-10-15", "url": "https://www.loc.gov/resource/sn1/1950-10-15/ed-1/"},
		URL:        "https://archive.test/?start_date=1950-10-12",
		MatchCount: 1,
		Requests:   12,
	}

	path, err := ExportScanToMarkdown(t.TempDir(), time.October, 15, res)
	require.NoError(t, err)
	assert.Contains(t, path, "thisday-10-15-")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	md := string(data)
	assert.Contains(t, md, "# This day in history: October 15")
	assert.Contains(t, md, "## 1950: Evening star \\| Washington")
	assert.Contains(t, md, "| Exact matches | 1 |")
	assert.Contains(t, md, "<https://archive.test/?start_date=1950-10-12>")
}

func TestScanMarkdown_NotFound(t *testing.T) {
	md := ScanMarkdown(time.February, 29, models.ScanResult{
		Requests:   28,
		Diagnostic: models.Diagnostic{Error: "HTTP 429: Too Many Requests", URL: "https://archive.test/"},
	})
	assert.Contains(t, md, "No exact-date page was found.")
	assert.Contains(t, md, "HTTP 429: Too Many Requests")
}
