package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thesavant42/thisday/internal/models"
)

// ExportScanToMarkdown writes a scan result to a markdown file in dir and
// returns the file path. The file name carries the target date and a timestamp.
func ExportScanToMarkdown(dir string, month time.Month, day int, res models.ScanResult) (string, error) {
	timestamp := time.Now().Format("2006-01-02-150405")
	filename := filepath.Join(dir, fmt.Sprintf("thisday-%02d-%02d-%s.md", int(month), day, timestamp))

	if err := os.WriteFile(filename, []byte(ScanMarkdown(month, day, res)), 0644); err != nil {
		return "", fmt.Errorf("failed to write markdown file: %w", err)
	}
	return filename, nil
}

// ScanMarkdown renders a scan result as markdown
func ScanMarkdown(month time.Month, day int, res models.ScanResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# This day in history: %s %d\n\n", month, day))
	sb.WriteString(fmt.Sprintf("**Requests:** %d\n", res.Requests))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	if !res.Found() {
		sb.WriteString("No exact-date page was found.\n")
		if d := res.Diagnostic; !d.OK && d.Error != "" {
			sb.WriteString(fmt.Sprintf("\n**Last error:** %s\n", d.Error))
			if d.URL != "" {
				sb.WriteString(fmt.Sprintf("**Query:** <%s>\n", d.URL))
			}
		}
		return sb.String()
	}

	r := res.Record
	sb.WriteString(fmt.Sprintf("## %d: %s\n\n", res.Year, escapeMarkdown(r.Title())))

	sb.WriteString("| Field | Value |\n")
	sb.WriteString("|-------|-------|\n")
	row := func(label, value string) {
		if value != "" {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", label, escapeMarkdown(value)))
		}
	}
	row("Date", r.DateField())
	row("Window", res.Window.String())
	row("Exact matches", fmt.Sprintf("%d", res.MatchCount))
	if link := r.Link(); link != "" {
		row("Item", fmt.Sprintf("[%s](%s)", link, link))
	}
	if img := r.ImageURL(); img != "" {
		row("Image", fmt.Sprintf("[image](%s)", img))
	}
	row("Query", fmt.Sprintf("<%s>", res.URL))

	if snippet := r.Snippet(models.DefaultSnippetChars); snippet != "" {
		sb.WriteString("\n> " + snippet + "\n")
	}
	return sb.String()
}

// escapeMarkdown keeps table cells intact
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
