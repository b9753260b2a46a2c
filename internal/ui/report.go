package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/thesavant42/thisday/internal/api"
	"github.com/thesavant42/thisday/internal/models"
)

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println(successStyle.Render(message))
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Println(warningStyle.Render(message))
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Println(errorStyle.Render("Error: " + message))
}

// RenderRecord formats a found record: title, date field, link, image and snippet
func RenderRecord(r models.Record) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(r.Title()))
	b.WriteString("\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(labelStyle.Render(label+": ") + RenderNormal(value) + "\n")
	}
	field("Date field", r.DateField())
	field("Item", r.Link())
	if img := r.ImageURL(); img != "" {
		field("Image", img)
	} else {
		b.WriteString(mutedStyle.Render("No image_url found for this result (the item link may still show the page).") + "\n")
	}

	if snippet := r.Snippet(models.DefaultSnippetChars); snippet != "" {
		b.WriteString("\n" + labelStyle.Render("OCR / snippet:") + "\n")
		b.WriteString(RenderNormal(snippet))
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderDiagnostic formats how a request failed, including the body snippet
func RenderDiagnostic(d models.Diagnostic) string {
	var b strings.Builder

	msg := d.Error
	if msg == "" {
		msg = "Request failed"
	}
	b.WriteString(errorStyle.Render(msg) + "\n")
	if d.Status != nil {
		b.WriteString(labelStyle.Render("Status: ") + RenderNormal(fmt.Sprintf("%d", *d.Status)) + "\n")
	}
	if d.ContentType != "" {
		b.WriteString(labelStyle.Render("Content-Type: ") + RenderNormal(d.ContentType) + "\n")
	}
	if d.PageTitle != "" {
		b.WriteString(labelStyle.Render("Page title: ") + RenderNormal(d.PageTitle) + "\n")
	}
	if d.URL != "" {
		b.WriteString(labelStyle.Render("URL: ") + RenderNormal(d.URL) + "\n")
	}
	if d.Snippet != "" {
		b.WriteString("\n" + mutedStyle.Render(d.Snippet) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Hint returns troubleshooting advice for a failed or empty result, or ""
func Hint(d models.Diagnostic) string {
	switch {
	case api.LooksRateLimited(d):
		return "You are likely rate-limited or blocked (HTTP 429/403 or an HTML page). Wait a few minutes and retry."
	case d.OK:
		return "Valid JSON response but no exact-date match. Try turning off front pages only or removing state/keyword filters."
	case d.Kind == models.FailureTransport:
		return "The archive could not be reached. Run the known-good check to confirm connectivity."
	}
	return ""
}

// WriteScanResult prints a probe or scan result to w
func WriteScanResult(w io.Writer, res models.ScanResult) {
	if res.Found() {
		fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("Found a hit in %d (%d exact match(es), window %s, %d request(s)).",
			res.Year, res.MatchCount, res.Window, res.Requests)))
		fmt.Fprintln(w, labelStyle.Render("Query used: ")+RenderNormal(res.URL))
		fmt.Fprintln(w, RenderRecord(res.Record))
		return
	}

	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("No hit found (or blocked) after %d request(s).", res.Requests)))
	if res.Diagnostic.URL != "" && !res.Diagnostic.OK {
		fmt.Fprintln(w, RenderDiagnostic(res.Diagnostic))
	}
	if hint := Hint(res.Diagnostic); hint != "" {
		fmt.Fprintln(w, mutedStyle.Render(hint))
	}
}
