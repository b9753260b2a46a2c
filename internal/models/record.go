package models

import "strings"

// DefaultSnippetChars is the snippet length used for display
const DefaultSnippetChars = 700

// Record is a single archive search result, kept as the decoded JSON object.
// Only a handful of fields are interpreted; everything else passes through untouched.
type Record map[string]any

// Title returns the record title, or "Untitled"
func (r Record) Title() string {
	if s := scalarString(r["title"]); s != "" {
		return s
	}
	return "Untitled"
}

// DateField returns the raw date string shown next to a record.
// This is the archive's own field, not the resolved date.
func (r Record) DateField() string {
	for _, key := range []string{"date", "created_published_date", "created_published"} {
		if s := strings.TrimSpace(scalarString(r[key])); s != "" {
			return s
		}
	}
	return ""
}

// ImageURL returns the first image reference, if any
func (r Record) ImageURL() string {
	switch v := r["image_url"].(type) {
	case []any:
		if len(v) > 0 {
			if img, ok := v[0].(string); ok {
				return strings.TrimSpace(img)
			}
		}
	case string:
		return strings.TrimSpace(v)
	}
	return ""
}

// Link returns the item URL when it is an absolute http(s) link
func (r Record) Link() string {
	if s, ok := r["url"].(string); ok && strings.HasPrefix(s, "http") {
		return s
	}
	return ""
}

// Snippet returns OCR full text, falling back to the first description,
// with whitespace collapsed and truncated to max runes
func (r Record) Snippet(max int) string {
	if max <= 0 {
		max = DefaultSnippetChars
	}
	if txt, ok := r["full_text"].(string); ok && strings.TrimSpace(txt) != "" {
		return truncateRunes(strings.Join(strings.Fields(txt), " "), max)
	}
	switch desc := r["description"].(type) {
	case []any:
		if len(desc) > 0 {
			if first, ok := desc[0].(string); ok {
				return truncateRunes(strings.Join(strings.Fields(first), " "), max)
			}
		}
	case string:
		if strings.TrimSpace(desc) != "" {
			return truncateRunes(strings.Join(strings.Fields(desc), " "), max)
		}
	}
	return ""
}

// scalarString reads a string field that may also arrive as a one-element list
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) > 0 {
			if s, ok := t[0].(string); ok {
				return s
			}
		}
	case nil:
		return ""
	}
	return ""
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
