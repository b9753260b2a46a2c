package models

// FailureKind classifies how a single archive request failed
type FailureKind string

const (
	FailureNone                  FailureKind = ""
	FailureTransport             FailureKind = "transport"
	FailureHTTPStatus            FailureKind = "http_status"
	FailureUnexpectedContentType FailureKind = "unexpected_content_type"
	FailureMalformedPayload      FailureKind = "malformed_payload"
)

// Diagnostic records how one request succeeded or failed.
// URL is always populated, even on success.
type Diagnostic struct {
	OK          bool        `json:"ok"`
	Kind        FailureKind `json:"kind,omitempty"`
	Status      *int        `json:"status,omitempty"` // nil for transport failures
	ContentType string      `json:"content_type,omitempty"`
	Error       string      `json:"error,omitempty"`
	Snippet     string      `json:"snippet,omitempty"`    // body prefix for HTML/error responses
	PageTitle   string      `json:"page_title,omitempty"` // <title> of an HTML body, if any
	URL         string      `json:"url"`
}

// HasStatus reports whether the diagnostic carries the given HTTP status
func (d Diagnostic) HasStatus(code int) bool {
	return d.Status != nil && *d.Status == code
}

// Outcome is the result of one archive request: a parsed JSON payload on
// success, or only a diagnostic on failure
type Outcome struct {
	Payload    any        `json:"payload,omitempty"`
	Diagnostic Diagnostic `json:"diagnostic"`
}

// OK reports whether the request produced a parsed payload
func (o Outcome) OK() bool {
	return o.Diagnostic.OK
}
