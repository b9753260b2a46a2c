package api

import (
	"errors"

	"github.com/thesavant42/thisday/internal/models"
)

// Sentinel errors for the fetch failure taxonomy, matched with errors.Is
var (
	ErrTransport             = errors.New("transport failure")
	ErrHTTPStatus            = errors.New("http error status")
	ErrUnexpectedContentType = errors.New("unexpected content type")
	ErrMalformedPayload      = errors.New("malformed JSON payload")
)

// FetchError wraps the diagnostic of a failed archive request
type FetchError struct {
	Kind       models.FailureKind
	Diagnostic models.Diagnostic
}

func (e *FetchError) Error() string {
	if e.Diagnostic.Error != "" {
		return e.Diagnostic.Error
	}
	return string(e.Kind)
}

func (e *FetchError) Unwrap() error {
	switch e.Kind {
	case models.FailureTransport:
		return ErrTransport
	case models.FailureHTTPStatus:
		return ErrHTTPStatus
	case models.FailureUnexpectedContentType:
		return ErrUnexpectedContentType
	case models.FailureMalformedPayload:
		return ErrMalformedPayload
	}
	return nil
}

// OutcomeErr returns nil for a successful outcome, otherwise a *FetchError
func OutcomeErr(o models.Outcome) error {
	if o.OK() {
		return nil
	}
	return &FetchError{Kind: o.Diagnostic.Kind, Diagnostic: o.Diagnostic}
}

// LooksRateLimited reports whether a diagnostic suggests the archive is
// throttling or blocking us: 403/429, or an HTML page where JSON was expected
func LooksRateLimited(d models.Diagnostic) bool {
	if d.HasStatus(429) || d.HasStatus(403) {
		return true
	}
	return d.Kind == models.FailureUnexpectedContentType
}
