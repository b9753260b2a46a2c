package api

import (
	"compress/gzip"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/thesavant42/thisday/internal/models"
	"golang.org/x/net/html/charset"
)

const (
	requestTimeout = 30 * time.Second
	snippetChars   = 500      // error bodies are human-readable HTML on blocks/rate limits
	maxBodyBytes   = 32 << 20 // a page of 100 results with OCR text stays well below this
	userAgent      = "thisday/0.2 (Chronicling America date scanner)"
)

// Client performs archive searches through a cache and pacing policy
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	policy     Policy
	logger     *log.Logger

	networkCalls atomic.Int64
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at a different collection endpoint
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithPolicy sets the cache and pacing policy
func WithPolicy(p Policy) Option {
	return func(c *Client) { c.policy = p }
}

// WithLogger enables logging
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithUserAgent overrides the identifying User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates an archive client with a 30 second timeout and no cache or pacing
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL:   DefaultBaseURL,
		userAgent: userAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the collection endpoint used by FetchWindow
func (c *Client) BaseURL() string {
	return c.baseURL
}

// NetworkCalls returns how many requests actually went over the wire
func (c *Client) NetworkCalls() int64 {
	return c.networkCalls.Load()
}

// FetchWindow encodes the criteria into a search URL and fetches it
func (c *Client) FetchWindow(ctx context.Context, criteria models.SearchCriteria) models.Outcome {
	return c.Fetch(ctx, BuildSearchURL(c.baseURL, criteria))
}

// Fetch issues one GET for rawURL and classifies the result.
// Identical URLs within the cache TTL return the previously observed outcome
// without touching the network. No retries are attempted.
func (c *Client) Fetch(ctx context.Context, rawURL string) models.Outcome {
	if c.policy.Cache != nil {
		if cached, ok := c.policy.Cache.Get(ctx, rawURL); ok {
			if c.logger != nil {
				c.logger.Debug("Cache hit", "url", rawURL, "ok", cached.OK())
			}
			return cached
		}
	}

	if c.policy.Pacer != nil {
		if err := c.policy.Pacer.Wait(ctx); err != nil {
			return transportFailure(rawURL, err)
		}
	}

	outcome := c.do(ctx, rawURL)

	if c.logger != nil && !outcome.OK() {
		d := outcome.Diagnostic
		c.logger.Warn("Archive request failed", "kind", d.Kind, "status", statusValue(d), "error", d.Error, "url", rawURL)
	}

	// A cancelled call says nothing about the archive, so it is never cached
	if c.policy.Cache != nil && ctx.Err() == nil && (outcome.OK() || c.policy.CacheFailures) {
		c.policy.Cache.Set(ctx, rawURL, outcome)
	}

	return outcome
}

func (c *Client) do(ctx context.Context, rawURL string) models.Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return transportFailure(rawURL, fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	if c.logger != nil {
		c.logger.Info("GET", "endpoint", rawURL)
	}

	c.networkCalls.Add(1)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportFailure(rawURL, err)
	}
	defer resp.Body.Close()

	status := resp.StatusCode
	contentType := resp.Header.Get("Content-Type")
	diag := models.Diagnostic{
		Status:      &status,
		ContentType: contentType,
		URL:         rawURL,
	}

	if status < 200 || status > 299 {
		diag.Kind = models.FailureHTTPStatus
		diag.Error = fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
		// The body is best effort: a failed read leaves the snippet empty
		if raw, err := readBody(resp); err == nil {
			text := decodeText(raw, contentType)
			diag.Snippet = truncate(text, snippetChars)
			diag.PageTitle = htmlTitle(text)
		}
		return models.Outcome{Diagnostic: diag}
	}

	raw, err := readBody(resp)
	if err != nil {
		if isNetworkError(err) {
			return transportFailure(rawURL, fmt.Errorf("failed to read response: %w", err))
		}
		// The response arrived; a body that cannot be decoded is a broken payload
		diag.Kind = models.FailureMalformedPayload
		diag.Error = fmt.Sprintf("failed to decode response body: %v", err)
		return models.Outcome{Diagnostic: diag}
	}
	text := decodeText(raw, contentType)

	if !isJSONContentType(contentType) {
		diag.Kind = models.FailureUnexpectedContentType
		diag.Error = fmt.Sprintf("non-JSON response (Content-Type: %s)", contentType)
		diag.Snippet = truncate(text, snippetChars)
		diag.PageTitle = htmlTitle(text)
		return models.Outcome{Diagnostic: diag}
	}

	var payload any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		diag.Kind = models.FailureMalformedPayload
		diag.Error = fmt.Sprintf("JSON parse failed: %v", err)
		diag.Snippet = truncate(text, snippetChars)
		return models.Outcome{Diagnostic: diag}
	}

	diag.OK = true
	return models.Outcome{Payload: payload, Diagnostic: diag}
}

// readBody reads the whole body, transparently handling gzip
func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	contentEncoding := strings.ToLower(resp.Header.Get("Content-Encoding"))
	if strings.Contains(contentEncoding, "gzip") {
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		reader = gzReader
	}
	return io.ReadAll(io.LimitReader(reader, maxBodyBytes))
}

// decodeText converts a body to UTF-8 using the declared charset.
// Without a charset parameter the body is taken as UTF-8; invalid bytes become U+FFFD.
func decodeText(raw []byte, contentType string) string {
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		if label := params["charset"]; label != "" && !strings.EqualFold(label, "utf-8") {
			if enc, _ := charset.Lookup(label); enc != nil {
				if decoded, err := enc.NewDecoder().Bytes(raw); err == nil {
					return string(decoded)
				}
			}
		}
	}
	return strings.ToValidUTF8(string(raw), "�")
}

func isJSONContentType(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "json")
}

// htmlTitle extracts the <title> of an HTML page, "" for anything else
func htmlTitle(text string) string {
	if !strings.Contains(strings.ToLower(text), "<title") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}

func transportFailure(rawURL string, err error) models.Outcome {
	return models.Outcome{
		Diagnostic: models.Diagnostic{
			Kind:  models.FailureTransport,
			Error: describeTransportError(err),
			URL:   rawURL,
		},
	}
}

// isNetworkError reports whether a body read failed on the connection
// rather than in decoding what was received
func isNetworkError(err error) bool {
	var netErr net.Error
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &netErr)
}

// describeTransportError prefixes the error with its failure category
func describeTransportError(err error) string {
	var (
		netErr  net.Error
		dnsErr  *net.DNSError
		certErr *tls.CertificateVerificationError
		recErr  tls.RecordHeaderError
	)

	category := "connection"
	switch {
	case errors.Is(err, context.Canceled):
		category = "cancelled"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		category = "timeout"
	case errors.As(err, &dnsErr):
		category = "dns"
	case errors.As(err, &certErr), errors.As(err, &recErr):
		category = "tls"
	}
	return fmt.Sprintf("%s: %v", category, err)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func statusValue(d models.Diagnostic) int {
	if d.Status == nil {
		return 0
	}
	return *d.Status
}
