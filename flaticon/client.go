// Package flaticon is a minimal HTTP client for the Flaticon v3 API:
// token exchange, paginated icon search, and asset download.
package flaticon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/cavaliercoder/grab"
)

const (
	defaultBaseURL = "https://api.flaticon.com/v3"
	defaultUA      = "flaticon-go/0.1 (+github.com/iconkit/flaticon-go)"

	// Upstream caps search pages at 100 items per request.
	maxPageSize = 100

	// Bound on how much of a response body is read for diagnostics.
	maxErrorBody = 1 << 20 // 1 MiB
)

// ErrNotAuthenticated is returned when Search or Download is called before
// a successful Authenticate.
var ErrNotAuthenticated = errors.New("flaticon: not authenticated (call Authenticate first)")

// Client talks to the Flaticon API. It holds the bearer token obtained by
// Authenticate for the lifetime of the process; the token is never
// persisted. Not safe for concurrent use.
type Client struct {
	baseURL   string
	ua        string
	http      *http.Client
	grab      *grab.Client
	logger    *slog.Logger
	pageDelay time.Duration

	token string
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (useful for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient sets a custom http.Client (e.g., with proxy or a different
// timeout). The same client is used for asset fetches.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.ua = ua }
}

// WithPageDelay sets the pause between search result pages. The upstream
// publishes no rate limit; the delay is cooperative pacing.
func WithPageDelay(d time.Duration) Option {
	return func(c *Client) { c.pageDelay = d }
}

// WithLogger enables request-level debug logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient constructs a Client with sane defaults. Every request carries
// a bounded timeout; override it through WithHTTPClient.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		ua:        defaultUA,
		http:      &http.Client{Timeout: 30 * time.Second},
		pageDelay: 200 * time.Millisecond,
	}
	for _, o := range opts {
		o(c)
	}
	c.grab = &grab.Client{UserAgent: c.ua, HTTPClient: c.http}
	return c
}

type authResponse struct {
	Token   string `json:"token"`
	Expires int64  `json:"expires"`
}

// Authenticate exchanges a long-lived API key for a temporal bearer token
// (valid roughly 24h) and caches it on the client. The upstream requires
// the key as a multipart form field named "apikey"; JSON and URL-encoded
// bodies are rejected. Any failure here is fatal for the run: there is no
// retry, and no other call works without the token.
func (c *Client) Authenticate(ctx context.Context, apiKey string) (string, error) {
	if apiKey == "" {
		return "", errors.New("flaticon: API key is empty")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("apikey", apiKey); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/app/authentication", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.ua)

	res, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	b, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	if res.StatusCode != http.StatusOK {
		return "", &AuthError{Status: res.StatusCode, Body: excerpt(b)}
	}
	var ar authResponse
	if err := json.Unmarshal(b, &ar); err != nil || ar.Token == "" {
		return "", &AuthError{Status: res.StatusCode, Reason: "response missing token", Body: excerpt(b)}
	}

	c.token = ar.Token
	c.debug("authenticated", slog.Int64("expires", ar.Expires))
	return ar.Token, nil
}

// get issues an authenticated GET against the API.
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	if c.token == "" {
		return nil, ErrNotAuthenticated
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.ua)
	c.debug("GET", slog.String("url", url))
	return c.http.Do(req)
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

// sleep pauses for d, returning early if ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
