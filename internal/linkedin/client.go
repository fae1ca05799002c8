// Package linkedin implements the REST client for LinkedIn's versioned
// posting API: post creation, two-phase image upload and the socialActions
// comment sub-resource. Every call is a single attempt with a fixed header
// set; failures surface as *APIError.
package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"linkedinctl/internal/settings"
	"linkedinctl/pkg/logging"
)

const (
	// APIBase is the root of LinkedIn's versioned REST API.
	APIBase = "https://api.linkedin.com/rest"

	// APIVersion is the Linkedin-Version header value pinned by this client.
	APIVersion = "202601"

	// restliProtocolVersion is required on every versioned REST call.
	restliProtocolVersion = "2.0.0"

	// defaultTimeout bounds every API request.
	defaultTimeout = 30 * time.Second
)

// TextWarnThreshold is the commentary length above which LinkedIn is known to
// silently truncate posts.
const TextWarnThreshold = 3000

// APIError is a non-2xx response from the LinkedIn API.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("API request failed: %s", e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is supports errors.Is(err, &APIError{}) checks regardless of fields.
func (e *APIError) Is(target error) bool {
	_, ok := target.(*APIError)
	return ok
}

// IsPermissionDenied reports whether err is an API rejection for a missing
// scope. Reading posts and comments needs r_member_social, which most
// applications do not have; callers degrade informationally on this.
func IsPermissionDenied(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusForbidden || apiErr.StatusCode == http.StatusUnauthorized
}

// Config configures a Client.
type Config struct {
	// Settings is the loaded credential record.
	Settings settings.Record

	// HTTPClient is an optional custom HTTP client (used by tests).
	HTTPClient *http.Client

	// BaseURL overrides the API base (used by tests). Empty means APIBase.
	BaseURL string

	// Diag receives advisory WARNING=/VERIFIED= lines. Defaults to os.Stderr.
	Diag io.Writer
}

// Client issues authenticated requests against the LinkedIn REST API on
// behalf of one member. It is stateless beyond its configuration.
type Client struct {
	rec        settings.Record
	httpClient *http.Client
	baseURL    string
	diag       io.Writer
}

// NewClient creates a client with defaults applied.
func NewClient(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = APIBase
	}
	if cfg.Diag == nil {
		cfg.Diag = os.Stderr
	}

	return &Client{
		rec:        cfg.Settings,
		httpClient: cfg.HTTPClient,
		baseURL:    cfg.BaseURL,
		diag:       cfg.Diag,
	}
}

// PersonURN returns the authenticated member's actor URN.
func (c *Client) PersonURN() string {
	return c.rec.PersonURN
}

// do issues one API request with the fixed header set. payload, when non-nil,
// is JSON-encoded. Non-2xx responses come back as *APIError.
func (c *Client) do(ctx context.Context, method, requestURL string, payload any) (http.Header, []byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.rec.AccessToken)
	req.Header.Set("X-Restli-Protocol-Version", restliProtocolVersion)
	req.Header.Set("Linkedin-Version", APIVersion)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.Debug("LinkedInAPI", "%s %s", method, requestURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading API response: %w", err)
	}

	logging.Debug("LinkedInAPI", "%s %s -> %s (%d bytes)", method, requestURL, resp.Status, len(respBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	return resp.Header, respBody, nil
}

// escapeURN percent-encodes a URN for use as a path segment. LinkedIn
// requires full encoding, including colons, commas and parentheses.
func escapeURN(urn string) string {
	return strings.ReplaceAll(url.QueryEscape(urn), "+", "%20")
}

// textLength counts characters, not bytes.
func textLength(s string) int {
	return utf8.RuneCountInString(s)
}

// textTail returns the last n characters of s.
func textTail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
