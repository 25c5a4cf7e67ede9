// Package httpclient implements the HTTP transport for the portal's
// /api/3/action namespace: URL building, authorization, JSON encoding and
// decoding, and retry tuning.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/ckanta-io/ckanta-client/internal/constants"
	"github.com/ckanta-io/ckanta-client/pkg/ckan"
)

// Client performs GET/POST calls against a portal's action endpoints. It
// owns no mutable state beyond its configuration; every call is stateless.
type Client struct {
	urlbase       string
	apikey        string
	actionSubpath string
	userAgent     string
	logger        ckan.Logger
	debug         bool
	httpClient    *retryablehttp.Client
}

// Option configures a Client.
type Option func(*Client)

// WithActionSubpath overrides the default api/3/action namespace.
func WithActionSubpath(subpath string) Option {
	return func(c *Client) {
		c.actionSubpath = strings.Trim(subpath, "/")
	}
}

// WithRetryConfig enables retries for transient failures.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger ckan.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging through the configured logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHTTPTimeout overrides the default per-request timeout.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// NewClient creates a client for the portal at urlbase, authenticating
// every request with apikey. A trailing slash on urlbase is stripped so
// action URLs never carry duplicated separators.
func NewClient(urlbase, apikey string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0 // one-shot CLI; callers opt in via WithRetryConfig
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		urlbase:       strings.TrimRight(urlbase, "/"),
		apikey:        apikey,
		actionSubpath: constants.DefaultActionSubpath,
		httpClient:    retryClient,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// URLBase returns the configured portal base URL.
func (c *Client) URLBase() string {
	return c.urlbase
}

// APIKey returns the configured API key.
func (c *Client) APIKey() string {
	return c.apikey
}

// WithAPIKey returns a copy of the client bound to a different API key.
// The delegated dataset grant flow uses this to act as the target user.
func (c *Client) WithAPIKey(apikey string) *Client {
	clone := *c
	clone.apikey = apikey

	return &clone
}

// BuildActionURL returns the full URL for the named action.
func (c *Client) BuildActionURL(action string) string {
	return fmt.Sprintf("%s/%s/%s", c.urlbase, c.actionSubpath, action)
}

// Call performs an API request for the named action and returns the
// decoded JSON response unmodified. A GET is made when asGet is true and
// the payload is ignored; otherwise a POST with the payload JSON-encoded.
// POST with a nil payload fails before any network I/O.
func (c *Client) Call(ctx context.Context, action string, payload map[string]interface{}, asGet bool) (map[string]interface{}, error) {
	actionURL := c.BuildActionURL(action)

	var (
		req *retryablehttp.Request
		err error
	)

	if asGet {
		req, err = retryablehttp.NewRequestWithContext(ctx, http.MethodGet, actionURL, nil)
	} else {
		if payload == nil {
			return nil, ckan.ErrPayloadRequired
		}

		var body []byte

		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding payload for action %s: %w", action, err)
		}

		req, err = retryablehttp.NewRequestWithContext(ctx, http.MethodPost, actionURL, bytes.NewReader(body))
		if err == nil {
			req.Header.Set("Content-Type", "application/json; charset=utf8")
		}
	}

	if err != nil {
		return nil, fmt.Errorf("building request for action %s: %w", action, err)
	}

	req.Header.Set("Authorization", c.apikey)
	req.Header.Set("Accept", "application/json")

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("api request", map[string]interface{}{
			"method": req.Method,
			"url":    actionURL,
			"action": action,
		})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing action %s: %w", action, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response for action %s: %w", action, err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("api response", map[string]interface{}{
			"action": action,
			"status": resp.StatusCode,
			"bytes":  len(body),
		})
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &ckan.APIError{
			StatusCode: resp.StatusCode,
			Action:     action,
			Message:    errorMessage(body),
		}
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding response for action %s: %w", action, err)
	}

	return result, nil
}

// errorMessage pulls the portal's error message out of an error body, if
// one is present. The portal wraps failures as {"error": {"message": ...}}.
func errorMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"__type"`
		} `json:"error"`
	}

	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}

	if envelope.Error.Message != "" {
		return envelope.Error.Message
	}

	return envelope.Error.Type
}
