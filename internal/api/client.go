// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Configuration constants for the backend API.
const (
	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 15 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for
	// idempotent requests that hit transient errors.
	DefaultMaxRetries = 3

	// retryBaseDelay is the base delay for exponential backoff.
	retryBaseDelay = 500 * time.Millisecond

	// retryMaxDelay is the maximum delay for exponential backoff.
	retryMaxDelay = 10 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit

	userAgent = "clubdesk/0.1.0"
)

// Shared HTTP client with connection pooling for all backend requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrUnauthorized indicates the token is missing, invalid, or expired.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the account lacks the role for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates too many requests were made.
	ErrRateLimited = errors.New("rate limited")
)

// APIError represents an error response from the backend.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error (HTTP %d)", e.Status)
}

// errorBody is the backend's error envelope. The backend is inconsistent
// about the field name, so both are tried.
type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// =============================================================================
// CLIENT
// =============================================================================

// TokenSource returns the current bearer token, or empty when logged out.
type TokenSource func() string

// Client is a client for the club platform REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokenFn    TokenSource
	maxRetries int

	// onUnauthorized fires once per 401 response, except for the login and
	// register endpoints where a 401 just means bad credentials.
	onUnauthorized func()
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: sharedHTTPClient,
		tokenFn:    func() string { return "" },
		maxRetries: DefaultMaxRetries,
	}
}

// WithTokenSource sets the bearer token source.
func (c *Client) WithTokenSource(fn TokenSource) *Client {
	if fn != nil {
		c.tokenFn = fn
	}
	return c
}

// WithHTTPClient sets a custom HTTP client (tests).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithTimeout overrides the per-request timeout. The shared transport and
// its connection pool are kept.
func (c *Client) WithTimeout(d time.Duration) *Client {
	if d > 0 && d != c.httpClient.Timeout {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
	return c
}

// WithMaxRetries sets the maximum number of retry attempts for GETs.
func (c *Client) WithMaxRetries(n int) *Client {
	c.maxRetries = n
	return c
}

// OnUnauthorized registers the cross-cutting 401 hook.
func (c *Client) OnUnauthorized(fn func()) *Client {
	c.onUnauthorized = fn
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// REQUEST/RESPONSE LOGGING (without sensitive data)
// =============================================================================

// logRequest logs an API request. Headers and bodies are never logged; they
// carry the bearer token and member data.
func logRequest(req *http.Request) {
	log.Printf("API Request: %s %s", req.Method, req.URL.Path)
}

// logResponse logs the status code and duration, nothing else.
func logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("API Response: %d (%v)", resp.StatusCode, duration)
}

// =============================================================================
// CORE REQUEST PATH
// =============================================================================

// requestOpts tweak per-call behavior for the auth endpoints.
type requestOpts struct {
	// skipAuthHook suppresses the OnUnauthorized hook; a 401 from the login
	// endpoint means bad credentials, not an expired session.
	skipAuthHook bool
	// skipToken omits the Authorization header entirely.
	skipToken bool
}

// get performs a GET and decodes the JSON response into out. GETs are
// idempotent and retried on 5xx and network errors with exponential backoff.
func (c *Client) get(ctx context.Context, path string, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(calculateBackoff(attempt - 1)):
			}
		}

		err := c.do(ctx, http.MethodGet, path, nil, out, requestOpts{})
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out, requestOpts{})
}

func (c *Client) put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, in, out, requestOpts{})
}

func (c *Client) patch(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPatch, path, in, out, requestOpts{})
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, requestOpts{})
}

// do performs a single request. in, when non-nil, is JSON-encoded as the
// body; out, when non-nil, receives the decoded response.
func (c *Client) do(ctx context.Context, method, path string, in, out any, opts requestOpts) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req, opts)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out, opts)
}

// send executes a prepared request and handles the response. Used by do and
// by the multipart upload path.
func (c *Client) send(req *http.Request, out any, opts requestOpts) error {
	logRequest(req)
	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	logResponse(resp, time.Since(startTime))

	respBody, err := readResponse(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.handleErrorResponse(resp.StatusCode, respBody)
		if resp.StatusCode == http.StatusUnauthorized && !opts.skipAuthHook && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// setHeaders sets the required headers for API requests.
func (c *Client) setHeaders(req *http.Request, opts requestOpts) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	if opts.skipToken {
		return
	}
	if token := c.tokenFn(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// handleErrorResponse converts HTTP error responses to Go errors.
func (c *Client) handleErrorResponse(statusCode int, body []byte) error {
	message := ""
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		message = eb.Message
		if message == "" {
			message = eb.Detail
		}
	}

	switch statusCode {
	case http.StatusUnauthorized:
		if message != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, message)
		}
		return ErrUnauthorized
	case http.StatusForbidden:
		if message != "" {
			return fmt.Errorf("%w: %s", ErrForbidden, message)
		}
		return ErrForbidden
	case http.StatusNotFound:
		if message != "" {
			return fmt.Errorf("%w: %s", ErrNotFound, message)
		}
		return ErrNotFound
	case http.StatusTooManyRequests:
		if message != "" {
			return fmt.Errorf("%w: %s", ErrRateLimited, message)
		}
		return ErrRateLimited
	default:
		return &APIError{Status: statusCode, Message: message}
	}
}

// isRetryable determines if an error should trigger a retry.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500 && apiErr.Status < 600
	}
	// Anything else from do() at this point is a network error.
	return !errors.Is(err, ErrUnauthorized) &&
		!errors.Is(err, ErrForbidden) &&
		!errors.Is(err, ErrNotFound)
}

// calculateBackoff returns the delay before the next retry.
func calculateBackoff(attempt int) time.Duration {
	delay := retryBaseDelay * time.Duration(1<<uint(attempt))
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	return delay
}
