package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/solace-cli/solace/internal/shared"
)

// Policy bundles the connection and retry settings for a [Client]. The zero
// value is usable; unset fields fall back to defaults.
type Policy struct {
	// BaseURLs is the ordered candidate origin list, primary first. See
	// [CandidateBaseURLs].
	BaseURLs []string
	// MaxAttempts bounds the total tries per logical request, first attempt
	// included.
	MaxAttempts int
	// Backoff is the base delay between retries; the wait before attempt
	// n+1 is Backoff * n.
	Backoff time.Duration
	// Timeout caps each individual network attempt.
	Timeout time.Duration
	// HealthTimeout caps the [Client.Health] probe.
	HealthTimeout time.Duration
}

const (
	defaultMaxAttempts   = 3
	defaultBackoff       = time.Second
	defaultTimeout       = 15 * time.Second
	defaultHealthTimeout = 5 * time.Second
)

func (p Policy) withDefaults() Policy {
	if len(p.BaseURLs) == 0 {
		p.BaseURLs = []string{devBaseURL}
	}

	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaultMaxAttempts
	}

	if p.Backoff <= 0 {
		p.Backoff = defaultBackoff
	}

	if p.Timeout <= 0 {
		p.Timeout = defaultTimeout
	}

	if p.HealthTimeout <= 0 {
		p.HealthTimeout = defaultHealthTimeout
	}

	return p
}

// PolicyFromConfig derives a [Policy] from the backend section of the config
// file.
func PolicyFromConfig(cfg shared.BackendConfig) Policy {
	return Policy{
		BaseURLs:      CandidateBaseURLs(cfg.Protocol, cfg.Host, cfg.Port, cfg.Dev, cfg.FallbackURLs),
		MaxAttempts:   cfg.RetryMax,
		Backoff:       time.Duration(cfg.RetryBackoffMS) * time.Millisecond,
		Timeout:       time.Duration(cfg.TimeoutSeconds) * time.Second,
		HealthTimeout: time.Duration(cfg.HealthTimeoutSeconds) * time.Second,
	}
}

// APIError is a non-2xx backend response passed through to the caller.
// Detail carries the backend's {"detail": ...} message when the body had one.
type APIError struct {
	StatusCode int
	Detail     string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}

	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// MultipartPayload describes a file upload. Fields are additional form
// values sent alongside the file part.
type MultipartPayload struct {
	Field    string
	Filename string
	Reader   io.Reader
	Fields   map[string]string
}

// Request describes one logical backend call. Path is relative to the /api
// prefix. At most one of Body, Form, and Multipart may be set.
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	Body      any
	Form      url.Values
	Multipart *MultipartPayload
	// Timeout overrides the policy timeout for this request.
	Timeout time.Duration
	// NoAuth skips bearer injection even when a credential is stored.
	NoAuth bool
}

// Response is the raw result of a backend call, surfaced by [Client.DoRaw]
// for callers that need the bytes regardless of status (the api command,
// audio downloads).
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsJSON reports whether the response declared a JSON content type.
func (r *Response) IsJSON() bool {
	return strings.Contains(r.Header.Get("Content-Type"), "application/json")
}

// Opts configure [New]. Tokens is required; everything else has a default.
type Opts struct {
	Policy        Policy
	HTTPClient    *http.Client
	Tokens        shared.TokenStore
	Logger        *log.Logger
	OnAuthExpired func()
}

// Client is the resilient backend client. It is safe for concurrent use.
type Client struct {
	policy        Policy
	httpClient    *http.Client
	tokens        shared.TokenStore
	status        *statusTracker
	logger        *log.Logger
	onAuthExpired func()
}

// New builds a [Client] from opts.
func New(opts Opts) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(os.Stderr)
	}

	tokens := opts.Tokens
	if tokens == nil {
		tokens = shared.NewMemoryTokenStore(nil)
	}

	return &Client{
		policy:        opts.Policy.withDefaults(),
		httpClient:    httpClient,
		tokens:        tokens,
		status:        newStatusTracker(),
		logger:        logger,
		onAuthExpired: opts.OnAuthExpired,
	}
}

// Status returns the current connectivity signal.
func (c *Client) Status() Connectivity {
	return c.status.Status()
}

// SetAuthExpiredHook registers fn to run whenever a 401 clears the stored
// credential. The CLI registers a warning that tells the user to sign in
// again; [Opts.OnAuthExpired] sets the same hook at construction.
func (c *Client) SetAuthExpiredHook(fn func()) {
	c.onAuthExpired = fn
}

// Tokens exposes the credential store backing this client.
func (c *Client) Tokens() shared.TokenStore {
	return c.tokens
}

// BaseURL returns the primary candidate origin.
func (c *Client) BaseURL() string {
	return c.policy.BaseURLs[0]
}

// Do performs req and decodes a 2xx JSON body into result when result is
// non-nil. Unreachable-network failures are retried per the policy and
// surface as [shared.ErrUnreachable] once the attempt budget is spent. A 401
// clears the stored credential and surfaces as [shared.ErrAuthRejected];
// other non-2xx statuses surface as [*APIError].
func (c *Client) Do(ctx context.Context, req Request, result any) error {
	resp, err := c.do(ctx, req)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return respError(resp)
	}

	if result != nil && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, result); err != nil {
			return fmt.Errorf("%w: decoding response: %v", shared.ErrAPIRequest, err)
		}
	}

	return nil
}

// DoRaw performs req with the same retry and credential semantics as
// [Client.Do] but hands back the response for any status instead of mapping
// non-2xx codes to errors.
func (c *Client) DoRaw(ctx context.Context, req Request) (*Response, error) {
	return c.do(ctx, req)
}

// do runs the retry loop for one logical request. The attempt counter and
// candidate cursor live here, on the stack, so concurrent requests keep
// independent budgets.
func (c *Client) do(ctx context.Context, req Request) (*Response, error) {
	gen := c.status.begin()

	var lastErr error

	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		base := c.policy.BaseURLs[(attempt-1)%len(c.policy.BaseURLs)]

		resp, err := c.attempt(ctx, req, base)
		if err == nil {
			c.settle(gen, resp)

			return resp, nil
		}

		if ctx.Err() != nil {
			// Cancelled or deadline-exceeded at the caller. Not a
			// connectivity observation, and not retryable.
			return nil, ctx.Err()
		}

		c.logger.Warn("request failed", "method", req.Method, "path", req.Path, "base", base, "attempt", attempt, "error", err)
		lastErr = err

		if attempt < c.policy.MaxAttempts {
			wait := c.policy.Backoff * time.Duration(attempt)

			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	c.status.observe(gen, ConnectivityDisconnected)

	return nil, fmt.Errorf("%w after %d attempts: %v", shared.ErrUnreachable, c.policy.MaxAttempts, lastErr)
}

// settle records the connectivity outcome of a completed attempt and applies
// the 401 side effect. Any response at all, error statuses included, proves
// the backend reachable.
func (c *Client) settle(gen uint64, resp *Response) {
	c.status.observe(gen, ConnectivityConnected)

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.tokens.Clear(); err != nil {
			c.logger.Error("failed to clear credential", "error", err)
		}

		if c.onAuthExpired != nil {
			c.onAuthExpired()
		}
	}
}

// attempt performs a single network try against base. Only transport-level
// failures come back as errors; any HTTP response is a success here.
func (c *Client) attempt(ctx context.Context, req Request, base string) (*Response, error) {
	endpoint := base + apiPrefix + req.Path
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.policy.Timeout
	}

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(attemptCtx, req.Method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", shared.ErrAPIRequest, err)
	}

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	httpReq.Header.Set("Accept", "application/json")

	if !req.NoAuth {
		if tok := c.tokens.Token(); tok != nil && tok.AccessToken != "" {
			httpReq.Header.Set("Authorization", "Bearer "+tok.AccessToken)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// encodeBody serializes the request payload and reports its content type.
func encodeBody(req Request) (io.Reader, string, error) {
	switch {
	case req.Multipart != nil:
		var buf bytes.Buffer

		writer := multipart.NewWriter(&buf)

		part, err := writer.CreateFormFile(req.Multipart.Field, req.Multipart.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("%w: creating form file: %v", shared.ErrAPIRequest, err)
		}

		if _, err := io.Copy(part, req.Multipart.Reader); err != nil {
			return nil, "", fmt.Errorf("%w: writing form file: %v", shared.ErrAPIRequest, err)
		}

		for key, value := range req.Multipart.Fields {
			if err := writer.WriteField(key, value); err != nil {
				return nil, "", fmt.Errorf("%w: writing form field: %v", shared.ErrAPIRequest, err)
			}
		}

		if err := writer.Close(); err != nil {
			return nil, "", fmt.Errorf("%w: closing multipart writer: %v", shared.ErrAPIRequest, err)
		}

		return &buf, writer.FormDataContentType(), nil
	case req.Form != nil:
		return strings.NewReader(req.Form.Encode()), "application/x-www-form-urlencoded", nil
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", fmt.Errorf("%w: encoding request body: %v", shared.ErrAPIRequest, err)
		}

		return bytes.NewReader(data), "application/json", nil
	default:
		return nil, "", nil
	}
}

// respError maps a non-2xx response to the caller-facing error.
func respError(resp *Response) error {
	detail := parseDetail(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		if detail != "" {
			return fmt.Errorf("%w: %s", shared.ErrAuthRejected, detail)
		}

		return shared.ErrAuthRejected
	}

	return &APIError{StatusCode: resp.StatusCode, Detail: detail, Body: resp.Body}
}

// parseDetail extracts the backend's {"detail": "..."} message when present.
func parseDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	return payload.Detail
}

// Health probes the backend liveness endpoint and reports whether it
// answered 200. The probe carries no credential, uses its own short timeout,
// and updates the connectivity signal either way. It tries each candidate
// origin once without backoff.
func (c *Client) Health(ctx context.Context) bool {
	gen := c.status.begin()

	for _, base := range c.policy.BaseURLs {
		ok, responded := c.probe(ctx, base)
		if ok {
			c.status.observe(gen, ConnectivityConnected)

			return true
		}

		if responded {
			// The backend answered with a non-200; it is reachable but
			// unhealthy, which the UI treats as disconnected.
			break
		}

		if ctx.Err() != nil {
			return false
		}
	}

	c.status.observe(gen, ConnectivityDisconnected)

	return false
}

// probe issues one unauthenticated GET against base's health endpoint.
// responded distinguishes a non-200 answer from no answer at all.
func (c *Client) probe(ctx context.Context, base string) (ok, responded bool) {
	probeCtx, cancel := context.WithTimeout(ctx, c.policy.HealthTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(probeCtx, http.MethodGet, base+apiPrefix+healthPath, nil)
	if err != nil {
		return false, false
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return false, false
	}

	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK, true
}

// Get is a convenience wrapper over [Client.Do] for GET requests.
func (c *Client) Get(ctx context.Context, path string, query url.Values, result any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, result)
}

// Post is a convenience wrapper over [Client.Do] for JSON POST requests.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, result)
}

// Delete is a convenience wrapper over [Client.Do] for DELETE requests.
func (c *Client) Delete(ctx context.Context, path string, result any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, result)
}
