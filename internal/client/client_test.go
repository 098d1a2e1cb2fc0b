package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/solace-cli/solace/internal/shared"
	solacetest "github.com/solace-cli/solace/internal/testing"
)

func newTestClient(transport http.RoundTripper, tokens shared.TokenStore, bases ...string) *Client {
	return New(Opts{
		Policy: Policy{
			BaseURLs:      bases,
			MaxAttempts:   3,
			Backoff:       time.Millisecond,
			Timeout:       time.Second,
			HealthTimeout: time.Second,
		},
		HTTPClient: &http.Client{Transport: transport},
		Tokens:     tokens,
		Logger:     shared.NewLogger(io.Discard),
	})
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestClientDo(t *testing.T) {
	t.Run("decodes successful response and reports connected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/mood/entries/today" {
				t.Errorf("Expected path /api/mood/entries/today, got %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"mood_value": 7}`))
		}))
		defer server.Close()

		c := newTestClient(nil, nil, server.URL)

		var result struct {
			MoodValue int `json:"mood_value"`
		}
		if err := c.Get(context.Background(), "/mood/entries/today", nil, &result); err != nil {
			t.Fatalf("Expected success, got %v", err)
		}
		if result.MoodValue != 7 {
			t.Errorf("Expected mood value 7, got %d", result.MoodValue)
		}
		if c.Status() != ConnectivityConnected {
			t.Errorf("Expected connected status, got %s", c.Status())
		}
	})

	t.Run("injects bearer token when one is stored", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		tokens := shared.NewMemoryTokenStore(&oauth2.Token{AccessToken: "abc123"})
		c := newTestClient(nil, tokens, server.URL)

		if err := c.Get(context.Background(), "/auth/me", nil, nil); err != nil {
			t.Fatalf("Expected success, got %v", err)
		}
		if gotAuth != "Bearer abc123" {
			t.Errorf("Expected bearer header, got %q", gotAuth)
		}
	})

	t.Run("omits authorization header without a stored token", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := newTestClient(nil, nil, server.URL)

		if err := c.Get(context.Background(), "/resources/books", nil, nil); err != nil {
			t.Fatalf("Expected success, got %v", err)
		}
		if gotAuth != "" {
			t.Errorf("Expected no authorization header, got %q", gotAuth)
		}
	})

	t.Run("retries network failures and rotates candidate origins", func(t *testing.T) {
		transport := solacetest.NewScriptedRoundTripper(
			solacetest.ScriptedStep{Err: errors.New("connection refused")},
			solacetest.ScriptedStep{Err: errors.New("connection refused")},
			solacetest.ScriptedStep{Response: jsonResponse(http.StatusOK, `{}`)},
		)

		c := newTestClient(transport, nil, "http://primary:8000", "http://backup:8000")

		if err := c.Get(context.Background(), "/chat/history", nil, nil); err != nil {
			t.Fatalf("Expected success after retries, got %v", err)
		}
		if transport.Calls() != 3 {
			t.Errorf("Expected 3 attempts, got %d", transport.Calls())
		}

		hosts := []string{}
		for _, req := range transport.Requests {
			hosts = append(hosts, req.URL.Host)
		}
		if hosts[0] != "primary:8000" || hosts[1] != "backup:8000" || hosts[2] != "primary:8000" {
			t.Errorf("Expected origin rotation primary, backup, primary; got %v", hosts)
		}
		if c.Status() != ConnectivityConnected {
			t.Errorf("Expected connected status, got %s", c.Status())
		}
	})

	t.Run("gives up after the attempt budget and reports disconnected", func(t *testing.T) {
		transport := solacetest.NewScriptedRoundTripper(
			solacetest.ScriptedStep{Err: errors.New("connection refused")},
		)

		c := newTestClient(transport, nil, "http://primary:8000")

		err := c.Get(context.Background(), "/chat/history", nil, nil)
		if !errors.Is(err, shared.ErrUnreachable) {
			t.Fatalf("Expected ErrUnreachable, got %v", err)
		}
		if transport.Calls() != 3 {
			t.Errorf("Expected 3 attempts, got %d", transport.Calls())
		}
		if c.Status() != ConnectivityDisconnected {
			t.Errorf("Expected disconnected status, got %s", c.Status())
		}
	})

	t.Run("401 clears the credential once and fires the hook without retrying", func(t *testing.T) {
		transport := solacetest.NewScriptedRoundTripper(
			solacetest.ScriptedStep{Response: jsonResponse(http.StatusUnauthorized, `{"detail": "Could not validate credentials"}`)},
		)

		tokens := shared.NewMemoryTokenStore(&oauth2.Token{AccessToken: "stale"})
		c := newTestClient(transport, tokens, "http://primary:8000")

		var hookCalls atomic.Int32
		c.SetAuthExpiredHook(func() { hookCalls.Add(1) })

		err := c.Get(context.Background(), "/auth/me", nil, nil)
		if !errors.Is(err, shared.ErrAuthRejected) {
			t.Fatalf("Expected ErrAuthRejected, got %v", err)
		}
		if transport.Calls() != 1 {
			t.Errorf("Expected no retry on 401, got %d attempts", transport.Calls())
		}
		if tokens.Token() != nil {
			t.Error("Expected stored credential to be cleared")
		}
		if hookCalls.Load() != 1 {
			t.Errorf("Expected auth-expired hook to fire once, got %d", hookCalls.Load())
		}
		if c.Status() != ConnectivityConnected {
			t.Errorf("Expected connected status after a 401 response, got %s", c.Status())
		}
	})

	t.Run("passes other error statuses through as APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"detail": "mood_value must be between 1 and 10"}`))
		}))
		defer server.Close()

		c := newTestClient(nil, nil, server.URL)

		err := c.Post(context.Background(), "/mood/entries", map[string]int{"mood_value": 42}, nil)

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("Expected APIError, got %v", err)
		}
		if apiErr.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("Expected status 422, got %d", apiErr.StatusCode)
		}
		if apiErr.Detail != "mood_value must be between 1 and 10" {
			t.Errorf("Expected backend detail, got %q", apiErr.Detail)
		}
	})

	t.Run("sends form bodies url-encoded", func(t *testing.T) {
		var gotContentType, gotBody string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotContentType = r.Header.Get("Content-Type")
			data, _ := io.ReadAll(r.Body)
			gotBody = string(data)
			w.Write([]byte(`{"access_token": "tok", "token_type": "bearer"}`))
		}))
		defer server.Close()

		c := newTestClient(nil, nil, server.URL)

		form := url.Values{}
		form.Set("username", "river")
		form.Set("password", "hunter2")

		if err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/auth/login", Form: form, NoAuth: true}, nil); err != nil {
			t.Fatalf("Expected success, got %v", err)
		}
		if gotContentType != "application/x-www-form-urlencoded" {
			t.Errorf("Expected form content type, got %q", gotContentType)
		}
		if !strings.Contains(gotBody, "username=river") {
			t.Errorf("Expected encoded form body, got %q", gotBody)
		}
	})

	t.Run("stops retrying when the context is cancelled", func(t *testing.T) {
		transport := solacetest.NewScriptedRoundTripper(
			solacetest.ScriptedStep{Err: errors.New("connection refused")},
		)

		c := New(Opts{
			Policy: Policy{
				BaseURLs:    []string{"http://primary:8000"},
				MaxAttempts: 3,
				Backoff:     time.Minute,
			},
			HTTPClient: &http.Client{Transport: transport},
			Logger:     shared.NewLogger(io.Discard),
		})

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()

		err := c.Get(ctx, "/chat/history", nil, nil)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Expected context.Canceled, got %v", err)
		}
		if transport.Calls() != 1 {
			t.Errorf("Expected backoff wait to abort before a second attempt, got %d attempts", transport.Calls())
		}
	})
}

func TestClientDoRaw(t *testing.T) {
	t.Run("returns non-2xx responses without mapping to errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "Entry not found"}`))
		}))
		defer server.Close()

		c := newTestClient(nil, nil, server.URL)

		resp, err := c.DoRaw(context.Background(), Request{Method: http.MethodGet, Path: "/journal/entries/missing"})
		if err != nil {
			t.Fatalf("Expected raw response, got error %v", err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", resp.StatusCode)
		}
		if !resp.IsJSON() {
			t.Error("Expected JSON content type to be detected")
		}
	})
}

func TestClientHealth(t *testing.T) {
	t.Run("healthy backend reports connected", func(t *testing.T) {
		var gotPath, gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"status": "healthy"}`))
		}))
		defer server.Close()

		tokens := shared.NewMemoryTokenStore(&oauth2.Token{AccessToken: "abc123"})
		c := newTestClient(nil, tokens, server.URL)

		if !c.Health(context.Background()) {
			t.Fatal("Expected health probe to succeed")
		}
		if gotPath != "/api/health" {
			t.Errorf("Expected probe path /api/health, got %s", gotPath)
		}
		if gotAuth != "" {
			t.Errorf("Expected unauthenticated probe, got %q", gotAuth)
		}
		if c.Status() != ConnectivityConnected {
			t.Errorf("Expected connected status, got %s", c.Status())
		}
	})

	t.Run("unreachable backend reports disconnected", func(t *testing.T) {
		transport := solacetest.NewScriptedRoundTripper(
			solacetest.ScriptedStep{Err: errors.New("connection refused")},
		)

		c := newTestClient(transport, nil, "http://primary:8000")

		if c.Health(context.Background()) {
			t.Fatal("Expected health probe to fail")
		}
		if c.Status() != ConnectivityDisconnected {
			t.Errorf("Expected disconnected status, got %s", c.Status())
		}
	})

	t.Run("probe is idempotent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "healthy"}`))
		}))
		defer server.Close()

		c := newTestClient(nil, nil, server.URL)

		for range 3 {
			if !c.Health(context.Background()) {
				t.Fatal("Expected repeated probes to succeed")
			}
			if c.Status() != ConnectivityConnected {
				t.Errorf("Expected connected status, got %s", c.Status())
			}
		}
	})
}

func TestConnectivity(t *testing.T) {
	t.Run("starts unknown", func(t *testing.T) {
		c := New(Opts{Logger: shared.NewLogger(io.Discard)})
		if c.Status() != ConnectivityUnknown {
			t.Errorf("Expected unknown status, got %s", c.Status())
		}
	})

	t.Run("stale outcomes never overwrite newer ones", func(t *testing.T) {
		tracker := newStatusTracker()

		slow := tracker.begin()
		fast := tracker.begin()

		tracker.observe(fast, ConnectivityConnected)
		tracker.observe(slow, ConnectivityDisconnected)

		if tracker.Status() != ConnectivityConnected {
			t.Errorf("Expected connected status to survive a stale failure, got %s", tracker.Status())
		}
	})

	t.Run("string names", func(t *testing.T) {
		cases := map[Connectivity]string{
			ConnectivityUnknown:      "unknown",
			ConnectivityConnected:    "connected",
			ConnectivityDisconnected: "disconnected",
		}
		for state, want := range cases {
			if state.String() != want {
				t.Errorf("Expected %q, got %q", want, state.String())
			}
		}
	})
}
