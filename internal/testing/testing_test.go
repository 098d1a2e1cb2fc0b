package testing

import (
	"net/http"
	"strings"
	"testing"
)

func TestScriptedRoundTripper(t *testing.T) {
	t.Run("empty script rejects any request", func(t *testing.T) {
		transport := NewScriptedRoundTripper()

		req, err := http.NewRequest(http.MethodGet, "http://localhost:8000/api/health", nil)
		if err != nil {
			t.Fatalf("failed to build request: %v", err)
		}

		resp, err := transport.RoundTrip(req)
		if err == nil {
			t.Fatal("expected an error for an unscripted request")
		}
		if resp != nil {
			t.Errorf("expected no response, got %+v", resp)
		}
		if !strings.Contains(err.Error(), "unscripted") {
			t.Errorf("expected the error to name the unscripted request, got %q", err)
		}
		if transport.Calls() != 1 {
			t.Errorf("expected the request recorded, got %d calls", transport.Calls())
		}
	})

	t.Run("final step repeats once exhausted", func(t *testing.T) {
		transport := NewScriptedRoundTripper(ScriptedStep{Response: &http.Response{StatusCode: http.StatusOK}})

		req, err := http.NewRequest(http.MethodGet, "http://localhost:8000/api/health", nil)
		if err != nil {
			t.Fatalf("failed to build request: %v", err)
		}

		for i := 0; i < 3; i++ {
			resp, err := transport.RoundTrip(req)
			if err != nil || resp.StatusCode != http.StatusOK {
				t.Fatalf("call %d: resp %+v, err %v", i, resp, err)
			}
		}
	})
}
