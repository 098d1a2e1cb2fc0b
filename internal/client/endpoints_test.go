package client

import (
	"reflect"
	"testing"

	"github.com/solace-cli/solace/internal/shared"
)

func TestResolveBaseURL(t *testing.T) {
	t.Run("development mode pins the local backend", func(t *testing.T) {
		got := ResolveBaseURL("https", "grief.example.com", 9443, true)
		if got != "http://localhost:8000" {
			t.Errorf("Expected http://localhost:8000, got %s", got)
		}
	})

	t.Run("builds origin from protocol, hostname, and port", func(t *testing.T) {
		got := ResolveBaseURL("https", "grief.example.com", 9443, false)
		if got != "https://grief.example.com:9443" {
			t.Errorf("Expected https://grief.example.com:9443, got %s", got)
		}
	})

	t.Run("unset port falls back to the default", func(t *testing.T) {
		got := ResolveBaseURL("https", "grief.example.com", 0, false)
		if got != "https://grief.example.com:8000" {
			t.Errorf("Expected https://grief.example.com:8000, got %s", got)
		}
	})

	t.Run("is deterministic for identical inputs", func(t *testing.T) {
		first := ResolveBaseURL("http", "10.0.0.4", 0, false)
		second := ResolveBaseURL("http", "10.0.0.4", 0, false)
		if first != second {
			t.Errorf("Expected identical results, got %s and %s", first, second)
		}
	})
}

func TestCandidateBaseURLs(t *testing.T) {
	t.Run("primary first then fallbacks then protocol toggle", func(t *testing.T) {
		got := CandidateBaseURLs("https", "grief.example.com", 0, false, []string{"http://backup.example.com:8000"})
		want := []string{
			"https://grief.example.com:8000",
			"http://backup.example.com:8000",
			"http://grief.example.com:8000",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})

	t.Run("drops duplicates and empty entries", func(t *testing.T) {
		got := CandidateBaseURLs("http", "localhost", 0, true, []string{"", "http://localhost:8000/", "https://localhost:8000"})
		want := []string{"http://localhost:8000", "https://localhost:8000"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})

	t.Run("configured port reaches every derived candidate", func(t *testing.T) {
		got := CandidateBaseURLs("https", "grief.example.com", 9443, false, nil)
		want := []string{
			"https://grief.example.com:9443",
			"http://grief.example.com:9443",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})
}

func TestPolicyFromConfigPort(t *testing.T) {
	t.Run("config port shapes the primary base URL", func(t *testing.T) {
		policy := PolicyFromConfig(shared.BackendConfig{Protocol: "https", Host: "grief.example.com", Port: 9443})
		if len(policy.BaseURLs) == 0 || policy.BaseURLs[0] != "https://grief.example.com:9443" {
			t.Errorf("Expected https://grief.example.com:9443 first, got %v", policy.BaseURLs)
		}
	})

	t.Run("zero port keeps the default", func(t *testing.T) {
		policy := PolicyFromConfig(shared.BackendConfig{Protocol: "https", Host: "grief.example.com"})
		if len(policy.BaseURLs) == 0 || policy.BaseURLs[0] != "https://grief.example.com:8000" {
			t.Errorf("Expected https://grief.example.com:8000 first, got %v", policy.BaseURLs)
		}
	})
}
