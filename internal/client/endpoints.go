package client

import (
	"fmt"
	"strings"
)

const (
	// apiPrefix is prepended to every request path; callers pass paths
	// relative to it ("/mood/entries", "/health").
	apiPrefix = "/api"

	// healthPath is the unauthenticated liveness endpoint, relative to apiPrefix.
	healthPath = "/health"

	// devBaseURL is the fixed backend address in development mode.
	devBaseURL = "http://localhost:8000"

	// defaultBackendPort is used when the config leaves the port unset.
	defaultBackendPort = 8000
)

// ResolveBaseURL maps connection settings to a backend origin. It is a pure
// function: development mode always yields the local backend regardless of
// the other settings, otherwise the origin is built from the protocol,
// hostname, and port. A zero or negative port falls back to the default.
func ResolveBaseURL(protocol, hostname string, port int, dev bool) string {
	if dev {
		return devBaseURL
	}

	if port <= 0 {
		port = defaultBackendPort
	}

	return fmt.Sprintf("%s://%s:%d", protocol, hostname, port)
}

// CandidateBaseURLs expands connection settings into the ordered list of
// origins a request may be attempted against. The resolved primary comes
// first, followed by any explicitly configured fallbacks, followed by the
// protocol-toggled variant of the primary (https for an http primary and
// vice versa). Duplicates and empty entries are dropped, order preserved.
func CandidateBaseURLs(protocol, hostname string, port int, dev bool, fallbacks []string) []string {
	primary := ResolveBaseURL(protocol, hostname, port, dev)

	candidates := make([]string, 0, len(fallbacks)+2)
	seen := make(map[string]bool)

	add := func(u string) {
		u = strings.TrimRight(strings.TrimSpace(u), "/")
		if u == "" || seen[u] {
			return
		}

		seen[u] = true
		candidates = append(candidates, u)
	}

	add(primary)

	for _, u := range fallbacks {
		add(u)
	}

	add(toggleProtocol(primary))

	return candidates
}

// toggleProtocol swaps the scheme of an origin between http and https.
// Origins with any other scheme are returned unchanged.
func toggleProtocol(origin string) string {
	switch {
	case strings.HasPrefix(origin, "https://"):
		return "http://" + strings.TrimPrefix(origin, "https://")
	case strings.HasPrefix(origin, "http://"):
		return "https://" + strings.TrimPrefix(origin, "http://")
	default:
		return origin
	}
}
