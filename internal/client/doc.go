// Package client implements the connectivity layer between the solace
// frontends (CLI, TUI) and the grief-support backend.
//
// Every remote operation goes through [Client.Do] (or the typed wrappers in
// the services package built on top of it). The client owns:
//
//   - Base URL resolution: a pure function of protocol, hostname, and the
//     development flag, expanded into an ordered list of candidate base URLs
//     tried in turn when the primary is unreachable.
//   - Credential injection: the bearer token from the [shared.TokenStore] is
//     attached to a request exactly when it is present at call time, and
//     cleared as a side effect of any 401 response.
//   - Retry: network-unreachable failures (connection refused, DNS, TLS,
//     timeout) are retried with linearly growing backoff up to a bounded
//     number of attempts per logical request. Retry state lives on the call
//     stack, never in shared client state, so concurrent requests cannot
//     interfere with each other's budgets.
//   - Connectivity status: a tri-state signal (unknown, connected,
//     disconnected) fed by request outcomes and by the dedicated [Client.Health]
//     probe, consumed by the UI to gate messaging affordances.
//
// Application-level HTTP errors (validation, not-found, rate limiting) are
// surfaced unmodified as [*APIError] for caller-specific handling.
package client
