// Package tmdb provides the minimal TMDB API client used for content lookups.
//
// It exposes paged movie and TV search. Outgoing requests pass through a
// token-bucket limiter and an OpenTelemetry-instrumented transport, and the
// genre tables translate TMDB genre ids into display names. Options let tests
// supply their own HTTP client without touching production code.
package tmdb
