// Package middleware provides HTTP middleware for the routing server.
//
// # Features
//
//   - Request ID generation and propagation via X-Request-ID
//   - Structured request logging
//   - Panic recovery with JSON error responses
//
// Middleware are plain func(http.Handler) http.Handler wrappers and
// compose with Chain, outermost first.
package middleware
