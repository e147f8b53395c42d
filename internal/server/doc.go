// Package server implements the HTTP routing server.
//
// The dispatcher resolves each request path against the active route
// table, binds path parameters into the request context, and serves
// the configured response. Route tables are built from configuration
// and swapped atomically on reload, so in-flight requests always see
// a complete table.
package server
