// Package router implements radix-tree HTTP path routing.
//
// Route patterns are parsed into typed segments (static text, named
// parameters, catch-all wildcards) and stored in a compressed prefix
// tree. Registration happens through a Builder that detects conflicts
// at insertion time; Finalize freezes the tree into an immutable Table
// that any number of goroutines may query concurrently without locking.
//
// # Features
//
//   - Static, parameter ({id}) and catch-all ({*path}) segments
//   - Insertion-time conflict detection (duplicate routes, ambiguous
//     parameter names, wildcard collisions)
//   - Deterministic precedence: static > parameter > wildcard
//   - Allocation-light lookup proportional to path length, not to the
//     number of registered routes
//   - Lock-free hot reload via atomic table swap
//
// # Usage
//
// Build a table during startup, then match per request:
//
//	b := router.NewBuilder()
//	if err := b.Register("/users/{id}", getUser); err != nil {
//	    log.Fatal(err)
//	}
//	table := b.Finalize()
//
//	result, ok := table.Match("/users/42")
//	if ok {
//	    // result.Value, result.Params
//	}
package router
