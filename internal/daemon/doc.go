// Package daemon coordinates the long-running stylus process.
//
// It wires configuration, catalog storage, and the library service into a
// single lifecycle with flock-based locking to prevent multiple instances.
// The daemon owns startup and shutdown ordering: the lock is acquired before
// the search index is built, and the store is closed last.
//
// Keep orchestration logic here: record semantics live in the library
// package while the daemon focuses on lifecycle and status reporting.
package daemon
