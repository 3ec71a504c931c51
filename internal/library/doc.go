// Package library is the query orchestrator: it serves typed record
// operations against the persisted store while keeping the in-memory
// search index consistent with every mutation.
//
// The service guarantees the index is fully built before any search is
// served; a request that observes an unbuilt index triggers a synchronous
// rebuild (deduplicated across concurrent requests) rather than returning
// partial results. Mutations write the store first and touch the index only
// after the store write succeeds, so a failed write never leaves the two
// out of sync. Concurrent mutations are serialized by a single mutation
// mutex, which is sufficient for the low-concurrency workload the daemon
// serves.
package library
