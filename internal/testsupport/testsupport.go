// Package testsupport provides shared helpers for stylus tests: temporary
// configs seeded with unique directories and pre-opened stores with
// registered cleanup.
package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"stylus/internal/catalog"
	"stylus/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.SocketPath = filepath.Join(base, "stylusd.sock")
	return &cfg
}

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewRecord builds a valid record with the given id, title, and artist.
func NewRecord(id, title, artist string) *catalog.Record {
	record := &catalog.Record{
		ID:         id,
		Title:      title,
		ArtistName: artist,
		Ownership:  catalog.OwnershipInCollection,
	}
	record.Normalize()
	return record
}

// MustPut stores a record, failing the test on error.
func MustPut(t testing.TB, store *catalog.Store, record *catalog.Record) {
	t.Helper()

	if err := store.Put(context.Background(), record); err != nil {
		t.Fatalf("store.Put: %v", err)
	}
}
