// Package catalog defines the cataloged release record and its SQLite-
// backed persistent store.
//
// Records are keyed by the opaque id the source site assigns; a given id
// appears at most once in the store and, by extension, in the search index
// built over it. Normalized comparison fields are recomputed whenever their
// source field changes, so stored rows always carry forms consistent with
// the current normalizer. The store schema is versioned through SQLite's
// user_version pragma; a version bump destroys and recreates the records
// table rather than migrating it.
package catalog
