// Package index maintains the in-memory inverted text index over record
// identifiers.
//
// The index maps normalized tokens to document ids and supports
// forward-tokenized, substring-capable search. It is never persisted: the
// orchestrator rebuilds it from the record store at process start and keeps
// it incrementally consistent under create/update/delete traffic. Searches
// against an index that has not finished building fail with ErrNotBuilt so
// callers can trigger a rebuild instead of serving partial results.
package index

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// ErrNotBuilt is returned by Search when the index has not been built from
// the record store yet.
var ErrNotBuilt = errors.New("search index not built")

// Entry is one document to index: a record id and its searchable text.
type Entry struct {
	ID   string
	Text string
}

// Index is an in-memory inverted token index over record ids. All methods
// are safe for concurrent use; readers observe the index only in fully
// built states.
type Index struct {
	mu     sync.RWMutex
	built  bool
	terms  map[string]map[string]struct{}
	docs   map[string][]string
	docSeq map[string]int64
	seq    int64
}

// New returns an empty, unbuilt index.
func New() *Index {
	return &Index{
		terms:  make(map[string]map[string]struct{}),
		docs:   make(map[string][]string),
		docSeq: make(map[string]int64),
	}
}

// Built reports whether the index has been populated from the store.
func (ix *Index) Built() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.built
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// Add indexes the text under the given id. An id that is already present
// is re-indexed.
func (ix *Index) Add(id, text string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.removeLocked(id)
	ix.addLocked(id, text)
}

// Update re-indexes the id under new text. Equivalent to Add; the separate
// name keeps call sites honest about intent.
func (ix *Index) Update(id, text string) {
	ix.Add(id, text)
}

// Remove drops the id from the index. Removing an unknown id is a no-op.
func (ix *Index) Remove(id string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.removeLocked(id)
}

// Rebuild clears the index and repopulates it from a full record sequence,
// marking it built. Used at process start and after bulk store replacement.
func (ix *Index) Rebuild(entries []Entry) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.terms = make(map[string]map[string]struct{}, len(ix.terms))
	ix.docs = make(map[string][]string, len(entries))
	ix.docSeq = make(map[string]int64, len(entries))
	ix.seq = 0
	for _, entry := range entries {
		ix.addLocked(entry.ID, entry.Text)
	}
	ix.built = true
}

// Search returns the ids whose indexed text matches every query token,
// in insertion order. A query token matches an indexed token by prefix or
// substring. limit <= 0 means unlimited.
func (ix *Index) Search(query string, limit int) ([]string, error) {
	tokens := Tokenize(query)
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if !ix.built {
		return nil, ErrNotBuilt
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	var matched map[string]struct{}
	for _, token := range tokens {
		hits := ix.lookupLocked(token)
		if len(hits) == 0 {
			return nil, nil
		}
		if matched == nil {
			matched = hits
			continue
		}
		for id := range matched {
			if _, ok := hits[id]; !ok {
				delete(matched, id)
			}
		}
		if len(matched) == 0 {
			return nil, nil
		}
	}

	ids := make([]string, 0, len(matched))
	for id := range matched {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ix.docSeq[ids[i]] < ix.docSeq[ids[j]]
	})
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// Tokenize splits search text into lowercase whitespace-delimited tokens.
// Text is expected to be normalizer output already; lowering here only
// guards against stray casing from direct callers.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

func (ix *Index) addLocked(id, text string) {
	tokens := Tokenize(text)
	if id == "" {
		return
	}
	for _, token := range tokens {
		set, ok := ix.terms[token]
		if !ok {
			set = make(map[string]struct{})
			ix.terms[token] = set
		}
		set[id] = struct{}{}
	}
	ix.docs[id] = tokens
	ix.seq++
	ix.docSeq[id] = ix.seq
}

func (ix *Index) removeLocked(id string) {
	tokens, ok := ix.docs[id]
	if !ok {
		return
	}
	for _, token := range tokens {
		if set, ok := ix.terms[token]; ok {
			delete(set, id)
			if len(set) == 0 {
				delete(ix.terms, token)
			}
		}
	}
	delete(ix.docs, id)
	delete(ix.docSeq, id)
}

// lookupLocked returns ids whose indexed tokens contain the query token.
// Prefix matches are a special case of the substring scan.
func (ix *Index) lookupLocked(token string) map[string]struct{} {
	hits := make(map[string]struct{})
	for term, ids := range ix.terms {
		if !strings.Contains(term, token) {
			continue
		}
		for id := range ids {
			hits[id] = struct{}{}
		}
	}
	return hits
}
