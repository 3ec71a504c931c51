package library

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"stylus/internal/catalog"
	"stylus/internal/index"
	"stylus/internal/logging"
	"stylus/internal/textnorm"
)

// defaultSearchLimit caps index hits per query when the config leaves the
// limit unset.
const defaultSearchLimit = 50

// Service orchestrates typed record operations over the persisted store
// and the in-memory search index. Construct one per process and share it
// by reference.
type Service struct {
	store       *catalog.Store
	index       *index.Index
	logger      *slog.Logger
	searchLimit int

	// mu serializes the store-write-then-index-write pair of every
	// mutation so two mutations against the same id cannot interleave.
	mu sync.Mutex

	rebuilds singleflight.Group
}

// Option customizes service construction.
type Option func(*Service)

// WithSearchLimit overrides the per-query cap on index hits.
func WithSearchLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.searchLimit = limit
		}
	}
}

// New constructs the service. The index starts unbuilt; the first request
// that needs it (or an explicit EnsureReady call) populates it from the
// store.
func New(store *catalog.Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:       store,
		index:       index.New(),
		logger:      logging.NewComponentLogger(logger, "library"),
		searchLimit: defaultSearchLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureReady builds the search index from the store if it is not built
// yet. Safe to call concurrently; concurrent callers share one rebuild.
func (s *Service) EnsureReady(ctx context.Context) error {
	return s.ensureIndex(ctx)
}

// IndexLen reports how many records the index currently holds.
func (s *Service) IndexLen() int {
	return s.index.Len()
}

func (s *Service) ensureIndex(ctx context.Context) error {
	if s.index.Built() {
		return nil
	}
	_, err, _ := s.rebuilds.Do("rebuild", func() (any, error) {
		if s.index.Built() {
			return nil, nil
		}
		firstErr := s.rebuildIndex(ctx)
		if firstErr == nil {
			return nil, nil
		}
		s.logger.Warn("index rebuild failed, retrying once", logging.Error(firstErr))
		if err := s.rebuildIndex(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
		}
		return nil, nil
	})
	return err
}

func (s *Service) rebuildIndex(ctx context.Context) error {
	records, err := s.store.All(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	entries := make([]index.Entry, 0, len(records))
	for _, record := range records {
		entries = append(entries, index.Entry{ID: record.ID, Text: record.SearchText()})
	}
	s.index.Rebuild(entries)
	s.logger.Debug("search index rebuilt", logging.Int("records", len(entries)))
	return nil
}

// GetByID returns the record for an id, or nil when unknown.
func (s *Service) GetByID(ctx context.Context, id string) (*catalog.Record, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id must not be empty", ErrInvalidPayload)
	}
	return s.store.Get(ctx, id)
}

// GetByIDs returns the records for the given ids, skipping unknown ones.
func (s *Service) GetByIDs(ctx context.Context, ids []string) ([]*catalog.Record, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: ids must not be empty", ErrInvalidPayload)
	}
	return s.store.GetMany(ctx, ids)
}

// GetByIDMap returns the records for the given ids keyed by id.
func (s *Service) GetByIDMap(ctx context.Context, ids []string) (map[string]*catalog.Record, error) {
	records, err := s.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*catalog.Record, len(records))
	for _, record := range records {
		byID[record.ID] = record
	}
	return byID, nil
}

// GetAll returns every stored record.
func (s *Service) GetAll(ctx context.Context) ([]*catalog.Record, error) {
	return s.store.All(ctx)
}

// Count returns the number of stored records.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// Add stores a new record and indexes it. A record arriving without an id
// (a scrape that has not resolved one yet) is assigned a generated id.
// The returned record carries the final id.
func (s *Service) Add(ctx context.Context, record *catalog.Record) (*catalog.Record, error) {
	if record == nil {
		return nil, fmt.Errorf("%w: record is required", ErrInvalidPayload)
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := s.ensureIndex(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Put(ctx, record); err != nil {
		return nil, err
	}
	s.index.Add(record.ID, record.SearchText())
	s.logger.Debug("record added",
		logging.String("id", record.ID),
		logging.String("artist", record.ArtistName),
		logging.String("title", record.Title))
	return record, nil
}

// RecordUpdate carries the fields an update request may change. Nil fields
// are left untouched (shallow merge).
type RecordUpdate struct {
	Title               *string                  `json:"title,omitempty"`
	ArtistName          *string                  `json:"artist_name,omitempty"`
	ArtistNameLocalized *string                  `json:"artist_name_localized,omitempty"`
	Rating              *int                     `json:"rating,omitempty"`
	Ownership           *catalog.OwnershipStatus `json:"ownership,omitempty"`
	Format              *catalog.Format          `json:"format,omitempty"`
	ReleaseYear         *int                     `json:"release_year,omitempty"`
}

func (u *RecordUpdate) applyTo(record *catalog.Record) {
	if u.Title != nil {
		record.Title = *u.Title
	}
	if u.ArtistName != nil {
		record.ArtistName = *u.ArtistName
	}
	if u.ArtistNameLocalized != nil {
		record.ArtistNameLocalized = *u.ArtistNameLocalized
	}
	if u.Rating != nil {
		record.Rating = *u.Rating
	}
	if u.Ownership != nil {
		record.Ownership = *u.Ownership
	}
	if u.Format != nil {
		record.Format = *u.Format
	}
	if u.ReleaseYear != nil {
		record.ReleaseYear = *u.ReleaseYear
	}
}

// Update shallow-merges the given fields into an existing record. Fails
// with ErrNotFound when the id is unknown. A record whose merged state is
// discardable (not-cataloged, unrated) is deleted instead of written.
func (s *Service) Update(ctx context.Context, id string, update *RecordUpdate) error {
	if id == "" || update == nil {
		return fmt.Errorf("%w: id and update are required", ErrInvalidPayload)
	}
	if err := s.ensureIndex(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	update.applyTo(record)
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if record.Discardable() {
		existed, err := s.store.Delete(ctx, id)
		if err != nil {
			return err
		}
		if existed {
			s.index.Remove(id)
		}
		s.logger.Debug("record discarded", logging.String("id", id))
		return nil
	}

	if err := s.store.Put(ctx, record); err != nil {
		return err
	}
	s.index.Update(id, record.SearchText())
	return nil
}

// UpdateRating sets a record's rating, bounds-checked to [0, RatingMax].
// Out-of-range ratings fail without touching the stored value.
func (s *Service) UpdateRating(ctx context.Context, id string, rating int) error {
	if id == "" {
		return fmt.Errorf("%w: id must not be empty", ErrInvalidPayload)
	}
	if rating < 0 || rating > catalog.RatingMax {
		return fmt.Errorf("%w: rating %d outside [0, %d]", ErrInvalidPayload, rating, catalog.RatingMax)
	}
	return s.Update(ctx, id, &RecordUpdate{Rating: &rating})
}

// Delete removes a record from the store and the index. Fails with
// ErrNotFound when the id is unknown.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id must not be empty", ErrInvalidPayload)
	}
	if err := s.ensureIndex(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existed, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.index.Remove(id)
	return nil
}

// ReplaceAll swaps the entire store contents and rebuilds the index from
// the new records.
func (s *Service) ReplaceAll(ctx context.Context, records []*catalog.Record) error {
	for _, record := range records {
		if record == nil {
			return fmt.Errorf("%w: record is nil", ErrInvalidPayload)
		}
		if record.ID == "" {
			record.ID = uuid.NewString()
		}
		if err := record.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ReplaceAll(ctx, records); err != nil {
		return err
	}
	entries := make([]index.Entry, 0, len(records))
	for _, record := range records {
		entries = append(entries, index.Entry{ID: record.ID, Text: record.SearchText()})
	}
	s.index.Rebuild(entries)
	s.logger.Info("catalog replaced", logging.Int("records", len(records)))
	return nil
}

// searchIndex runs a normalized query against the index, recovering from
// an unbuilt index with one synchronous rebuild.
func (s *Service) searchIndex(ctx context.Context, query string) ([]*catalog.Record, error) {
	if err := s.ensureIndex(ctx); err != nil {
		return nil, err
	}
	ids, err := s.index.Search(textnorm.Normalize(query), s.searchLimit)
	if err != nil {
		// The index reported itself unbuilt; rebuild once and retry.
		if err := s.ensureIndex(ctx); err != nil {
			return nil, err
		}
		ids, err = s.index.Search(textnorm.Normalize(query), s.searchLimit)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	records, err := s.store.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	// Preserve the index's ordering, not the store's row order.
	byID := make(map[string]*catalog.Record, len(records))
	for _, record := range records {
		byID[record.ID] = record
	}
	ordered := make([]*catalog.Record, 0, len(records))
	for _, id := range ids {
		if record, ok := byID[id]; ok {
			ordered = append(ordered, record)
		}
	}
	return ordered, nil
}
