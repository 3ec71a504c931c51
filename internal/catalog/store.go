package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"stylus/internal/config"
)

// schemaVersion tracks the records table layout. Bumping it triggers a
// destructive rebuild of the storage structure on next open.
const schemaVersion = 1

const recordColumns = `id, title, artist_name, artist_name_localized,
	normalized_title, normalized_artist_name, normalized_artist_name_localized,
	rating, ownership, format, release_year, updated_at`

// Store manages record persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the record database, applying the schema
// when the stored version differs from the current one.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// applySchema creates the records table. A stored user_version differing
// from schemaVersion drops and recreates the table; record contents are
// rebuilt from the source site on the next sync, so the destruction is
// acceptable by design of the schema version contract.
func (s *Store) applySchema(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version != 0 && version != schemaVersion {
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS records"); err != nil {
			return fmt.Errorf("drop outdated records table: %w", err)
		}
	}

	const createTable = `CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		artist_name TEXT NOT NULL,
		artist_name_localized TEXT NOT NULL DEFAULT '',
		normalized_title TEXT NOT NULL,
		normalized_artist_name TEXT NOT NULL,
		normalized_artist_name_localized TEXT NOT NULL DEFAULT '',
		rating INTEGER NOT NULL DEFAULT 0,
		ownership TEXT NOT NULL,
		format TEXT NOT NULL DEFAULT '',
		release_year INTEGER,
		updated_at TEXT NOT NULL
	)`
	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("create records table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	return nil
}

// Get fetches a record by id, returning nil when the id is unknown.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM records WHERE id = ?`, id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return record, nil
}

// GetMany fetches the records for the given ids. Unknown ids are skipped;
// result order follows insertion order in the store.
func (s *Store) GetMany(ctx context.Context, ids []string) ([]*Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE id IN (`+placeholders+`) ORDER BY rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("get records: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// All returns every stored record in insertion order.
func (s *Store) All(ctx context.Context) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+recordColumns+` FROM records ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// Put inserts or replaces a record. Normalized fields are recomputed from
// their source fields before the write.
func (s *Store) Put(ctx context.Context, record *Record) error {
	if record == nil {
		return errors.New("record is nil")
	}
	if err := record.Validate(); err != nil {
		return err
	}
	record.Normalize()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			artist_name = excluded.artist_name,
			artist_name_localized = excluded.artist_name_localized,
			normalized_title = excluded.normalized_title,
			normalized_artist_name = excluded.normalized_artist_name,
			normalized_artist_name_localized = excluded.normalized_artist_name_localized,
			rating = excluded.rating,
			ownership = excluded.ownership,
			format = excluded.format,
			release_year = excluded.release_year,
			updated_at = excluded.updated_at`,
		recordArgs(record)...)
	if err != nil {
		return fmt.Errorf("put record: %w", err)
	}
	return nil
}

// Delete removes a record, reporting whether a row existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete record: %w", err)
	}
	return affected > 0, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

// ReplaceAll swaps the entire table contents for the given records in one
// transaction.
func (s *Store) ReplaceAll(ctx context.Context, records []*Record) error {
	for _, record := range records {
		if record == nil {
			return errors.New("record is nil")
		}
		if err := record.Validate(); err != nil {
			return err
		}
		record.Normalize()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	for _, record := range records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO records (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			recordArgs(record)...); err != nil {
			return fmt.Errorf("insert record %s: %w", record.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

func recordArgs(record *Record) []any {
	var year any
	if record.ReleaseYear != 0 {
		year = record.ReleaseYear
	}
	return []any{
		record.ID,
		record.Title,
		record.ArtistName,
		record.ArtistNameLocalized,
		record.NormalizedTitle,
		record.NormalizedArtistName,
		record.NormalizedArtistNameLocalized,
		record.Rating,
		string(record.Ownership),
		string(record.Format),
		year,
		time.Now().UTC().Format(time.RFC3339Nano),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		record    Record
		ownership string
		format    string
		year      sql.NullInt64
		updatedAt string
	)
	err := row.Scan(
		&record.ID,
		&record.Title,
		&record.ArtistName,
		&record.ArtistNameLocalized,
		&record.NormalizedTitle,
		&record.NormalizedArtistName,
		&record.NormalizedArtistNameLocalized,
		&record.Rating,
		&ownership,
		&format,
		&year,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	record.Ownership = OwnershipStatus(ownership)
	record.Format = Format(format)
	if year.Valid {
		record.ReleaseYear = int(year.Int64)
	}
	return &record, nil
}

func collectRecords(rows *sql.Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
