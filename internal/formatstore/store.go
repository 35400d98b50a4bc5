package formatstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"minutes/internal/config"
	"minutes/internal/formats"
)

// Store manages format persistence backed by SQLite.
type Store struct {
	db       *sql.DB
	path     string
	lockPath string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
	lockRetryDelay          = 25 * time.Millisecond
)

const recordColumns = "id, title, template, title_key, template_key, selected, revision, updated_at"

// Open initializes or connects to the format database under the configured
// data directory. Every failure wraps ErrStorageUnavailable.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrStorageUnavailable)
	}
	dbPath := cfg.FormatStorePath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("%w: ensure data directory: %w", ErrStorageUnavailable, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite db: %w", ErrStorageUnavailable, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: apply pragma %q: %w", ErrStorageUnavailable, pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lockPath: dbPath + ".lock"}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
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

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// GetAll returns every stored record ordered by id.
func (s *Store) GetAll(ctx context.Context) ([]formats.Record, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `SELECT `+recordColumns+` FROM formats ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: query formats: %w", ErrReadFailed, err)
	}
	defer rows.Close()

	var records []formats.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan format: %w", ErrReadFailed, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate formats: %w", ErrReadFailed, err)
	}
	return records, nil
}

// Get fetches one record. It returns (nil, nil) when the id is absent.
func (s *Store) Get(ctx context.Context, id string) (*formats.Record, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+recordColumns+` FROM formats WHERE id = ?`, id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get format: %w", ErrReadFailed, err)
	}
	return &record, nil
}

// Put upserts record by id; the last write wins.
func (s *Store) Put(ctx context.Context, record formats.Record) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteRejected, err)
	}
	updated := record.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	err := s.execWithRetry(ctx,
		`INSERT INTO formats (`+recordColumns+`)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
             title = excluded.title,
             template = excluded.template,
             title_key = excluded.title_key,
             template_key = excluded.template_key,
             selected = excluded.selected,
             revision = excluded.revision,
             updated_at = excluded.updated_at`,
		record.ID,
		record.Title,
		record.Template,
		nullableString(record.TitleKey),
		nullableString(record.TemplateKey),
		boolToInt(record.Selected),
		record.Revision,
		updated.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("%w: upsert %s: %w", ErrWriteRejected, record.ID, err)
	}
	return nil
}

// Delete removes a record. Deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.execWithRetry(ctx, `DELETE FROM formats WHERE id = ?`, id); err != nil {
		return fmt.Errorf("%w: delete %s: %w", ErrWriteRejected, id, err)
	}
	return nil
}

// Lock takes the cross-process advisory lock, waiting until ctx is done.
// Each call opens its own lock handle so callers in one process exclude each
// other as well.
func (s *Store) Lock(ctx context.Context) (func(), error) {
	lock := flock.New(s.lockPath)
	ok, err := lock.TryLockContext(ensureContext(ctx), lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire format lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("acquire format lock: %s is held", s.lockPath)
	}
	return func() { _ = lock.Unlock() }, nil
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (formats.Record, error) {
	var (
		record      formats.Record
		titleKey    sql.NullString
		templateKey sql.NullString
		selected    int64
		updatedRaw  string
	)
	if err := scanner.Scan(
		&record.ID,
		&record.Title,
		&record.Template,
		&titleKey,
		&templateKey,
		&selected,
		&record.Revision,
		&updatedRaw,
	); err != nil {
		return formats.Record{}, err
	}
	record.TitleKey = titleKey.String
	record.TemplateKey = templateKey.String
	record.Selected = selected != 0
	if updated, err := time.Parse(time.RFC3339Nano, updatedRaw); err == nil {
		record.UpdatedAt = updated
	}
	return record, nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code()&0xff == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
