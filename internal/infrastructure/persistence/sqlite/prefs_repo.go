package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bnema/dimmer/internal/logging"
)

// PrefsRepository persists string preferences keyed by scope and id.
type PrefsRepository struct {
	db *sql.DB
}

// NewPrefsRepository creates a new SQLite-backed preference repository.
func NewPrefsRepository(db *sql.DB) *PrefsRepository {
	return &PrefsRepository{db: db}
}

// Get returns the value stored under key. ok is false when absent.
func (r *PrefsRepository) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("key", key).Msg("reading preference")

	row := r.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (r *PrefsRepository) Set(ctx context.Context, key, value string) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("key", key).Str("value", value).Msg("writing preference")

	_, err := r.db.ExecContext(ctx, `
INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	return err
}

// Delete removes the value stored under key.
func (r *PrefsRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key)
	return err
}

// All returns every stored key/value pair.
func (r *PrefsRepository) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM preferences ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, rows.Err()
}

// Store binds a repository and a context into the synchronous key-value
// handle the dark mode controller consumes.
type Store struct {
	repo *PrefsRepository
	ctx  context.Context
}

// NewStore creates a controller-facing store over repo.
func NewStore(ctx context.Context, repo *PrefsRepository) *Store {
	return &Store{repo: repo, ctx: ctx}
}

// Get implements the controller's store contract.
func (s *Store) Get(key string) (string, bool, error) {
	return s.repo.Get(s.ctx, key)
}

// Set implements the controller's store contract.
func (s *Store) Set(key, value string) error {
	return s.repo.Set(s.ctx, key, value)
}
