// Package sqlite persists the audit state as JSON documents in a local
// SQLite database: one row per document (collection, baseline, guidance).
// The repository stores raw shapes only; hydration never crosses this
// boundary.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	goerrors "errors"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"auditkit/domain/checklist"
	"auditkit/domain/guidance"
	"auditkit/domain/scoring"
	"auditkit/internal/errors"
)

const (
	docCollection = "collection"
	docBaseline   = "baseline"
	docGuidance   = "guidance"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	name       TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// Repository implements ports.StateRepository and ports.GuidanceRepository
// over a single SQLite file.
type Repository struct {
	db *sqlx.DB
}

// Open connects to (creating if needed) the SQLite database at path and
// ensures the schema exists.
func Open(path string) (*Repository, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open state database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to initialize state schema")
	}
	return &Repository{db: db}, nil
}

// Close releases the underlying database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}

// LoadCollection returns the persisted raw categories, or (nil, nil) when
// nothing has been saved yet. A row that fails to decode is reported as a
// storage error so the caller can fall back to the bundled template.
func (r *Repository) LoadCollection(ctx context.Context) ([]checklist.RawCategory, error) {
	payload, found, err := r.loadDocument(ctx, docCollection)
	if err != nil || !found {
		return nil, err
	}
	var raw []checklist.RawCategory
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, errors.WithCode(errors.CodeStorageError,
			errors.Wrap(err, "persisted collection is corrupted"))
	}
	return raw, nil
}

// SaveCollection overwrites the persisted raw categories.
func (r *Repository) SaveCollection(ctx context.Context, raw []checklist.RawCategory) error {
	return r.saveDocument(ctx, docCollection, raw)
}

// LoadBaseline returns the stored baseline, or (nil, nil) when none exists.
func (r *Repository) LoadBaseline(ctx context.Context) (*scoring.Baseline, error) {
	payload, found, err := r.loadDocument(ctx, docBaseline)
	if err != nil || !found {
		return nil, err
	}
	var baseline scoring.Baseline
	if err := json.Unmarshal(payload, &baseline); err != nil {
		return nil, errors.WithCode(errors.CodeStorageError,
			errors.Wrap(err, "persisted baseline is corrupted"))
	}
	return &baseline, nil
}

// SaveBaseline overwrites the stored baseline snapshot.
func (r *Repository) SaveBaseline(ctx context.Context, baseline scoring.Baseline) error {
	return r.saveDocument(ctx, docBaseline, baseline)
}

// LoadGuidance returns the persisted learning-hub entries, or (nil, nil).
func (r *Repository) LoadGuidance(ctx context.Context) (guidance.List, error) {
	payload, found, err := r.loadDocument(ctx, docGuidance)
	if err != nil || !found {
		return nil, err
	}
	var entries guidance.List
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, errors.WithCode(errors.CodeStorageError,
			errors.Wrap(err, "persisted guidance is corrupted"))
	}
	return entries, nil
}

// SaveGuidance overwrites the persisted learning-hub entries.
func (r *Repository) SaveGuidance(ctx context.Context, entries guidance.List) error {
	return r.saveDocument(ctx, docGuidance, entries)
}

func (r *Repository) loadDocument(ctx context.Context, name string) ([]byte, bool, error) {
	var payload string
	err := r.db.GetContext(ctx, &payload,
		`SELECT payload FROM documents WHERE name = ?`, name)
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.WithCode(errors.CodeStorageError,
			errors.Wrapf(err, "failed to load %s document", name))
	}
	return []byte(payload), true, nil
}

func (r *Repository) saveDocument(ctx context.Context, name string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s document", name)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO documents (name, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, name, string(payload), time.Now().UTC())
	if err != nil {
		return errors.WithCode(errors.CodeStorageError,
			errors.Wrapf(err, "failed to save %s document", name))
	}
	return nil
}
