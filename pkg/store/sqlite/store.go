// Package sqlite provides a SQLite-backed document store built on the pure-Go
// modernc.org/sqlite driver. Documents live in a single table keyed by
// (collection, id) with the body stored as JSON text.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	cerrors "github.com/iamsank8/portfolio/pkg/errors"
	"github.com/iamsank8/portfolio/pkg/store"
	"github.com/iamsank8/portfolio/pkg/store/sqlite/migrations"
)

// Store persists documents in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ store.Store = (*Store)(nil)

// Open opens (creating if needed) the SQLite database at path and applies
// embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, cerrors.New(cerrors.ErrCodeInvalidRequest, "storage path is required")
	}
	dsn := "file:" + filepath.Clean(path) +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeUnavailable, "open sqlite db", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, cerrors.Wrap(cerrors.ErrCodeUnavailable, "ping sqlite db", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, cerrors.Wrap(cerrors.ErrCodeInternal, "run migrations", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// List returns the documents of a collection ordered by id.
func (s *Store) List(ctx context.Context, collection string) ([]store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data FROM documents WHERE collection = ? ORDER BY id`, collection)
	if err != nil {
		return nil, wrapQuery("list documents", collection, err)
	}
	defer rows.Close()

	docs := []store.Document{}
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, wrapQuery("scan document", collection, err)
		}
		docs = append(docs, store.Document{ID: id, Data: []byte(data)})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQuery("iterate documents", collection, err)
	}
	return docs, nil
}

// Put upserts documents in a single transaction. created_at is kept on
// replace; updated_at is refreshed.
func (s *Store) Put(ctx context.Context, collection string, docs []store.Document) error {
	if err := store.ValidateCollection(collection); err != nil {
		return err
	}
	for _, d := range docs {
		if err := d.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapQuery("begin put", collection, err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO documents (collection, id, data, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`)
	if err != nil {
		_ = tx.Rollback()
		return wrapQuery("prepare put", collection, err)
	}
	defer stmt.Close()

	now := s.now().UTC().UnixMilli()
	for _, d := range docs {
		if _, err := stmt.ExecContext(ctx, collection, d.ID, string(d.Data), now, now); err != nil {
			_ = tx.Rollback()
			return wrapQuery("put document "+d.ID, collection, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return wrapQuery("commit put", collection, err)
	}
	return nil
}

// Clear deletes every document in a collection.
func (s *Store) Clear(ctx context.Context, collection string) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ?`, collection)
	if err != nil {
		return 0, wrapQuery("clear collection", collection, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrapQuery("clear collection", collection, err)
	}
	return int(n), nil
}

// Count returns the number of documents in a collection.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents WHERE collection = ?`, collection).Scan(&n); err != nil {
		return 0, wrapQuery("count documents", collection, err)
	}
	return n, nil
}

// Collections lists the collections that hold documents.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT collection FROM documents ORDER BY collection`)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeUnavailable, "list collections", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeUnavailable, "scan collection", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeUnavailable, "iterate collections", err)
	}
	return names, nil
}

func wrapQuery(op, collection string, err error) error {
	code := cerrors.ErrCodeUnavailable
	if errors.Is(err, context.DeadlineExceeded) {
		code = cerrors.ErrCodeTimeout
	}
	return cerrors.WrapWithContext(code, op, err, map[string]any{
		"collection": collection,
		"store":      "sqlite",
	})
}
