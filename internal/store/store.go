// Package store is the persistence layer. Queries are written with ?
// placeholders and rebound for the connected driver.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// DB exposes the underlying connection for migrations and health checks.
func (s *Store) DB() *sqlx.DB { return s.db }

func (s *Store) q(query string) string { return s.db.Rebind(query) }

func (s *Store) timestamp() time.Time { return s.now().UTC() }

// withTx runs fn in a transaction, committing only if fn succeeds.
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func expectRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
