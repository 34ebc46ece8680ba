// package dbutil opens SQLite databases and runs transactions on them.
package dbutil

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Open opens the SQLite database at p.
// p can be ":memory:" for a database which lives as long as the returned *sqlx.DB
func Open(p string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", p)
	if err != nil {
		return nil, err
	}
	// a :memory: database is private to its connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// DoTx runs fn in a transaction, committing if fn returns nil and rolling back otherwise.
func DoTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	_, err := DoTx1(ctx, db, func(tx *sqlx.Tx) (struct{}, error) {
		return struct{}{}, fn(tx)
	})
	return err
}

// DoTx1 is DoTx for functions which return a value.
func DoTx1[T any](ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) (T, error)) (T, error) {
	var zero T
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return zero, err
	}
	ret, err := fn(tx)
	if err != nil {
		if err2 := tx.Rollback(); err2 != nil {
			err = errors.Join(err, err2)
		}
		return zero, err
	}
	if err := tx.Commit(); err != nil {
		return zero, err
	}
	return ret, nil
}

// DoTxR runs fn in a read-only transaction.
func DoTxR[T any](ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) (T, error)) (T, error) {
	var zero T
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return zero, err
	}
	defer tx.Rollback()
	return fn(tx)
}
