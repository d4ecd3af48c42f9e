package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// BlobRepo is a string-keyed store of opaque text values.
type BlobRepo struct {
	db querier
}

func NewBlobRepo(db *sql.DB) *BlobRepo {
	return &BlobRepo{db: db}
}

// WithTx returns a repo bound to tx.
func (r *BlobRepo) WithTx(tx *sql.Tx) *BlobRepo {
	return &BlobRepo{db: tx}
}

// Get returns the value stored under key. ok is false when the key is absent.
func (r *BlobRepo) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("blob get %s: %w", key, err)
	}
	return value, true, nil
}

func (r *BlobRepo) Put(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("blob put %s: %w", key, err)
	}
	return nil
}

func (r *BlobRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("blob delete %s: %w", key, err)
	}
	return nil
}
