package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrNotFound = errors.New("key not found")

// Fixed keys the session holder writes. Kept as constants so login's
// replace-all and logout's clear wipe exactly the same set a reader expects.
const (
	KeyToken = "token"
	KeyRole  = "role"
	KeyUser  = "user"
)

func (d *DB) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := d.Pool.QueryRowContext(ctx,
		`SELECT value FROM client_state WHERE key = ?;`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return v, err
}

func (d *DB) Set(ctx context.Context, key, value string) error {
	_, err := d.Pool.ExecContext(ctx, `
INSERT INTO client_state(key, value, updated_at) VALUES(?,?,?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at;`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (d *DB) Delete(ctx context.Context, key string) error {
	_, err := d.Pool.ExecContext(ctx, `DELETE FROM client_state WHERE key = ?;`, key)
	return err
}

// Clear wipes the whole table, not just the known keys, so a newer engine's
// leftovers can't survive a logout on an older one.
func (d *DB) Clear(ctx context.Context) error {
	_, err := d.Pool.ExecContext(ctx, `DELETE FROM client_state;`)
	return err
}
