package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PostgresStore keeps the blob in a key/value table. The engine still
// reads and writes the whole collection in one round trip; Postgres is
// only the durable home for the blob, not a per-card schema.
type PostgresStore struct {
	conn *pgx.Conn
}

// NewPostgresStore connects to dbURL and ensures the kv_blobs table
// exists. Close must be called when done.
func NewPostgresStore(ctx context.Context, dbURL string) (*PostgresStore, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("db url missing")
	}
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	_, err = conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS kv_blobs (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`)
	if err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("ensure kv_blobs table: %w", err)
	}
	return &PostgresStore{conn: conn}, nil
}

func (p *PostgresStore) Load(ctx context.Context) (string, bool, error) {
	var raw string
	err := p.conn.QueryRow(ctx,
		`SELECT value FROM kv_blobs WHERE key = $1`, BlobKey).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load blob %s: %w", BlobKey, err)
	}
	return raw, true, nil
}

func (p *PostgresStore) Save(ctx context.Context, raw string) error {
	_, err := p.conn.Exec(ctx, `
		INSERT INTO kv_blobs (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		BlobKey, raw)
	if err != nil {
		return fmt.Errorf("save blob %s: %w", BlobKey, err)
	}
	return nil
}

func (p *PostgresStore) Close(ctx context.Context) error {
	return p.conn.Close(ctx)
}
