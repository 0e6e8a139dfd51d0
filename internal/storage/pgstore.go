package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool matches the methods from *pgxpool.Pool that the store uses, so
// tests can substitute a mock pool.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PGStore keeps snapshots in a single key/value table. Fixed POS terminals
// share the store database anyway, so their cart survives terminal restarts
// without a writable local disk.
type PGStore struct {
	pool DBPool
	key  string
}

func NewPGStore(pool DBPool, key string) *PGStore {
	return &PGStore{pool: pool, key: key}
}

func (s *PGStore) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	row := s.pool.QueryRow(ctx, `SELECT data FROM cart_snapshots WHERE snapshot_key = $1`, s.key)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load snapshot %q: %w", s.key, err)
	}
	return data, nil
}

func (s *PGStore) Save(ctx context.Context, data []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO cart_snapshots (snapshot_key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (snapshot_key) DO UPDATE
		SET data = EXCLUDED.data, updated_at = now()
	`, s.key, data)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", s.key, err)
	}
	return nil
}
