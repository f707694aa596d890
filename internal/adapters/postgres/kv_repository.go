package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// KVRepository is the persistent key-value store backed by the kv_store table.
type KVRepository struct {
	pool *pgxpool.Pool
}

func (r *KVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	const q = `select value from kv_store where key = $1;`

	var value string
	if err := r.pool.QueryRow(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to select key %q: %w", key, err)
	}
	return value, true, nil
}

func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	const q = `
		insert into kv_store(key, value, updated_at) values ($1, $2, now())
		on conflict (key) do update
		  set value = excluded.value, updated_at = now();
	`

	if _, err := r.pool.Exec(ctx, q, key, value); err != nil {
		return fmt.Errorf("failed to upsert key %q: %w", key, err)
	}
	return nil
}

func (r *KVRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.pool.Exec(ctx, `delete from kv_store where key = $1;`, key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

func NewKVRepository(pool *pgxpool.Pool) *KVRepository {
	return &KVRepository{pool: pool}
}
