// internal/store/postgres.go
package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps engine records in a single key/value table managed by
// the migrations under internal/store/migrations.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pool settings
	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("[Store] ✅ Connected to PostgreSQL")
	return &PostgresStore{pool: pool}, nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM engine_records WHERE key = $1`

	var value []byte
	err := p.pool.QueryRow(ctx, query, key).Scan(&value)
	if err == pgx.ErrNoRows {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (p *PostgresStore) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO engine_records (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()
	`
	_, err := p.pool.Exec(ctx, query, key, value)
	return err
}

func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM engine_records WHERE key = $1`
	_, err := p.pool.Exec(ctx, query, key)
	return err
}

func (p *PostgresStore) ListKeysByPrefix(ctx context.Context, prefix string) ([]string, error) {
	query := `SELECT key FROM engine_records WHERE key LIKE $1 || '%' ORDER BY key`

	rows, err := p.pool.Query(ctx, query, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (p *PostgresStore) Close() error {
	if p.pool != nil {
		p.pool.Close()
		log.Println("[Store] PostgreSQL connection closed")
	}
	return nil
}
