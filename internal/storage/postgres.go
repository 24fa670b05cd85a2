package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresBackend хранит значения в таблице kv PostgreSQL.
type PostgresBackend struct {
	pool   *pgxpool.Pool
	delays []time.Duration
}

// NewPostgresBackend создаёт пул соединений и применяет миграции схемы.
func NewPostgresBackend(ctx context.Context, dsn string) (*PostgresBackend, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	b := &PostgresBackend{
		pool:   pool,
		delays: []time.Duration{100 * time.Millisecond, 300 * time.Millisecond, 500 * time.Millisecond},
	}

	if err := b.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return b, nil
}

func (b *PostgresBackend) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(b.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func (b *PostgresBackend) withRetry(ctx context.Context, fn func() error) error {
	var err error
	for i := 0; i <= len(b.delays); i++ {
		err = fn()
		if err == nil || !isRetryable(err) || i == len(b.delays) {
			return err
		}

		timer := time.NewTimer(b.delays[i])
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
	}

	return isConnectionError(err)
}

func isConnectionError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "connection reset by peer")
}

// Close закрывает пул соединений с БД.
func (b *PostgresBackend) Close() error {
	b.pool.Close()
	return nil
}

// Get возвращает значение по ключу.
func (b *PostgresBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.withRetry(ctx, func() error {
		return b.pool.QueryRow(ctx, `SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select value: %w", err)
	}
	return value, nil
}

// Set вставляет или заменяет значение по ключу.
func (b *PostgresBackend) Set(ctx context.Context, key string, value []byte) error {
	err := b.withRetry(ctx, func() error {
		_, err := b.pool.Exec(ctx,
			`INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, now())
			 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
			key, string(value),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("upsert value: %w", err)
	}
	return nil
}

// Delete удаляет ключ.
func (b *PostgresBackend) Delete(ctx context.Context, key string) error {
	err := b.withRetry(ctx, func() error {
		_, err := b.pool.Exec(ctx, `DELETE FROM kv WHERE key = $1`, key)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete value: %w", err)
	}
	return nil
}

// Keys возвращает ключи, подходящие под шаблон.
func (b *PostgresBackend) Keys(ctx context.Context, pattern string) ([]string, error) {
	rows, err := b.pool.Query(ctx,
		`SELECT key FROM kv WHERE key LIKE $1 ESCAPE '\' ORDER BY key`,
		likePattern(pattern),
	)
	if err != nil {
		return nil, fmt.Errorf("select keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return keys, nil
}

// likePattern переводит шаблон со '*' в шаблон SQL LIKE.
func likePattern(pattern string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`, `*`, `%`)
	return r.Replace(pattern)
}
