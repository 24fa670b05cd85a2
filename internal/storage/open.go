package storage

import (
	"context"
)

// Options описывает, к какому хранилищу подключаться.
type Options struct {
	DatabaseURI   string
	RedisAddress  string
	RedisPassword string
}

// Open выбирает бэкенд: PostgreSQL, если задан DatabaseURI, затем Redis,
// иначе хранилище в памяти процесса.
func Open(ctx context.Context, opts Options) (Backend, string, error) {
	switch {
	case opts.DatabaseURI != "":
		b, err := NewPostgresBackend(ctx, opts.DatabaseURI)
		return b, "postgres", err
	case opts.RedisAddress != "":
		b, err := NewRedisBackend(ctx, opts.RedisAddress, opts.RedisPassword, 0)
		return b, "redis", err
	default:
		return NewMemoryBackend(), "memory", nil
	}
}
