// Package storage реализует хранилище «ключ-значение» с JSON-кодированием поверх
// сменных бэкендов: памяти, PostgreSQL и Redis.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"

	"go.uber.org/zap"
)

// ErrNotFound возвращается бэкендом, если ключ отсутствует.
var ErrNotFound = errors.New("key not found")

// Ключи, под которыми сайт хранит свои данные.
const (
	KeyUser       = "user"
	KeyLoggedUser = "loggedUser"
	KeyBookings   = "bookings"
	KeyReviews    = "reviews"
)

// Backend описывает сырое хранилище байтовых значений.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys возвращает ключи, подходящие под шаблон, в котором '*' означает любую подстроку.
	Keys(ctx context.Context, pattern string) ([]string, error)
	Close() error
}

// Store кодирует значения в JSON и никогда не возвращает вызывающему ошибки хранилища:
// сбои только логируются.
type Store struct {
	backend Backend
	prefix  string
	logger  *zap.Logger
}

// NewStore создаёт хранилище поверх указанного бэкенда.
func NewStore(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		backend: backend,
		logger:  logger,
	}
}

// Scoped возвращает хранилище, все ключи которого начинаются с prefix.
func (s *Store) Scoped(prefix string) *Store {
	return &Store{
		backend: s.backend,
		prefix:  s.prefix + prefix,
		logger:  s.logger,
	}
}

// Get читает значение по ключу в dst. Возвращает false, если ключа нет или значение не удалось разобрать.
func (s *Store) Get(ctx context.Context, key string, dst any) bool {
	raw, err := s.backend.Get(ctx, s.prefix+key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("storage read error", zap.String("key", s.prefix+key), zap.Error(err))
		}
		return false
	}

	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		s.logger.Error("storage decode target is not a pointer", zap.String("key", s.prefix+key))
		return false
	}

	// Разбор идёт в новое значение: при ошибке типа json успевает заполнить часть полей.
	fresh := reflect.New(target.Type().Elem())
	if err := json.Unmarshal(raw, fresh.Interface()); err != nil {
		s.logger.Warn("storage decode error", zap.String("key", s.prefix+key), zap.Error(err))
		return false
	}
	target.Elem().Set(fresh.Elem())

	return true
}

// Set сохраняет значение по ключу. При ошибке прежнее значение остаётся без изменений.
func (s *Store) Set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("storage encode error", zap.String("key", s.prefix+key), zap.Error(err))
		return
	}

	if err := s.backend.Set(ctx, s.prefix+key, raw); err != nil {
		s.logger.Error("storage write error", zap.String("key", s.prefix+key), zap.Error(err))
	}
}

// Delete удаляет ключ. Отсутствие ключа ошибкой не считается.
func (s *Store) Delete(ctx context.Context, key string) {
	if err := s.backend.Delete(ctx, s.prefix+key); err != nil && !errors.Is(err, ErrNotFound) {
		s.logger.Error("storage delete error", zap.String("key", s.prefix+key), zap.Error(err))
	}
}
