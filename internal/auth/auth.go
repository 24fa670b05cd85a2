// Package auth хранит единственную учётную запись посетителя и его сессию.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmeshcher/golden-hive/internal/model"
	"github.com/mmeshcher/golden-hive/internal/storage"
	"github.com/mmeshcher/golden-hive/internal/validation"
)

// MinPasswordLength — минимальная длина пароля в символах.
const MinPasswordLength = 6

// loggedOutButton — текст кнопки профиля для гостя.
const loggedOutButton = "Войти"

// Storage описывает хранилище «ключ-значение», которым пользуется Store.
type Storage interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, value any)
	Delete(ctx context.Context, key string)
}

// Store регистрирует, авторизует и разлогинивает посетителя.
type Store struct {
	kv   Storage
	cost int
}

// NewStore создаёт хранилище аккаунта поверх kv.
func NewStore(kv Storage) *Store {
	return &Store{
		kv:   kv,
		cost: bcrypt.DefaultCost,
	}
}

// Register создаёт аккаунт, заменяя предыдущий, и сразу выполняет вход.
func (s *Store) Register(ctx context.Context, name, email, password string) (*model.Account, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" {
		return nil, model.NewValidationError("Заполните все поля")
	}
	if !validation.IsValidEmail(email) {
		return nil, model.NewValidationError("Введите корректный email")
	}
	if validation.Length(password) < MinPasswordLength {
		return nil, model.NewValidationError(fmt.Sprintf("Пароль — минимум %d символов", MinPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword(prehash(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	s.kv.Set(ctx, storage.KeyUser, account)
	s.kv.Set(ctx, storage.KeyLoggedUser, email)

	return account, nil
}

// Login проверяет email и пароль и открывает сессию. При ошибке сессия не меняется.
func (s *Store) Login(ctx context.Context, email, password string) (*model.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, model.NewValidationError("Заполните все поля")
	}

	var account model.Account
	if !s.kv.Get(ctx, storage.KeyUser, &account) {
		return nil, model.ErrAccountNotFound
	}

	if account.Email != email {
		return nil, model.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), prehash(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	s.kv.Set(ctx, storage.KeyLoggedUser, email)
	return &account, nil
}

// prehash сводит пароль любой длины к 64 байтам, которые принимает bcrypt.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	dst := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(dst, sum[:])
	return dst
}

// Logout закрывает сессию. Повторный вызов ничего не меняет.
func (s *Store) Logout(ctx context.Context) {
	s.kv.Delete(ctx, storage.KeyLoggedUser)
}

// SessionEmail возвращает email открытой сессии.
func (s *Store) SessionEmail(ctx context.Context) (string, bool) {
	var email string
	if !s.kv.Get(ctx, storage.KeyLoggedUser, &email) || email == "" {
		return "", false
	}
	return email, true
}

// CurrentUser возвращает аккаунт, если сессия открыта и совпадает с сохранённым аккаунтом.
func (s *Store) CurrentUser(ctx context.Context) (*model.Account, bool) {
	email, ok := s.SessionEmail(ctx)
	if !ok {
		return nil, false
	}

	var account model.Account
	if !s.kv.Get(ctx, storage.KeyUser, &account) || account.Email != email {
		return nil, false
	}

	return &account, true
}

// Profile возвращает данные для блока профиля.
func (s *Store) Profile(ctx context.Context) model.Profile {
	account, ok := s.CurrentUser(ctx)
	if !ok {
		return model.Profile{ButtonText: loggedOutButton}
	}

	button := account.Name
	if fields := strings.Fields(account.Name); len(fields) > 0 {
		button = fields[0]
	}

	return model.Profile{
		LoggedIn:   true,
		Name:       account.Name,
		Email:      account.Email,
		ButtonText: button,
	}
}
