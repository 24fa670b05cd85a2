// Package booking принимает заявки на бронирование и дописывает их в журнал.
package booking

import (
	"context"
	"strings"
	"time"

	"github.com/mmeshcher/golden-hive/internal/model"
	"github.com/mmeshcher/golden-hive/internal/storage"
	"github.com/mmeshcher/golden-hive/internal/validation"
)

// Storage описывает хранилище «ключ-значение», которым пользуется Service.
type Storage interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, value any)
}

// Service проверяет и сохраняет бронирования.
type Service struct {
	kv  Storage
	now func() time.Time
}

// NewService создаёт сервис бронирований поверх kv.
func NewService(kv Storage) *Service {
	return &Service{
		kv:  kv,
		now: time.Now,
	}
}

// Submit проверяет поля формы и добавляет бронирование в конец журнала.
// Дата раньше сегодняшней отклоняется, сегодняшняя принимается.
func (s *Service) Submit(ctx context.Context, req model.BookingRequest) (*model.Booking, error) {
	b := model.Booking{
		Package: strings.TrimSpace(req.Package),
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Date:    strings.TrimSpace(req.Date),
		People:  req.People,
	}

	if validation.HasBlank(b.Name, b.Email, b.Phone, b.Date) {
		return nil, model.NewValidationError("Пожалуйста, заполните все поля")
	}
	if !validation.IsValidEmail(b.Email) {
		return nil, model.NewValidationError("Введите корректный email")
	}

	now := s.now()
	date, err := validation.ParseDate(b.Date, now.Location())
	if err != nil {
		return nil, model.NewValidationError("Введите корректную дату")
	}
	if !validation.NotBefore(date, now) {
		return nil, model.NewValidationError("Дата не может быть раньше сегодняшней")
	}

	if b.People < 1 {
		b.People = 1
	}
	b.CreatedAt = now.UTC()

	var bookings []model.Booking
	s.kv.Get(ctx, storage.KeyBookings, &bookings)
	bookings = append(bookings, b)
	s.kv.Set(ctx, storage.KeyBookings, bookings)

	return &b, nil
}

// MinDate возвращает нижнюю границу поля даты — сегодняшний день.
func (s *Service) MinDate() string {
	return s.now().Format(validation.DateLayout)
}
