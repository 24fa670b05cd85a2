// Package review реализует доску отзывов: добавление, вывод и удаление с подтверждением.
package review

import (
	"context"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mmeshcher/golden-hive/internal/dialog"
	"github.com/mmeshcher/golden-hive/internal/model"
	"github.com/mmeshcher/golden-hive/internal/rating"
	"github.com/mmeshcher/golden-hive/internal/storage"
	"github.com/mmeshcher/golden-hive/internal/validation"
)

// Ограничения длины текста отзыва в символах.
const (
	MinTextLength = 10
	MaxTextLength = 500
)

var avatarColors = []string{"#D4AF37", "#8B6914", "#A0522D", "#C07C2C", "#6B4E17"}

// Storage описывает хранилище «ключ-значение», которым пользуется Board.
type Storage interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, value any)
}

// Accounts даёт доступ к текущему пользователю.
type Accounts interface {
	CurrentUser(ctx context.Context) (*model.Account, bool)
	SessionEmail(ctx context.Context) (string, bool)
}

// Dialogs открывает и закрывает модальные окна.
type Dialogs interface {
	Open(id string)
	CloseAll()
}

// Board хранит отзывы и состояние ожидающего подтверждения удаления.
type Board struct {
	kv       Storage
	accounts Accounts
	dialogs  Dialogs
	rating   *rating.Input
	seeds    []model.Review

	pending string
	draft   string

	newID func() string
	now   func() time.Time
}

// NewBoard создаёт доску отзывов. seeds — статические отзывы из разметки страницы.
func NewBoard(kv Storage, accounts Accounts, dialogs Dialogs, input *rating.Input, seeds []model.Review) *Board {
	return &Board{
		kv:       kv,
		accounts: accounts,
		dialogs:  dialogs,
		rating:   input,
		seeds:    seeds,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Open открывает форму отзыва. Гостю вместо неё показывается окно профиля.
func (b *Board) Open(ctx context.Context) error {
	if _, ok := b.accounts.CurrentUser(ctx); !ok {
		b.dialogs.Open(dialog.Profile)
		return model.ErrNotAuthenticated
	}

	b.rating.Reset()
	b.draft = ""
	b.dialogs.Open(dialog.Review)
	return nil
}

// Submit публикует отзыв с текущей оценкой от имени вошедшего пользователя.
func (b *Board) Submit(ctx context.Context, text string) (*model.Review, error) {
	text = strings.TrimSpace(text)
	b.draft = text

	switch n := validation.Length(text); {
	case n == 0:
		return nil, model.NewValidationError("Напишите текст отзыва")
	case n < MinTextLength:
		return nil, model.NewValidationError("Минимум 10 символов")
	case n > MaxTextLength:
		return nil, model.NewValidationError("Максимум 500 символов")
	}

	user, ok := b.accounts.CurrentUser(ctx)
	if !ok {
		return nil, model.ErrNotAuthenticated
	}

	now := b.now()
	r := model.Review{
		ID:          b.newID(),
		Author:      user.Name,
		AuthorEmail: user.Email,
		Text:        text,
		Date:        FormatDate(now),
		Rating:      b.rating.Selected(),
		CreatedAt:   now.UTC(),
	}

	reviews := append([]model.Review{r}, b.load(ctx)...)
	b.kv.Set(ctx, storage.KeyReviews, reviews)

	b.draft = ""
	b.dialogs.CloseAll()
	return &r, nil
}

// RequestDelete запоминает отзыв для удаления и открывает окно подтверждения.
func (b *Board) RequestDelete(id string) {
	b.pending = id
	b.dialogs.Open(dialog.Delete)
}

// ConfirmDelete удаляет отзыв, ожидающий подтверждения. Владелец отзыва проверяется повторно:
// за время подтверждения сессия могла смениться. Отсутствующий отзыв не считается ошибкой.
func (b *Board) ConfirmDelete(ctx context.Context) (bool, error) {
	if b.pending == "" {
		return false, nil
	}

	id := b.pending
	b.pending = ""
	b.dialogs.CloseAll()

	reviews := b.load(ctx)
	idx := -1
	for i, r := range reviews {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	email, ok := b.accounts.SessionEmail(ctx)
	if !ok {
		return false, model.ErrNotAuthenticated
	}
	if reviews[idx].AuthorEmail != email {
		return false, model.ErrForbidden
	}

	reviews = append(reviews[:idx], reviews[idx+1:]...)
	b.kv.Set(ctx, storage.KeyReviews, reviews)
	return true, nil
}

// CancelDelete сбрасывает ожидающее удаление.
func (b *Board) CancelDelete() {
	b.pending = ""
	b.dialogs.CloseAll()
}

// Pending возвращает идентификатор отзыва, ожидающего подтверждения удаления.
func (b *Board) Pending() string {
	return b.pending
}

// Draft возвращает текст формы отзыва.
func (b *Board) Draft() string {
	return b.draft
}

// Render собирает список карточек: сохранённые отзывы от новых к старым, затем статические.
// Кнопка удаления доступна только автору отзыва.
func (b *Board) Render(ctx context.Context) []model.ReviewCard {
	saved := b.load(ctx)
	email, loggedIn := b.accounts.SessionEmail(ctx)

	cards := make([]model.ReviewCard, 0, len(saved)+len(b.seeds))
	for _, r := range saved {
		c := buildCard(r)
		c.CanDelete = loggedIn && r.AuthorEmail == email
		cards = append(cards, c)
	}
	for _, r := range b.seeds {
		c := buildCard(r)
		c.ID = ""
		c.Static = true
		cards = append(cards, c)
	}
	return cards
}

func (b *Board) load(ctx context.Context) []model.Review {
	var reviews []model.Review
	b.kv.Get(ctx, storage.KeyReviews, &reviews)
	return reviews
}

func buildCard(r model.Review) model.ReviewCard {
	initials, color := "", avatarColors[0]
	if first, _ := utf8.DecodeRuneInString(r.Author); first != utf8.RuneError {
		initials = string(unicode.ToUpper(first))
		color = avatarColors[int(first)%len(avatarColors)]
	}

	return model.ReviewCard{
		ID:          r.ID,
		Author:      r.Author,
		Initials:    initials,
		AvatarColor: color,
		Date:        r.Date,
		Rating:      r.Rating,
		Stars:       rating.Fill(r.Rating),
		Text:        r.Text,
	}
}

// CharCounter возвращает число символов в тексте и признак приближения к лимиту.
func CharCounter(text string) (int, bool) {
	n := validation.Length(text)
	return n, n > MaxTextLength-50
}
