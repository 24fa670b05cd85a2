// Package page связывает компоненты сайта в состояние страницы одного посетителя.
//
// Обработчики одного посетителя выполняются строго по очереди под мьютексом страницы,
// так же как события в браузере обрабатываются по одному.
package page

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/golden-hive/internal/auth"
	"github.com/mmeshcher/golden-hive/internal/booking"
	"github.com/mmeshcher/golden-hive/internal/dialog"
	"github.com/mmeshcher/golden-hive/internal/markup"
	"github.com/mmeshcher/golden-hive/internal/menu"
	"github.com/mmeshcher/golden-hive/internal/model"
	"github.com/mmeshcher/golden-hive/internal/rating"
	"github.com/mmeshcher/golden-hive/internal/review"
	"github.com/mmeshcher/golden-hive/internal/storage"
)

// DefaultCloseDelay — задержка автоматического закрытия окна бронирования.
const DefaultCloseDelay = 2800 * time.Millisecond

// RatingState описывает отображение звёзд в форме отзыва.
type RatingState struct {
	Selected  int     `json:"selected"`
	Displayed int     `json:"displayed"`
	Focused   int     `json:"focused"`
	Stars     [5]bool `json:"stars"`
	Label     string  `json:"label"`
}

// MenuState описывает вкладки и карточки меню.
type MenuState struct {
	Active     string      `json:"active"`
	Categories []string    `json:"categories"`
	Items      []menu.Card `json:"items"`
}

// State — полный снимок страницы посетителя.
type State struct {
	Profile        model.Profile      `json:"profile"`
	Dialog         string             `json:"dialog"`
	ScrollLocked   bool               `json:"scrollLocked"`
	Package        string             `json:"package,omitempty"`
	Product        *model.MenuItem    `json:"product,omitempty"`
	MinBookingDate string             `json:"minBookingDate"`
	Rating         RatingState        `json:"rating"`
	ReviewDraft    string             `json:"reviewDraft"`
	PendingDelete  string             `json:"pendingDelete,omitempty"`
	Menu           MenuState          `json:"menu"`
	Reviews        []model.ReviewCard `json:"reviews"`
}

// Page владеет компонентами страницы одного посетителя.
type Page struct {
	mu sync.Mutex

	auth     *auth.Store
	bookings *booking.Service
	dialogs  *dialog.Manager
	rating   *rating.Input
	reviews  *review.Board
	menu     *menu.Filter

	selectedPackage string
	product         *model.MenuItem

	closeDelay time.Duration
	closeTimer *time.Timer
	closeGen   uint64
	logger     *zap.Logger
}

// New создаёт страницу поверх хранилища посетителя.
func New(kv *storage.Store, content *markup.Content, closeDelay time.Duration, logger *zap.Logger) *Page {
	if logger == nil {
		logger = zap.NewNop()
	}
	if content == nil {
		content = &markup.Content{}
	}

	accounts := auth.NewStore(kv)
	dialogs := dialog.NewManager(dialog.All...)
	input := rating.NewInput()

	return &Page{
		auth:       accounts,
		bookings:   booking.NewService(kv),
		dialogs:    dialogs,
		rating:     input,
		reviews:    review.NewBoard(kv, accounts, dialogs, input, content.Seeds),
		menu:       menu.NewFilter(content.Menu),
		closeDelay: closeDelay,
		logger:     logger,
	}
}

// Snapshot возвращает текущее состояние страницы.
func (p *Page) Snapshot(ctx context.Context) State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.snapshot(ctx)
}

func (p *Page) snapshot(ctx context.Context) State {
	return State{
		Profile:        p.auth.Profile(ctx),
		Dialog:         p.dialogs.Active(),
		ScrollLocked:   p.dialogs.ScrollLocked(),
		Package:        p.selectedPackage,
		Product:        p.product,
		MinBookingDate: p.bookings.MinDate(),
		Rating:         p.ratingState(),
		ReviewDraft:    p.reviews.Draft(),
		PendingDelete:  p.reviews.Pending(),
		Menu: MenuState{
			Active:     p.menu.Active(),
			Categories: p.menu.Categories(),
			Items:      p.menu.Cards(),
		},
		Reviews: p.reviews.Render(ctx),
	}
}

func (p *Page) ratingState() RatingState {
	return RatingState{
		Selected:  p.rating.Selected(),
		Displayed: p.rating.Displayed(),
		Focused:   p.rating.Focused(),
		Stars:     p.rating.Stars(),
		Label:     p.rating.Label(),
	}
}

// OpenDialog открывает зарегистрированное окно по идентификатору.
func (p *Page) OpenDialog(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.dialogs.Registered(id) {
		return false
	}
	p.dialogs.Open(id)
	return true
}

// CloseDialogs закрывает все окна.
func (p *Page) CloseDialogs() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.dialogs.CloseAll()
}

// Click обрабатывает клик по элементу с указанными классами.
func (p *Page) Click(classes []string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.dialogs.HandleClick(classes...)
}

// Key обрабатывает нажатие клавиши вне формы отзыва.
func (p *Page) Key(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.dialogs.HandleKey(key)
}

// Profile возвращает данные профиля.
func (p *Page) Profile(ctx context.Context) model.Profile {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.auth.Profile(ctx)
}

// Register регистрирует посетителя и закрывает окна.
func (p *Page) Register(ctx context.Context, name, email, password string) (*model.Account, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	account, err := p.auth.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	p.dialogs.CloseAll()
	p.logger.Info("account registered")
	return account, nil
}

// Login выполняет вход и закрывает окна. При ошибке форма остаётся открытой.
func (p *Page) Login(ctx context.Context, email, password string) (*model.Account, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	account, err := p.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	p.dialogs.CloseAll()
	return account, nil
}

// Logout завершает сессию и закрывает окна.
func (p *Page) Logout(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.auth.Logout(ctx)
	p.dialogs.CloseAll()
}

// SelectPackage выбирает пакет бронирования и открывает форму.
func (p *Page) SelectPackage(pkg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.selectedPackage = strings.TrimSpace(pkg)
	p.dialogs.Open(dialog.Booking)
}

// SubmitBooking сохраняет бронирование выбранного пакета и через closeDelay закрывает форму.
func (p *Page) SubmitBooking(ctx context.Context, req model.BookingRequest) (*model.Booking, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if req.Package == "" {
		req.Package = p.selectedPackage
	}

	b, err := p.bookings.Submit(ctx, req)
	if err != nil {
		return nil, err
	}

	p.logger.Info("booking accepted", zap.String("package", b.Package), zap.String("date", b.Date))
	p.scheduleBookingClose()
	return b, nil
}

func (p *Page) scheduleBookingClose() {
	if p.closeTimer != nil {
		p.closeTimer.Stop()
	}
	p.closeGen++
	gen := p.closeGen
	p.closeTimer = time.AfterFunc(p.closeDelay, func() {
		p.closeBooking(gen)
	})
}

// closeBooking срабатывает по таймеру. Таймер, заменённый более новым бронированием, ничего не делает.
func (p *Page) closeBooking(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.closeGen {
		return
	}
	if p.dialogs.IsOpen(dialog.Booking) {
		p.dialogs.CloseAll()
	}
}

// Release останавливает таймер страницы. Вызывается при вытеснении страницы из реестра.
func (p *Page) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closeTimer != nil {
		p.closeTimer.Stop()
	}
	p.closeGen++
}

// OpenReview открывает форму отзыва.
func (p *Page) OpenReview(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.reviews.Open(ctx)
}

// SubmitReview публикует отзыв.
func (p *Page) SubmitReview(ctx context.Context, text string) (*model.Review, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.reviews.Submit(ctx, text)
}

// RequestDelete открывает подтверждение удаления отзыва.
func (p *Page) RequestDelete(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.reviews.RequestDelete(id)
}

// ConfirmDelete удаляет отзыв, ожидающий подтверждения.
func (p *Page) ConfirmDelete(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.reviews.ConfirmDelete(ctx)
}

// CancelDelete отменяет удаление.
func (p *Page) CancelDelete() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.reviews.CancelDelete()
}

// Reviews возвращает список карточек отзывов.
func (p *Page) Reviews(ctx context.Context) []model.ReviewCard {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.reviews.Render(ctx)
}

// SetRating фиксирует оценку.
func (p *Page) SetRating(r int) (RatingState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.rating.SetRating(r)
	return p.ratingState(), err
}

// PreviewRating показывает оценку при наведении.
func (p *Page) PreviewRating(r int) (RatingState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.rating.PreviewRating(r)
	return p.ratingState(), err
}

// LeaveRating возвращает отображение к выбранной оценке.
func (p *Page) LeaveRating() RatingState {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.rating.Leave()
	return p.ratingState()
}

// RatingKey обрабатывает клавишу на звезде с индексом star.
func (p *Page) RatingKey(star int, key string) RatingState {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.rating.Focus(star)
	p.rating.HandleKey(key)
	return p.ratingState()
}

// FilterMenu переключает вкладку меню.
func (p *Page) FilterMenu(category string) []menu.Card {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.menu.SelectCategory(category)
}

// Menu возвращает состояние меню.
func (p *Page) Menu() MenuState {
	p.mu.Lock()
	defer p.mu.Unlock()

	return MenuState{
		Active:     p.menu.Active(),
		Categories: p.menu.Categories(),
		Items:      p.menu.Cards(),
	}
}

// OpenProduct открывает карточку позиции меню.
func (p *Page) OpenProduct(id string) (*model.MenuItem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	item, ok := p.menu.Item(id)
	if !ok {
		return nil, model.ErrMenuItemNotFound
	}
	p.product = &item
	p.dialogs.Open(dialog.Product)
	return &item, nil
}
