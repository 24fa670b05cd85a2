package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mmeshcher/golden-hive/internal/dialog"
	"github.com/mmeshcher/golden-hive/internal/markup"
	"github.com/mmeshcher/golden-hive/internal/middleware"
	"github.com/mmeshcher/golden-hive/internal/model"
	"github.com/mmeshcher/golden-hive/internal/page"
	"github.com/mmeshcher/golden-hive/internal/storage"
)

type testClient struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()

	c, _ := newTestClientWithRegistry(t, page.Options{})
	return c
}

func newTestClientWithRegistry(t *testing.T, opts page.Options) (*testClient, *page.Registry) {
	t.Helper()

	content := &markup.Content{
		Menu: []model.MenuItem{
			{ID: "mead", Name: "Медовуха", Category: "mead", Price: "350 ₽"},
			{ID: "cake", Name: "Медовик", Category: "desserts", Price: "290 ₽"},
		},
		Seeds: []model.Review{
			{Author: "Мария К.", Date: "3 мая 2025 г.", Text: "Лучший медовик в городе", Rating: 5},
		},
	}

	store := storage.NewStore(storage.NewMemoryBackend(), zap.NewNop())
	pages := page.NewRegistry(store, content, opts, zap.NewNop())
	h := NewHandler(pages, zap.NewNop(), middleware.NewVisitorMiddleware("test-secret"), []byte("<html></html>"))

	return &testClient{t: t, handler: h.SetupRouter()}, pages
}

func (c *testClient) do(method, target string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

func TestSite(t *testing.T) {
	c := newTestClient(t)

	rec := c.do(http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Equal(t, "<html></html>", rec.Body.String())
}

func TestGetPage_IssuesVisitorCookie(t *testing.T) {
	c := newTestClient(t)

	rec := c.do(http.MethodGet, "/api/page", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, c.cookies, 1)

	state := decodeBody[page.State](t, rec)
	assert.False(t, state.Profile.LoggedIn)
	assert.Equal(t, "Войти", state.Profile.ButtonText)
	assert.Len(t, state.Reviews, 1)
	assert.Equal(t, []string{"all", "mead", "desserts"}, state.Menu.Categories)
}

func TestDialogs(t *testing.T) {
	c := newTestClient(t)

	rec := c.do(http.MethodPost, "/api/dialogs/"+dialog.Login+"/open", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[dialogResponse](t, rec)
	assert.Equal(t, dialog.Login, resp.Dialog)
	assert.True(t, resp.ScrollLocked)

	rec = c.do(http.MethodPost, "/api/events/key", keyRequest{Key: "Enter"})
	resp = decodeBody[dialogResponse](t, rec)
	assert.False(t, resp.Handled)
	assert.Equal(t, dialog.Login, resp.Dialog)

	rec = c.do(http.MethodPost, "/api/events/click", clickRequest{Classes: []string{dialog.ClassBackdrop}})
	resp = decodeBody[dialogResponse](t, rec)
	assert.True(t, resp.Handled)
	assert.Equal(t, "", resp.Dialog)
	assert.False(t, resp.ScrollLocked)

	rec = c.do(http.MethodPost, "/api/dialogs/missingModal/open", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMalformedJSON(t *testing.T) {
	c := newTestClient(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody[errorResponse](t, rec)
	assert.Equal(t, NoticeError, resp.Notice.Type)
}

func TestAuthFlow(t *testing.T) {
	c := newTestClient(t)

	rec := c.do(http.MethodPost, "/api/auth/login", loginRequest{Email: "a@b.com", Password: "secret1"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Пользователь не найден. Зарегистрируйтесь.", decodeBody[errorResponse](t, rec).Notice.Message)

	rec = c.do(http.MethodPost, "/api/auth/register", registerRequest{Name: "Анна Петрова", Email: "a@b.com", Password: "123"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Пароль — минимум 6 символов", decodeBody[errorResponse](t, rec).Notice.Message)

	rec = c.do(http.MethodPost, "/api/auth/register", registerRequest{Name: "Анна Петрова", Email: "a@b.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[profileResponse](t, rec)
	assert.True(t, resp.Profile.LoggedIn)
	assert.Equal(t, "Анна", resp.Profile.ButtonText)
	require.NotNil(t, resp.Notice)
	assert.Equal(t, NoticeSuccess, resp.Notice.Type)

	rec = c.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeBody[profileResponse](t, rec).Profile.LoggedIn)

	rec = c.do(http.MethodPost, "/api/auth/login", loginRequest{Email: "a@b.com", Password: "wrong-pass"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Неверный email или пароль", decodeBody[errorResponse](t, rec).Notice.Message)

	rec = c.do(http.MethodPost, "/api/auth/login", loginRequest{Email: "a@b.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, "a@b.com", decodeBody[profileResponse](t, rec).Profile.Email)
}

func TestBooking(t *testing.T) {
	c := newTestClient(t)

	rec := c.do(http.MethodPost, "/api/bookings/package", packageRequest{Package: "Медовый вечер"})
	require.Equal(t, http.StatusOK, rec.Code)
	pkg := decodeBody[packageResponse](t, rec)
	assert.Equal(t, dialog.Booking, pkg.Dialog)
	assert.Equal(t, time.Now().Format("2006-01-02"), pkg.MinDate)

	rec = c.do(http.MethodPost, "/api/bookings", model.BookingRequest{Name: "Анна"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Пожалуйста, заполните все поля", decodeBody[errorResponse](t, rec).Notice.Message)

	rec = c.do(http.MethodPost, "/api/bookings", model.BookingRequest{
		Name:   "Анна",
		Email:  "a@b.com",
		Phone:  "+7 900 000-00-00",
		Date:   tomorrow(),
		People: 3,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody[bookingResponse](t, rec)
	assert.Equal(t, "Медовый вечер", resp.Booking.Package)
	assert.Equal(t, 3, resp.Booking.People)
	assert.Contains(t, resp.Message, tomorrow())
	assert.Equal(t, "Бронирование оформлено, Анна!", resp.Notice.Message)
}

func TestReviews(t *testing.T) {
	c := newTestClient(t)

	rec := c.do(http.MethodPost, "/api/reviews/open", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, NoticeWarning, decodeBody[errorResponse](t, rec).Notice.Type)

	rec = c.do(http.MethodPost, "/api/auth/register", registerRequest{Name: "Анна", Email: "a@b.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodPost, "/api/reviews/open", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	opened := decodeBody[openReviewResponse](t, rec)
	assert.Equal(t, dialog.Review, opened.Dialog)
	assert.Equal(t, 5, opened.Rating.Selected)

	rec = c.do(http.MethodPost, "/api/rating", ratingRequest{Rating: 4})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Хорошо", decodeBody[page.RatingState](t, rec).Label)

	rec = c.do(http.MethodPost, "/api/rating", ratingRequest{Rating: 7})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = c.do(http.MethodPost, "/api/reviews", reviewRequest{Text: "коротко"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Минимум 10 символов", decodeBody[errorResponse](t, rec).Notice.Message)

	rec = c.do(http.MethodPost, "/api/reviews", reviewRequest{Text: "Отличная медовуха и уютный зал"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[createReviewResponse](t, rec)
	assert.Equal(t, 4, created.Review.Rating)
	require.Len(t, created.Reviews, 2)
	assert.True(t, created.Reviews[0].CanDelete)
	assert.True(t, created.Reviews[1].Static)

	rec = c.do(http.MethodPost, "/api/reviews/"+created.Review.ID+"/delete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pending := decodeBody[deleteRequestResponse](t, rec)
	assert.Equal(t, created.Review.ID, pending.PendingDelete)
	assert.Equal(t, dialog.Delete, pending.Dialog)

	rec = c.do(http.MethodPost, "/api/reviews/delete/confirm", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	confirmed := decodeBody[confirmDeleteResponse](t, rec)
	assert.True(t, confirmed.Removed)
	assert.Len(t, confirmed.Reviews, 1)
	require.NotNil(t, confirmed.Notice)
	assert.Equal(t, "Отзыв удалён", confirmed.Notice.Message)
}

func TestCountReviewText(t *testing.T) {
	c := newTestClient(t)

	rec := c.do(http.MethodPost, "/api/reviews/counter", reviewRequest{Text: strings.Repeat("я", 460)})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[counterResponse](t, rec)
	assert.Equal(t, 460, resp.Count)
	assert.Equal(t, 500, resp.Max)
	assert.True(t, resp.Warn)
}

func TestMenu(t *testing.T) {
	c := newTestClient(t)

	rec := c.do(http.MethodPost, "/api/menu/filter", filterRequest{Category: "desserts"})
	require.Equal(t, http.StatusOK, rec.Code)
	filtered := decodeBody[filterResponse](t, rec)
	assert.Equal(t, "desserts", filtered.Active)
	require.Len(t, filtered.Visible, 1)
	assert.Equal(t, "cake", filtered.Visible[0].ID)

	rec = c.do(http.MethodPost, "/api/menu/mead/open", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	product := decodeBody[productResponse](t, rec)
	assert.Equal(t, "Медовуха", product.Product.Name)
	assert.Equal(t, dialog.Product, product.Dialog)

	rec = c.do(http.MethodPost, "/api/menu/unknown/open", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVisitorsAreIsolated(t *testing.T) {
	first := newTestClient(t)
	rec := first.do(http.MethodPost, "/api/auth/register", registerRequest{Name: "Анна", Email: "a@b.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)

	second := &testClient{t: t, handler: first.handler}
	rec = second.do(http.MethodGet, "/api/auth/me", nil)
	assert.False(t, decodeBody[profileResponse](t, rec).Profile.LoggedIn)
}

func TestCookielessRequestsAreBounded(t *testing.T) {
	c, pages := newTestClientWithRegistry(t, page.Options{MaxPages: 50})

	for i := 0; i < 500; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
		rec := httptest.NewRecorder()
		c.handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 50, pages.Len())
}

func TestErrorNotice(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", model.NewValidationError("Заполните все поля"), http.StatusUnprocessableEntity},
		{"not authenticated", model.ErrNotAuthenticated, http.StatusUnauthorized},
		{"forbidden", model.ErrForbidden, http.StatusForbidden},
		{"menu item", model.ErrMenuItemNotFound, http.StatusNotFound},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, n := errorNotice(tt.err)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, n.Message)
		})
	}
}
