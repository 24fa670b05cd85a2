// Package handler содержит HTTP-обработчики API сайта «Золотой Улей».
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/mmeshcher/golden-hive/internal/middleware"
	"github.com/mmeshcher/golden-hive/internal/model"
	"github.com/mmeshcher/golden-hive/internal/page"
)

// Типы уведомлений, которые понимает скрипт страницы.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
	NoticeInfo    = "info"
	NoticeWarning = "warning"
)

// Pages определяет источник страниц посетителей.
type Pages interface {
	Get(visitorID string) *page.Page
}

// Handler реализует HTTP-обработчики API сайта.
type Handler struct {
	pages             Pages
	logger            *zap.Logger
	visitorMiddleware *middleware.VisitorMiddleware
	siteHTML          []byte
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(pages Pages, logger *zap.Logger, visitor *middleware.VisitorMiddleware, siteHTML []byte) *Handler {
	return &Handler{
		pages:             pages,
		logger:            logger,
		visitorMiddleware: visitor,
		siteHTML:          siteHTML,
	}
}

// Notice — уведомление, которое страница показывает во всплывающем сообщении.
type Notice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Notice Notice `json:"notice"`
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) (*page.Page, bool) {
	visitorID, ok := middleware.VisitorIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return nil, false
	}
	return h.pages.Get(visitorID), true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{
			Notice: Notice{Type: NoticeError, Message: "Некорректный запрос"},
		})
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}

// writeError переводит доменную ошибку в HTTP-статус и уведомление.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, n := errorNotice(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err), zap.String("uri", r.RequestURI))
	}
	h.writeJSON(w, status, errorResponse{Notice: n})
}

func errorNotice(err error) (int, Notice) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, Notice{Type: NoticeError, Message: ve.Message}
	case errors.Is(err, model.ErrAccountNotFound):
		return http.StatusUnauthorized, Notice{Type: NoticeError, Message: "Пользователь не найден. Зарегистрируйтесь."}
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, Notice{Type: NoticeError, Message: "Неверный email или пароль"}
	case errors.Is(err, model.ErrNotAuthenticated):
		return http.StatusUnauthorized, Notice{Type: NoticeWarning, Message: "Войдите, чтобы оставить отзыв"}
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden, Notice{Type: NoticeError, Message: "Можно удалить только свой отзыв"}
	case errors.Is(err, model.ErrMenuItemNotFound):
		return http.StatusNotFound, Notice{Type: NoticeError, Message: "Позиция меню не найдена"}
	default:
		return http.StatusInternalServerError, Notice{Type: NoticeError, Message: "Что-то пошло не так, попробуйте позже"}
	}
}

// Site отдаёт разметку страницы.
func (h *Handler) Site(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(h.siteHTML); err != nil {
		h.logger.Warn("write site error", zap.Error(err))
	}
}

// GetPage возвращает полный снимок страницы посетителя.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, p.Snapshot(r.Context()))
}

func noticef(kind, format string, args ...any) *Notice {
	return &Notice{Type: kind, Message: fmt.Sprintf(format, args...)}
}
