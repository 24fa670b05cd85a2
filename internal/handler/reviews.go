package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/golden-hive/internal/model"
	"github.com/mmeshcher/golden-hive/internal/page"
	"github.com/mmeshcher/golden-hive/internal/review"
)

type reviewsResponse struct {
	Reviews []model.ReviewCard `json:"reviews"`
	Notice  *Notice            `json:"notice,omitempty"`
}

type reviewRequest struct {
	Text string `json:"text"`
}

type createReviewResponse struct {
	Review  *model.Review      `json:"review"`
	Reviews []model.ReviewCard `json:"reviews"`
	Notice  *Notice            `json:"notice"`
}

type openReviewResponse struct {
	Dialog string           `json:"dialog"`
	Rating page.RatingState `json:"rating"`
}

type deleteRequestResponse struct {
	PendingDelete string `json:"pendingDelete"`
	Dialog        string `json:"dialog"`
}

type confirmDeleteResponse struct {
	Removed bool               `json:"removed"`
	Reviews []model.ReviewCard `json:"reviews"`
	Notice  *Notice            `json:"notice,omitempty"`
}

type counterResponse struct {
	Count int  `json:"count"`
	Max   int  `json:"max"`
	Warn  bool `json:"warn"`
}

// ListReviews возвращает карточки отзывов.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, reviewsResponse{Reviews: p.Reviews(r.Context())})
}

// OpenReview открывает форму отзыва или, без входа, окно профиля.
func (h *Handler) OpenReview(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}

	if err := p.OpenReview(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}

	s := p.Snapshot(r.Context())
	h.writeJSON(w, http.StatusOK, openReviewResponse{Dialog: s.Dialog, Rating: s.Rating})
}

// CreateReview публикует отзыв.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}

	var req reviewRequest
	if !h.decode(w, r, &req) {
		return
	}

	rv, err := p.SubmitReview(r.Context(), req.Text)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, createReviewResponse{
		Review:  rv,
		Reviews: p.Reviews(r.Context()),
		Notice:  &Notice{Type: NoticeSuccess, Message: "Спасибо за ваш отзыв! 🍯"},
	})
}

// CountReviewText возвращает счётчик символов для поля отзыва.
func (h *Handler) CountReviewText(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if !h.decode(w, r, &req) {
		return
	}

	n, warn := review.CharCounter(req.Text)
	h.writeJSON(w, http.StatusOK, counterResponse{Count: n, Max: review.MaxTextLength, Warn: warn})
}

// RequestDelete открывает подтверждение удаления отзыва.
func (h *Handler) RequestDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}

	p.RequestDelete(chi.URLParam(r, "id"))
	s := p.Snapshot(r.Context())
	h.writeJSON(w, http.StatusOK, deleteRequestResponse{PendingDelete: s.PendingDelete, Dialog: s.Dialog})
}

// ConfirmDelete удаляет отзыв, ожидающий подтверждения.
func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}

	removed, err := p.ConfirmDelete(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := confirmDeleteResponse{Removed: removed, Reviews: p.Reviews(r.Context())}
	if removed {
		resp.Notice = &Notice{Type: NoticeInfo, Message: "Отзыв удалён"}
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// CancelDelete отменяет удаление.
func (h *Handler) CancelDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}

	p.CancelDelete()
	h.dialogState(w, r, true)
}
