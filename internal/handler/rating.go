package handler

import (
	"net/http"

	"github.com/mmeshcher/golden-hive/internal/page"
)

type ratingRequest struct {
	Rating int `json:"rating"`
}

type ratingKeyRequest struct {
	Star int    `json:"star"`
	Key  string `json:"key"`
}

func (h *Handler) rate(w http.ResponseWriter, r *http.Request, apply func(*page.Page, int) (page.RatingState, error)) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}

	var req ratingRequest
	if !h.decode(w, r, &req) {
		return
	}

	state, err := apply(p, req.Rating)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, state)
}

// SetRating фиксирует оценку по клику на звезду.
func (h *Handler) SetRating(w http.ResponseWriter, r *http.Request) {
	h.rate(w, r, (*page.Page).SetRating)
}

// PreviewRating подсвечивает звёзды при наведении.
func (h *Handler) PreviewRating(w http.ResponseWriter, r *http.Request) {
	h.rate(w, r, (*page.Page).PreviewRating)
}

// LeaveRating возвращает подсветку к выбранной оценке.
func (h *Handler) LeaveRating(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, p.LeaveRating())
}

// RatingKey обрабатывает клавиатурное управление звёздами.
func (h *Handler) RatingKey(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}

	var req ratingKeyRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.writeJSON(w, http.StatusOK, p.RatingKey(req.Star, req.Key))
}
