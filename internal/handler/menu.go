package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/golden-hive/internal/menu"
	"github.com/mmeshcher/golden-hive/internal/model"
)

type filterRequest struct {
	Category string `json:"category"`
}

type filterResponse struct {
	Active  string      `json:"active"`
	Visible []menu.Card `json:"visible"`
}

type productResponse struct {
	Product *model.MenuItem `json:"product"`
	Dialog  string          `json:"dialog"`
}

// GetMenu возвращает вкладки и карточки меню.
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, p.Menu())
}

// FilterMenu переключает вкладку меню.
func (h *Handler) FilterMenu(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}

	var req filterRequest
	if !h.decode(w, r, &req) {
		return
	}

	visible := p.FilterMenu(req.Category)
	h.writeJSON(w, http.StatusOK, filterResponse{Active: p.Menu().Active, Visible: visible})
}

// OpenProduct открывает карточку позиции меню.
func (h *Handler) OpenProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}

	item, err := p.OpenProduct(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, productResponse{Product: item, Dialog: p.Snapshot(r.Context()).Dialog})
}
