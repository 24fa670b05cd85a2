package handler

import (
	"net/http"

	"github.com/mmeshcher/golden-hive/internal/model"
)

type packageRequest struct {
	Package string `json:"package"`
}

type packageResponse struct {
	Package string `json:"package"`
	Dialog  string `json:"dialog"`
	MinDate string `json:"minDate"`
}

type bookingResponse struct {
	Booking *model.Booking `json:"booking"`
	Message string         `json:"message"`
	Notice  *Notice        `json:"notice"`
}

// SelectPackage выбирает пакет и открывает форму бронирования.
func (h *Handler) SelectPackage(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}

	var req packageRequest
	if !h.decode(w, r, &req) {
		return
	}

	p.SelectPackage(req.Package)
	s := p.Snapshot(r.Context())
	h.writeJSON(w, http.StatusOK, packageResponse{
		Package: s.Package,
		Dialog:  s.Dialog,
		MinDate: s.MinBookingDate,
	})
}

// CreateBooking принимает заявку на бронирование.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}

	var req model.BookingRequest
	if !h.decode(w, r, &req) {
		return
	}

	b, err := p.SubmitBooking(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, bookingResponse{
		Booking: b,
		Message: "✓ Готово! Бронь на " + b.Date + " принята. Мы свяжемся с вами.",
		Notice:  noticef(NoticeSuccess, "Бронирование оформлено, %s!", b.Name),
	})
}
