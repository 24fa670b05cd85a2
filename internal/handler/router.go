package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	custommiddleware "github.com/mmeshcher/golden-hive/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware сайта.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Get("/", h.Site)

	r.Route("/api", func(r chi.Router) {
		r.Use(h.visitorMiddleware.Middleware)

		r.Get("/page", h.GetPage)

		r.Post("/dialogs/{id}/open", h.OpenDialog)
		r.Post("/dialogs/close", h.CloseDialogs)
		r.Post("/events/click", h.Click)
		r.Post("/events/key", h.Key)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)
		})

		r.Post("/bookings/package", h.SelectPackage)
		r.Post("/bookings", h.CreateBooking)

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", h.ListReviews)
			r.Post("/", h.CreateReview)
			r.Post("/open", h.OpenReview)
			r.Post("/counter", h.CountReviewText)
			r.Post("/{id}/delete", h.RequestDelete)
			r.Post("/delete/confirm", h.ConfirmDelete)
			r.Post("/delete/cancel", h.CancelDelete)
		})

		r.Route("/rating", func(r chi.Router) {
			r.Post("/", h.SetRating)
			r.Post("/preview", h.PreviewRating)
			r.Post("/leave", h.LeaveRating)
			r.Post("/key", h.RatingKey)
		})

		r.Get("/menu", h.GetMenu)
		r.Post("/menu/filter", h.FilterMenu)
		r.Post("/menu/{id}/open", h.OpenProduct)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
