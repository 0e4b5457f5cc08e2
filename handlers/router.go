package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter monta as rotas do dashboard.
func NewRouter(h *DashboardHandler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/wallet", func(r chi.Router) {
		r.Post("/toggle", h.ToggleWallet)
		r.Delete("/", h.DisconnectWallet)
	})

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/", h.GetDashboard)
		r.Post("/refresh", h.RefreshDashboard)
	})

	r.Post("/transfers", h.SubmitFee)
	return r
}
