package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes returns the router serving the attendance API.
// Every route except /health requires a known caller.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.ServeHealth)

	r.Group(func(pr chi.Router) {
		pr.Use(h.RequireCaller)

		pr.Get("/roster", h.ServeRoster)
		pr.Post("/attendance/materialize", h.ServeMaterialize)

		pr.Get("/free-day", h.ServeFreeDay)
		pr.Post("/free-day/attendance", h.ServeMarkFreeDay)

		pr.Post("/volunteers/{id}/history", h.ServeSeedHistory)
		pr.Put("/volunteers/{id}/role", h.ServeUpdateRole)
		pr.Get("/volunteers/{id}/summary", h.ServeSummary)
	})

	return r
}
