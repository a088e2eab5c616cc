package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// GetRouter initialises a new http router and applies all routes
func GetRouter(updater Updater) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	return applyRoutes(r, NewHandler(updater))
}

func applyRoutes(r chi.Router, h *Handler) chi.Router {
	r.Route("/", func(r chi.Router) {
		r.Get("/", getIndex)
		r.Route("/gyms/{gym}/update", func(r chi.Router) {
			r.Get("/", getUpdate)
			r.Post("/", h.postUpdate)
		})
	})

	return r
}
