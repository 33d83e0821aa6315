package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	router.Route("/api/mn-config", func(r chi.Router) {
		r.Get("/", h.resolveAll)
		r.Delete("/", h.clearAll)

		r.Get("/history/{componentKey}", h.history)

		r.Get("/{componentKey}", h.resolve)
		r.Put("/{componentKey}", h.upsert)
		r.Delete("/{componentKey}", h.deleteComponent)
	})

	router.Get("/health", h.health)

	return router
}
