package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version/", h.getAppVersion)
		if h.metrics != nil {
			r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
		}
	})

	router.Group(func(r chi.Router) {
		if h.authEnabled {
			r.Use(h.auth)
		}

		r.Route("/api/health", func(r chi.Router) {
			r.Get("/state", h.getState)
			r.Get("/latest", h.getLatest)
			r.Get("/history", h.getHistory)
			r.Post("/sync", h.triggerSync)
			r.Delete("/error", h.clearError)
		})

		r.Post("/api/app/state", h.appStateChanged)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
