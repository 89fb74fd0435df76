package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Route("/modules/{moduleID}", func(r chi.Router) {
			r.Get("/", s.handleGetModule)
			r.Put("/", s.handleSaveModule)
			r.Delete("/", s.handleDeleteModule)
			r.Post("/review-items", s.handleGenerateForModule)
		})
		r.Post("/courses/{courseID}/modules/{moduleID}/review-items", s.handleGenerateReviewItems)

		r.Route("/review", func(r chi.Router) {
			r.Get("/due", s.handleDueItems)
			r.Get("/stats", s.handleReviewStats)
			r.Post("/items/{itemID}", s.handleReviewItem)
			r.Get("/items/{itemID}/history", s.handleReviewHistory)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errNotFoundRoute(r))
	})
	return r
}
