// Package api serves the study workspace to the browser front end as JSON.
package api

import (
	"net/http"
	"slices"

	"github.com/Talha76/memorize-words/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// NewRouter creates the HTTP handler with all routes and middleware.
// Browsers never send credentials to a wildcard origin, so "*" serves only same-origin sessions.
func NewRouter(workspaces *service.WorkspaceService, allowedOrigins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	credentials := !slices.Contains(allowedOrigins, "*")
	if !credentials {
		logger.Warn("CORS allows any origin, cross-origin session cookies are disabled")
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: credentials,
		MaxAge:           300,
	}).Handler)

	h := NewHandler(workspaces, logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(Session)

		r.Get("/session", h.GetSession)
		r.Post("/upload", h.Upload)
		r.Post("/reveal", h.Reveal)
		r.Post("/answer", h.Answer)
		r.Post("/navigate", h.Navigate)
		r.Post("/finish", h.Finish)
		r.Post("/practice-remaining", h.PracticeRemaining)
		r.Post("/add-words", h.AddWords)
		r.Post("/pairs", h.AddPair)
		r.Post("/pairs/delete", h.DeletePair)
		r.Post("/new-session", h.NewSession)
		r.Post("/reset", h.Reset)
		r.Get("/export", h.Export)
		r.Get("/summary", h.Summary)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("Failed to write health check response", zap.Error(err))
		}
	})

	return r
}
