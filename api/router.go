package api

import (
	"net/http"

	"github.com/effective-security/xlog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/xcsr", "api")

// maxRequestBody bounds the size of request payloads.
const maxRequestBody = 1 << 20

// NewRouter assembles the HTTP routes served by the handler.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(recoverer)
	r.Use(cors)
	r.Use(maxBytes(maxRequestBody))

	r.Post("/api/generate", h.Generate)
	r.Post("/api/analyze", h.Analyze)
	r.Get("/api/health", h.Health)

	return r
}
