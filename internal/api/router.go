// internal/api/router.go
package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// RegisterRoutes wires every browser-facing route onto mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Pages
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("GET /state", h.state)

	// Transitions
	mux.HandleFunc("POST /upload", h.upload)
	mux.HandleFunc("POST /questions/select", h.selectQuestion)
	mux.HandleFunc("POST /back", h.back)
	mux.HandleFunc("POST /reset", h.reset)

	mux.HandleFunc("GET /health", h.health)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)
}
