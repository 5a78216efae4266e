// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lessongenie/web/internal/render"
	"github.com/lessongenie/web/internal/service"
	"github.com/lessongenie/web/internal/store"
)

// SessionCookie carries the browser session id.
const SessionCookie = "lessongenie_session"

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	lessons   *service.LessonService
	renderer  *render.Renderer
	logger    *slog.Logger
	maxUpload int64
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(lessons *service.LessonService, renderer *render.Renderer, logger *slog.Logger, maxUpload int64) *Handler {
	return &Handler{
		lessons:   lessons,
		renderer:  renderer,
		logger:    logger,
		maxUpload: maxUpload,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError logs unexpected failures and writes a plain error response.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg,
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	http.Error(w, msg, status)
}

// sessionID returns the caller's session id, creating a session and setting
// the cookie when the browser has none or an expired one.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}

	sess, err := h.lessons.Session(r.Context(), id)
	if err != nil {
		return "", err
	}
	if sess.ID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess.ID, nil
}

// handleTransitionError reports whether err was handled. Validation and busy
// errors are already visible on the page, so the caller still redirects.
func (h *Handler) handleTransitionError(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil || isUserVisible(err) {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		h.respondError(w, r, http.StatusNotFound, "session not found", err)
		return true
	}
	h.respondError(w, r, http.StatusInternalServerError, "internal error", err)
	return true
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
