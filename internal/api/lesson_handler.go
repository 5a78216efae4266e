package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/lessongenie/web/internal/backend"
	"github.com/lessongenie/web/internal/controller"
	"github.com/lessongenie/web/internal/domain/pdffile"
)

// ── Response types ──────────────────────────────────────────────────────────

// StateResponse is the JSON form of the page.
type StateResponse struct {
	SessionID string          `json:"session_id"`
	View      controller.View `json:"view"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// index renders the page for the current screen.
// @Summary      Lesson page
// @Description  Render the single page for the browser session. A missing or unknown session cookie starts a new session on the Upload screen.
// @Tags         Pages
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Failure      500  {string}  string
// @Router       / [get]
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(w, r)
	if err != nil {
		h.respondError(w, r, http.StatusInternalServerError, "failed to load session", err)
		return
	}

	view, err := h.lessons.View(r.Context(), id)
	if err != nil {
		h.respondError(w, r, http.StatusInternalServerError, "failed to load session", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.renderer.Page(w, view); err != nil {
		h.respondError(w, r, http.StatusInternalServerError, "failed to render page", err)
	}
}

// state returns the view model the page is rendered from.
// @Summary      Session view
// @Description  Return the render model of the browser session: visible screen, busy flags, question rows, lesson and per-stage errors.
// @Tags         Pages
// @Produce      json
// @Success      200  {object}  StateResponse
// @Failure      500  {string}  string
// @Router       /state [get]
func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(w, r)
	if err != nil {
		h.respondError(w, r, http.StatusInternalServerError, "failed to load session", err)
		return
	}

	view, err := h.lessons.View(r.Context(), id)
	if err != nil {
		h.respondError(w, r, http.StatusInternalServerError, "failed to load session", err)
		return
	}

	respondJSON(w, http.StatusOK, StateResponse{SessionID: id, View: view})
}

// upload starts question extraction for the attached PDF.
// @Summary      Upload a PDF
// @Description  Validate the file and queue question extraction. Validation failures, busy sessions and oversized bodies are shown in the upload error region after the redirect.
// @Tags         Transitions
// @Accept       multipart/form-data
// @Param        pdf_file  formData  file  true  "PDF document (declared type application/pdf)"
// @Success      303  "Redirect to /"
// @Failure      400  {string}  string  "malformed multipart body"
// @Failure      404  {string}  string  "session not found"
// @Failure      500  {string}  string
// @Router       /upload [post]
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(w, r)
	if err != nil {
		h.respondError(w, r, http.StatusInternalServerError, "failed to load session", err)
		return
	}

	file, err := h.readUpload(w, r)
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		h.logger.Info("upload over limit", "session_id", id, "limit", tooLarge.Limit)
		err = h.lessons.RejectUpload(r.Context(), id, fmt.Errorf("%w: %w", pdffile.ErrTooLarge, err))
		if h.handleTransitionError(w, r, err) {
			return
		}
		redirectHome(w, r)
		return
	case err != nil:
		h.respondError(w, r, http.StatusBadRequest, "invalid upload", err)
		return
	}

	err = h.lessons.Upload(r.Context(), id, file)
	if h.handleTransitionError(w, r, err) {
		return
	}
	redirectHome(w, r)
}

// selectQuestion starts lesson generation for a detected question.
// @Summary      Select a question
// @Description  Queue lesson generation for the clicked row, using the PDF handle of the last successful extraction.
// @Tags         Transitions
// @Accept       x-www-form-urlencoded
// @Param        question_id    formData  string  true   "Question id of the row"
// @Param        question_text  formData  string  false  "Question text of the row"
// @Success      303  "Redirect to /"
// @Failure      400  {string}  string  "malformed form"
// @Failure      404  {string}  string  "session not found"
// @Failure      500  {string}  string
// @Router       /questions/select [post]
func (h *Handler) selectQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(w, r)
	if err != nil {
		h.respondError(w, r, http.StatusInternalServerError, "failed to load session", err)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid form", err)
		return
	}

	err = h.lessons.Select(r.Context(), id, r.PostForm.Get("question_id"), r.PostForm.Get("question_text"))
	if h.handleTransitionError(w, r, err) {
		return
	}
	redirectHome(w, r)
}

// back returns from the lesson to the cached question list.
// @Summary      Back to questions
// @Tags         Transitions
// @Success      303  "Redirect to /"
// @Failure      404  {string}  string  "session not found"
// @Failure      500  {string}  string
// @Router       /back [post]
func (h *Handler) back(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(w, r)
	if err != nil {
		h.respondError(w, r, http.StatusInternalServerError, "failed to load session", err)
		return
	}

	if h.handleTransitionError(w, r, h.lessons.Back(r.Context(), id)) {
		return
	}
	redirectHome(w, r)
}

// reset returns the session to the Upload screen.
// @Summary      Upload another PDF
// @Description  Clear questions, lesson and errors. An extraction or lesson still in flight is discarded when it completes.
// @Tags         Transitions
// @Success      303  "Redirect to /"
// @Failure      404  {string}  string  "session not found"
// @Failure      500  {string}  string
// @Router       /reset [post]
func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(w, r)
	if err != nil {
		h.respondError(w, r, http.StatusInternalServerError, "failed to load session", err)
		return
	}

	if h.handleTransitionError(w, r, h.lessons.Reset(r.Context(), id)) {
		return
	}
	redirectHome(w, r)
}

// health reports liveness.
// @Summary      Health check
// @Tags         Ops
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ── Helpers ─────────────────────────────────────────────────────────────────

// readUpload returns the attached file with the content type the browser
// declared for it, or nil when no file was attached.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (*pdffile.File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	part, header, err := r.FormFile(backend.FileField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer part.Close()

	content, err := io.ReadAll(part)
	if err != nil {
		return nil, err
	}
	return pdffile.New(header.Filename, header.Header.Get("Content-Type"), content), nil
}

func isUserVisible(err error) bool {
	var verr *controller.ValidationError
	return errors.As(err, &verr) || errors.Is(err, controller.ErrBusy)
}
