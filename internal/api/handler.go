package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Talha76/memorize-words/internal/domain"
	"github.com/Talha76/memorize-words/internal/service"
	"github.com/Talha76/memorize-words/internal/study"
	"github.com/Talha76/memorize-words/internal/wordfile"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const maxUploadSize = 10 << 20

// Shared validator instance
var validate = validator.New()

type answerRequest struct {
	Correct *bool `json:"correct" validate:"required"`
}

type navigateRequest struct {
	Direction string `json:"direction" validate:"required,oneof=prev next"`
}

type addPairRequest struct {
	Text string `json:"text" validate:"max=4096"`
}

type deletePairRequest struct {
	Primary   string `json:"primary" validate:"required"`
	Secondary string `json:"secondary" validate:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the workspace endpoints
type Handler struct {
	workspaces *service.WorkspaceService
	logger     *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(workspaces *service.WorkspaceService, logger *zap.Logger) *Handler {
	return &Handler{
		workspaces: workspaces,
		logger:     logger,
	}
}

// ownerID keys a browser session's workspace
func ownerID(r *http.Request) string {
	return "web:" + SessionID(r.Context())
}

// respond writes the view of an applied action, or a 500 for store failures
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, view service.View, err error) {
	if err != nil {
		h.logger.Error("Failed to apply action",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: domain.UserMessage(err)})
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handler) simple(fn func(ctx context.Context, owner string) (service.View, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := fn(r.Context(), ownerID(r))
		h.respond(w, r, view, err)
	}
}

// GetSession returns the current screen
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.simple(h.workspaces.View)(w, r)
}

// Upload loads the multipart "file" field as a word file
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	var upload *service.Upload

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		upload = &service.Upload{
			Name:     header.Filename,
			MIMEType: header.Header.Get("Content-Type"),
			Body:     file,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// reported as no file selected
	default:
		h.logger.Warn("Malformed upload", zap.Error(err))
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed upload"})
		return
	}

	view, err := h.workspaces.Upload(r.Context(), ownerID(r), upload)
	h.respond(w, r, view, err)
}

// Reveal toggles the translation of the current card
func (h *Handler) Reveal(w http.ResponseWriter, r *http.Request) {
	h.simple(h.workspaces.Reveal)(w, r)
}

// Answer records an answer for the current card
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	view, err := h.workspaces.Answer(r.Context(), ownerID(r), *req.Correct)
	h.respond(w, r, view, err)
}

// Navigate moves to the previous or next card
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	view, err := h.workspaces.Navigate(r.Context(), ownerID(r), study.Direction(req.Direction))
	h.respond(w, r, view, err)
}

// Finish ends the pass over the current pool
func (h *Handler) Finish(w http.ResponseWriter, r *http.Request) {
	h.simple(h.workspaces.Finish)(w, r)
}

// PracticeRemaining studies the pairs that were held back
func (h *Handler) PracticeRemaining(w http.ResponseWriter, r *http.Request) {
	h.simple(h.workspaces.PracticeRemaining)(w, r)
}

// AddWords switches to add-words mode
func (h *Handler) AddWords(w http.ResponseWriter, r *http.Request) {
	h.simple(h.workspaces.AddWords)(w, r)
}

// AddPair adds a manually typed pair
func (h *Handler) AddPair(w http.ResponseWriter, r *http.Request) {
	var req addPairRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	view, err := h.workspaces.AddPair(r.Context(), ownerID(r), req.Text)
	h.respond(w, r, view, err)
}

// DeletePair removes pairs by their texts
func (h *Handler) DeletePair(w http.ResponseWriter, r *http.Request) {
	var req deletePairRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	view, err := h.workspaces.DeletePair(r.Context(), ownerID(r), req.Primary, req.Secondary)
	h.respond(w, r, view, err)
}

// NewSession re-partitions all pairs by their updated scores
func (h *Handler) NewSession(w http.ResponseWriter, r *http.Request) {
	h.simple(h.workspaces.StartNewSession)(w, r)
}

// Reset goes back to the upload screen
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.simple(h.workspaces.Reset)(w, r)
}

// Export downloads the words with updated stats
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	text, ok, err := h.workspaces.Export(r.Context(), ownerID(r))
	if err != nil {
		h.respond(w, r, service.View{}, err)
		return
	}
	if !ok {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "nothing to export"})
		return
	}

	w.Header().Set("Content-Type", wordfile.MIMEType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+wordfile.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		h.logger.Warn("Failed to write export", zap.Error(err))
	}
}

// Summary returns pool counts and overall accuracy
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.workspaces.Summary(r.Context(), ownerID(r))
	if err != nil {
		h.respond(w, r, service.View{}, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// decodeRequest decodes and validates a JSON body, answering 400 on failure
func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}

	if err := validate.Struct(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: validationMessage(err)})
		return false
	}

	return true
}

func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return "invalid request"
	}

	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		messages = append(messages, "field '"+strings.ToLower(fe.Field())+"' failed on '"+fe.Tag()+"'")
	}
	return strings.Join(messages, "; ")
}

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}
