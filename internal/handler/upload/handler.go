package upload

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/docufill/backend/internal/docx"
	"github.com/docufill/backend/internal/service/docfill"
	"github.com/docufill/backend/internal/service/scanner"
	"github.com/docufill/backend/pkg/utils"
)

const documentContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Handler exposes the document fill-in workflow over HTTP.
type Handler struct {
	docSvc   *docfill.Service
	maxBytes int64
}

// New creates the upload handler.
func New(docSvc *docfill.Service, maxBytes int64) *Handler {
	return &Handler{docSvc: docSvc, maxBytes: maxBytes}
}

// RegisterRoutes mounts the workflow routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/upload", h.handleUpload)
	r.Post("/upload/fill", h.handleFill)
	r.Post("/upload/generate", h.handleGenerate)
}

// handleUpload accepts a multipart document, scans it and opens a session.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, _, err := r.FormFile("document")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	session, err := h.docSvc.Upload(r.Context(), data)
	if err != nil {
		switch {
		case errors.Is(err, docx.ErrNotWordDocument):
			utils.RespondError(w, http.StatusBadRequest, "uploaded file is not a word document")
		case errors.Is(err, scanner.ErrNoPlaceholders):
			utils.RespondError(w, http.StatusUnprocessableEntity, "no placeholders found in the document")
		case errors.Is(err, scanner.ErrPhrasingUnavailable):
			utils.RespondError(w, http.StatusServiceUnavailable, "question generation unavailable")
		default:
			log.Printf("[upload] scan failed: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "failed to process document")
		}
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]any{
		"sessionId":    session.ID,
		"placeholders": session.Placeholders,
	})
}

// handleFill records one answer for one placeholder.
func (h *Handler) handleFill(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID     string `json:"sessionId"`
		PlaceholderID string `json:"placeholderId"`
		Answer        string `json:"answer"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SessionID == "" || payload.PlaceholderID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId and placeholderId are required")
		return
	}

	if err := h.docSvc.SubmitAnswer(r.Context(), payload.SessionID, payload.PlaceholderID, payload.Answer); err != nil {
		switch {
		case errors.Is(err, docfill.ErrSessionNotFound):
			utils.RespondError(w, http.StatusNotFound, "session not found")
		case errors.Is(err, docfill.ErrPlaceholderNotFound):
			utils.RespondError(w, http.StatusNotFound, "placeholder not found")
		default:
			utils.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Answer saved."})
}

// handleGenerate renders the completed document and streams it back.
func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	result, err := h.docSvc.Generate(r.Context(), payload.SessionID)
	if err != nil {
		var missing *docfill.MissingAnswerError
		switch {
		case errors.Is(err, docfill.ErrSessionNotFound):
			utils.RespondError(w, http.StatusNotFound, "session not found")
		case errors.As(err, &missing):
			utils.RespondError(w, http.StatusConflict, missing.Error())
		default:
			log.Printf("[upload] generation failed for session %s: %v", payload.SessionID, err)
			utils.RespondError(w, http.StatusInternalServerError, "error generating the final document")
		}
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename=completed_document.docx`)
	w.Header().Set("Content-Type", documentContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result); err != nil {
		log.Printf("[upload] failed to write document response: %v", err)
	}
}
