package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"themis/internal/domain/document"
	"themis/internal/metrics"
	"themis/internal/services/assistant"
	"themis/pkg/errors"
	"themis/pkg/logger"
)

// sessionHeader carries the client's session ID. The server issues one on
// first contact and echoes it in every response body.
const sessionHeader = "X-Session-ID"

// Handler serves the assistant HTTP API
type Handler struct {
	assistant *assistant.Service
	maxUpload int64
	log       *logger.Logger
}

// NewHandler creates the API handler
func NewHandler(svc *assistant.Service, maxUpload int64) *Handler {
	return &Handler{
		assistant: svc,
		maxUpload: maxUpload,
		log:       logger.Get().With("component", "api"),
	}
}

// Register mounts the assistant routes on the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /classify", h.instrument("classify", h.handleClassify))
	mux.HandleFunc("POST /process", h.instrument("process", h.handleProcess))
	mux.HandleFunc("POST /chat", h.instrument("chat", h.handleChat))
	mux.HandleFunc("POST /general_chat", h.instrument("general_chat", h.handleGeneralChat))
	mux.HandleFunc("GET /download-draft/{id}", h.instrument("download_draft", h.handleDownloadDraft))
	mux.HandleFunc("GET /view-document", h.instrument("view_document", h.handleViewDocument))
}

// statusRecorder captures the response code for request metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (h *Handler) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		metrics.RecordHTTPRequest(endpoint, strconv.Itoa(rec.status), time.Since(start))
	}
}

type chatPayload struct {
	Message           string `json:"message"`
	DetailedAnalysis  bool   `json:"detailed_analysis"`
	GenerateDraft     bool   `json:"generate_draft"`
	DraftInstructions string `json:"draft_instructions"`
}

func (h *Handler) handleClassify(w http.ResponseWriter, r *http.Request) {
	text, filename, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	result, err := h.assistant.ClassifyDocument(r.Context(), r.Header.Get(sessionHeader), filename, text)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"session_id": result.SessionID,
		"category":   result.Category,
	})
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	text, filename, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	category := document.Category(r.FormValue("category"))
	if category == "" {
		h.writeError(w, errors.Wrap(errors.ErrInvalidInput, "category is missing"))
		return
	}

	result, err := h.assistant.ProcessDocument(r.Context(), r.Header.Get(sessionHeader), filename, text, category)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"session_id":    result.SessionID,
		"summary":       result.Summary,
		"document_text": result.Excerpt,
	})
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, errors.Wrap(errors.ErrInvalidInput, "invalid JSON body"))
		return
	}

	result, err := h.assistant.DocumentChat(r.Context(), assistant.ChatRequest{
		SessionID:         r.Header.Get(sessionHeader),
		Message:           payload.Message,
		Detailed:          payload.DetailedAnalysis,
		GenerateDraft:     payload.GenerateDraft,
		DraftInstructions: payload.DraftInstructions,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	body := map[string]any{
		"session_id": result.SessionID,
		"response":   result.Response,
	}
	if result.DraftID != "" {
		body["draft_id"] = result.DraftID
	}
	h.writeJSON(w, http.StatusOK, body)
}

func (h *Handler) handleGeneralChat(w http.ResponseWriter, r *http.Request) {
	var payload chatPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, errors.Wrap(errors.ErrInvalidInput, "invalid JSON body"))
		return
	}

	result, err := h.assistant.GeneralChat(r.Context(), assistant.GeneralChatRequest{
		SessionID:         r.Header.Get(sessionHeader),
		Message:           payload.Message,
		Detailed:          payload.DetailedAnalysis,
		GenerateDraft:     payload.GenerateDraft,
		DraftInstructions: payload.DraftInstructions,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	body := map[string]any{
		"session_id": result.SessionID,
		"response":   result.Response,
		"reasoning":  result.Reasoning,
	}
	if result.DraftID != "" {
		body["draft_id"] = result.DraftID
	}
	h.writeJSON(w, http.StatusOK, body)
}

func (h *Handler) handleDownloadDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.assistant.Draft(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+d.Filename+`"`)
	_, _ = io.WriteString(w, d.Content)
}

func (h *Handler) handleViewDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.assistant.CurrentDocument(r.Context(), r.Header.Get(sessionHeader))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"session_id":    doc.SessionID,
		"filename":      doc.Filename,
		"category":      doc.Category,
		"document_text": doc.Text,
	})
}

// readUpload extracts the plain-text document from the multipart form. PDF
// text extraction happens upstream; the API accepts extracted text only.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (text, filename string, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	file, header, err := r.FormFile("document")
	if err != nil {
		h.writeError(w, errors.Wrap(errors.ErrInvalidInput, "no document uploaded"))
		return "", "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.writeError(w, errors.Wrap(errors.ErrInvalidInput, "failed to read document"))
		return "", "", false
	}

	if strings.TrimSpace(string(data)) == "" {
		h.writeError(w, errors.ErrEmptyDocument)
		return "", "", false
	}

	h.log.Infow("Document received", "filename", header.Filename, "size", humanize.Bytes(uint64(len(data))))
	return string(data), header.Filename, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errors.ErrInvalidInput),
		errors.Is(err, errors.ErrEmptyDocument),
		errors.Is(err, errors.ErrUnknownCategory):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrNotFound), errors.Is(err, errors.ErrNoDocument):
		status = http.StatusNotFound
	case errors.Is(err, errors.ErrQuotaExceeded), errors.Is(err, errors.ErrRateLimitExceeded):
		status = http.StatusTooManyRequests
	}

	if status >= http.StatusInternalServerError {
		h.log.Errorf("Request failed: %v", err)
	}

	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
