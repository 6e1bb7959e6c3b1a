package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linguistlexicon/lexicon-service/internal/models"
	"go.uber.org/zap"
)

// CaptureService is the interface that wraps the capture operation
type CaptureService interface {
	// Method Capture stores a word selection forwarded by the browser extension.
	//
	// "req" parameter carries the selected word and optional tags, source and notes.
	//
	// If validation or persistence fails, the error will be returned together with "nil" value.
	Capture(ctx context.Context, req *models.CaptureRequest) (*models.Entry, error)
}

// CaptureHandler handles word captures posted by the browser extension
type CaptureHandler struct {
	BaseHandler
	service CaptureService
}

// NewCaptureHandler creates a new capture handler
func NewCaptureHandler(svc CaptureService, logger *zap.Logger) *CaptureHandler {
	return &CaptureHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers the capture route
// Note: This assumes the router is already scoped to /api/v1 and guarded by the API key middleware
func (h *CaptureHandler) RegisterRoutes(r chi.Router) {
	r.Post("/capture", h.Capture)
}

// Capture handles POST /capture
// @Summary Capture a word
// @Description Store a text selection forwarded by the browser extension
// @Tags capture
// @Accept json
// @Produce json
// @Param capture body models.CaptureRequest true "Captured selection"
// @Success 201 {object} models.Entry "Created entry"
// @Failure 400 {object} map[string]string "Invalid request body or empty word"
// @Failure 401 {object} map[string]string "Invalid or missing API key"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security ApiKeyAuth
// @Router /capture [post]
func (h *CaptureHandler) Capture(w http.ResponseWriter, r *http.Request) {
	var req models.CaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("failed to decode capture request", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.service.Capture(r.Context(), &req)
	if err != nil {
		h.Logger.Error("failed to capture word", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, entry)
}
