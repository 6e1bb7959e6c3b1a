package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/linguistlexicon/lexicon-service/internal/models"
	"github.com/linguistlexicon/lexicon-service/internal/services"
	"go.uber.org/zap"
)

// TransferService is the interface that wraps methods for import/export operations
type TransferService interface {
	// Method Export serializes the full collection in the given format.
	//
	// "format" parameter is one of services.FormatJSON or services.FormatCSV.
	//
	// If the format is unknown or the snapshot cannot be read, the error will be returned together with "nil" value.
	Export(ctx context.Context, format services.Format) ([]byte, error)
	// Method Import parses the payload into drafts and stores them one by one.
	//
	// "raw" parameter is the payload body.
	// "format" parameter is one of services.FormatJSON, services.FormatCSV or services.FormatText.
	// "opts" parameter configures dedup and default fields.
	//
	// The store is left untouched when the payload fails to parse.
	Import(ctx context.Context, raw []byte, format services.Format, opts services.ImportOptions) (*models.ImportResult, error)
}

// TransferHandler handles import/export HTTP requests
type TransferHandler struct {
	BaseHandler
	service TransferService
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(svc TransferService, logger *zap.Logger) *TransferHandler {
	return &TransferHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all transfer handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *TransferHandler) RegisterRoutes(r chi.Router) {
	r.Get("/export", h.Export)
	r.Post("/import", h.Import)
}

// Export handles GET /export
// @Summary Export the lexicon
// @Description Download the full entry collection as JSON or CSV
// @Tags transfer
// @Accept json
// @Produce json
// @Produce text/csv
// @Param format query string false "Export format: json (default) or csv"
// @Success 200 {string} string "Serialized collection"
// @Failure 400 {object} map[string]string "Unknown format"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /export [get]
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := services.Format(strings.ToLower(r.URL.Query().Get("format")))
	if format == "" {
		format = services.FormatJSON
	}

	data, err := h.service.Export(r.Context(), format)
	if err != nil {
		h.Logger.Error("failed to export entries", zap.Error(err), zap.String("format", string(format)))
		h.RespondServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("lexicon-%s.%s", time.Now().UTC().Format("2006-01-02"), format)
	contentType := "application/json"
	if format == services.FormatCSV {
		contentType = "text/csv"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.Logger.Error("failed to write export response", zap.Error(err))
	}
}

// Import handles POST /import
// @Summary Import entries
// @Description Parse a JSON, CSV or free-text payload and add the entries to the lexicon
// @Tags transfer
// @Accept json
// @Accept text/csv
// @Accept text/plain
// @Produce json
// @Param format query string false "Import format: json (default), csv or text"
// @Param dedup query bool false "Skip words that already exist (case-insensitive)"
// @Param tags query string false "Comma-separated default tags applied to every imported entry"
// @Param source query string false "Default source applied to entries without one"
// @Success 200 {object} models.ImportResult "Import summary"
// @Failure 400 {object} map[string]string "Malformed payload"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /import [post]
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	format := services.Format(strings.ToLower(r.URL.Query().Get("format")))
	if format == "" {
		format = services.FormatJSON
	}

	opts := services.ImportOptions{
		DefaultSource: strings.TrimSpace(r.URL.Query().Get("source")),
	}
	if v := r.URL.Query().Get("dedup"); v != "" {
		dedup, err := strconv.ParseBool(v)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid dedup parameter")
			return
		}
		opts.DedupByWord = dedup
	}
	if v := r.URL.Query().Get("tags"); v != "" {
		opts.DefaultTags = strings.Split(v, ",")
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		h.Logger.Error("failed to read import payload", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	result, err := h.service.Import(r.Context(), raw, format, opts)
	if err != nil {
		h.Logger.Error("failed to import entries", zap.Error(err), zap.String("format", string(format)))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}
