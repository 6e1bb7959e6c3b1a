package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linguistlexicon/lexicon-service/internal/models"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondServiceError maps domain errors to HTTP statuses and responds.
// Validation and parse failures are the caller's fault; a persistence failure
// means the save did not happen and the user must be told so.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	var parseErr *models.ParseError
	var persistenceErr *models.PersistenceError

	switch {
	case errors.Is(err, models.ErrNotFound):
		h.RespondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validationErr), errors.As(err, &parseErr):
		h.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &persistenceErr):
		h.RespondError(w, http.StatusInternalServerError, "failed to save changes, the lexicon was not modified")
	default:
		h.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
