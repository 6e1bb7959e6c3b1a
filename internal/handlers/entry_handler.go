package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/linguistlexicon/lexicon-service/internal/models"
	"github.com/linguistlexicon/lexicon-service/internal/services"
	"go.uber.org/zap"
)

// EntriesService is the interface that wraps methods for entry operations
type EntriesService interface {
	// Method CreateEntry validates and normalizes a draft, then stores it.
	//
	// "draft" parameter carries the user-supplied fields; id and timestamps are assigned by the store.
	//
	// If validation or persistence fails, the error will be returned together with "nil" value.
	CreateEntry(ctx context.Context, draft *models.EntryDraft) (*models.Entry, error)
	// Method GetEntry retrieves an entry by its id.
	//
	// "id" parameter is used to identify the entry.
	//
	// If the entry does not exist, models.ErrNotFound will be returned together with "nil" value.
	GetEntry(ctx context.Context, id string) (*models.Entry, error)
	// Method UpdateEntry merges the provided fields into the stored entry.
	//
	// "id" parameter is used to identify the entry.
	// "req" parameter carries the fields to change; nil fields are left unchanged.
	//
	// If the entry does not exist or validation fails, the error will be returned together with "nil" value.
	UpdateEntry(ctx context.Context, id string, req *models.UpdateEntryRequest) (*models.Entry, error)
	// Method DeleteEntry removes an entry by id.
	//
	// "id" parameter is used to identify the entry.
	//
	// If the entry does not exist, models.ErrNotFound will be returned.
	DeleteEntry(ctx context.Context, id string) error
	// Method ListEntries returns a filtered, searched and sorted snapshot of the collection.
	//
	// "opts" parameter configures the query pipeline; zero-value options return the full collection in creation order.
	ListEntries(ctx context.Context, opts services.ListOptions) ([]models.Entry, error)
}

// EntriesHandler handles entry-related HTTP requests
type EntriesHandler struct {
	BaseHandler
	service EntriesService
}

// NewEntriesHandler creates a new entries handler
func NewEntriesHandler(svc EntriesService, logger *zap.Logger) *EntriesHandler {
	return &EntriesHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all entry handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *EntriesHandler) RegisterRoutes(r chi.Router) {
	r.Route("/entries", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /entries
// @Summary List entries
// @Description Get the entry collection with optional filter, search and sort
// @Tags entries
// @Accept json
// @Produce json
// @Param search query string false "Case-insensitive search over word, definition and notes"
// @Param tag query string false "Only entries carrying this tag (case-insensitive)"
// @Param source query string false "Only entries whose source matches"
// @Param source_exact query bool false "Exact source match instead of substring"
// @Param has_definition query bool false "Only entries with (or without) a definition"
// @Param sort query string false "Sort key: word, created_at or updated_at"
// @Param order query string false "Sort order: asc (default) or desc"
// @Success 200 {array} models.Entry "Matching entries"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /entries [get]
func (h *EntriesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := services.ListOptions{
		Search: strings.TrimSpace(q.Get("search")),
		Filter: services.FilterSpec{
			Tag:    strings.TrimSpace(q.Get("tag")),
			Source: strings.TrimSpace(q.Get("source")),
		},
		SortKey:   services.SortKey(q.Get("sort")),
		Ascending: q.Get("order") != "desc",
	}

	if v := q.Get("source_exact"); v != "" {
		exact, err := strconv.ParseBool(v)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid source_exact parameter")
			return
		}
		opts.Filter.SourceExact = exact
	}

	if v := q.Get("has_definition"); v != "" {
		hasDef, err := strconv.ParseBool(v)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid has_definition parameter")
			return
		}
		opts.Filter.HasDefinition = &hasDef
	}

	entries, err := h.service.ListEntries(r.Context(), opts)
	if err != nil {
		h.Logger.Error("failed to list entries", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, entries)
}

// Create handles POST /entries
// @Summary Create an entry
// @Description Add a new word entry to the lexicon
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body models.EntryDraft true "Entry draft"
// @Success 201 {object} models.Entry "Created entry"
// @Failure 400 {object} map[string]string "Invalid request body or empty word"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /entries [post]
func (h *EntriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft models.EntryDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		h.Logger.Error("failed to decode entry draft", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.service.CreateEntry(r.Context(), &draft)
	if err != nil {
		h.Logger.Error("failed to create entry", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, entry)
}

// GetByID handles GET /entries/{id}
// @Summary Get entry by ID
// @Description Get a single entry by its id
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} models.Entry "Entry"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /entries/{id} [get]
func (h *EntriesHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := h.service.GetEntry(r.Context(), id)
	if err != nil {
		h.Logger.Error("failed to get entry", zap.Error(err), zap.String("id", id))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, entry)
}

// Update handles PATCH /entries/{id}
// @Summary Update an entry
// @Description Update entry fields (partial update); id and created_at are immutable
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param entry body models.UpdateEntryRequest true "Fields to change"
// @Success 200 {object} models.Entry "Updated entry"
// @Failure 400 {object} map[string]string "Invalid request body or empty word"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /entries/{id} [patch]
func (h *EntriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("failed to decode update request", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.service.UpdateEntry(r.Context(), id, &req)
	if err != nil {
		h.Logger.Error("failed to update entry", zap.Error(err), zap.String("id", id))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, entry)
}

// Delete handles DELETE /entries/{id}
// @Summary Delete an entry
// @Description Remove an entry by id (hard delete)
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /entries/{id} [delete]
func (h *EntriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteEntry(r.Context(), id); err != nil {
		h.Logger.Error("failed to delete entry", zap.Error(err), zap.String("id", id))
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
