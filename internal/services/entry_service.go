package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/linguistlexicon/lexicon-service/internal/models"
)

// EntryRepository is the interface that wraps methods for entry collection data access
type EntryRepository interface {
	// Method Add assigns id and timestamps to the entry, appends it to the collection and persists.
	//
	// "entry" parameter is the validated entry to store; its ID, CreatedAt and UpdatedAt fields are set by the repository.
	//
	// If the backing file write fails, the in-memory collection is rolled back and the error is returned.
	Add(ctx context.Context, entry *models.Entry) error
	// Method GetByID retrieves an entry by its id.
	//
	// "id" parameter is used to identify the entry.
	//
	// If the entry does not exist, models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id string) (*models.Entry, error)
	// Method Update merges the provided fields into the stored entry and persists.
	//
	// "id" parameter is used to identify the entry.
	// "req" parameter carries the fields to change; nil fields are left unchanged.
	//
	// If the entry does not exist, models.ErrNotFound will be returned together with "nil" value.
	Update(ctx context.Context, id string, req *models.UpdateEntryRequest) (*models.Entry, error)
	// Method Delete removes an entry by id and persists.
	//
	// "id" parameter is used to identify the entry.
	//
	// If the entry does not exist, models.ErrNotFound will be returned.
	Delete(ctx context.Context, id string) error
	// Method ListAll returns a snapshot of all entries in creation order.
	//
	// The snapshot is a copy; callers may mutate it freely.
	ListAll(ctx context.Context) ([]models.Entry, error)
}

// ListOptions configures the query pipeline applied to the entry snapshot
type ListOptions struct {
	Search    string
	Filter    FilterSpec
	SortKey   SortKey
	Ascending bool
}

// entryService implements entry CRUD and list queries over the repository
type entryService struct {
	repo EntryRepository
}

// NewEntryService creates a new entry service
func NewEntryService(repo EntryRepository) *entryService {
	return &entryService{
		repo: repo,
	}
}

// CreateEntry validates and normalizes a draft, then stores it
func (s *entryService) CreateEntry(ctx context.Context, draft *models.EntryDraft) (*models.Entry, error) {
	word := strings.TrimSpace(draft.Word)
	if word == "" {
		return nil, &models.ValidationError{Field: "word", Reason: "must not be empty"}
	}

	entry := &models.Entry{
		Word:       word,
		Definition: strings.TrimSpace(draft.Definition),
		Notes:      strings.TrimSpace(draft.Notes),
		Tags:       NormalizeTags(draft.Tags),
		Source:     strings.TrimSpace(draft.Source),
		Timestamp:  NormalizeTimestamp(draft.Timestamp),
	}

	if err := s.repo.Add(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	return entry, nil
}

// GetEntry retrieves an entry by id
func (s *entryService) GetEntry(ctx context.Context, id string) (*models.Entry, error) {
	if id == "" {
		return nil, models.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateEntry validates and normalizes the provided fields, then merges them
// into the stored entry. Id and created_at are immutable.
func (s *entryService) UpdateEntry(ctx context.Context, id string, req *models.UpdateEntryRequest) (*models.Entry, error) {
	if id == "" {
		return nil, models.ErrNotFound
	}

	if req.Word != nil {
		word := strings.TrimSpace(*req.Word)
		if word == "" {
			return nil, &models.ValidationError{Field: "word", Reason: "must not be empty"}
		}
		req.Word = &word
	}
	if req.Tags != nil {
		tags := NormalizeTags(*req.Tags)
		req.Tags = &tags
	}
	if req.Timestamp != nil {
		ts := NormalizeTimestamp(*req.Timestamp)
		req.Timestamp = &ts
	}

	return s.repo.Update(ctx, id, req)
}

// DeleteEntry removes an entry by id
func (s *entryService) DeleteEntry(ctx context.Context, id string) error {
	if id == "" {
		return models.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// ListEntries returns a filtered, searched and sorted snapshot of the collection
func (s *entryService) ListEntries(ctx context.Context, opts ListOptions) ([]models.Entry, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	entries = FilterEntries(entries, opts.Filter)
	entries = SearchEntries(entries, opts.Search)

	if opts.SortKey != "" {
		entries, err = SortEntries(entries, opts.SortKey, opts.Ascending)
		if err != nil {
			return nil, err
		}
	}

	return entries, nil
}

// Capture stores a word selection forwarded by the browser extension
func (s *entryService) Capture(ctx context.Context, req *models.CaptureRequest) (*models.Entry, error) {
	return s.CreateEntry(ctx, &models.EntryDraft{
		Word:   req.Word,
		Tags:   req.Tags,
		Source: req.Source,
		Notes:  req.Notes,
	})
}
