package repositories

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/linguistlexicon/lexicon-service/internal/models"
)

// FileStore is the interface that wraps the backing file of the entry collection
type FileStore interface {
	// Method Load reads the full entry collection from the backing file.
	//
	// A missing backing file yields an empty collection without error.
	//
	// If some error will occur during file read or decode, the error will be returned together with "nil" value.
	Load() ([]models.Entry, error)
	// Method Save writes the full entry collection to the backing file as a single atomic write.
	//
	// "entries" parameter is the complete collection to persist.
	//
	// If some error will occur during file write, the error will be returned.
	Save(entries []models.Entry) error
}

// entryRepository owns the in-memory entry collection and keeps it in sync
// with the backing file. Every mutation rewrites the full file; on a failed
// write the in-memory state is rolled back so callers never observe a write
// that was not persisted.
type entryRepository struct {
	fs FileStore

	mu      sync.RWMutex
	entries []models.Entry
	index   map[string]int // entry id -> position in entries
}

// NewEntryRepository creates a new entry repository over the given file store
func NewEntryRepository(fs FileStore) *entryRepository {
	return &entryRepository{
		fs:    fs,
		index: make(map[string]int),
	}
}

// Load populates the in-memory collection from the backing file
func (r *entryRepository) Load(ctx context.Context) error {
	entries, err := r.fs.Load()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = entries
	r.index = make(map[string]int, len(entries))
	for i, e := range entries {
		r.index[e.ID] = i
	}
	return nil
}

// Add assigns id and timestamps to the entry, appends it in creation order
// and persists the collection
func (r *entryRepository) Add(ctx context.Context, entry *models.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Second)
	entry.ID = uuid.New().String()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	r.entries = append(r.entries, *entry)
	if err := r.fs.Save(r.entries); err != nil {
		r.entries = r.entries[:len(r.entries)-1]
		return &models.PersistenceError{Op: "add", Err: err}
	}
	r.index[entry.ID] = len(r.entries) - 1

	return nil
}

// GetByID retrieves an entry by its id
func (r *entryRepository) GetByID(ctx context.Context, id string) (*models.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, models.ErrNotFound
	}

	entry := copyEntry(r.entries[i])
	return &entry, nil
}

// Update merges the provided fields into the stored entry, refreshes
// updated_at and persists. Id and created_at are never touched.
func (r *entryRepository) Update(ctx context.Context, id string, req *models.UpdateEntryRequest) (*models.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil, models.ErrNotFound
	}

	prev := copyEntry(r.entries[i])
	entry := &r.entries[i]

	if req.Word != nil {
		entry.Word = *req.Word
	}
	if req.Definition != nil {
		entry.Definition = *req.Definition
	}
	if req.Notes != nil {
		entry.Notes = *req.Notes
	}
	if req.Tags != nil {
		entry.Tags = append([]string(nil), (*req.Tags)...)
	}
	if req.Source != nil {
		entry.Source = *req.Source
	}
	if req.Timestamp != nil {
		entry.Timestamp = *req.Timestamp
	}

	now := time.Now().UTC().Truncate(time.Second)
	// Guard the updated_at >= created_at invariant against clock steps
	if now.Before(entry.UpdatedAt) {
		now = entry.UpdatedAt
	}
	entry.UpdatedAt = now

	if err := r.fs.Save(r.entries); err != nil {
		r.entries[i] = prev
		return nil, &models.PersistenceError{Op: "update", Err: err}
	}

	updated := copyEntry(r.entries[i])
	return &updated, nil
}

// Delete removes an entry by id and persists
func (r *entryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return models.ErrNotFound
	}

	removed := r.entries[i]
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	if err := r.fs.Save(r.entries); err != nil {
		r.entries = append(r.entries[:i], append([]models.Entry{removed}, r.entries[i:]...)...)
		return &models.PersistenceError{Op: "delete", Err: err}
	}

	delete(r.index, id)
	for j := i; j < len(r.entries); j++ {
		r.index[r.entries[j].ID] = j
	}

	return nil
}

// ListAll returns a snapshot of all entries in creation order.
// The snapshot is a copy; mutating it does not affect the repository.
func (r *entryRepository) ListAll(ctx context.Context) ([]models.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]models.Entry, len(r.entries))
	for i, e := range r.entries {
		entries[i] = copyEntry(e)
	}
	return entries, nil
}

// ExistingWords returns the set of stored words, lowercased, for dedup checks
func (r *entryRepository) ExistingWords(ctx context.Context) (map[string]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	words := make(map[string]bool, len(r.entries))
	for _, e := range r.entries {
		words[strings.ToLower(e.Word)] = true
	}
	return words, nil
}

// copyEntry returns a value copy with its own tags slice
func copyEntry(e models.Entry) models.Entry {
	if e.Tags != nil {
		e.Tags = append([]string(nil), e.Tags...)
	}
	return e
}
