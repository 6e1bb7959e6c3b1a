package models

import "time"

// Entry represents a single captured vocabulary item with metadata
type Entry struct {
	ID         string    `json:"id"`
	Word       string    `json:"word"`
	Definition string    `json:"definition,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	Source     string    `json:"source,omitempty"` // Lecture/video/article the word came from
	Timestamp  string    `json:"timestamp,omitempty"` // Video offset or capture time, hh:mm:ss
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EntryDraft represents a not-yet-persisted entry without id and timestamps.
// The repository assigns id, created_at and updated_at on Add.
type EntryDraft struct {
	Word       string   `json:"word"`
	Definition string   `json:"definition,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Source     string   `json:"source,omitempty"`
	Timestamp  string   `json:"timestamp,omitempty"`
}

// UpdateEntryRequest represents a partial update of an entry.
// Nil fields are left unchanged; id and created_at are immutable.
type UpdateEntryRequest struct {
	Word       *string   `json:"word,omitempty"`
	Definition *string   `json:"definition,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
	Source     *string   `json:"source,omitempty"`
	Timestamp  *string   `json:"timestamp,omitempty"`
}

// CaptureRequest represents a word selection forwarded by the browser extension
type CaptureRequest struct {
	Word   string   `json:"word"`
	Tags   []string `json:"tags,omitempty"`
	Source string   `json:"source,omitempty"`
	Notes  string   `json:"notes,omitempty"`
}

// ImportResult summarizes an import operation
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"` // Drafts dropped by dedup-by-word
}
