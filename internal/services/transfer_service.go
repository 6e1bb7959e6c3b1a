package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/linguistlexicon/lexicon-service/internal/models"
)

// Format identifies an import/export payload format
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	// FormatText imports bare candidate words harvested from free text
	FormatText Format = "text"
)

// csvHeader is the column order of CSV exports
var csvHeader = []string{"id", "word", "definition", "notes", "tags", "source", "timestamp", "created_at", "updated_at"}

// csvTagDelimiter joins tags into a single CSV cell
const csvTagDelimiter = ";"

// columnAliases maps accepted import column names to entry fields.
// Variants come from glossary tables exported by other tools.
var columnAliases = map[string]string{
	"word": "word", "term": "word", "vocabulary": "word", "entry": "word",
	"definition": "definition", "meaning": "definition", "gloss": "definition",
	"notes": "notes", "context": "notes", "example": "notes", "examples": "notes",
	"tags": "tags", "label": "tags", "labels": "tags",
	"source": "source", "class": "source", "course": "source",
	"timestamp": "timestamp", "time": "timestamp",
}

// TransferRepository is the interface that wraps repository methods used by import/export
type TransferRepository interface {
	// Method ListAll returns a snapshot of all entries in creation order.
	ListAll(ctx context.Context) ([]models.Entry, error)
	// Method Add assigns id and timestamps to the entry, appends it to the collection and persists.
	//
	// If the backing file write fails, the in-memory collection is rolled back and the error is returned.
	Add(ctx context.Context, entry *models.Entry) error
	// Method ExistingWords returns the set of stored words, lowercased, for dedup checks.
	ExistingWords(ctx context.Context) (map[string]bool, error)
}

// ImportOptions configures an import run
type ImportOptions struct {
	// DedupByWord skips drafts whose word already exists in the store or
	// earlier in the batch (case-insensitive)
	DedupByWord bool
	// Defaults applied to every imported draft
	DefaultTags   []string
	DefaultSource string
	DefaultNotes  string
}

// transferService implements import and export over a repository snapshot
type transferService struct {
	repo TransferRepository
}

// NewTransferService creates a new transfer service
func NewTransferService(repo TransferRepository) *transferService {
	return &transferService{
		repo: repo,
	}
}

// Export serializes the full collection in the given format
func (s *transferService) Export(ctx context.Context, format Format) ([]byte, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return ExportEntries(entries, format)
}

// ExportEntries serializes entries as a JSON array or a CSV document.
// Tags are joined with ";" in CSV cells; times are RFC3339.
func ExportEntries(entries []models.Entry, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode entries: %w", err)
		}
		return data, nil

	case FormatCSV:
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write(csvHeader); err != nil {
			return nil, fmt.Errorf("failed to write CSV header: %w", err)
		}
		for _, e := range entries {
			record := []string{
				e.ID,
				e.Word,
				e.Definition,
				e.Notes,
				strings.Join(e.Tags, csvTagDelimiter),
				e.Source,
				e.Timestamp,
				e.CreatedAt.Format(time.RFC3339),
				e.UpdatedAt.Format(time.RFC3339),
			}
			if err := w.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("failed to flush CSV: %w", err)
		}
		return buf.Bytes(), nil

	default:
		return nil, &models.ValidationError{Field: "format", Reason: "must be json or csv"}
	}
}

// Import parses the payload into drafts and stores them one by one.
// The store is left untouched when the payload fails to parse.
func (s *transferService) Import(ctx context.Context, raw []byte, format Format, opts ImportOptions) (*models.ImportResult, error) {
	drafts, err := ParseDrafts(raw, format)
	if err != nil {
		return nil, err
	}

	var existing map[string]bool
	if opts.DedupByWord {
		existing, err = s.repo.ExistingWords(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load existing words: %w", err)
		}
	}

	result := &models.ImportResult{}
	for _, draft := range drafts {
		word := strings.TrimSpace(draft.Word)

		if opts.DedupByWord {
			key := strings.ToLower(word)
			if existing[key] {
				result.Skipped++
				continue
			}
			existing[key] = true
		}

		entry := &models.Entry{
			Word:       word,
			Definition: strings.TrimSpace(draft.Definition),
			Notes:      firstNonEmpty(strings.TrimSpace(draft.Notes), opts.DefaultNotes),
			Tags:       NormalizeTags(append(append([]string{}, opts.DefaultTags...), draft.Tags...)),
			Source:     firstNonEmpty(strings.TrimSpace(draft.Source), opts.DefaultSource),
			Timestamp:  NormalizeTimestamp(draft.Timestamp),
		}
		if err := s.repo.Add(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to store imported entry %q: %w", word, err)
		}
		result.Imported++
	}

	return result, nil
}

// ParseDrafts parses a raw payload into entry drafts without assigning ids or
// timestamps. Ids present in the payload are discarded; the store reassigns
// them on Add.
func ParseDrafts(raw []byte, format Format) ([]models.EntryDraft, error) {
	switch format {
	case FormatJSON:
		return parseJSONDrafts(raw)
	case FormatCSV:
		return parseCSVDrafts(raw)
	case FormatText:
		return parseTextDrafts(raw)
	default:
		return nil, &models.ValidationError{Field: "format", Reason: "must be json, csv or text"}
	}
}

func parseJSONDrafts(raw []byte) ([]models.EntryDraft, error) {
	var drafts []models.EntryDraft
	if err := json.Unmarshal(raw, &drafts); err != nil {
		return nil, &models.ParseError{Format: "json", Reason: "expected an array of entry objects", Err: err}
	}

	for i, d := range drafts {
		if strings.TrimSpace(d.Word) == "" {
			return nil, &models.ParseError{Format: "json", Reason: fmt.Sprintf("entry %d is missing the word field", i+1)}
		}
	}
	return drafts, nil
}

func parseCSVDrafts(raw []byte) ([]models.EntryDraft, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	records, err := r.ReadAll()
	if err != nil {
		return nil, &models.ParseError{Format: "csv", Reason: "malformed CSV", Err: err}
	}
	if len(records) == 0 {
		return nil, &models.ParseError{Format: "csv", Reason: "empty payload"}
	}

	// Map header columns to entry fields through the accepted aliases
	fields := make(map[int]string, len(records[0]))
	hasWord := false
	for i, col := range records[0] {
		field, ok := columnAliases[strings.ToLower(strings.TrimSpace(col))]
		if !ok {
			continue
		}
		fields[i] = field
		if field == "word" {
			hasWord = true
		}
	}
	if !hasWord {
		return nil, &models.ParseError{Format: "csv", Reason: "missing the word column"}
	}

	drafts := make([]models.EntryDraft, 0, len(records)-1)
	for row, record := range records[1:] {
		var draft models.EntryDraft
		for i, cell := range record {
			cell = strings.TrimSpace(cell)
			switch fields[i] {
			case "word":
				draft.Word = cell
			case "definition":
				draft.Definition = cell
			case "notes":
				draft.Notes = cell
			case "tags":
				draft.Tags = splitTagCell(cell)
			case "source":
				draft.Source = cell
			case "timestamp":
				draft.Timestamp = cell
			}
		}
		if draft.Word == "" {
			return nil, &models.ParseError{Format: "csv", Reason: fmt.Sprintf("row %d is missing a word", row+2)}
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

func parseTextDrafts(raw []byte) ([]models.EntryDraft, error) {
	words := HarvestWords(string(raw))
	if len(words) == 0 {
		return nil, &models.ParseError{Format: "text", Reason: "no candidate words found"}
	}

	drafts := make([]models.EntryDraft, len(words))
	for i, w := range words {
		drafts[i] = models.EntryDraft{Word: w}
	}
	return drafts, nil
}

// splitTagCell splits a serialized tag list. It accepts the ";" delimiter of
// our own CSV exports, plain comma lists and bracketed lists like [a, b].
func splitTagCell(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	if strings.HasPrefix(cell, "[") && strings.HasSuffix(cell, "]") {
		cell = strings.Trim(cell, "[]")
	}

	delimiter := ","
	if strings.Contains(cell, csvTagDelimiter) {
		delimiter = csvTagDelimiter
	}

	var tags []string
	for _, t := range strings.Split(cell, delimiter) {
		t = strings.Trim(strings.TrimSpace(t), `'"`)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
