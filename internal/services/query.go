package services

import (
	"sort"
	"strings"

	"github.com/linguistlexicon/lexicon-service/internal/models"
)

// SortKey identifies the entry field a sort runs on
type SortKey string

const (
	SortKeyWord      SortKey = "word"
	SortKeyCreatedAt SortKey = "created_at"
	SortKeyUpdatedAt SortKey = "updated_at"
)

// FilterSpec configures FilterEntries. Zero-value fields are ignored.
type FilterSpec struct {
	Tag           string // Match entries whose tags include this value, case-insensitive
	Source        string
	SourceExact   bool  // Exact source match instead of substring
	HasDefinition *bool // nil means "don't care"
}

// FilterEntries returns the subsequence of entries matching the spec,
// preserving input order
func FilterEntries(entries []models.Entry, spec FilterSpec) []models.Entry {
	if spec.Tag == "" && spec.Source == "" && spec.HasDefinition == nil {
		return entries
	}

	matched := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if spec.Tag != "" && !hasTag(e.Tags, spec.Tag) {
			continue
		}
		if spec.Source != "" && !matchSource(e.Source, spec.Source, spec.SourceExact) {
			continue
		}
		if spec.HasDefinition != nil && (e.Definition != "") != *spec.HasDefinition {
			continue
		}
		matched = append(matched, e)
	}
	return matched
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func matchSource(source, query string, exact bool) bool {
	if exact {
		return strings.EqualFold(source, query)
	}
	return strings.Contains(strings.ToLower(source), strings.ToLower(query))
}

// Search match ranks, best first
const (
	rankExactWord = iota
	rankWordPrefix
	rankSubstring
)

// SearchEntries matches the query case-insensitively as a substring of word,
// definition or notes. Results are ranked exact word match first, then word
// prefix matches, then any-field substring matches; ties keep original order.
// An empty query returns the input unchanged.
func SearchEntries(entries []models.Entry, query string) []models.Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries
	}

	type match struct {
		entry models.Entry
		rank  int
	}

	matches := make([]match, 0, len(entries))
	for _, e := range entries {
		word := strings.ToLower(e.Word)
		switch {
		case word == query:
			matches = append(matches, match{e, rankExactWord})
		case strings.HasPrefix(word, query):
			matches = append(matches, match{e, rankWordPrefix})
		case strings.Contains(word, query),
			strings.Contains(strings.ToLower(e.Definition), query),
			strings.Contains(strings.ToLower(e.Notes), query):
			matches = append(matches, match{e, rankSubstring})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rank < matches[j].rank
	})

	result := make([]models.Entry, len(matches))
	for i, m := range matches {
		result[i] = m.entry
	}
	return result
}

// SortEntries returns the entries stably sorted by the given key.
// Word comparison is case-insensitive.
func SortEntries(entries []models.Entry, key SortKey, ascending bool) ([]models.Entry, error) {
	var less func(a, b models.Entry) bool
	switch key {
	case SortKeyWord:
		less = func(a, b models.Entry) bool {
			return strings.ToLower(a.Word) < strings.ToLower(b.Word)
		}
	case SortKeyCreatedAt:
		less = func(a, b models.Entry) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortKeyUpdatedAt:
		less = func(a, b models.Entry) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	default:
		return nil, &models.ValidationError{Field: "sort", Reason: "must be one of word, created_at, updated_at"}
	}

	sorted := make([]models.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})
	return sorted, nil
}
