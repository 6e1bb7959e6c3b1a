package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/linguistlexicon/lexicon-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEntryRepository is a mock implementation of EntryRepository
type mockEntryRepository struct {
	entries   []models.Entry
	entry     *models.Entry
	err       error
	addErr    error
	updateErr error
	deleteErr error

	added      []models.Entry
	updatedID  string
	updatedReq *models.UpdateEntryRequest
}

func (m *mockEntryRepository) Add(ctx context.Context, entry *models.Entry) error {
	if m.addErr != nil {
		return m.addErr
	}
	if m.err != nil {
		return m.err
	}
	entry.ID = "generated-id"
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entry.CreatedAt = now
	entry.UpdatedAt = now
	m.added = append(m.added, *entry)
	return nil
}

func (m *mockEntryRepository) GetByID(ctx context.Context, id string) (*models.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.entry, nil
}

func (m *mockEntryRepository) Update(ctx context.Context, id string, req *models.UpdateEntryRequest) (*models.Entry, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	if m.err != nil {
		return nil, m.err
	}
	m.updatedID = id
	m.updatedReq = req
	return m.entry, nil
}

func (m *mockEntryRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	return m.err
}

func (m *mockEntryRepository) ListAll(ctx context.Context) ([]models.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.entries, nil
}

func TestNewEntryService(t *testing.T) {
	mockRepo := &mockEntryRepository{}

	svc := NewEntryService(mockRepo)

	assert.NotNil(t, svc)
	assert.Equal(t, mockRepo, svc.repo)
}

func TestEntryService_CreateEntry(t *testing.T) {
	tests := []struct {
		name          string
		draft         *models.EntryDraft
		mockRepo      *mockEntryRepository
		expectedError bool
		errorContains string
		check         func(t *testing.T, entry *models.Entry)
	}{
		{
			name: "success with normalization",
			draft: &models.EntryDraft{
				Word:       "  glycolysis  ",
				Definition: " breakdown of glucose ",
				Tags:       []string{"Biology", "biology", " exam "},
				Source:     " BIO101 Lecture 3 ",
				Timestamp:  "12:30",
			},
			mockRepo: &mockEntryRepository{},
			check: func(t *testing.T, entry *models.Entry) {
				assert.Equal(t, "generated-id", entry.ID)
				assert.Equal(t, "glycolysis", entry.Word)
				assert.Equal(t, "breakdown of glucose", entry.Definition)
				assert.Equal(t, []string{"Biology", "exam"}, entry.Tags)
				assert.Equal(t, "BIO101 Lecture 3", entry.Source)
				assert.Equal(t, "00:12:30", entry.Timestamp)
				assert.Equal(t, entry.CreatedAt, entry.UpdatedAt)
			},
		},
		{
			name:          "empty word",
			draft:         &models.EntryDraft{Word: ""},
			mockRepo:      &mockEntryRepository{},
			expectedError: true,
			errorContains: "invalid word",
		},
		{
			name:          "whitespace-only word",
			draft:         &models.EntryDraft{Word: "   "},
			mockRepo:      &mockEntryRepository{},
			expectedError: true,
			errorContains: "invalid word",
		},
		{
			name:  "repository error",
			draft: &models.EntryDraft{Word: "entropy"},
			mockRepo: &mockEntryRepository{
				addErr: errors.New("disk full"),
			},
			expectedError: true,
			errorContains: "failed to create entry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEntryService(tt.mockRepo)
			ctx := context.Background()

			entry, err := svc.CreateEntry(ctx, tt.draft)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, entry)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Empty(t, tt.mockRepo.added)
			} else {
				require.NoError(t, err)
				require.NotNil(t, entry)
				if tt.check != nil {
					tt.check(t, entry)
				}
			}
		})
	}
}

func TestEntryService_CreateEntry_ValidationErrorType(t *testing.T) {
	svc := NewEntryService(&mockEntryRepository{})

	_, err := svc.CreateEntry(context.Background(), &models.EntryDraft{Word: " "})

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "word", validationErr.Field)
}

func TestEntryService_GetEntry(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		mockRepo      *mockEntryRepository
		expectedError bool
	}{
		{
			name: "success",
			id:   "some-id",
			mockRepo: &mockEntryRepository{
				entry: &models.Entry{ID: "some-id", Word: "entropy"},
			},
		},
		{
			name:          "empty id",
			id:            "",
			mockRepo:      &mockEntryRepository{},
			expectedError: true,
		},
		{
			name: "not found",
			id:   "missing",
			mockRepo: &mockEntryRepository{
				err: models.ErrNotFound,
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEntryService(tt.mockRepo)

			entry, err := svc.GetEntry(context.Background(), tt.id)

			if tt.expectedError {
				assert.ErrorIs(t, err, models.ErrNotFound)
				assert.Nil(t, entry)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.id, entry.ID)
			}
		})
	}
}

func TestEntryService_UpdateEntry(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	tagsPtr := func(tags ...string) *[]string { return &tags }

	tests := []struct {
		name          string
		id            string
		req           *models.UpdateEntryRequest
		mockRepo      *mockEntryRepository
		expectedError bool
		errorContains string
		checkReq      func(t *testing.T, req *models.UpdateEntryRequest)
	}{
		{
			name: "success normalizes provided fields",
			id:   "some-id",
			req: &models.UpdateEntryRequest{
				Word:      strPtr("  osmosis  "),
				Tags:      tagsPtr("Bio", "bio"),
				Timestamp: strPtr("90"),
			},
			mockRepo: &mockEntryRepository{
				entry: &models.Entry{ID: "some-id", Word: "osmosis"},
			},
			checkReq: func(t *testing.T, req *models.UpdateEntryRequest) {
				assert.Equal(t, "osmosis", *req.Word)
				assert.Equal(t, []string{"Bio"}, *req.Tags)
				assert.Equal(t, "00:01:30", *req.Timestamp)
			},
		},
		{
			name:          "empty id",
			id:            "",
			req:           &models.UpdateEntryRequest{},
			mockRepo:      &mockEntryRepository{},
			expectedError: true,
		},
		{
			name: "word blanked out",
			id:   "some-id",
			req:  &models.UpdateEntryRequest{Word: strPtr("  ")},
			mockRepo: &mockEntryRepository{
				entry: &models.Entry{ID: "some-id"},
			},
			expectedError: true,
			errorContains: "invalid word",
		},
		{
			name: "not found",
			id:   "missing",
			req:  &models.UpdateEntryRequest{},
			mockRepo: &mockEntryRepository{
				updateErr: models.ErrNotFound,
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEntryService(tt.mockRepo)

			entry, err := svc.UpdateEntry(context.Background(), tt.id, tt.req)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, entry)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				require.NoError(t, err)
				require.NotNil(t, entry)
				if tt.checkReq != nil {
					tt.checkReq(t, tt.mockRepo.updatedReq)
				}
			}
		})
	}
}

func TestEntryService_DeleteEntry(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		mockRepo      *mockEntryRepository
		expectedError bool
	}{
		{
			name:     "success",
			id:       "some-id",
			mockRepo: &mockEntryRepository{},
		},
		{
			name:          "empty id",
			id:            "",
			mockRepo:      &mockEntryRepository{},
			expectedError: true,
		},
		{
			name: "not found",
			id:   "missing",
			mockRepo: &mockEntryRepository{
				deleteErr: models.ErrNotFound,
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEntryService(tt.mockRepo)

			err := svc.DeleteEntry(context.Background(), tt.id)

			if tt.expectedError {
				assert.ErrorIs(t, err, models.ErrNotFound)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEntryService_ListEntries(t *testing.T) {
	entries := []models.Entry{
		{Word: "category", Tags: []string{"grammar"}},
		{Word: "cat", Tags: []string{"animals"}},
		{Word: "dog", Definition: "a cat-like loyalty", Tags: []string{"animals"}},
	}

	tests := []struct {
		name          string
		opts          ListOptions
		mockRepo      *mockEntryRepository
		expectedError bool
		expected      []string
	}{
		{
			name:     "no options returns creation order",
			opts:     ListOptions{},
			mockRepo: &mockEntryRepository{entries: entries},
			expected: []string{"category", "cat", "dog"},
		},
		{
			name:     "search ranks exact word first",
			opts:     ListOptions{Search: "cat"},
			mockRepo: &mockEntryRepository{entries: entries},
			expected: []string{"cat", "category", "dog"},
		},
		{
			name:     "filter then search",
			opts:     ListOptions{Search: "cat", Filter: FilterSpec{Tag: "animals"}},
			mockRepo: &mockEntryRepository{entries: entries},
			expected: []string{"cat", "dog"},
		},
		{
			name:     "sort by word",
			opts:     ListOptions{SortKey: SortKeyWord, Ascending: true},
			mockRepo: &mockEntryRepository{entries: entries},
			expected: []string{"cat", "category", "dog"},
		},
		{
			name:          "invalid sort key",
			opts:          ListOptions{SortKey: SortKey("bogus")},
			mockRepo:      &mockEntryRepository{entries: entries},
			expectedError: true,
		},
		{
			name:          "repository error",
			opts:          ListOptions{},
			mockRepo:      &mockEntryRepository{err: errors.New("disk error")},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEntryService(tt.mockRepo)

			result, err := svc.ListEntries(context.Background(), tt.opts)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, words(result))
			}
		})
	}
}

func TestEntryService_Capture(t *testing.T) {
	mockRepo := &mockEntryRepository{}
	svc := NewEntryService(mockRepo)

	entry, err := svc.Capture(context.Background(), &models.CaptureRequest{
		Word:   "serendipity",
		Tags:   []string{"reading"},
		Source: "article",
	})

	require.NoError(t, err)
	assert.Equal(t, "serendipity", entry.Word)
	assert.Equal(t, []string{"reading"}, entry.Tags)
	assert.Equal(t, "article", entry.Source)
	assert.NotEmpty(t, entry.ID)
}

func TestEntryService_Capture_EmptyWord(t *testing.T) {
	svc := NewEntryService(&mockEntryRepository{})

	entry, err := svc.Capture(context.Background(), &models.CaptureRequest{Word: " "})

	assert.Error(t, err)
	assert.Nil(t, entry)
}
