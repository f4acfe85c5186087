// Package store provides in-memory knowledge and feedback stores. They
// back tests and small deployments; the Postgres repositories are the
// production implementations of the same method sets.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/tessnimetteib/cv-generator-project2/internal/models"

	"github.com/google/uuid"
)

// MemoryStore holds knowledge entries in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*models.KnowledgeEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[uuid.UUID]*models.KnowledgeEntry)}
}

// Insert adds or replaces an entry.
func (s *MemoryStore) Insert(_ context.Context, entry *models.KnowledgeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	s.entries[entry.ID] = entry
	return nil
}

// Find returns the entries matching every set filter field. An empty
// result is not an error.
func (s *MemoryStore) Find(_ context.Context, filter models.Filter) ([]*models.KnowledgeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.KnowledgeEntry
	for _, entry := range s.entries {
		if filter.Matches(entry) {
			out = append(out, entry)
		}
	}
	return out, nil
}

// GetByIDs returns the entries for the given ids, skipping unknown ones.
func (s *MemoryStore) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*models.KnowledgeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.KnowledgeEntry, 0, len(ids))
	for _, id := range ids {
		if entry, ok := s.entries[id]; ok {
			out = append(out, entry)
		}
	}
	return out, nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// MemoryFeedback is an append-only in-memory feedback store.
type MemoryFeedback struct {
	mu      sync.RWMutex
	records []models.FeedbackRecord
}

func NewMemoryFeedback() *MemoryFeedback {
	return &MemoryFeedback{}
}

// Insert appends a feedback record.
func (s *MemoryFeedback) Insert(_ context.Context, fb *models.FeedbackRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fb.ID == uuid.Nil {
		fb.ID = uuid.New()
	}
	s.records = append(s.records, *fb)
	return nil
}

// ListSince returns the records created at or after cutoff.
func (s *MemoryFeedback) ListSince(_ context.Context, cutoff time.Time) ([]models.FeedbackRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.FeedbackRecord
	for _, r := range s.records {
		if !r.CreatedAt.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out, nil
}
