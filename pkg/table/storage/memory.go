package storage

import (
	"context"
	"sort"
	"sync"

	"mercator-hq/tabula/pkg/table"
)

// MemoryStorage implements table.Storage using an in-memory map.
type MemoryStorage struct {
	docs map[string]*table.Document
	mu   sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		docs: make(map[string]*table.Document),
	}
}

// Store persists a copy of doc. An existing document with the same ID is
// replaced.
func (s *MemoryStorage) Store(ctx context.Context, doc *table.Document) error {
	if doc == nil || doc.ID == "" {
		return table.NewStorageError("memory", "store", table.NewValidationError("id", "document ID is required"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[doc.ID] = copyDocument(doc, true)
	return nil
}

// Get returns a copy of the document including its data.
func (s *MemoryStorage) Get(ctx context.Context, id string) (*table.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, table.ErrNotFound
	}
	return copyDocument(doc, true), nil
}

// List returns matching documents newest first, without data.
func (s *MemoryStorage) List(ctx context.Context, query *table.DocumentQuery) ([]*table.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	results := s.matching(query)
	s.mu.RUnlock()

	sortNewestFirst(results)

	offset, limit := 0, 0
	if query != nil {
		offset, limit = query.Offset, query.Limit
	}
	if offset >= len(results) {
		return []*table.Document{}, nil
	}
	results = results[offset:]
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}

	out := make([]*table.Document, len(results))
	for i, doc := range results {
		out[i] = copyDocument(doc, false)
	}
	return out, nil
}

// Count returns the number of matching documents.
func (s *MemoryStorage) Count(ctx context.Context, query *table.DocumentQuery) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.matching(query))), nil
}

// Delete removes matching documents.
func (s *MemoryStorage) Delete(ctx context.Context, query *table.DocumentQuery) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, doc := range s.matching(query) {
		delete(s.docs, doc.ID)
		count++
	}
	return count, nil
}

// Close is a no-op for memory storage.
func (s *MemoryStorage) Close() error {
	return nil
}

// matching must be called with the lock held.
func (s *MemoryStorage) matching(query *table.DocumentQuery) []*table.Document {
	var results []*table.Document
	for _, doc := range s.docs {
		if query.Matches(doc) {
			results = append(results, doc)
		}
	}
	return results
}

func sortNewestFirst(docs []*table.Document) {
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		}
		return docs[i].ID > docs[j].ID
	})
}

func copyDocument(doc *table.Document, withData bool) *table.Document {
	c := *doc
	c.Data = nil
	if withData && doc.Data != nil {
		c.Data = append([]byte(nil), doc.Data...)
	}
	return &c
}
