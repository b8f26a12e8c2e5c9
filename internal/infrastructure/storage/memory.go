package storage

import (
	"context"
	"fmt"
	"sync"
	"time"
)

var _ DocumentStore = (*InMemoryDocumentStore)(nil)

// InMemoryDocumentStore keeps documents in a map. Used in tests and local
// development without an S3 endpoint.
type InMemoryDocumentStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
}

// NewInMemoryDocumentStore creates an empty in-memory store
func NewInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		objects: make(map[string][]byte),
		baseURL: "https://storage.invalid",
	}
}

// Put stores data and returns the docRef
func (s *InMemoryDocumentStore) Put(_ context.Context, kind, filename string, data []byte, _ string) (string, error) {
	if kind == "" || filename == "" {
		return "", fmt.Errorf("document kind and filename are required")
	}

	docRef := newDocRef(kind, filename, time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[docRef] = buf

	return docRef, nil
}

// PresignDownload returns a fake URL pointing at the docRef
func (s *InMemoryDocumentStore) PresignDownload(_ context.Context, docRef string, expiresIn time.Duration) (string, time.Time, error) {
	if docRef == "" {
		return "", time.Time{}, ErrEmptyDocRef
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	return s.baseURL + "/" + docRef, time.Now().Add(expiresIn), nil
}

// Exists checks whether a docRef resolves to a stored object
func (s *InMemoryDocumentStore) Exists(_ context.Context, docRef string) (bool, error) {
	if docRef == "" {
		return false, ErrEmptyDocRef
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[docRef]
	return ok, nil
}

// Delete removes the object behind a docRef
func (s *InMemoryDocumentStore) Delete(_ context.Context, docRef string) error {
	if docRef == "" {
		return ErrEmptyDocRef
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, docRef)
	return nil
}

// Get returns the stored bytes for a docRef (test helper)
func (s *InMemoryDocumentStore) Get(docRef string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[docRef]
	return data, ok
}
