package testutil

import (
	"context"
	"sync"
)

// MockBlobStore implements blob.Store in memory
type MockBlobStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// UploadErr makes every Upload fail when set
	UploadErr error
}

// NewMockBlobStore creates an empty in-memory blob store
func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{objects: make(map[string][]byte)}
}

func (m *MockBlobStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if m.UploadErr != nil {
		return m.UploadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), data...)
	return nil
}

func (m *MockBlobStore) PublicURL(ctx context.Context, key string) (string, error) {
	return "https://blobs.test/" + key, nil
}

// Object returns a stored object and whether it exists
func (m *MockBlobStore) Object(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	return data, ok
}

// Len returns the number of stored objects
func (m *MockBlobStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
