package services

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MockPhotoStorage is an in-memory PhotoStorage for tests
type MockPhotoStorage struct {
	objects map[string][]byte
	mu      sync.RWMutex

	// UploadErr and URLErr force failures when set
	UploadErr error
	URLErr    error
}

// NewMockPhotoStorage creates an empty mock storage
func NewMockPhotoStorage() *MockPhotoStorage {
	return &MockPhotoStorage{objects: make(map[string][]byte)}
}

// Upload stores body under key
func (m *MockPhotoStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	if m.UploadErr != nil {
		return m.UploadErr
	}
	content, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read photo: %w", err)
	}

	m.mu.Lock()
	m.objects[key] = content
	m.mu.Unlock()
	return nil
}

// URL returns a fake presigned URL for stored keys
func (m *MockPhotoStorage) URL(ctx context.Context, key string) (string, error) {
	if m.URLErr != nil {
		return "", m.URLErr
	}

	m.mu.RLock()
	_, exists := m.objects[key]
	m.mu.RUnlock()
	if !exists {
		return "", fmt.Errorf("object not found in mock storage: %s", key)
	}
	return fmt.Sprintf("https://job-photos.s3.us-east-1.amazonaws.com/%s?mock=true", key), nil
}

// Delete removes key
func (m *MockPhotoStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

// Put seeds an object directly
func (m *MockPhotoStorage) Put(key string, content []byte) {
	m.mu.Lock()
	m.objects[key] = content
	m.mu.Unlock()
}

// Objects returns a copy of everything stored
func (m *MockPhotoStorage) Objects() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	objects := make(map[string][]byte, len(m.objects))
	for k, v := range m.objects {
		objects[k] = v
	}
	return objects
}
