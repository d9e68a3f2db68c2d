package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// InMemoryBlobStore mirrors the in-memory fallback the deal store has: it
// keeps the API usable (and tests hermetic) when MinIO is offline.
type InMemoryBlobStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func InitInMemoryBlobStore() *InMemoryBlobStore {
	return &InMemoryBlobStore{
		objects: make(map[string][]byte),
	}
}

func (s *InMemoryBlobStore) Upload(ctx context.Context, object string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("upload %s: %w", object, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[object] = data
	return nil
}

func (s *InMemoryBlobStore) Download(ctx context.Context, object string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[object]
	if !ok {
		return nil, fmt.Errorf("download %s: object not found", object)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *InMemoryBlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var names []string
	for name := range s.objects {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *InMemoryBlobStore) Delete(ctx context.Context, object string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, object)
	return nil
}

func (s *InMemoryBlobStore) PresignedURL(ctx context.Context, object string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[object]; !ok {
		return "", fmt.Errorf("presign %s: object not found", object)
	}
	return "memory://" + object, nil
}
