package storage

import (
	"context"
	"sort"
	"sync"
)

// InMemoryStorage хранит артефакты в памяти процесса.
type InMemoryStorage struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		files: make(map[string][]byte),
	}
}

func (s *InMemoryStorage) Exists(ctx context.Context, filename string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := validName(filename); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.files[filename]
	return ok, nil
}

func (s *InMemoryStorage) Save(ctx context.Context, filename string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validName(filename); err != nil {
		return err
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[filename] = buf
	return nil
}

func (s *InMemoryStorage) Read(ctx context.Context, filename string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validName(filename); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.files[filename]
	if !ok {
		return nil, ErrNotFound
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

func (s *InMemoryStorage) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.files))
	for name := range s.files {
		if isArtifactName(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *InMemoryStorage) Delete(ctx context.Context, filename string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validName(filename); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[filename]; !ok {
		return ErrNotFound
	}
	delete(s.files, filename)
	return nil
}

func (s *InMemoryStorage) Ping() error {
	return nil
}
