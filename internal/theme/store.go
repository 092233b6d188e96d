package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store is the key-value preference store that outlives the process.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// FileStore keeps preferences as a flat YAML map in one file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created on the
// first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading preferences %s: %w", s.path, err)
	}
	prefs := map[string]string{}
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("parsing preferences %s: %w", s.path, err)
	}
	return prefs, nil
}

// Get returns the stored value and whether it exists.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefs, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := prefs[key]
	return v, ok, nil
}

// Set writes key=value, keeping any other keys in the file.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefs, err := s.load()
	if err != nil {
		return err
	}
	prefs[key] = value
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshalling preferences: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing preferences to %s: %w", s.path, err)
	}
	return nil
}

// MemoryStore is an in-process Store for hosts without a writable disk.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
