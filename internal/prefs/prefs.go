package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// Store is the key-value port for UI preferences (saved filter selections,
// layout state). Values are opaque JSON blobs; the calculation core never
// interprets them.
type Store interface {
	Get(key string) (json.RawMessage, bool)
	Set(key string, value json.RawMessage) error
	Delete(key string) error
	Keys() []string
}

// FileStore persists preferences to a single JSON file.
type FileStore struct {
	path   string
	mu     sync.RWMutex
	values map[string]json.RawMessage
	logger *logrus.Logger
}

func NewFileStore(path string, logger *logrus.Logger) *FileStore {
	s := &FileStore{
		path:   path,
		values: make(map[string]json.RawMessage),
		logger: logger,
	}
	s.load()
	return s
}

func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Warnf("Could not load preferences: %v", err)
		return
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		s.logger.Errorf("Failed to parse preferences file: %v", err)
		return
	}
	s.logger.Infof("Loaded %d saved preferences", len(s.values))
}

// save writes the current map to disk. Caller must hold at least a read lock.
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.values, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %v", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create preferences directory: %v", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences file: %v", err)
	}
	return nil
}

func (s *FileStore) Get(key string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *FileStore) Set(key string, value json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.save()
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return fmt.Errorf("preference not found: %s", key)
	}
	delete(s.values, key)
	return s.save()
}

func (s *FileStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}
