// internal/client/session_store.go
package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/javajoker/farmfresh/internal/models"
)

// SessionData is what survives between farmctl invocations.
type SessionData struct {
	Token   string      `yaml:"token"`
	UserID  string      `yaml:"user_id"`
	Name    string      `yaml:"name"`
	Email   string      `yaml:"email"`
	Role    models.Role `yaml:"role"`
	SavedAt time.Time   `yaml:"saved_at"`
}

type SessionStore interface {
	Load() (*SessionData, error)
	Save(data *SessionData) error
	Clear() error
}

// FileSessionStore keeps the session in a YAML file readable only by the owner.
type FileSessionStore struct {
	path string
}

func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

func (s *FileSessionStore) Path() string {
	return s.path
}

// Load returns nil, nil when no session has been saved.
func (s *FileSessionStore) Load() (*SessionData, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file %s: %w", s.path, err)
	}

	var data SessionData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse session file %s: %w", s.path, err)
	}
	if data.Token == "" {
		return nil, nil
	}
	return &data, nil
}

func (s *FileSessionStore) Save(data *SessionData) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	raw, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write session file %s: %w", s.path, err)
	}
	return nil
}

func (s *FileSessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file %s: %w", s.path, err)
	}
	return nil
}

// MemorySessionStore is used by embedded clients and tests.
type MemorySessionStore struct {
	mu   sync.Mutex
	data *SessionData
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (s *MemorySessionStore) Load() (*SessionData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	cp := *s.data
	return &cp, nil
}

func (s *MemorySessionStore) Save(data *SessionData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *data
	s.data = &cp
	return nil
}

func (s *MemorySessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}
