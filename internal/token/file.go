package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type fileEntry struct {
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FileStore keeps the token in a JSON file readable only by the owner.
type FileStore struct {
	mu   sync.Mutex
	path string
	name string
	now  func() time.Time
}

func NewFileStore(path, name string) *FileStore {
	return &FileStore{path: path, name: name, now: time.Now}
}

func (s *FileStore) Get(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}

	var entry fileEntry
	if err := json.Unmarshal(b, &entry); err != nil {
		return "", fmt.Errorf("decode token file: %w", err)
	}
	if entry.Name != s.name {
		return "", nil
	}
	if !entry.ExpiresAt.IsZero() && !s.now().Before(entry.ExpiresAt) {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("remove expired token file: %w", err)
		}
		return "", nil
	}
	return entry.Value, nil
}

func (s *FileStore) Set(ctx context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := fileEntry{Name: s.name, Value: token}
	if ttl > 0 {
		entry.ExpiresAt = s.now().Add(ttl).UTC()
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode token file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}

func (s *FileStore) Remove(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
