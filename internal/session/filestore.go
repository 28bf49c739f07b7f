// ABOUTME: YAML file session store under the user config directory
// ABOUTME: Polls the file fingerprint to notice logins and logouts from other processes

package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultWatchInterval is used when a FileStore is created with a zero interval
const DefaultWatchInterval = 2 * time.Second

// FileStore persists the session snapshot to a YAML file with mode 0600
type FileStore struct {
	path     string
	interval time.Duration

	mu       sync.Mutex
	wrote    bool   // set once this store has saved or cleared
	lastSelf string // fingerprint of the file after our own most recent write, "" after Clear
}

// NewFileStore creates a store backed by path
func NewFileStore(path string, interval time.Duration) *FileStore {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	return &FileStore{path: path, interval: interval}
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot. A missing or unreadable file is an empty session.
func (s *FileStore) Load(ctx context.Context) (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("unable to read session file: %w", err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		slog.Warn("Session file is corrupt, treating as logged out", "path", s.path, "error", err)
		return Snapshot{}, nil
	}
	return snap, nil
}

// Save writes the snapshot atomically (temp file + rename)
func (s *FileStore) Save(ctx context.Context, snap Snapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("unable to encode session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("unable to create session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.yaml")
	if err != nil {
		return fmt.Errorf("unable to create temp session file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("unable to write session file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("unable to set session file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to write session file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("unable to replace session file: %w", err)
	}
	s.wrote = true
	s.lastSelf = fingerprint(data)
	return nil
}

// Clear removes the session file. Clearing an absent file is not an error.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("unable to remove session file: %w", err)
	}
	s.wrote = true
	s.lastSelf = ""
	return nil
}

// Watch polls the file until ctx is done
func (s *FileStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	out := make(chan struct{}, 1)
	seen := s.current()

	go func() {
		defer close(out)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fp := s.current()
				if fp == seen {
					continue
				}
				seen = fp

				s.mu.Lock()
				own := s.wrote && fp == s.lastSelf
				s.mu.Unlock()
				if own {
					continue
				}

				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()

	return out, nil
}

// current returns the fingerprint of the file on disk, "" when absent
func (s *FileStore) current() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return fingerprint(data)
}

func fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
