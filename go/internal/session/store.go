package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Session is the replayable admin credential. The server re-validates the
// password on every reconnect; the client trusts the stored copy until the
// server says otherwise.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	Password      string `json:"password"`
}

// Valid reports whether the session is worth replaying on connect.
func (s Session) Valid() bool {
	return s.Authenticated && s.Password != ""
}

// Store persists the admin session across restarts of the panel.
type Store interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// FileStore keeps the session as a JSON file with owner-only permissions.
type FileStore struct {
	path string
}

// DefaultPath returns the per-user session file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "bpl-admin", "session.json"), nil
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the stored session. A missing file is not an error; it returns
// an empty session.
func (s *FileStore) Load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("failed to parse session file: %w", err)
	}
	return sess, nil
}

func (s *FileStore) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store for tests and for running the panel without
// persisting credentials.
type MemStore struct {
	sess Session
}

func NewMemStore() *MemStore { return &MemStore{} }

func (m *MemStore) Load() (Session, error) { return m.sess, nil }
func (m *MemStore) Save(s Session) error   { m.sess = s; return nil }
func (m *MemStore) Clear() error           { m.sess = Session{}; return nil }
