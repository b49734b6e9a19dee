// Package session persists the bearer credential for the crop-monitoring
// service between runs. The token lives in a single JSON file under the
// fieldscope dot-directory; a missing file simply means unauthenticated.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Session is the stored authentication state.
type Session struct {
	AccessToken string    `json:"access_token"`
	Email       string    `json:"email,omitempty"`
	SavedAt     time.Time `json:"saved_at"`
}

// Active reports whether a bearer token is present.
func (s Session) Active() bool {
	return s.AccessToken != ""
}

// Token implements the api.TokenSource contract.
func (s Session) Token() string {
	return s.AccessToken
}

// Store is the durable key-value abstraction for the credential. It is
// injected wherever the token is needed rather than reached as a global.
type Store interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// Source adapts a Store into a per-request token source: every call reads
// the currently persisted credential, so a login or logout in one part of
// the program is visible to the next outgoing request.
type Source struct {
	Store Store
}

// Token returns the stored bearer token, or empty when unauthenticated or
// unreadable.
func (s Source) Token() string {
	sess, err := s.Store.Load()
	if err != nil {
		return ""
	}
	return sess.AccessToken
}

// FileStore keeps the session in a JSON file, created 0600.
type FileStore struct {
	path string
}

// NewFileStore returns a store rooted at the default location,
// ~/.fieldscope/session.json.
func NewFileStore() (*FileStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewFileStoreAt(filepath.Join(home, ".fieldscope", "session.json")), nil
}

// NewFileStoreAt returns a store backed by an explicit path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the stored session. A missing file is not an error: it returns
// an empty (unauthenticated) session.
func (fs *FileStore) Load() (Session, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("parse session file: %w", err)
	}
	return s, nil
}

// Save writes the session to disk, creating the dot-directory if needed.
func (fs *FileStore) Save(s Session) error {
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fs.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(fs.path, data, 0600)
}

// Clear removes the stored session. Clearing an absent session is fine.
func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
