// Package creds persists the access/refresh credential pair across runs.
package creds

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	accessFile  = ".resumatch_access_token"
	refreshFile = ".resumatch_refresh_token"
)

// Pair is the durable credential pair. The access token authorizes API
// requests; the refresh token is stored alongside it but the client core
// never exercises the refresh flow itself.
type Pair struct {
	Access  string
	Refresh string
}

// Store keeps the pair in two fixed-name files with 0600 perms, so a
// session survives process restarts.
type Store struct {
	dir string
}

// NewStore places the token files in the user's home directory.
func NewStore() *Store {
	home, _ := os.UserHomeDir()
	return &Store{dir: home}
}

// NewStoreAt places the token files in dir. Used by tests.
func NewStoreAt(dir string) *Store { return &Store{dir: dir} }

// Save writes both tokens, access first.
func (s *Store) Save(p Pair) error {
	if err := os.WriteFile(s.accessPath(), []byte(p.Access), 0600); err != nil {
		return err
	}
	return os.WriteFile(s.refreshPath(), []byte(p.Refresh), 0600)
}

// Load returns the persisted pair. Missing files yield empty tokens, not
// an error: an empty access token simply means no session.
func (s *Store) Load() Pair {
	return Pair{
		Access:  readToken(s.accessPath()),
		Refresh: readToken(s.refreshPath()),
	}
}

// Clear removes both tokens. Missing files are ignored, so Clear is
// idempotent and infallible from the caller's point of view.
func (s *Store) Clear() {
	_ = os.Remove(s.accessPath())
	_ = os.Remove(s.refreshPath())
}

func (s *Store) accessPath() string  { return filepath.Join(s.dir, accessFile) }
func (s *Store) refreshPath() string { return filepath.Join(s.dir, refreshFile) }

func readToken(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
