// Package session remembers what the desk showed last, so a bare `desk` run
// can reopen it.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"ScoringDesk/internal/model"
	"ScoringDesk/internal/query"
)

// State is what the desk remembers between runs.
type State struct {
	LastView     string    `json:"last_view,omitempty"`
	LastClientID int64     `json:"last_client_id,omitempty"`
	LastSearch   string    `json:"last_search,omitempty"` // encoded query string
	UpdatedAt    time.Time `json:"updated_at"`
}

// Store keeps the session in memory and writes through to a JSON file.
type Store struct {
	mu    sync.Mutex
	state State
	path  string
}

// NewStore opens the session file at path. A missing or empty file is a fresh session.
// An empty path keeps the session in memory only.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read session: %w", err)
	case len(data) == 0:
		return s, nil
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", path, err)
	}
	return s, nil
}

// Get returns a copy of the current state.
func (s *Store) Get() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RememberClient records that view was opened for client id.
func (s *Store) RememberClient(view string, id int64) {
	s.update(func(st *State) {
		st.LastView = view
		st.LastClientID = id
	})
}

// RememberSearch records the last search. Empty criteria clear it.
func (s *Store) RememberSearch(c model.SearchCriteria) {
	q, _ := query.Build(c)
	s.update(func(st *State) {
		st.LastView = "search"
		st.LastSearch = q
	})
}

// LastSearch decodes the remembered search.
func (s *Store) LastSearch() (model.SearchCriteria, error) {
	return query.ParseString(s.Get().LastSearch)
}

func (s *Store) update(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	s.state.UpdatedAt = time.Now()
	if s.path == "" {
		return
	}
	if err := s.flushLocked(); err != nil {
		log.Printf("[ERROR] failed to save session: %v", err)
	}
}

// flushLocked replaces the session file via a temp file in the same directory.
func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
