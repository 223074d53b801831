// Package session keeps the bearer token, the user role and the token's
// issue timestamp in one local file. Those three values are the only
// state this client ever persists, and they are always cleared together.
package session

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/ai-stock-trading/dashboard/internal/model"
)

// TokenExpiry is enforced optimistically on the client: the backend may
// still consider the token valid, but after this much wall-clock time
// the session is treated as over.
const TokenExpiry = 24 * time.Hour

type State struct {
	Token    string     `json:"token"`
	Role     model.Role `json:"role"`
	IssuedAt time.Time  `json:"issuedAt"`
}

// ExpiredAt reports whether the session is invalid at the given moment.
// An elapsed time of exactly TokenExpiry counts as expired.
func (s State) ExpiredAt(now time.Time) bool {
	if s.Token == "" {
		return true
	}
	return now.Sub(s.IssuedAt) >= TokenExpiry
}

type Store struct {
	path string

	mu    sync.Mutex
	state State
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the session file. A missing file is not an error: it just
// leaves the store empty, which reads as an expired session.
func (s *Store) Load() error {
	input, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: can't read session file", err)
	}

	var st State
	if err := sonic.Unmarshal(input, &st); err != nil {
		return fmt.Errorf("%w: can't unmarshal session file", err)
	}

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return nil
}

// Set records a fresh login: token, role and the current wall-clock as
// the issue time.
func (s *Store) Set(token string, role model.Role) error {
	st := State{
		Token:    token,
		Role:     role,
		IssuedAt: time.Now(),
	}

	output, err := sonic.Marshal(st)
	if err != nil {
		return fmt.Errorf("%w: can't marshal session", err)
	}
	if err := os.WriteFile(s.path, output, 0o600); err != nil {
		return fmt.Errorf("%w: can't write session file", err)
	}

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return nil
}

// Clear drops every session field and removes the file.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: can't remove session file", err)
	}
	return nil
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

func (s *Store) Role() model.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Role
}

func (s *Store) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ExpiredAt(time.Now())
}
