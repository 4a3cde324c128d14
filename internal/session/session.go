// Package session owns the authenticated admin identity and bearer token.
//
// The pair is the only durably persisted client-side state: it survives
// restarts via a small key-value table in the config-dir sqlite database and
// is rehydrated once at startup. Identity and credential are always set or
// cleared together; the API offers no way to mutate one without the other.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"craveboard-cli/internal/model"
)

const (
	keyUser  = "user"
	keyToken = "token"
)

// Session is the authenticated identity plus its opaque credential.
type Session struct {
	User  model.User
	Token string
}

// Store holds the current session in memory and mirrors every change to
// local storage. Safe for concurrent use: the gateway reads the token from
// request goroutines while the UI loop logs in/out.
type Store struct {
	mu  sync.RWMutex
	kv  kvStore
	cur *Session
}

// ConfigDir resolves the per-user config directory.
// CRAVEBOARD_CONFIG_DIR overrides it (keeps tests away from ~/.craveboard).
func ConfigDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("CRAVEBOARD_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".craveboard"), nil
}

// Open opens (creating if needed) the session store in the config dir and
// rehydrates any persisted session.
func Open() (*Store, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	kv, err := openKV(filepath.Join(dir, "craveboard.db"))
	if err != nil {
		return nil, err
	}
	s := &Store{kv: kv}
	s.rehydrate()
	return s, nil
}

// rehydrate loads the persisted user+token pair. Missing or corrupt data is
// treated as "signed out" and cleared, never surfaced as an error.
func (s *Store) rehydrate() {
	rawUser, errU := s.kv.Get(keyUser)
	rawToken, errT := s.kv.Get(keyToken)
	if errU != nil || errT != nil || len(rawUser) == 0 || len(rawToken) == 0 {
		return
	}
	var u model.User
	if err := json.Unmarshal(rawUser, &u); err != nil {
		// Half-written or corrupt user blob: drop both halves.
		_ = s.kv.Clear()
		return
	}
	s.cur = &Session{User: u, Token: string(rawToken)}
}

// Current returns the active session, if any.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return Session{}, false
	}
	return *s.cur, true
}

// Token returns the active credential, or "" when signed out. The gateway
// calls this at request time.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return ""
	}
	return s.cur.Token
}

// Set stores a new session (login) or replaces the identity after a profile
// update. Both halves are written in one transaction.
func (s *Store) Set(user model.User, token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("session: empty token")
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.SetAll(map[string][]byte{
		keyUser:  raw,
		keyToken: []byte(token),
	}); err != nil {
		return err
	}
	s.cur = &Session{User: user, Token: token}
	return nil
}

// UpdateUser replaces the identity while keeping the current credential.
// No-op when signed out.
func (s *Store) UpdateUser(user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return nil
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.kv.SetAll(map[string][]byte{keyUser: raw}); err != nil {
		return err
	}
	s.cur.User = user
	return nil
}

// Clear drops the session (logout or forced invalidation).
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = nil
	return s.kv.Clear()
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.kv.Close() }
