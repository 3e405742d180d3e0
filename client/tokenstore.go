package client

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
)

// ErrTokenNotFound means the slot is empty. Callers treat it the same as a
// storage fault: the user acts as logged out.
var ErrTokenNotFound = errors.New("no session token stored")

// SlotName is the fixed name of the durable token slot
const SlotName = "id_token"

// TokenStore is a single named slot holding the encoded session token.
// Every operation is independently fallible.
type TokenStore interface {
	Get() (string, error)
	Set(token string) error
	Remove() error
}

// FileTokenStore persists the token slot as a file. Writes go through an
// atomic replace so a crash can never leave a partially written token.
type FileTokenStore struct {
	path string
}

var _ TokenStore = (*FileTokenStore)(nil)

// NewFileTokenStore creates a store rooted at dir using the fixed slot name
func NewFileTokenStore(dir string) (*FileTokenStore, error) {
	if dir == "" {
		return nil, errors.New("token store dir must not be empty")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create token store dir: %w", err)
	}

	return &FileTokenStore{path: filepath.Join(dir, SlotName)}, nil
}

// Path returns the slot file location
func (s *FileTokenStore) Path() string {
	return s.path
}

func (s *FileTokenStore) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("read token slot: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrTokenNotFound
	}

	return token, nil
}

func (s *FileTokenStore) Set(token string) error {
	if err := atomic.WriteFile(s.path, bytes.NewReader([]byte(token))); err != nil {
		return fmt.Errorf("write token slot: %w", err)
	}
	if err := os.Chmod(s.path, 0o600); err != nil {
		return fmt.Errorf("chmod token slot: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token slot: %w", err)
	}
	return nil
}

// MemTokenStore keeps the slot in memory. Used by tests and callers that
// want a session scoped to the process lifetime.
type MemTokenStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

var _ TokenStore = (*MemTokenStore)(nil)

func NewMemTokenStore() *MemTokenStore {
	return &MemTokenStore{}
}

func (s *MemTokenStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set || s.token == "" {
		return "", ErrTokenNotFound
	}
	return s.token, nil
}

func (s *MemTokenStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
	return nil
}

func (s *MemTokenStore) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
	return nil
}
