package session

import (
	"sync"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/model"
)

// Memory is an in-memory session store. Useful for tests and for embedding the
// client SDK in processes that should not touch the filesystem.
type Memory struct {
	mu    sync.RWMutex
	token string
	user  *model.User
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{}
}

// Ensure Memory implements the interface
var _ Store = (*Memory)(nil)

func (m *Memory) Save(token string, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	u := *user
	m.user = &u
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = nil
	return nil
}

func (m *Memory) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Memory) User() *model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}
