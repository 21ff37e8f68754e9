package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/model"
)

const (
	tokenFileName = "token"
	userFileName  = "user.json"
)

// FileStore persists the session as two files (token and user.json) in a
// directory, surviving process restarts. Files are created with 0600 and the
// directory with 0700.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates a file-backed store rooted at dir.
// The directory is created lazily on the first Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// DefaultDir returns the default session directory (~/.poehali),
// falling back to a relative path when the home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".poehali"
	}
	return filepath.Join(home, ".poehali")
}

// Ensure FileStore implements the interface
var _ Store = (*FileStore)(nil)

func (f *FileStore) Save(token string, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(f.dir, 0700); err != nil {
		return err
	}

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	if err := os.WriteFile(f.tokenPath(), []byte(token), 0600); err != nil {
		return err
	}
	return os.WriteFile(f.userPath(), data, 0600)
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clearLocked()
}

func (f *FileStore) clearLocked() error {
	if err := os.Remove(f.tokenPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(f.userPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *FileStore) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.tokenPath())
	if err != nil {
		return ""
	}
	return string(data)
}

// User returns the cached user snapshot, or nil when none is stored.
// A user record that fails to parse is treated as absent and the whole
// session is cleared, so a half-written store never yields a phantom login.
func (f *FileStore) User() *model.User {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.userPath())
	if err != nil {
		return nil
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		_ = f.clearLocked()
		return nil
	}
	return &user
}

func (f *FileStore) tokenPath() string {
	return filepath.Join(f.dir, tokenFileName)
}

func (f *FileStore) userPath() string {
	return filepath.Join(f.dir, userFileName)
}
