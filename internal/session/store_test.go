package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:       1,
		Email:    "a@x.com",
		Username: "a",
		Energy:   100,
	}
}

// Shared contract tests run against every Store implementation

func stores(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"memory": NewMemory(),
		"file":   NewFileStore(t.TempDir()),
	}
}

func TestEmptyStoreReadsAsAbsent(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, store.Token())
			assert.Nil(t, store.User())
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save("t1", testUser()))

			assert.Equal(t, "t1", store.Token())
			user := store.User()
			require.NotNil(t, user)
			assert.Equal(t, int64(1), user.ID)
			assert.Equal(t, 100, user.Energy)
		})
	}
}

func TestSaveOverwritesPriorSession(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save("t1", testUser()))

			other := testUser()
			other.ID = 2
			other.Username = "b"
			require.NoError(t, store.Save("t2", other))

			assert.Equal(t, "t2", store.Token())
			assert.Equal(t, int64(2), store.User().ID)
		})
	}
}

func TestClearIsIdempotent(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save("t1", testUser()))

			require.NoError(t, store.Clear())
			assert.Empty(t, store.Token())
			assert.Nil(t, store.User())

			// Clearing an already-empty store must also succeed
			require.NoError(t, store.Clear())
			assert.Empty(t, store.Token())
			assert.Nil(t, store.User())
		})
	}
}

// File store specifics

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	store := NewFileStore(dir)
	require.NoError(t, store.Save("t1", testUser()))

	reopened := NewFileStore(dir)
	assert.Equal(t, "t1", reopened.Token())
	require.NotNil(t, reopened.User())
	assert.Equal(t, "a", reopened.User().Username)
}

func TestFileStoreCorruptUserTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()

	store := NewFileStore(dir)
	require.NoError(t, store.Save("t1", testUser()))

	// Corrupt the stored user record
	require.NoError(t, os.WriteFile(filepath.Join(dir, userFileName), []byte("{not json"), 0600))

	assert.Nil(t, store.User())

	// The corrupt session must have been cleared entirely
	assert.Empty(t, store.Token())
	_, err := os.Stat(filepath.Join(dir, userFileName))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStorePermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	store := NewFileStore(dir)
	require.NoError(t, store.Save("t1", testUser()))

	info, err := os.Stat(filepath.Join(dir, tokenFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
