package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(home, ".docsight", "config.toml"), store.Path())

	// Cleanup
	_ = os.Remove(store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set(KeyServerURL, "http://backend:8000")
	require.NoError(t, err)

	val, ok := store.Get(KeyServerURL)
	assert.True(t, ok)
	assert.Equal(t, "http://backend:8000", val)
}

func TestConfigStore_GetString(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("string_key", "hello world"))
	assert.Equal(t, "hello world", store.GetString("string_key"))

	// Non-existent key
	assert.Equal(t, "", store.GetString("nonexistent"))

	// Wrong type
	require.NoError(t, store.Set("int_key", 42))
	assert.Equal(t, "", store.GetString("int_key"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyTopK, 8))
	assert.Equal(t, 8, store.GetInt(KeyTopK))

	// Non-existent key
	assert.Equal(t, 0, store.GetInt("nonexistent"))

	// Wrong type
	require.NoError(t, store.Set("string_key", "not an int"))
	assert.Equal(t, 0, store.GetInt("string_key"))
}

func TestConfigStore_GetInt_Int64Type(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	// TOML unmarshals integers as int64
	store.mu.Lock()
	store.data["int64_key"] = int64(9999)
	store.mu.Unlock()

	assert.Equal(t, 9999, store.GetInt("int64_key"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyHistoryEnabled, true))
	assert.True(t, store.GetBool(KeyHistoryEnabled))

	require.NoError(t, store.Set(KeyHistoryEnabled, false))
	assert.False(t, store.GetBool(KeyHistoryEnabled))

	// Non-existent key
	assert.False(t, store.GetBool("nonexistent"))

	// Wrong type
	require.NoError(t, store.Set("string_key", "true"))
	assert.False(t, store.GetBool("string_key"))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store1.Set(KeyServerURL, "http://backend:8000"))
	require.NoError(t, store1.Set(KeyTopK, 7))
	require.NoError(t, store1.Set(KeyHistoryEnabled, true))

	// A new store instance loads from the same file
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "http://backend:8000", store2.GetString(KeyServerURL))
	assert.Equal(t, 7, store2.GetInt(KeyTopK))
	assert.True(t, store2.GetBool(KeyHistoryEnabled))
}

func TestConfigStore_NestedKeysAreFlattened(t *testing.T) {
	tmpDir := t.TempDir()
	content := []byte("[server]\nurl = \"http://backend:8000\"\n\n[query]\ntop_k = 3\n")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), content, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "http://backend:8000", store.GetString(KeyServerURL))
	assert.Equal(t, 3, store.GetInt(KeyTopK))
}

func TestConfigStore_Load_NonExistent(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("test", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	corrupted := []byte("this is not valid TOML {{{[[")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), corrupted, 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_OverwriteValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("key", "original"))
	assert.Equal(t, "original", store.GetString("key"))

	require.NoError(t, store.Set("key", "updated"))
	assert.Equal(t, "updated", store.GetString("key"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
			_ = store.GetBool(key)
			_, _ = store.Get(key)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestConfigStore_Watch_ReloadsOnChange(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyTopK, 3))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads, err := store.Watch(ctx)
	require.NoError(t, err)

	// Simulate an external edit
	content := []byte("[query]\ntop_k = 9\n")
	require.NoError(t, os.WriteFile(store.Path(), content, 0600))

	select {
	case <-reloads:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a reload signal after the config file changed")
	}

	assert.Equal(t, 9, store.GetInt(KeyTopK))
}

func TestConfigStore_Watch_StopsOnCancel(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	reloads, err := store.Watch(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, open := <-reloads:
		assert.False(t, open, "reload channel must close after cancellation")
	case <-time.After(2 * time.Second):
		t.Fatal("expected the reload channel to close after cancellation")
	}
}
