package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
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

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.SetMany(map[string]any{
		"google.client_id":            "cid",
		"google.redirect_port":        8085,
		"publish.requests_per_second": 0.5,
		"storage.history":             true,
	}))

	assert.Equal(t, "cid", store.GetString("google.client_id"))
	assert.Equal(t, 8085, store.GetInt("google.redirect_port"))
	assert.Equal(t, 0.5, store.GetFloat("publish.requests_per_second"))
	assert.Equal(t, float64(8085), store.GetFloat("google.redirect_port"))
	assert.True(t, store.GetBool("storage.history"))

	// Wrong types and missing keys read as zero values.
	assert.Equal(t, "", store.GetString("google.redirect_port"))
	assert.Equal(t, 0, store.GetInt("google.client_id"))
	assert.Equal(t, 0.0, store.GetFloat("storage.history"))
	assert.False(t, store.GetBool("missing"))

	val, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()
	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store1.Set("google.client_id", "cid"))
	require.NoError(t, store1.Set("schedule.timezone", "Europe/Berlin"))
	require.NoError(t, store1.Set("publish.burst", 3))
	require.NoError(t, store1.Set("publish.requests_per_second", 1.5))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "cid", store2.GetString("google.client_id"))
	assert.Equal(t, "Europe/Berlin", store2.GetString("schedule.timezone"))
	assert.Equal(t, 3, store2.GetInt("publish.burst"))
	assert.Equal(t, 1.5, store2.GetFloat("publish.requests_per_second"))
}

func TestConfigStore_WritesTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.SetMany(map[string]any{
		"google.client_id":  "cid",
		"defaults.sheet_id": "sheet",
	}))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[google]")
	assert.Contains(t, string(data), "[defaults]")
	assert.NotContains(t, string(data), "google.client_id")
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := []byte(`
[google]
client_id = "hand-written"
redirect_port = 9000

[publish]
requests_per_second = 2
`)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), content, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "hand-written", store.GetString("google.client_id"))
	assert.Equal(t, 9000, store.GetInt("google.redirect_port"))
	assert.Equal(t, 2.0, store.GetFloat("publish.requests_per_second"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("account.refresh_token", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Save_WriteError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("test", "value"))

	// Replace the file with a directory so the rename fails.
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("another", "value"))
}

func TestConfigStore_IsConfigChange(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	other := filepath.Join(filepath.Dir(store.Path()), "notes.txt")

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: store.Path(), Op: fsnotify.Write}, true},
		{"create from rename", fsnotify.Event{Name: store.Path(), Op: fsnotify.Create}, true},
		{"chmod", fsnotify.Event{Name: store.Path(), Op: fsnotify.Chmod}, false},
		{"remove", fsnotify.Event{Name: store.Path(), Op: fsnotify.Remove}, false},
		{"other file", fsnotify.Event{Name: other, Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.isConfigChange(tt.event))
		})
	}
}

func TestConfigStore_Watch_ReloadsOnChange(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("schedule.timezone", "UTC"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx, func() { changed <- struct{}{} })
	}()

	// Another process edits the file.
	writer, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		_ = writer.Set("schedule.timezone", "Asia/Tokyo")
		select {
		case <-changed:
			return store.GetString("schedule.timezone") == "Asia/Tokyo"
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
