package vault

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

func TestNewWatcher(t *testing.T) {
	t.Run("empty root", func(t *testing.T) {
		_, err := NewWatcher("")
		assert.Error(t, err)
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})

	t.Run("close twice", func(t *testing.T) {
		w, err := NewWatcher(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, w.Close())
		assert.NoError(t, w.Close())
	})
}

func TestWatcher_Run(t *testing.T) {
	root := t.TempDir()
	v := newTestVault(t, root)

	w, err := v.Watch()
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(rel string) { changes <- rel })
	}()

	require.NoError(t, os.WriteFile(filepath.Join(root, "ignored.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Box.md"), []byte("# Box"), 0644))

	select {
	case rel := <-changes:
		assert.Equal(t, "Box.md", rel)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_RelevantPath(t *testing.T) {
	root := t.TempDir()
	w, err := NewWatcher(root)
	require.NoError(t, err)
	defer w.Close()

	abs, err := filepath.Abs(root)
	require.NoError(t, err)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  string
		ok    bool
	}{
		{"write note", fsnotify.Event{Name: filepath.Join(abs, "a", "Note.md"), Op: fsnotify.Write}, "a/Note.md", true},
		{"remove note", fsnotify.Event{Name: filepath.Join(abs, "Note.MD"), Op: fsnotify.Remove}, "Note.MD", true},
		{"chmod ignored", fsnotify.Event{Name: filepath.Join(abs, "Note.md"), Op: fsnotify.Chmod}, "", false},
		{"other extension", fsnotify.Event{Name: filepath.Join(abs, "Note.txt"), Op: fsnotify.Write}, "", false},
		{"ignored folder", fsnotify.Event{Name: filepath.Join(abs, ".obsidian", "x.md"), Op: fsnotify.Write}, "", false},
		{"outside vault", fsnotify.Event{Name: filepath.Join(filepath.Dir(abs), "x.md"), Op: fsnotify.Write}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel, ok := w.relevantPath(tt.event)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, rel)
		})
	}
}
