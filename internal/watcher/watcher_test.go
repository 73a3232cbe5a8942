package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherFiresForWatchedFileOnly(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.yml")
	require.NoError(t, os.WriteFile(seedPath, []byte("tasks: []\n"), 0o600))

	var calls atomic.Int32
	fired := make(chan struct{}, 10)
	w, err := New([]string{seedPath}, func() {
		calls.Add(1)
		fired <- struct{}{}
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, nil)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600))
	time.Sleep(3 * DebounceDelay)
	assert.Equal(t, int32(0), calls.Load())

	for range 3 {
		require.NoError(t, os.WriteFile(seedPath, []byte("tasks: []\n"), 0o600))
	}
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("callback not invoked")
	}
	time.Sleep(3 * DebounceDelay)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewFailsForMissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing", "seed.yml")}, func() {})
	assert.Error(t, err)
}
