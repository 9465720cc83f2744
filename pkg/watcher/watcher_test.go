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

func TestHandleFileChangeDebounces(t *testing.T) {
	fw, err := NewFileWatcher(30*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	path := filepath.Join(t.TempDir(), "model.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\n"), 0o644))

	var calls atomic.Int32
	done := make(chan string, 4)
	require.NoError(t, fw.Watch([]string{path}, func(changed string) {
		calls.Add(1)
		done <- changed
	}))

	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		fw.handleFileChange(abs)
	}

	select {
	case changed := <-done:
		assert.Equal(t, abs, changed)
	case <-time.After(2 * time.Second):
		t.Fatal("callback not called")
	}

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHandleFileChangeIgnoresUnknownFiles(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	fw.handleFileChange("/not/watched.obj")
	assert.Empty(t, fw.timers)
}

func TestWatchMissingFile(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	err = fw.Watch([]string{filepath.Join(t.TempDir(), "missing.obj")}, func(string) {})
	assert.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- fw.Run(ctx) }()

	cancel()
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestSetFilesReplacesWatchList(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	dir := t.TempDir()
	mainFile := filepath.Join(dir, "main.scad")
	lib := filepath.Join(dir, "lib.scad")
	parts := filepath.Join(dir, "parts.scad")
	for _, f := range []string{mainFile, lib, parts} {
		require.NoError(t, os.WriteFile(f, []byte("cube(1);\n"), 0o644))
	}
	abs := func(p string) string {
		a, err := filepath.Abs(p)
		require.NoError(t, err)
		return a
	}

	require.NoError(t, fw.Watch([]string{mainFile, lib}, func(string) {}))
	assert.Equal(t, []string{abs(lib), abs(mainFile)}, fw.Files())

	require.NoError(t, fw.SetFiles([]string{mainFile, parts}, func(string) {}))
	assert.Equal(t, []string{abs(mainFile), abs(parts)}, fw.Files())

	fw.handleFileChange(abs(lib))
	assert.Empty(t, fw.timers)
}
