// Package watcher reports changes to model files with per-file debouncing.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/philipparndt/robomap/internal/logging"
)

// FileWatcher calls a callback once a watched file has stopped changing
// for the debounce interval
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *logging.Logger
	debounce time.Duration

	mu        sync.Mutex
	callbacks map[string]func(string)
	timers    map[string]*time.Timer
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(debounce time.Duration, logger *logging.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logger == nil {
		logger = logging.Nop()
	}

	return &FileWatcher{
		watcher:   w,
		logger:    logger,
		debounce:  debounce,
		callbacks: make(map[string]func(string)),
		timers:    make(map[string]*time.Timer),
	}, nil
}

// Watch registers callback for every file in files
func (fw *FileWatcher) Watch(files []string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		if err := fw.watcher.Add(absPath); err != nil {
			return fmt.Errorf("failed to watch %s: %w", absPath, err)
		}
		fw.callbacks[absPath] = callback
	}

	return nil
}

// SetFiles makes files the complete watch list: new files are added with
// callback and files no longer listed are dropped
func (fw *FileWatcher) SetFiles(files []string, callback func(string)) error {
	wanted := make(map[string]bool, len(files))
	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		wanted[absPath] = true
	}

	fw.mu.Lock()
	for path := range fw.callbacks {
		if wanted[path] {
			continue
		}
		_ = fw.watcher.Remove(path)
		delete(fw.callbacks, path)
		if timer, ok := fw.timers[path]; ok {
			timer.Stop()
			delete(fw.timers, path)
		}
	}
	fw.mu.Unlock()

	return fw.Watch(files, callback)
}

// Files returns the watched absolute paths in sorted order
func (fw *FileWatcher) Files() []string {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	files := make([]string, 0, len(fw.callbacks))
	for path := range fw.callbacks {
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

// Run dispatches events until ctx is done or the watcher is closed
func (fw *FileWatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			fw.stopTimers()
			return ctx.Err()

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fw.handleFileChange(event.Name)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.logger.WarnContext(ctx, "watcher error", "error", err)
		}
	}
}

// handleFileChange restarts the debounce timer of filePath
func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	callback, ok := fw.callbacks[filePath]
	if !ok {
		return
	}

	if timer, ok := fw.timers[filePath]; ok {
		timer.Stop()
	}
	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		callback(filePath)
	})
}

func (fw *FileWatcher) stopTimers() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for path, timer := range fw.timers {
		timer.Stop()
		delete(fw.timers, path)
	}
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	fw.stopTimers()
	return fw.watcher.Close()
}
