package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// reloadDebounce coalesces the burst of events editors emit on save
const reloadDebounce = 50 * time.Millisecond

// Watch reloads path whenever it changes and passes the result to fn until ctx is done
// The parent directory is watched so atomic rename-on-save is observed
// fn runs on the watcher goroutine; a failed reload reports the error and keeps watching
func Watch(ctx context.Context, path string, fn func(Config, error)) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("expand %q: %w", path, err)
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(reloadDebounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fn(Config{}, fmt.Errorf("watch %s: %w", path, err))

		case <-timer.C:
			cfg, err := Load(path)
			fn(cfg, err)
		}
	}
}
