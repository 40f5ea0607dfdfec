package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/3-lines-studio/plusfiles/internal/core"
	"github.com/fsnotify/fsnotify"
)

type Notifier interface {
	Notify()
}

var skipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	core.DistDir:   {},
}

func ShouldSkipDir(name string) bool {
	_, exists := skipDirs[name]
	return exists
}

// Watcher signals notifier whenever a plus file under root changes.
type Watcher struct {
	root     string
	notifier Notifier
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
	done     chan struct{}
	stopOnce sync.Once
}

func New(root string, notifier Notifier, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		root:     root,
		notifier: notifier,
		logger:   logger,
		watcher:  fw,
		done:     make(chan struct{}),
	}

	if err := w.watchDirs(root); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// Run processes events until ctx is cancelled or Close is called.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			_ = w.Close()
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// Done is closed once Run has returned.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) handle(event fsnotify.Event) {
	if shouldAddWatchDir(event) {
		if err := w.watchDirs(event.Name); err != nil {
			w.logger.Warn("watch new directory", "path", event.Name, "error", err)
		}
		return
	}

	if !isWatchEvent(event.Op) {
		return
	}

	name := filepath.ToSlash(event.Name)
	if !core.IsPlusFile(name) {
		w.logger.Debug("ignoring change", "path", name)
		return
	}

	w.logger.Info("plus file changed, reloading", "path", name, "op", event.Op.String())
	w.notifier.Notify()
}

func (w *Watcher) watchDirs(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("watch path", "path", path, "error", err)
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		if path != root && ShouldSkipDir(d.Name()) {
			return filepath.SkipDir
		}

		return w.watcher.Add(path)
	})
}

func isWatchEvent(op fsnotify.Op) bool {
	return op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

func shouldAddWatchDir(event fsnotify.Event) bool {
	if event.Op&fsnotify.Create == 0 {
		return false
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return false
	}

	return info.IsDir() && !ShouldSkipDir(info.Name())
}
