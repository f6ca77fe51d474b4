package sync

import (
	"log/slog"

	"github.com/rjeczalik/notify"
)

// FileWatcher watches the source tree recursively and surfaces change
// events so the manager can schedule an extra cycle between ticks.
type FileWatcher struct {
	watchDir string
	events   chan notify.EventInfo
}

func NewFileWatcher(watchDir string) *FileWatcher {
	return &FileWatcher{
		watchDir: watchDir,
		events:   make(chan notify.EventInfo, 16),
	}
}

func (fw *FileWatcher) Start() error {
	slog.Info("file watcher start", "dir", fw.watchDir)

	recursivePath := fw.watchDir + "/..."
	return notify.Watch(recursivePath, fw.events, notify.Create, notify.Write, notify.Remove, notify.Rename)
}

func (fw *FileWatcher) Stop() {
	notify.Stop(fw.events)
	close(fw.events)
	slog.Info("file watcher stop")
}

func (fw *FileWatcher) Events() <-chan notify.EventInfo {
	return fw.events
}
