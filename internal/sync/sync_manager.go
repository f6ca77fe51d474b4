package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rjeczalik/notify"
)

// watchDebounce coalesces bursts of watcher events into a single extra cycle.
const watchDebounce = 500 * time.Millisecond

type ManagerOptions struct {
	// Interval between scheduled cycles.
	Interval time.Duration
	// Cooldown before retrying after a failed cycle. Clamped below Interval.
	Cooldown time.Duration
	// Watch triggers an extra cycle when the source tree changes.
	Watch bool
}

// Manager owns the periodic loop around the engine. The engine itself never
// retries; the manager logs a failed cycle, waits out the cooldown and tries
// again, forever. A long-running mirror prefers availability over fail-fast.
type Manager struct {
	engine   *Engine
	watcher  *FileWatcher
	interval time.Duration
	cooldown time.Duration
}

func NewManager(engine *Engine, opts ManagerOptions) (*Manager, error) {
	if opts.Interval <= 0 {
		return nil, errors.New("sync interval must be positive")
	}

	cooldown := opts.Cooldown
	if cooldown <= 0 || cooldown >= opts.Interval {
		cooldown = opts.Interval / 2
	}

	var watcher *FileWatcher
	if opts.Watch {
		watcher = NewFileWatcher(engine.SourceDir())
	}

	return &Manager{
		engine:   engine,
		watcher:  watcher,
		interval: opts.Interval,
		cooldown: cooldown,
	}, nil
}

// Start initializes the engine and blocks running cycles until ctx is
// cancelled. An Initialize failure is returned as-is and is fatal; cycle
// failures are logged and retried after the cooldown.
func (m *Manager) Start(ctx context.Context) error {
	if err := m.engine.Initialize(); err != nil {
		return err
	}

	slog.Info("sync start",
		"source", m.engine.SourceDir(),
		"replica", m.engine.ReplicaDir(),
		"interval", m.interval,
	)

	slog.Info("running initial sync")
	next := m.runCycle()

	var watchEvents <-chan notify.EventInfo
	if m.watcher != nil {
		if err := m.watcher.Start(); err != nil {
			return fmt.Errorf("start file watcher: %w", err)
		}
		defer m.watcher.Stop()
		watchEvents = m.watcher.Events()
	}

	// using a timer and not a ticker to avoid queued ticks when a cycle
	// takes longer than the interval to complete
	timer := time.NewTimer(next)
	defer timer.Stop()

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("sync stop")
			return ctx.Err()

		case <-timer.C:
			timer.Reset(m.runCycle())

		case _, ok := <-watchEvents:
			if !ok {
				watchEvents = nil
				continue
			}
			debounce.Reset(watchDebounce)

		case <-debounce.C:
			timer.Reset(m.runCycle())
		}
	}
}

// runCycle runs one Synchronize and returns the delay before the next one.
func (m *Manager) runCycle() time.Duration {
	stats, err := m.engine.Synchronize()
	if err != nil {
		slog.Error("sync cycle failed", "error", err, "retry_in", m.cooldown)
		return m.cooldown
	}

	if stats.Changed() {
		slog.Info("sync cycle", "took", stats.Took,
			"dirs_created", stats.DirsCreated,
			"copied", stats.FilesCopied,
			"bytes", humanize.Bytes(uint64(stats.BytesCopied)),
			"deleted", stats.FilesDeleted,
			"dirs_deleted", stats.DirsDeleted,
			"unchanged", stats.Unchanged,
		)
	}

	return m.interval
}
