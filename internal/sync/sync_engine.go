package sync

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Ricardoipr/foldersynch/internal/utils"
)

var (
	ErrSourceNotFound     = errors.New("source directory does not exist")
	ErrSyncAlreadyRunning = errors.New("sync already running")
)

// Stats summarizes a single synchronization cycle.
type Stats struct {
	DirsCreated  int
	FilesCopied  int
	BytesCopied  int64
	FilesDeleted int
	DirsDeleted  int
	Unchanged    int
	Took         time.Duration
}

// Changed reports whether the cycle mutated the replica at all.
func (s *Stats) Changed() bool {
	return s.DirsCreated > 0 || s.FilesCopied > 0 || s.FilesDeleted > 0 || s.DirsDeleted > 0
}

// Engine mirrors a replica directory tree from a source directory tree.
// Each cycle is a full traversal: a propagate pass that copies new and
// changed entries top-down, then an independent prune pass that removes
// replica entries absent from the source. Nothing is cached between cycles;
// the filesystem itself is the only state.
type Engine struct {
	sourceDir  string
	replicaDir string
	recorder   Recorder
	muSync     sync.Mutex
}

func NewEngine(sourceDir, replicaDir string, recorder Recorder) (*Engine, error) {
	src, err := utils.ResolvePath(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("resolve source path: %w", err)
	}

	dst, err := utils.ResolvePath(replicaDir)
	if err != nil {
		return nil, fmt.Errorf("resolve replica path: %w", err)
	}

	if recorder == nil {
		recorder = SlogRecorder{}
	}

	return &Engine{
		sourceDir:  src,
		replicaDir: dst,
		recorder:   recorder,
	}, nil
}

func (e *Engine) SourceDir() string {
	return e.sourceDir
}

func (e *Engine) ReplicaDir() string {
	return e.replicaDir
}

// Initialize validates the source root and ensures the replica root exists,
// creating any missing parent segments. Call once before the first
// Synchronize; it is safe to call again.
func (e *Engine) Initialize() error {
	if !utils.DirExists(e.sourceDir) {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, e.sourceDir)
	}

	if !utils.DirExists(e.replicaDir) {
		if err := os.MkdirAll(e.replicaDir, 0o755); err != nil {
			return fmt.Errorf("create replica root %s: %w", e.replicaDir, err)
		}
		e.recorder.Record(OpCreatedDirectory, e.replicaDir)
	}

	return nil
}

// Synchronize runs one full cycle: propagate then prune. Filesystem errors
// abort the cycle and propagate to the caller; the next cycle corrects
// whatever the failed one left behind.
func (e *Engine) Synchronize() (*Stats, error) {
	if !e.muSync.TryLock() {
		return nil, ErrSyncAlreadyRunning
	}
	defer e.muSync.Unlock()

	tstart := time.Now()
	stats := &Stats{}

	if err := e.propagate(e.sourceDir, e.replicaDir, stats); err != nil {
		return nil, err
	}
	if err := e.prune(e.sourceDir, e.replicaDir, stats); err != nil {
		return nil, err
	}

	stats.Took = time.Since(tstart)
	return stats, nil
}

// propagate copies srcDir's contents into dstDir, depth-first. Files in a
// directory are handled before recursing into its subdirectories. os.ReadDir
// returns entries sorted by name, so sibling order is deterministic.
func (e *Engine) propagate(srcDir, dstDir string, stats *Stats) error {
	if !utils.DirExists(dstDir) {
		if err := os.MkdirAll(dstDir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dstDir, err)
		}
		e.recorder.Record(OpCreatedDirectory, dstDir)
		stats.DirsCreated++
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return fmt.Errorf("read source directory %s: %w", srcDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || skipEntry(entry, filepath.Join(srcDir, entry.Name())) {
			continue
		}

		srcPath := filepath.Join(srcDir, entry.Name())
		dstPath := filepath.Join(dstDir, entry.Name())

		// a directory shadowing the file in the replica must go first
		if utils.DirExists(dstPath) {
			if err := os.RemoveAll(dstPath); err != nil {
				return fmt.Errorf("delete directory %s: %w", dstPath, err)
			}
			e.recorder.Record(OpDeletedDirectory, dstPath)
			stats.DirsDeleted++
		}

		decision, err := Decide(srcPath, dstPath)
		if err != nil {
			return err
		}
		if !decision.ShouldCopy {
			stats.Unchanged++
			continue
		}

		size, err := copyFile(srcPath, dstPath)
		if err != nil {
			return fmt.Errorf("copy %s to %s: %w", srcPath, dstPath, err)
		}
		e.recorder.RecordCopy(dstPath, decision.Reason, size)
		stats.FilesCopied++
		stats.BytesCopied += size
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		srcPath := filepath.Join(srcDir, entry.Name())
		dstPath := filepath.Join(dstDir, entry.Name())

		// a file shadowing the directory in the replica must go first
		if utils.FileExists(dstPath) {
			if err := os.Remove(dstPath); err != nil {
				return fmt.Errorf("delete %s: %w", dstPath, err)
			}
			e.recorder.Record(OpDeleted, dstPath)
			stats.FilesDeleted++
		}

		if err := e.propagate(srcPath, dstPath, stats); err != nil {
			return err
		}
	}

	return nil
}

// prune removes dstDir entries that have no counterpart in srcDir. An absent
// replica directory means there is nothing to prune at this level.
func (e *Engine) prune(srcDir, dstDir string, stats *Stats) error {
	if !utils.DirExists(dstDir) {
		return nil
	}

	entries, err := os.ReadDir(dstDir)
	if err != nil {
		return fmt.Errorf("read replica directory %s: %w", dstDir, err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(srcDir, entry.Name())
		dstPath := filepath.Join(dstDir, entry.Name())

		if entry.IsDir() {
			if utils.DirExists(srcPath) {
				if err := e.prune(srcPath, dstPath, stats); err != nil {
					return err
				}
				continue
			}
			if err := os.RemoveAll(dstPath); err != nil {
				return fmt.Errorf("delete directory %s: %w", dstPath, err)
			}
			e.recorder.Record(OpDeletedDirectory, dstPath)
			stats.DirsDeleted++
			continue
		}

		if utils.FileExists(srcPath) {
			continue
		}
		if err := os.Remove(dstPath); err != nil {
			return fmt.Errorf("delete %s: %w", dstPath, err)
		}
		e.recorder.Record(OpDeleted, dstPath)
		stats.FilesDeleted++
	}

	return nil
}

// skipEntry filters out entries the engine never follows. Symlinks are
// skipped outright so a link pointing back into an ancestor cannot turn the
// traversal into a cycle.
func skipEntry(entry fs.DirEntry, path string) bool {
	if entry.Type()&fs.ModeSymlink != 0 {
		slog.Warn("skipping symlink", "path", path)
		return true
	}
	if !entry.Type().IsRegular() {
		slog.Warn("skipping irregular file", "path", path, "mode", entry.Type())
		return true
	}
	return false
}
