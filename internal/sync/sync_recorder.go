package sync

import (
	"log/slog"

	"github.com/dustin/go-humanize"
)

// Recorder receives one record per mutating filesystem action. The engine
// takes it by injection so tests can substitute an in-memory implementation.
type Recorder interface {
	Record(op Operation, path string)
	RecordCopy(path string, reason CopyReason, size int64)
}

// SlogRecorder writes operation records through the default slog logger,
// which fans out to the console and the durable log file.
type SlogRecorder struct{}

func (SlogRecorder) Record(op Operation, path string) {
	slog.Info("sync", "op", op, "path", path)
}

func (SlogRecorder) RecordCopy(path string, reason CopyReason, size int64) {
	slog.Info("sync", "op", OpCopied, "reason", reason, "path", path, "size", humanize.Bytes(uint64(size)))
}
