// Package logging wires the process-wide slog logger: a colored console
// handler plus an append-only, timestamped log file. File logging is best
// effort; losing the file never silences the console or fails an operation.
package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ricardoipr/foldersynch/internal/utils"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

const DefaultLogFileName = "foldersynch.log"

// ResolveLogPath maps a user-supplied log destination to a concrete file
// path. A destination that is an existing directory, or ends with a path
// separator, gets DefaultLogFileName inside it.
func ResolveLogPath(dest string) (string, error) {
	path, err := utils.ResolvePath(dest)
	if err != nil {
		return "", err
	}

	if utils.DirExists(path) || strings.HasSuffix(dest, string(filepath.Separator)) {
		path = filepath.Join(path, DefaultLogFileName)
	}

	return path, nil
}

// Setup installs the default slog logger writing to stdout and appending to
// the log file at dest. If the file cannot be opened, logging degrades to
// console-only with a warning. The returned func closes the log file.
func Setup(dest string) func() {
	stdoutHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    !isatty.IsTerminal(os.Stdout.Fd()),
	})

	file, openErr := openLogFile(dest)

	handlers := []slog.Handler{stdoutHandler}
	var lineWriter *LineWriter
	if file != nil {
		lineWriter = NewLineWriter(file)
		fileHandler := slog.NewTextHandler(lineWriter, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			// Drop the time attribute, the line writer prefixes its own.
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey && len(groups) == 0 {
					return slog.Attr{}
				}
				return a
			},
		})
		handlers = append(handlers, fileHandler)
	}

	slog.SetDefault(slog.New(NewMultiHandler(handlers...)))

	if openErr != nil {
		slog.Warn("log file disabled, console only", "dest", dest, "error", openErr)
	}

	return func() {
		if file != nil {
			lineWriter.Flush()
			file.Close()
		}
	}
}

func openLogFile(dest string) (*os.File, error) {
	logPath, err := ResolveLogPath(dest)
	if err != nil {
		return nil, err
	}

	if err := utils.EnsureParent(logPath); err != nil {
		return nil, err
	}

	return os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
