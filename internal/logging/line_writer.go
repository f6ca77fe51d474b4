package logging

import (
	"bytes"
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

// LineWriter is an io.Writer that prefixes every line with a sequence number
// and a timestamp before handing it to the target writer. It buffers partial
// writes until a newline arrives so a line is never split across prefixes.
type LineWriter struct {
	target io.Writer
	seq    atomic.Uint64
	buf    bytes.Buffer
}

func NewLineWriter(target io.Writer) *LineWriter {
	return &LineWriter{target: target}
}

func (w *LineWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)

	for {
		line, err := w.buf.ReadBytes('\n')
		if err != nil {
			// partial line, keep it buffered for the next write
			w.buf.Write(line)
			return len(p), nil
		}
		if err := w.writeLine(line); err != nil {
			return len(p), err
		}
	}
}

func (w *LineWriter) writeLine(line []byte) error {
	prefix := fmt.Sprintf("%s #%d ", time.Now().Format(time.RFC3339), w.seq.Add(1))
	if _, err := io.WriteString(w.target, prefix); err != nil {
		return err
	}
	_, err := w.target.Write(line)
	return err
}

// Flush writes any buffered partial line with a prefix and a trailing newline.
func (w *LineWriter) Flush() error {
	if w.buf.Len() == 0 {
		return nil
	}
	remaining := append(w.buf.Bytes(), '\n')
	w.buf.Reset()
	return w.writeLine(remaining)
}
