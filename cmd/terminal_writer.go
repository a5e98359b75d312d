package cmd

import (
	"io"
	"sync"
)

const clearLine = "\r\x1b[K"

// terminalWriter shares one terminal stream between the spinner and the logger.
// Writes are serialized, and every log record first clears the spinner's line so the
// next frame is drawn below the record.
type terminalWriter struct {
	mu  sync.Mutex
	out io.Writer
}

func newTerminalWriter(out io.Writer) *terminalWriter {
	return &terminalWriter{out: out}
}

// Write emits one log record.
func (w *terminalWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := io.WriteString(w.out, clearLine); err != nil {
		return 0, err
	}
	return w.out.Write(p)
}

// Frames returns the writer the spinner draws through.
func (w *terminalWriter) Frames() io.Writer {
	return frameWriter{w}
}

type frameWriter struct {
	w *terminalWriter
}

func (f frameWriter) Write(p []byte) (int, error) {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	return f.w.out.Write(p)
}
