package testutil

import (
	"bytes"
	"io"
	"sync"

	"github.com/dtroode/expense-auth/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0)
}

// LogBuffer is a goroutine-safe sink for asserting on log output.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// MakeBufferLogger returns a debug-level logger and the buffer it writes to.
func MakeBufferLogger() (*logger.Logger, *LogBuffer) {
	buf := &LogBuffer{}
	return logger.NewWithWriter(buf, -4), buf
}
