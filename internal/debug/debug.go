// Package debug is the diagnostic channel for giveaway.
//
// Logging is enabled by setting GIVEAWAY_DEBUG, or programmatically with
// SetOutput (the TUI points it at a log file so the alt screen stays clean).
// When disabled, every call is a no-op.
package debug

import (
	"io"
	"log"
	"os"
	"sync"
)

const prefix = "[giveaway] "

var (
	mu      sync.Mutex
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv("GIVEAWAY_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, prefix, log.Ltime|log.Lmicroseconds)
	}
}

// Enabled returns whether diagnostics are being written.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetOutput redirects diagnostics to w and enables them. A nil writer disables logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		enabled = false
		logger = nil
		return
	}
	enabled = true
	logger = log.New(w, prefix, log.Ltime|log.Lmicroseconds)
}

// Log writes a printf-style diagnostic line.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}
