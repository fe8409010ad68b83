// Package logger provides leveled logging for cmislogin.
// Debug, Info and Warn are printed to stderr only in verbose mode (--verbose);
// Error is always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
// Trailing key/value pairs are appended as key=value.
func Debug(msg string, kv ...any) {
	write(false, "DEBUG", msg, kv)
}

// Info prints an informational message if verbose mode is enabled.
func Info(msg string, kv ...any) {
	write(false, "INFO", msg, kv)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(msg string, kv ...any) {
	write(false, "WARN", msg, kv)
}

// Error prints an error message regardless of verbose mode.
func Error(msg string, kv ...any) {
	write(true, "ERROR", msg, kv)
}

func write(always bool, level, msg string, kv []any) {
	mu.RLock()
	defer mu.RUnlock()
	if !always && !verbose {
		return
	}
	fmt.Fprintf(output, "[%s] %s%s\n", level, msg, fields(kv))
}

func fields(kv []any) string {
	if len(kv) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(kv); i += 2 {
		if i+1 < len(kv) {
			fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
		} else {
			fmt.Fprintf(&b, " %v", kv[i])
		}
	}
	return b.String()
}
