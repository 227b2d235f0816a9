package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "style-browser.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	sink         io.Writer
)

type entry struct {
	Time    time.Time   `json:"time"`
	Level   string      `json:"level"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Error records an error entry. Errors are written whether or not tracing
// is enabled.
func Error(err error) {
	if err == nil {
		return
	}
	write(entry{Level: "error", Event: "error", Payload: map[string]interface{}{"error": err.Error()}})
}

// Errorf formats and records an error entry.
func Errorf(format string, args ...interface{}) {
	Error(fmt.Errorf(format, args...))
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace calls are recorded.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	write(entry{Level: "trace", Event: event, Payload: payload})
}

func write(e entry) {
	e.Time = time.Now().UTC()

	mu.Lock()
	defer mu.Unlock()

	out := sink
	if out == nil {
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
			return
		}
		defer f.Close()
		out = f
	}
	if err := json.NewEncoder(out).Encode(e); err != nil {
		fmt.Fprintf(os.Stderr, "log encoding failed: %v\n", err)
	}
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// SetOutput redirects entries to w instead of the log file. Passing nil
// restores file output. Tests use it to capture traces.
func SetOutput(w io.Writer) {
	mu.Lock()
	sink = w
	mu.Unlock()
}
