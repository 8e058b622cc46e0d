package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "blendboard.log"

// sink serialises writes to the shared log file.
type sink struct {
	mu    sync.Mutex
	path  string
	trace bool
}

var shared = &sink{path: defaultLogFile}

func (s *sink) append(write func(w io.Writer) error) {
	s.mu.Lock()
	path := s.path
	s.mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()
	if err := write(f); err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
	}
}

// Error appends err to the log file with a timestamp prefix.
func Error(err error) {
	if err == nil {
		return
	}
	shared.append(func(w io.Writer) error {
		logger := log.New(w, "", log.LstdFlags)
		logger.Println(err)
		return nil
	})
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	shared.mu.Lock()
	shared.trace = enabled
	shared.mu.Unlock()
}

// TraceEnabled reports whether Trace writes entries.
func TraceEnabled() bool {
	shared.mu.Lock()
	defer shared.mu.Unlock()
	return shared.trace
}

// Trace appends a JSON line {time, event, payload} when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	entry := struct {
		Time    time.Time   `json:"time"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}
	shared.append(func(w io.Writer) error {
		return json.NewEncoder(w).Encode(entry)
	})
}

// Configure sets the log destination. Empty values fall back to the default
// path. Missing directories are created.
func Configure(path string) {
	shared.mu.Lock()
	defer shared.mu.Unlock()
	if strings.TrimSpace(path) == "" {
		shared.path = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		shared.path = defaultLogFile
		return
	}
	shared.path = path
}

// Path returns the active log destination.
func Path() string {
	shared.mu.Lock()
	defer shared.mu.Unlock()
	return shared.path
}
