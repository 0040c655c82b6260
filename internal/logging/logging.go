package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const defaultLogFile = "webtop.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	sink         = &lazyFile{path: defaultLogFile}
	logger       = newLogger(sink, false)
)

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	current().Error().Err(err).Send()
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	traceEnabled = enabled
	logger = newLogger(sink, traceEnabled)
}

// TraceEnabled reports whether trace entries are currently emitted.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	evt := current().Trace()
	if evt == nil {
		return
	}
	if payload != nil {
		evt = evt.Interface("payload", payload)
	}
	evt.Str("event", event).Send()
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	target := strings.TrimSpace(path)
	if target == "" {
		target = defaultLogFile
	} else if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		target = defaultLogFile
	}
	sink.close()
	sink = &lazyFile{path: target}
	logger = newLogger(sink, traceEnabled)
}

// SetOutput redirects log output to w, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	sink.close()
	sink = &lazyFile{w: w}
	logger = newLogger(sink, traceEnabled)
}

func current() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	l := logger
	return &l
}

func newLogger(w io.Writer, trace bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if trace {
		level = zerolog.TraceLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// lazyFile opens its path on first write so that an idle program never
// creates a log file.
type lazyFile struct {
	mu   sync.Mutex
	path string
	w    io.Writer
	f    *os.File
}

func (l *lazyFile) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.w == nil {
		f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
			return len(p), nil
		}
		l.f = f
		l.w = f
	}
	return l.w.Write(p)
}

func (l *lazyFile) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f != nil {
		_ = l.f.Close()
		l.f = nil
		l.w = nil
	}
}
