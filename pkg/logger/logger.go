// Package logger holds the process-wide zerolog logger.
//
// Call Init once from main; services receive a Component logger through
// their constructors and never reach for the global themselves.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Options configures Init.
type Options struct {
	Level   string    // trace, debug, info, warn, error or off; anything else is info
	Pretty  bool      // console output for local development
	Output  io.Writer // os.Stdout when nil
	Service string    // stamped on every line as "service"
}

var (
	mu      sync.Mutex
	current atomic.Pointer[zerolog.Logger]
)

// Init builds the process logger. Later calls return the logger built by the
// first one until Reset is called.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if l := current.Load(); l != nil {
		return *l
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	zc := zerolog.New(out).Level(lvl).With().Timestamp().Caller()
	if opts.Service != "" {
		zc = zc.Str("service", opts.Service)
	}
	l := zc.Logger()
	current.Store(&l)
	return l
}

// Get returns the process logger and panics when Init has not run.
func Get() zerolog.Logger {
	l := current.Load()
	if l == nil {
		panic("logger: Get called before Init")
	}
	return *l
}

// Component returns the process logger tagged with "component".
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// Reset clears the process logger. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current.Store(nil)
}

func parseLevel(s string) zerolog.Level {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case "warning":
		return zerolog.WarnLevel
	case "off":
		return zerolog.Disabled
	case "", "panic", "fatal", "nolevel":
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
