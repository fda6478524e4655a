package geovu

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Logger is the diagnostic sink used throughout geovu for the
// warn-and-continue conditions documented in spec §7: duplicate feature
// ids, addTo on a destroyed object, remove on a not-added object, a panic
// recovered from a listener, and similar recoverable conditions. Every
// managed object (Feature, Layer, Engine, material instances) logs through
// one of these rather than the standard library's bare log.Printf.
type Logger struct {
	zl zerolog.Logger
}

var (
	defaultLoggerOnce sync.Once
	defaultLogger     *Logger
)

// DefaultLogger returns the process-wide fallback logger used by objects
// that were not given an explicit one. Unlike the teacher engine's global
// asset caches, this is just a logging sink — no engine state lives here,
// so multiple Engines can still run concurrently in tests (per §9's
// "engine-scoped context, not process-global" design note).
func DefaultLogger() *Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = NewLogger(os.Stderr)
	})
	return defaultLogger
}

// NewLogger builds a structured logger writing to w.
func NewLogger(w *os.File) *Logger {
	return &Logger{zl: zerolog.New(w).With().Timestamp().Logger()}
}

func (l *Logger) warn(component, kind string, fields map[string]any, msg string) {
	if l == nil {
		return
	}
	ev := l.zl.Warn().Str("component", component).Str("kind", kind)
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *Logger) errorf(component, kind string, fields map[string]any, msg string) {
	if l == nil {
		return
	}
	ev := l.zl.Error().Str("component", component).Str("kind", kind)
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *Logger) info(component, msg string) {
	if l == nil {
		return
	}
	l.zl.Info().Str("component", component).Msg(msg)
}
