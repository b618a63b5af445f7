// Package diagnostics carries the non-fatal findings of rule loading, maturation,
// action parsing and rewriting to the caller's logging sink.
//
// Nothing in the engine aborts a batch: a duplicate pattern, an action that fails
// to parse or a chain whose depth does not fit its action each become one
// *errors.Error reported here, and processing continues.
package diagnostics

import (
	"sync"

	"github.com/arthur-debert/gffstruct/pkg/errors"
	"github.com/arthur-debert/gffstruct/pkg/logging"
	"github.com/rs/zerolog"
)

// Sink receives diagnostics
type Sink interface {
	Report(d *errors.Error)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(d *errors.Error)

// Report implements Sink
func (f SinkFunc) Report(d *errors.Error) { f(d) }

// LevelFor returns the log level a diagnostic code is reported at
func LevelFor(code errors.ErrorCode) zerolog.Level {
	switch code {
	case errors.ErrPatternSkipped:
		return zerolog.DebugLevel
	case errors.ErrRegexCompile, errors.ErrRuleSyntax, errors.ErrConfigLoad, errors.ErrConfigParse, errors.ErrInternal:
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

// IsError reports whether a diagnostic should fail a rule check
func IsError(d *errors.Error) bool {
	return d != nil && LevelFor(d.Code) >= zerolog.ErrorLevel
}

// Log returns a Sink that only writes to the given logger
func Log(logger zerolog.Logger) Sink {
	return SinkFunc(func(d *errors.Error) {
		emit(logger, d)
	})
}

// Default is the sink used when a component is built without one
func Default() Sink {
	return Log(logging.GetLogger("diagnostics"))
}

// OrDefault returns s, or Default when s is nil
func OrDefault(s Sink) Sink {
	if s == nil {
		return Default()
	}
	return s
}

func emit(logger zerolog.Logger, d *errors.Error) {
	if d == nil {
		return
	}
	ev := logger.WithLevel(LevelFor(d.Code)).Str("code", string(d.Code))
	for k, v := range d.Details {
		ev = ev.Interface(k, v)
	}
	if d.Wrapped != nil {
		ev = ev.Err(d.Wrapped)
	}
	ev.Msg(d.Message)
}

// Collector logs every diagnostic and keeps it for later inspection.
// It is safe for concurrent use.
type Collector struct {
	mu     sync.Mutex
	logger zerolog.Logger
	items  []*errors.Error
}

// NewCollector creates a Collector logging through the "diagnostics" component logger
func NewCollector() *Collector {
	return &Collector{logger: logging.GetLogger("diagnostics")}
}

// NewCollectorWithLogger creates a Collector logging through logger
func NewCollectorWithLogger(logger zerolog.Logger) *Collector {
	return &Collector{logger: logger}
}

// Report implements Sink
func (c *Collector) Report(d *errors.Error) {
	if d == nil {
		return
	}
	emit(c.logger, d)

	c.mu.Lock()
	c.items = append(c.items, d)
	c.mu.Unlock()
}

// All returns the diagnostics in report order
func (c *Collector) All() []*errors.Error {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*errors.Error, len(c.items))
	copy(out, c.items)
	return out
}

// WithCode returns the diagnostics carrying code
func (c *Collector) WithCode(code errors.ErrorCode) []*errors.Error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []*errors.Error
	for _, d := range c.items {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// Count returns how many diagnostics were reported
func (c *Collector) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// HasErrors reports whether any diagnostic is error level
func (c *Collector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, d := range c.items {
		if IsError(d) {
			return true
		}
	}
	return false
}

// Reset drops the collected diagnostics
func (c *Collector) Reset() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}
