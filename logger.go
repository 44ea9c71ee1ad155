// Package spoollog defines a log spooling engine for constrained targets.
//
// Application code submits log lines; the engine filters them by level and tag,
// composes them into a bounded scratch buffer and parks the composed text in an
// in-memory queue. A later flush drains the queue to a slow output device such as
// a serial link or a flash file, applying the keyword filter at that point:
// - Six severity levels (Assert, Error, Warn, Info, Debug, Verbose)
// - Per-level selection of the metadata fields that prefix a line
// - Level, tag and keyword filtering
// - Drop-on-pressure queueing that never blocks callers on device I/O
//
// The types in this package describe the public contract and the port layer the
// engine consumes. The concrete engine lives in the engine package.
//
// Basic usage:
//
//	eng, err := engine.New(spoollog.DefaultConfig())
//	if err != nil {
//		panic(err)
//	}
//	defer eng.Close()
//
//	eng.Infof("NET", "link up after %d ms", 120)
//	eng.SetFilterKeyword("link")
//	_ = eng.Flush()
package spoollog

import (
	"strings"

	"github.com/hyp3rd/ewrap"
)

// Level represents the severity of a log line. Lower values are more severe.
type Level uint8

const (
	// AssertLevel is used for failed invariants.
	AssertLevel Level = iota
	// ErrorLevel represents error messages.
	ErrorLevel
	// WarnLevel represents warning messages.
	WarnLevel
	// InfoLevel represents general operational information.
	InfoLevel
	// DebugLevel represents debugging information.
	DebugLevel
	// VerboseLevel represents the most detailed tracing output.
	VerboseLevel
)

// LevelCount is the number of defined levels.
const LevelCount = int(VerboseLevel) + 1

//nolint:gochecknoglobals
var levelMarkers = [LevelCount]string{"A/", "E/", "W/", "I/", "D/", "V/"}

// String returns the string representation of a log level.
func (l Level) String() string {
	switch l {
	case AssertLevel:
		return "ASSERT"
	case ErrorLevel:
		return "ERROR"
	case WarnLevel:
		return "WARN"
	case InfoLevel:
		return "INFO"
	case DebugLevel:
		return "DEBUG"
	case VerboseLevel:
		return "VERBOSE"
	default:
		return "UNKNOWN"
	}
}

// Marker returns the short prefix written in front of a composed line, e.g. "I/".
func (l Level) Marker() string {
	if !l.IsValid() {
		return ""
	}

	return levelMarkers[l]
}

// IsValid returns true if the given Level is a valid log level, and false otherwise.
func (l Level) IsValid() bool {
	return l <= VerboseLevel
}

// ParseLevel parses a level name. Matching is case-insensitive and accepts the
// single-letter markers as well as "warning".
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "assert", "a":
		return AssertLevel, nil
	case "error", "e":
		return ErrorLevel, nil
	case "warn", "warning", "w":
		return WarnLevel, nil
	case "info", "i":
		return InfoLevel, nil
	case "debug", "d":
		return DebugLevel, nil
	case "verbose", "trace", "v":
		return VerboseLevel, nil
	default:
		return 0, ewrap.Wrap(ErrInvalidLevel, "parsing level").WithMetadata("level", level)
	}
}

// Logger defines the operations exposed to application code.
type Logger interface {
	// Log records a line with explicit source location.
	Log(level Level, tag, file, fn string, line int, format string, args ...any)
	// Raw records an unformatted line.
	Raw(format string, args ...any)

	LeveledLogger

	Controls
}

// LeveledLogger defines the per-level helpers. Source location is captured from the caller.
type LeveledLogger interface {
	// Assertf logs a message at the Assert level
	Assertf(tag, format string, args ...any)
	// Errorf logs a message at the Error level
	Errorf(tag, format string, args ...any)
	// Warnf logs a message at the Warn level
	Warnf(tag, format string, args ...any)
	// Infof logs a message at the Info level
	Infof(tag, format string, args ...any)
	// Debugf logs a message at the Debug level
	Debugf(tag, format string, args ...any)
	// Verbosef logs a message at the Verbose level
	Verbosef(tag, format string, args ...any)
}

// Controls defines configuration, flush and introspection calls.
type Controls interface {
	SetOutputEnabled(enabled bool)
	OutputEnabled() bool
	SetFormat(level Level, mask FormatMask) error
	Format(level Level) FormatMask
	SetFilter(level Level, tag, keyword string) error
	SetFilterLevel(level Level) error
	SetFilterTag(tag string)
	SetFilterKeyword(keyword string)
	// Filter returns the filter currently in force.
	Filter() Filter
	// Flush drains the pending queue to the output device.
	Flush() error
	// PendingBytes returns the bytes currently held by queued records.
	PendingBytes() int
	// PendingRecords returns the number of queued records.
	PendingRecords() int
	// Stats returns a snapshot of queue and pipeline counters.
	Stats() Stats
	// Close flushes what is pending and releases the engine.
	Close() error
}
