package spoollog

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/spoollog/internal/constants"
	"github.com/hyp3rd/spoollog/internal/utils"
)

const (
	// DefaultLevel is the default filter level: everything passes.
	DefaultLevel = VerboseLevel
	// DefaultBufferSize is the default capacity of the composition buffer.
	DefaultBufferSize = constants.ScratchSize
	// DefaultLockTimeout is the default wait on the composition buffer lock.
	DefaultLockTimeout = constants.LockTimeout
	// LogFilePermissions are the default file permissions for log files.
	LogFilePermissions = 0o644
)

// Config holds configuration for an engine.
type Config struct {
	// Level is the initial filter level.
	Level Level
	// Tag is the initial tag filter.
	Tag string
	// Keyword is the initial keyword filter.
	Keyword string
	// Formats holds the field mask for each level.
	Formats [LevelCount]FormatMask
	// OutputEnabled controls whether log calls are recorded at all.
	OutputEnabled bool
	// BufferSize is the composition buffer capacity, the longest line a record can hold.
	BufferSize int
	// MaxPendingBytes caps the bytes held by queued records. Zero means unbounded.
	MaxPendingBytes int
	// LockTimeout bounds the wait for the composition buffer.
	LockTimeout time.Duration
	// FlushInterval enables a background flush at this period. Zero flushes on demand only.
	FlushInterval time.Duration
	// Output is where flushed records go when Device and FilePath are unset.
	Output io.Writer
	// FilePath selects a file device that is opened for every flush.
	FilePath string
	// Color configures console colors.
	Color ColorConfig
	// Device overrides Output and FilePath.
	Device Device
	// Info supplies time, process and thread strings. Nil uses the system provider.
	Info InfoProvider
	// Locker guards the composition buffer. Nil uses a weighted semaphore.
	Locker Locker
	// ErrorHandler receives device errors raised during a flush.
	ErrorHandler func(error)
	// DropHandler is invoked for every line that does not reach the device.
	DropHandler DropHandler
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Level:         DefaultLevel,
		Formats:       DefaultFormats(),
		OutputEnabled: true,
		BufferSize:    DefaultBufferSize,
		LockTimeout:   DefaultLockTimeout,
		Output:        os.Stdout,
		Color:         DefaultColorConfig(),
	}
}

// ProductionConfig returns a configuration for unattended targets. Lines below Info
// are filtered, colors are off and the queue is capped so a stalled device cannot
// exhaust memory.
func ProductionConfig() Config {
	const pendingBudget = 1 << 20

	config := DefaultConfig()
	config.Level = InfoLevel
	config.Color.Enable = false
	config.MaxPendingBytes = pendingBudget
	config.FlushInterval = time.Second

	return config
}

// DevelopmentConfig returns a configuration for local work. Every level is
// recorded with source locations and colors are on.
func DevelopmentConfig() Config {
	config := DefaultConfig()
	config.Color.Enable = true
	config.Formats[DebugLevel] |= FmtFunc | FmtLine
	config.Formats[VerboseLevel] |= FmtFunc | FmtLine

	return config
}

// Validate checks the configuration for values an engine cannot run with.
func (c *Config) Validate() error {
	switch {
	case !c.Level.IsValid():
		return ewrap.Wrap(ErrInvalidConfig, "invalid level").WithMetadata("level", c.Level)
	case c.BufferSize != 0 && c.BufferSize < constants.MinScratchSize:
		return ewrap.Wrap(ErrInvalidConfig, "buffer size too small").
			WithMetadata("buffer_size", c.BufferSize).
			WithMetadata("min", constants.MinScratchSize)
	case c.MaxPendingBytes < 0:
		return ewrap.Wrap(ErrInvalidConfig, "negative pending budget").
			WithMetadata("max_pending_bytes", c.MaxPendingBytes)
	case c.LockTimeout < 0:
		return ewrap.Wrap(ErrInvalidConfig, "negative lock timeout").
			WithMetadata("lock_timeout", c.LockTimeout)
	case c.FlushInterval < 0:
		return ewrap.Wrap(ErrInvalidConfig, "negative flush interval").
			WithMetadata("flush_interval", c.FlushInterval)
	}

	for level, mask := range c.Formats {
		if mask == 0 {
			continue
		}

		if mask&^FmtAll != 0 {
			return ewrap.Wrap(ErrInvalidFormat, "unknown format bits").
				WithMetadata("level", Level(level).String())
		}
	}

	return nil
}

// SetOutput resolves an output name. It accepts "stdout", "stderr", "discard" or a
// file path. A file is created if it doesn't exist and opened in append mode.
func SetOutput(output string) (io.Writer, error) {
	switch constants.OutputType(strings.ToLower(strings.TrimSpace(output))) {
	case constants.LogOutputStdout:
		return os.Stdout, nil
	case constants.LogOutputStderr:
		return os.Stderr, nil
	case constants.LogOutputDiscard:
		return io.Discard, nil
	case constants.LogOutputFile:
		return nil, ewrap.Wrap(ErrInvalidConfig, "file output needs a path")
	default:
		path, err := utils.CleanLogPath(output)
		if err != nil {
			return nil, ewrap.Wrap(err, "invalid output path")
		}

		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermissions)
		if err != nil {
			return nil, ewrap.Wrapf(err, "failed to open log file %s", path)
		}

		return file, nil
	}
}
