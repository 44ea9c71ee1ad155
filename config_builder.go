package spoollog

import (
	"io"
	"os"
	"time"
)

// ConfigBuilder provides a fluent API for constructing engine configurations.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new builder starting from DefaultConfig.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: DefaultConfig(),
	}
}

// WithOutput sets the writer flushed records go to.
// Example: builder.WithOutput(os.Stderr).
func (b *ConfigBuilder) WithOutput(output io.Writer) *ConfigBuilder {
	b.config.Output = output

	return b
}

// WithConsoleOutput is a convenience method for WithOutput(os.Stdout).
func (b *ConfigBuilder) WithConsoleOutput() *ConfigBuilder {
	b.config.Output = os.Stdout

	return b
}

// WithFileOutput selects a file device. The file is opened for appending on every
// flush and closed afterwards.
// Example: builder.WithFileOutput("/data/log/app.log").
func (b *ConfigBuilder) WithFileOutput(path string) *ConfigBuilder {
	b.config.FilePath = path

	return b
}

// WithDevice routes flushes to a custom device.
func (b *ConfigBuilder) WithDevice(device Device) *ConfigBuilder {
	b.config.Device = device

	return b
}

// WithLevel sets the filter level.
func (b *ConfigBuilder) WithLevel(level Level) *ConfigBuilder {
	b.config.Level = level

	return b
}

// WithTag sets the tag filter.
func (b *ConfigBuilder) WithTag(tag string) *ConfigBuilder {
	b.config.Tag = tag

	return b
}

// WithKeyword sets the keyword filter applied at flush time.
func (b *ConfigBuilder) WithKeyword(keyword string) *ConfigBuilder {
	b.config.Keyword = keyword

	return b
}

// WithFilter sets level, tag and keyword at once.
func (b *ConfigBuilder) WithFilter(filter Filter) *ConfigBuilder {
	b.config.Level = filter.Level
	b.config.Tag = filter.Tag
	b.config.Keyword = filter.Keyword

	return b
}

// WithFormat sets the field mask for one level. Invalid levels are ignored.
func (b *ConfigBuilder) WithFormat(level Level, mask FormatMask) *ConfigBuilder {
	if level.IsValid() {
		b.config.Formats[level] = mask
	}

	return b
}

// WithFormatAll applies the same field mask to every level.
func (b *ConfigBuilder) WithFormatAll(mask FormatMask) *ConfigBuilder {
	for i := range b.config.Formats {
		b.config.Formats[i] = mask
	}

	return b
}

// WithOutputEnabled toggles recording.
func (b *ConfigBuilder) WithOutputEnabled(enabled bool) *ConfigBuilder {
	b.config.OutputEnabled = enabled

	return b
}

// WithBufferSize sets the composition buffer capacity.
func (b *ConfigBuilder) WithBufferSize(size int) *ConfigBuilder {
	b.config.BufferSize = size

	return b
}

// WithMaxPendingBytes caps the bytes held by queued records.
func (b *ConfigBuilder) WithMaxPendingBytes(limit int) *ConfigBuilder {
	b.config.MaxPendingBytes = limit

	return b
}

// WithLockTimeout bounds the wait for the composition buffer.
func (b *ConfigBuilder) WithLockTimeout(timeout time.Duration) *ConfigBuilder {
	b.config.LockTimeout = timeout

	return b
}

// WithFlushInterval enables the background flusher.
func (b *ConfigBuilder) WithFlushInterval(interval time.Duration) *ConfigBuilder {
	b.config.FlushInterval = interval

	return b
}

// WithColors enables or disables colored console output.
func (b *ConfigBuilder) WithColors(enable bool) *ConfigBuilder {
	b.config.Color.Enable = enable

	return b
}

// WithForceColors forces colors even when the output is not a terminal.
func (b *ConfigBuilder) WithForceColors(force bool) *ConfigBuilder {
	b.config.Color.ForceTTY = force

	return b
}

// WithInfoProvider replaces the time, process and thread source.
func (b *ConfigBuilder) WithInfoProvider(info InfoProvider) *ConfigBuilder {
	b.config.Info = info

	return b
}

// WithLocker replaces the composition buffer lock.
func (b *ConfigBuilder) WithLocker(locker Locker) *ConfigBuilder {
	b.config.Locker = locker

	return b
}

// WithErrorHandler sets the handler for device errors.
func (b *ConfigBuilder) WithErrorHandler(handler func(error)) *ConfigBuilder {
	b.config.ErrorHandler = handler

	return b
}

// WithDropHandler sets the handler notified of dropped lines.
func (b *ConfigBuilder) WithDropHandler(handler DropHandler) *ConfigBuilder {
	b.config.DropHandler = handler

	return b
}

// WithDevelopmentDefaults applies DevelopmentConfig's level, formats and colors.
func (b *ConfigBuilder) WithDevelopmentDefaults() *ConfigBuilder {
	dev := DevelopmentConfig()

	b.config.Level = dev.Level
	b.config.Formats = dev.Formats
	b.config.Color.Enable = dev.Color.Enable

	return b
}

// WithProductionDefaults applies ProductionConfig's level, budget, interval and colors.
func (b *ConfigBuilder) WithProductionDefaults() *ConfigBuilder {
	prod := ProductionConfig()

	b.config.Level = prod.Level
	b.config.MaxPendingBytes = prod.MaxPendingBytes
	b.config.FlushInterval = prod.FlushInterval
	b.config.Color.Enable = prod.Color.Enable

	return b
}

// Build creates a Config object from the builder.
func (b *ConfigBuilder) Build() *Config {
	config := b.config

	return &config
}
