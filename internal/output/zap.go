package output

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hyp3rd/spoollog"
)

// ZapDevice forwards flushed records to a zap logger, one entry per record.
// The level marker selects the zap level; lines without a marker go out at Info.
type ZapDevice struct {
	logger *zap.Logger
	field  string
}

// NewZapDevice creates a device backed by logger. Records are attached under the
// "spool" logger name.
func NewZapDevice(logger *zap.Logger) *ZapDevice {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ZapDevice{
		logger: logger.Named("spool"),
		field:  "level_marker",
	}
}

// Open implements spoollog.Device.
func (*ZapDevice) Open() error {
	return nil
}

// Write logs the record body without its line ending.
func (d *ZapDevice) Write(payload []byte) error {
	body, _ := splitLineEnding(payload)

	level, ok := detectLevel(body)
	if !ok {
		d.logger.Info(string(body))

		return nil
	}

	if ce := d.logger.Check(zapLevel(level), string(body)); ce != nil {
		ce.Write(zap.String(d.field, level.String()))
	}

	return nil
}

// Close syncs the logger. Sync errors are not reported: syncing stdout or stderr
// returns EINVAL on most platforms.
func (d *ZapDevice) Close() error {
	_ = d.logger.Sync() //nolint:errcheck

	return nil
}

func zapLevel(level spoollog.Level) zapcore.Level {
	//nolint:exhaustive // Info and unknown levels share the default.
	switch level {
	case spoollog.AssertLevel, spoollog.ErrorLevel:
		return zapcore.ErrorLevel
	case spoollog.WarnLevel:
		return zapcore.WarnLevel
	case spoollog.DebugLevel, spoollog.VerboseLevel:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

var _ spoollog.Device = (*ZapDevice)(nil)
