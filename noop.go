package spoollog

// NoopLogger is a logger that records nothing. Filter and format settings are
// remembered so callers reading them back see what they set.
type NoopLogger struct {
	filter  Filter
	formats [LevelCount]FormatMask
	enabled bool
}

// NewNoop creates a new NoopLogger.
func NewNoop() Logger {
	return &NoopLogger{
		filter:  Filter{Level: DefaultLevel},
		formats: DefaultFormats(),
		enabled: true,
	}
}

// Ensure NoopLogger implements Logger interface.
var _ Logger = (*NoopLogger)(nil)

// Log discards the line.
func (*NoopLogger) Log(_ Level, _, _, _ string, _ int, _ string, _ ...any) {}

// Raw discards the line.
func (*NoopLogger) Raw(_ string, _ ...any) {}

// Assertf discards the line.
func (*NoopLogger) Assertf(_, _ string, _ ...any) {}

// Errorf discards the line.
func (*NoopLogger) Errorf(_, _ string, _ ...any) {}

// Warnf discards the line.
func (*NoopLogger) Warnf(_, _ string, _ ...any) {}

// Infof discards the line.
func (*NoopLogger) Infof(_, _ string, _ ...any) {}

// Debugf discards the line.
func (*NoopLogger) Debugf(_, _ string, _ ...any) {}

// Verbosef discards the line.
func (*NoopLogger) Verbosef(_, _ string, _ ...any) {}

// SetOutputEnabled stores the flag.
func (l *NoopLogger) SetOutputEnabled(enabled bool) { l.enabled = enabled }

// OutputEnabled returns the stored flag.
func (l *NoopLogger) OutputEnabled() bool { return l.enabled }

// SetFormat stores the mask for level.
func (l *NoopLogger) SetFormat(level Level, mask FormatMask) error {
	if !level.IsValid() {
		return ErrInvalidLevel
	}

	l.formats[level] = mask

	return nil
}

// Format returns the stored mask for level.
func (l *NoopLogger) Format(level Level) FormatMask {
	if !level.IsValid() {
		return 0
	}

	return l.formats[level]
}

// SetFilter stores the filter.
func (l *NoopLogger) SetFilter(level Level, tag, keyword string) error {
	if !level.IsValid() {
		return ErrInvalidLevel
	}

	l.filter = Filter{Level: level, Tag: tag, Keyword: keyword}

	return nil
}

// SetFilterLevel stores the filter level.
func (l *NoopLogger) SetFilterLevel(level Level) error {
	if !level.IsValid() {
		return ErrInvalidLevel
	}

	l.filter.Level = level

	return nil
}

// SetFilterTag stores the tag filter.
func (l *NoopLogger) SetFilterTag(tag string) { l.filter.Tag = tag }

// SetFilterKeyword stores the keyword filter.
func (l *NoopLogger) SetFilterKeyword(keyword string) { l.filter.Keyword = keyword }

// Filter returns the stored filter.
func (l *NoopLogger) Filter() Filter { return l.filter }

// Flush is a no-op operation.
func (*NoopLogger) Flush() error { return nil }

// PendingBytes is always zero.
func (*NoopLogger) PendingBytes() int { return 0 }

// PendingRecords is always zero.
func (*NoopLogger) PendingRecords() int { return 0 }

// Stats returns an empty snapshot.
func (*NoopLogger) Stats() Stats { return Stats{} }

// Close is a no-op operation.
func (*NoopLogger) Close() error { return nil }
