package engine

import (
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/spoollog"
)

// SetOutputEnabled switches recording on or off. Switching it off flushes what is
// already queued first; flush errors go to the error handler.
func (e *Engine) SetOutputEnabled(enabled bool) {
	if !enabled && e.enabled.Load() && !e.closed.Load() {
		e.handleError(e.Flush())
	}

	e.enabled.Store(enabled)
}

// OutputEnabled reports whether log calls are recorded.
func (e *Engine) OutputEnabled() bool {
	return e.enabled.Load()
}

// SetFormat sets the field mask used for lines at level.
func (e *Engine) SetFormat(level spoollog.Level, mask spoollog.FormatMask) error {
	if !level.IsValid() {
		return ewrap.Wrap(spoollog.ErrInvalidLevel, "setting format").WithMetadata("level", uint8(level))
	}

	e.formats[level].Store(uint32(mask))

	return nil
}

// Format returns the field mask for level, or zero for an invalid level.
func (e *Engine) Format(level spoollog.Level) spoollog.FormatMask {
	if !level.IsValid() {
		return 0
	}

	return spoollog.FormatMask(e.formats[level].Load())
}

// SetFilter replaces level, tag and keyword in one step.
func (e *Engine) SetFilter(level spoollog.Level, tag, keyword string) error {
	e.filterMu.Lock()
	defer e.filterMu.Unlock()

	next, err := e.filter.Load().WithLevel(level)
	if err != nil {
		return err
	}

	e.filter.Store(next.WithTag(tag).WithKeyword(keyword))

	return nil
}

// SetFilterLevel sets the inclusive severity threshold.
func (e *Engine) SetFilterLevel(level spoollog.Level) error {
	e.filterMu.Lock()
	defer e.filterMu.Unlock()

	next, err := e.filter.Load().WithLevel(level)
	if err != nil {
		return err
	}

	e.filter.Store(next)

	return nil
}

// SetFilterTag sets the tag filter. Tags longer than the filter width are truncated;
// an empty tag admits every call.
func (e *Engine) SetFilterTag(tag string) {
	e.filterMu.Lock()
	defer e.filterMu.Unlock()

	e.filter.Store(e.filter.Load().WithTag(tag))
}

// SetFilterKeyword sets the keyword applied at flush time. Records already queued
// are subject to it. An empty keyword removes the filter.
func (e *Engine) SetFilterKeyword(keyword string) {
	e.filterMu.Lock()
	defer e.filterMu.Unlock()

	e.filter.Store(e.filter.Load().WithKeyword(keyword))
}

// Filter returns the filter currently in force.
func (e *Engine) Filter() spoollog.Filter {
	return e.filter.Load().Snapshot()
}
