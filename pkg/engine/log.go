package engine

import (
	"fmt"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/spoollog"
	"github.com/hyp3rd/spoollog/internal/compose"
	"github.com/hyp3rd/spoollog/internal/constants"
)

// callerSkip reaches the caller of a level helper from logCaller.
const callerSkip = 3

const unknown = "unknown"

// Log records a line at level with an explicit source location. Calls that the
// level or tag filter rejects return before any locking or composition.
func (e *Engine) Log(level spoollog.Level, tag, file, fn string, line int, format string, args ...any) {
	if !e.enabled.Load() || !level.IsValid() {
		return
	}

	if !e.filter.Load().AdmitForCompose(level, tag) {
		return
	}

	if !e.locker.Acquire(e.lockTimeout) {
		e.drop(spoollog.DropLockTimeout, nil)

		return
	}
	defer e.locker.Release()

	text, _ := e.composer.Compose(&compose.Call{
		Level:  level,
		Mask:   spoollog.FormatMask(e.formats[level].Load()),
		Tag:    tag,
		File:   file,
		Func:   fn,
		Line:   line,
		Format: format,
		Args:   args,
	})

	e.enqueue(text)
}

// Raw records format without any metadata or line terminator. Only the output
// switch applies before queueing; the keyword filter still applies at flush.
func (e *Engine) Raw(format string, args ...any) {
	if !e.enabled.Load() {
		return
	}

	if !e.locker.Acquire(e.lockTimeout) {
		e.drop(spoollog.DropLockTimeout, nil)

		return
	}
	defer e.locker.Release()

	text, ok := e.composer.Raw(format, args...)
	if !ok {
		e.drop(spoollog.DropOverflow, e.composer.Scratch()[:e.composer.Size()-1])

		return
	}

	e.enqueue(text)
}

// enqueue copies text into a new record. Must be called with the scratch lock held.
func (e *Engine) enqueue(text []byte) {
	if !e.queue.Append(text) {
		e.drop(spoollog.DropBudget, text)

		return
	}

	e.enqueued.Add(1)

	// A producer that passed the enabled check before Close may append after the
	// shutdown drain.
	if e.closed.Load() {
		e.discard()
	}
}

// Assertf logs a message at the Assert level.
func (e *Engine) Assertf(tag, format string, args ...any) {
	e.logCaller(spoollog.AssertLevel, tag, format, args)
}

// Errorf logs a message at the Error level.
func (e *Engine) Errorf(tag, format string, args ...any) {
	e.logCaller(spoollog.ErrorLevel, tag, format, args)
}

// Warnf logs a message at the Warn level.
func (e *Engine) Warnf(tag, format string, args ...any) {
	e.logCaller(spoollog.WarnLevel, tag, format, args)
}

// Infof logs a message at the Info level.
func (e *Engine) Infof(tag, format string, args ...any) {
	e.logCaller(spoollog.InfoLevel, tag, format, args)
}

// Debugf logs a message at the Debug level.
func (e *Engine) Debugf(tag, format string, args ...any) {
	e.logCaller(spoollog.DebugLevel, tag, format, args)
}

// Verbosef logs a message at the Verbose level.
func (e *Engine) Verbosef(tag, format string, args ...any) {
	e.logCaller(spoollog.VerboseLevel, tag, format, args)
}

// Assert checks cond. On failure it logs the expression at the Assert level,
// flushes and panics, unless an assert hook has been installed.
func (e *Engine) Assert(cond bool, expr string) {
	if cond {
		return
	}

	file, line, fn := getCaller(callerSkip - 1)

	if hook := e.assertHook.Load(); hook != nil {
		(*hook)(expr, fn, line)

		return
	}

	e.Log(spoollog.AssertLevel, constants.InternalTag, file, fn, line,
		"(%s) has assert failed at %s:%d.", expr, fn, line)

	_ = e.Flush() //nolint:errcheck // the panic below is the failure report

	panic(ewrap.New("assertion failed").
		WithMetadata("expr", expr).
		WithMetadata("func", fn).
		WithMetadata("line", line))
}

func (e *Engine) logCaller(level spoollog.Level, tag, format string, args []any) {
	if !e.enabled.Load() || !level.IsValid() {
		return
	}

	// Skip the caller lookup for filtered calls.
	if !e.filter.Load().AdmitForCompose(level, tag) {
		return
	}

	file, line, fn := getCaller(callerSkip)
	e.Log(level, tag, file, fn, line, format, args...)
}

// getCaller returns the base file name, line and short function name skip frames up.
func getCaller(skip int) (string, int, string) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return unknown, 0, unknown
	}

	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return filepath.Base(file), line, unknown
	}

	return filepath.Base(file), line, shortFuncName(fn.Name())
}

// shortFuncName strips the import path and package from a qualified function name:
// "github.com/x/pkg.(*T).Method" becomes "(*T).Method".
func shortFuncName(name string) string {
	name = path.Base(name)

	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}

	return name
}

// String reports the engine's filter and queue state.
func (e *Engine) String() string {
	f := e.Filter()
	records, bytes := e.queue.Stats()

	return fmt.Sprintf("engine{level=%s tag=%q keyword=%q records=%d bytes=%d}",
		f.Level, f.Tag, f.Keyword, records, bytes)
}
