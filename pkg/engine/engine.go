// Package engine provides the spooling engine behind the spoollog.Logger interface.
//
// An Engine owns the filter state, the composition buffer, the pending record
// queue and the output device. Log calls never block on device I/O: they filter,
// compose under a timeout-bounded lock and append to the queue. Flush drains the
// queue to the device, applying the keyword filter to each record as it goes.
package engine

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/spoollog"
	"github.com/hyp3rd/spoollog/internal/compose"
	"github.com/hyp3rd/spoollog/internal/filter"
	"github.com/hyp3rd/spoollog/internal/output"
	"github.com/hyp3rd/spoollog/internal/port"
	"github.com/hyp3rd/spoollog/internal/queue"
)

// AssertHook replaces the default assertion failure behaviour.
type AssertHook func(expr, fn string, line int)

// Engine implements spoollog.Logger.
type Engine struct {
	filter   atomic.Pointer[filter.State]
	filterMu sync.Mutex

	formats [spoollog.LevelCount]atomic.Uint32
	enabled atomic.Bool
	closed  atomic.Bool

	lockTimeout time.Duration
	locker      spoollog.Locker
	composer    *compose.Composer
	queue       *queue.Queue
	device      spoollog.Device
	flusher     *output.Flusher

	flushMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error

	assertHook   atomic.Pointer[AssertHook]
	errorHandler func(error)
	dropHandler  spoollog.DropHandler

	enqueued    atomic.Uint64
	dropped     atomic.Uint64
	filtered    atomic.Uint64
	written     atomic.Uint64
	writeErrors atomic.Uint64
	flushes     atomic.Uint64
}

var _ spoollog.Logger = (*Engine)(nil)

// New creates an engine from config. The background flusher starts when
// config.FlushInterval is positive.
func New(config spoollog.Config) (*Engine, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	state, err := filter.New(config.Level)
	if err != nil {
		return nil, err
	}

	state = state.WithTag(config.Tag).WithKeyword(config.Keyword)

	device, err := resolveDevice(&config)
	if err != nil {
		return nil, err
	}

	if config.BufferSize == 0 {
		config.BufferSize = spoollog.DefaultBufferSize
	}

	info := config.Info
	if info == nil {
		info = port.NewSystemInfo()
	}

	locker := config.Locker
	if locker == nil {
		locker = port.NewSemaphoreLocker()
	}

	eng := &Engine{
		lockTimeout:  config.LockTimeout,
		locker:       locker,
		composer:     compose.New(config.BufferSize, info),
		queue:        queue.New(config.MaxPendingBytes),
		device:       device,
		errorHandler: config.ErrorHandler,
		dropHandler:  config.DropHandler,
	}

	eng.filter.Store(state)
	eng.enabled.Store(config.OutputEnabled)

	for level, mask := range config.Formats {
		eng.formats[level].Store(uint32(mask))
	}

	if config.FlushInterval > 0 {
		eng.flusher = output.NewFlusher(eng.flush, output.FlusherConfig{
			Interval:     config.FlushInterval,
			ErrorHandler: eng.handleError,
		})
	}

	return eng, nil
}

// resolveDevice picks the flush target: an explicit device, then a file path,
// then the output writer.
func resolveDevice(config *spoollog.Config) (spoollog.Device, error) {
	if config.Device != nil {
		return config.Device, nil
	}

	if config.FilePath != "" {
		device, err := output.NewFileDevice(output.FileConfig{
			Path:     config.FilePath,
			FileMode: spoollog.LogFilePermissions,
		})
		if err != nil {
			return nil, ewrap.Wrap(err, "creating file device").WithMetadata("path", config.FilePath)
		}

		return device, nil
	}

	out := config.Output
	if out == nil {
		out = os.Stdout
	}

	if out == io.Discard {
		return output.DiscardDevice{}, nil
	}

	if config.Color.Enable {
		return output.NewConsoleDevice(out, output.ColorModeFrom(config.Color), config.Color.LevelColors), nil
	}

	return output.NewWriterDevice(out), nil
}

// Device returns the device flushes drain into.
func (e *Engine) Device() spoollog.Device {
	return e.device
}

// SetAssertHook replaces the assertion failure behaviour. A nil hook restores the
// default: log, flush and panic.
func (e *Engine) SetAssertHook(hook AssertHook) {
	if hook == nil {
		e.assertHook.Store(nil)

		return
	}

	e.assertHook.Store(&hook)
}

// Stats returns a snapshot of queue and pipeline counters.
func (e *Engine) Stats() spoollog.Stats {
	records, bytes := e.queue.Stats()

	return spoollog.Stats{
		Records:     records,
		Bytes:       bytes,
		Enqueued:    e.enqueued.Load(),
		Dropped:     e.dropped.Load(),
		Filtered:    e.filtered.Load(),
		Written:     e.written.Load(),
		WriteErrors: e.writeErrors.Load(),
		Flushes:     e.flushes.Load(),
	}
}

// PendingBytes returns the bytes held by queued records.
func (e *Engine) PendingBytes() int {
	_, bytes := e.queue.Stats()

	return bytes
}

// PendingRecords returns the number of queued records.
func (e *Engine) PendingRecords() int {
	return e.queue.Len()
}

// Close stops recording, runs a final flush and discards anything a racing
// producer queued after it, so no record outlives the engine. The keyword filter
// is cleared. Later calls return spoollog.ErrEngineClosed.
func (e *Engine) Close() error {
	var err error = spoollog.ErrEngineClosed

	e.closeOnce.Do(func() {
		e.enabled.Store(false)

		if e.flusher != nil {
			// Stop runs the final flush on the flusher goroutine.
			e.closeErr = e.flusher.Stop()
		} else {
			e.closeErr = e.flush()
		}

		e.closed.Store(true)
		e.discard()

		e.filterMu.Lock()
		e.filter.Store(e.filter.Load().WithKeyword(""))
		e.filterMu.Unlock()

		err = e.closeErr
	})

	return err
}

func (e *Engine) handleError(err error) {
	if err != nil && e.errorHandler != nil {
		e.errorHandler(err)
	}
}

// drop counts a record that will not be written and notifies the handler.
// Keyword rejections are counted as filtered, everything else as dropped.
func (e *Engine) drop(reason spoollog.DropReason, payload []byte) {
	if reason == spoollog.DropFiltered {
		e.filtered.Add(1)
	} else {
		e.dropped.Add(1)
	}

	if e.dropHandler != nil {
		e.dropHandler(spoollog.Drop{Reason: reason, Payload: payload})
	}
}
