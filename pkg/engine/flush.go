package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/spoollog"
	"github.com/hyp3rd/spoollog/internal/output"
	"github.com/hyp3rd/spoollog/internal/queue"
)

// Flush drains the records queued when it starts to the device. Each record is
// checked against the keyword filter in force when it is popped. If the device
// cannot be opened the records are discarded and the open error is returned,
// matching spoollog.ErrDeviceOpen. Write errors are passed to the error handler
// and the record is lost. With a periodic flusher running, the flush executes on
// the flusher goroutine. Concurrent calls are serialised.
func (e *Engine) Flush() error {
	if e.closed.Load() {
		return spoollog.ErrEngineClosed
	}

	if e.flusher == nil {
		return e.flush()
	}

	err := e.flusher.Trigger()
	if errors.Is(err, output.ErrFlusherStopped) {
		return spoollog.ErrEngineClosed
	}

	return err
}

func (e *Engine) flush() error {
	e.flushMu.Lock()
	defer e.flushMu.Unlock()

	err := e.drainToDevice()

	e.flushes.Add(1)
	spoollog.EmitStats(context.Background(), e.Stats())

	return err
}

func (e *Engine) drainToDevice() error {
	// Records appended during the flush wait for the next one.
	pending := e.queue.Len()
	if pending == 0 {
		return nil
	}

	err := e.device.Open()
	if err != nil {
		discarded := e.discard()

		return ewrap.Wrap(fmt.Errorf("%w: %w", spoollog.ErrDeviceOpen, err), "opening device").
			WithMetadata("discarded", discarded)
	}

	for range pending {
		record, ok := e.queue.PopFront()
		if !ok {
			break
		}

		if !e.filter.Load().AdmitForFlush(record.Bytes()) {
			e.drop(spoollog.DropFiltered, record.Bytes())

			continue
		}

		werr := e.device.Write(record.Bytes())
		if werr != nil {
			e.writeErrors.Add(1)
			e.handleError(ewrap.Wrap(werr, "writing record").WithMetadata("bytes", record.Len()))

			continue
		}

		e.written.Add(1)
	}

	err = e.device.Close()
	if err != nil {
		return ewrap.Wrap(err, "closing device")
	}

	return nil
}

// discard drains the queue without writing.
func (e *Engine) discard() int {
	return e.queue.Drain(func(record *queue.Record) {
		e.drop(spoollog.DropDeviceUnavailable, record.Bytes())
	})
}
