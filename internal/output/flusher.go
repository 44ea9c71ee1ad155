package output

import (
	"sync"
	"time"

	"github.com/hyp3rd/spoollog/internal/constants"
)

// FlusherConfig configures a Flusher.
type FlusherConfig struct {
	// Interval between automatic flushes. Zero disables the ticker; Trigger still works.
	Interval time.Duration
	// WaitTimeout is the maximum time Trigger waits for a requested flush.
	WaitTimeout time.Duration
	// ErrorHandler is called when a periodic flush fails. Failures of Trigger and
	// Stop are returned to their caller instead.
	ErrorHandler func(error)
}

// FlushFunc drains pending records to a device.
type FlushFunc func() error

// Flusher runs a FlushFunc in the background, periodically and on request.
// All flushes run on the flusher goroutine, so they never overlap each other.
type Flusher struct {
	flush   FlushFunc
	config  FlusherConfig
	stopCh  chan struct{}
	flushCh chan chan error
	wg      sync.WaitGroup

	closed     bool
	closeMutex sync.Mutex
}

// NewFlusher creates and starts a Flusher.
func NewFlusher(flush FlushFunc, config FlusherConfig) *Flusher {
	if config.WaitTimeout <= 0 {
		config.WaitTimeout = constants.DefaultTimeout
	}

	if config.ErrorHandler == nil {
		config.ErrorHandler = func(error) {}
	}

	f := &Flusher{
		flush:   flush,
		config:  config,
		stopCh:  make(chan struct{}),
		flushCh: make(chan chan error, 1),
	}

	f.start()

	return f
}

// Trigger requests an immediate flush and waits for it to finish.
func (f *Flusher) Trigger() error {
	f.closeMutex.Lock()

	if f.closed {
		f.closeMutex.Unlock()

		return ErrFlusherStopped
	}

	f.closeMutex.Unlock()

	doneCh := make(chan error, 1)

	select {
	case f.flushCh <- doneCh:
	case <-f.stopCh:
		return ErrFlusherStopped
	case <-time.After(f.config.WaitTimeout):
		return ErrFlushTimeout
	}

	select {
	case err := <-doneCh:
		return err
	case <-time.After(f.config.WaitTimeout):
		return ErrFlushTimeout
	}
}

// Stop halts the background goroutine after one final flush.
// Stopping twice returns ErrFlusherStopped.
func (f *Flusher) Stop() error {
	f.closeMutex.Lock()
	defer f.closeMutex.Unlock()

	if f.closed {
		return ErrFlusherStopped
	}

	f.closed = true

	close(f.stopCh)
	f.wg.Wait()

	return f.flush()
}

func (f *Flusher) start() {
	f.wg.Go(f.loop)
}

func (f *Flusher) loop() {
	var tick <-chan time.Time

	if f.config.Interval > 0 {
		ticker := time.NewTicker(f.config.Interval)
		defer ticker.Stop()

		tick = ticker.C
	}

	for {
		select {
		case <-tick:
			err := f.flush()
			if err != nil {
				f.config.ErrorHandler(err)
			}
		case doneCh := <-f.flushCh:
			doneCh <- f.flush()
		case <-f.stopCh:
			f.answerPending()

			return
		}
	}
}

// answerPending completes a Trigger that raced with Stop.
func (f *Flusher) answerPending() {
	select {
	case doneCh := <-f.flushCh:
		doneCh <- f.flush()
	default:
	}
}
