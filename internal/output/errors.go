package output

import (
	"github.com/hyp3rd/ewrap"
)

// Common errors for the output package.
var (
	// ErrDeviceNotOpen is returned when writing to a device that has not been opened.
	ErrDeviceNotOpen = ewrap.New("device is not open")

	// ErrFlusherStopped is returned when triggering a stopped flusher.
	ErrFlusherStopped = ewrap.New("flusher is stopped")

	// ErrFlushTimeout is returned when a flush request does not complete in time.
	ErrFlushTimeout = ewrap.New("flush timed out")
)
