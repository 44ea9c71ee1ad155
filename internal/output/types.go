// Package output provides the devices a flush drains into.
//
// Every device implements spoollog.Device: Open is called at the start of a
// flush, Write once per admitted record and Close at the end. Devices that keep a
// stream open between flushes treat Open and Close as sync points.
//
// WriterDevice adapts any io.Writer. FileDevice reopens its file for every flush
// the way a flash-backed log is appended in bursts. ConsoleDevice colours lines
// by level when attached to a terminal. ZapDevice hands lines to a zap logger.
package output

import (
	"io"
	"os"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/spoollog"
)

// WriterDevice wraps a basic io.Writer into a Device.
type WriterDevice struct {
	writer io.Writer
}

// NewWriterDevice wraps w. Open is a no-op; Close syncs w when it supports Sync.
func NewWriterDevice(w io.Writer) *WriterDevice {
	return &WriterDevice{writer: w}
}

// Underlying returns the wrapped writer.
func (w *WriterDevice) Underlying() io.Writer {
	return w.writer
}

// Open implements spoollog.Device.
func (*WriterDevice) Open() error {
	return nil
}

// Write implements spoollog.Device.
func (w *WriterDevice) Write(p []byte) error {
	_, err := w.writer.Write(p)
	if err != nil {
		return ewrap.Wrap(err, "failed to write to writer")
	}

	return nil
}

// Close syncs the writer; the writer itself stays usable for the next flush.
func (w *WriterDevice) Close() error {
	return syncWriter(w.writer)
}

func syncWriter(w io.Writer) error {
	if f, ok := w.(*os.File); ok && isStandardStream(f) {
		return nil
	}

	if syncer, ok := w.(interface{ Sync() error }); ok {
		err := syncer.Sync()
		if err != nil {
			return ewrap.Wrap(err, "syncing writer")
		}
	}

	return nil
}

func isStandardStream(f *os.File) bool {
	return f == os.Stdout || f == os.Stderr
}

// DiscardDevice accepts and drops everything.
type DiscardDevice struct{}

// Open implements spoollog.Device.
func (DiscardDevice) Open() error { return nil }

// Write implements spoollog.Device.
func (DiscardDevice) Write([]byte) error { return nil }

// Close implements spoollog.Device.
func (DiscardDevice) Close() error { return nil }

var (
	_ spoollog.Device = (*WriterDevice)(nil)
	_ spoollog.Device = DiscardDevice{}
)
