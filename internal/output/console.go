package output

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/hyp3rd/ewrap"
	"github.com/mattn/go-isatty"

	"github.com/hyp3rd/spoollog"
)

const defaultBufferSize = 512

// ColorMode determines how colors are handled.
type ColorMode int

const (
	// ColorModeAuto detects if the output supports colors.
	ColorModeAuto ColorMode = iota
	// ColorModeAlways forces color output.
	ColorModeAlways
	// ColorModeNever disables color output.
	ColorModeNever
)

// ColorModeFrom maps a ColorConfig onto a ColorMode.
func ColorModeFrom(cfg spoollog.ColorConfig) ColorMode {
	switch {
	case !cfg.Enable:
		return ColorModeNever
	case cfg.ForceTTY:
		return ColorModeAlways
	default:
		return ColorModeAuto
	}
}

// ConsoleDevice writes records to a console stream, colouring each line by the
// level marker it starts with.
type ConsoleDevice struct {
	out        io.Writer
	mode       ColorMode
	isTerminal bool
	colors     map[spoollog.Level]string
	buffer     *bytes.Buffer
	mu         sync.Mutex
}

// NewConsoleDevice creates a console device. A nil writer defaults to os.Stdout;
// nil colors fall back to spoollog.DefaultLevelColors.
func NewConsoleDevice(out io.Writer, mode ColorMode, colors map[spoollog.Level]string) *ConsoleDevice {
	if out == nil {
		out = os.Stdout
	}

	if colors == nil {
		colors = spoollog.DefaultLevelColors()
	}

	return &ConsoleDevice{
		out:        out,
		mode:       mode,
		isTerminal: IsTerminal(out),
		colors:     colors,
		buffer:     bytes.NewBuffer(make([]byte, 0, defaultBufferSize)),
	}
}

// Open implements spoollog.Device.
func (*ConsoleDevice) Open() error {
	return nil
}

// Write writes one record, wrapped in the level color when colors are in use.
// The trailing line break stays outside the color sequence.
func (d *ConsoleDevice) Write(payload []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	color := ""
	if d.shouldUseColors() {
		if level, ok := detectLevel(payload); ok {
			color = d.colors[level]
		}
	}

	if color == "" {
		_, err := d.out.Write(payload)
		if err != nil {
			return ewrap.Wrap(err, "failed writing to console output")
		}

		return nil
	}

	body, tail := splitLineEnding(payload)

	d.buffer.Reset()
	d.buffer.Grow(len(payload) + len(color) + len(spoollog.Reset))
	d.buffer.WriteString(color)
	d.buffer.Write(body)
	d.buffer.WriteString(spoollog.Reset)
	d.buffer.Write(tail)

	_, err := d.out.Write(d.buffer.Bytes())
	if err != nil {
		return ewrap.Wrap(err, "failed writing to console output")
	}

	return nil
}

// Close syncs the underlying stream when it supports it. Standard streams are left alone.
func (d *ConsoleDevice) Close() error {
	return syncWriter(d.out)
}

// shouldUseColors determines if color output should be used based on mode and terminal support.
//
//nolint:exhaustive // ColorModeAuto is handled as default.
func (d *ConsoleDevice) shouldUseColors() bool {
	switch d.mode {
	case ColorModeAlways:
		return true
	case ColorModeNever:
		return false
	default:
		return d.isTerminal
	}
}

// detectLevel reads the level marker a composed line starts with, e.g. "W/".
func detectLevel(payload []byte) (spoollog.Level, bool) {
	const markerLen = 2

	if len(payload) < markerLen || payload[1] != '/' {
		return 0, false
	}

	for level := spoollog.AssertLevel; level <= spoollog.VerboseLevel; level++ {
		if payload[0] == level.Marker()[0] {
			return level, true
		}
	}

	return 0, false
}

// splitLineEnding separates trailing CR, LF and NUL bytes from the line body.
func splitLineEnding(payload []byte) ([]byte, []byte) {
	end := len(payload)
	for end > 0 {
		switch payload[end-1] {
		case '\r', '\n', 0:
			end--

			continue
		}

		break
	}

	return payload[:end], payload[end:]
}

// IsTerminal checks if the given writer is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var _ spoollog.Device = (*ConsoleDevice)(nil)
