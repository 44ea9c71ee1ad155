// Package compose assembles log lines into a fixed-capacity scratch buffer.
//
// A line is built left to right from the fields enabled in the level's mask:
//
//	marker tag[pad] [time process thread] (file func:line): message\r\n
//
// Bracketed and parenthesised blocks appear only when one of their fields is
// enabled, and the ": " separator only when something precedes the message.
// When the message does not fit, the last three bytes of the buffer are forced
// to "\r\n\x00" so the truncated line is still terminated.
//
// A Composer is not safe for concurrent use; the engine serialises access with
// its scratch lock.
package compose

import (
	"fmt"

	"github.com/hyp3rd/spoollog"
	"github.com/hyp3rd/spoollog/internal/constants"
)

// tailSize is the room kept for "\r\n" and the terminating NUL.
const tailSize = 3

// Composer owns the scratch buffer.
type Composer struct {
	buf      []byte
	n        int
	limit    int
	overflow bool
	tagWidth int
	info     spoollog.InfoProvider
}

// New returns a composer with a scratch buffer of size bytes. Sizes below
// constants.MinScratchSize are raised to it.
func New(size int, info spoollog.InfoProvider) *Composer {
	if size < constants.MinScratchSize {
		size = constants.MinScratchSize
	}

	return &Composer{
		buf:      make([]byte, size),
		tagWidth: constants.TagMaxLen,
		info:     info,
	}
}

// Size returns the scratch capacity.
func (c *Composer) Size() int {
	return len(c.buf)
}

// Scratch returns the whole scratch buffer, including bytes past the last line.
func (c *Composer) Scratch() []byte {
	return c.buf
}

// Call carries the arguments of one log call.
type Call struct {
	Level  spoollog.Level
	Mask   spoollog.FormatMask
	Tag    string
	File   string
	Func   string
	Line   int
	Format string
	Args   []any
}

// Compose builds the line for call. The returned slice aliases the scratch buffer
// and is valid until the next call on c. truncated reports a forced tail.
func (c *Composer) Compose(call *Call) (line []byte, truncated bool) {
	c.reset(len(c.buf) - tailSize)

	mask := call.Mask

	if mask.Has(spoollog.FmtLevel) {
		c.putString(call.Level.Marker())
	}

	if mask.Has(spoollog.FmtTag) {
		c.putString(call.Tag)

		if half := c.tagWidth / 2; len(call.Tag) <= half {
			c.putSpaces(half - len(call.Tag))
		}

		c.putByte(' ')
	}

	if mask.Has(spoollog.FmtTime | spoollog.FmtProcess | spoollog.FmtThread) {
		c.putInfoBlock(mask)
	}

	if mask.Has(spoollog.FmtFile | spoollog.FmtFunc | spoollog.FmtLine) {
		c.putSourceBlock(mask, call)
	}

	if c.n != 0 {
		c.putByte(':')
		c.putByte(' ')
	}

	fmt.Fprintf(c, call.Format, call.Args...)

	if c.overflow {
		end := len(c.buf)
		c.buf[end-3] = '\r'
		c.buf[end-2] = '\n'
		c.buf[end-1] = 0

		return c.buf[:end-1], true
	}

	c.buf[c.n] = '\r'
	c.buf[c.n+1] = '\n'
	c.buf[c.n+2] = 0

	return c.buf[:c.n+2], false
}

// Raw renders format with no fields and no line terminator. ok is false when the
// text does not fit, in which case nothing should be queued.
func (c *Composer) Raw(format string, args ...any) (line []byte, ok bool) {
	c.reset(len(c.buf) - 1)

	fmt.Fprintf(c, format, args...)

	if c.overflow {
		return nil, false
	}

	c.buf[c.n] = 0

	return c.buf[:c.n], true
}

// Write implements io.Writer over the bounded region of the scratch buffer.
// Bytes past the limit are discarded and mark the composition as overflowed.
func (c *Composer) Write(p []byte) (int, error) {
	room := c.limit - c.n
	if len(p) > room {
		c.n += copy(c.buf[c.n:c.limit], p[:room])
		c.overflow = true

		return len(p), nil
	}

	c.n += copy(c.buf[c.n:], p)

	return len(p), nil
}

func (c *Composer) reset(limit int) {
	c.n = 0
	c.limit = limit
	c.overflow = false
}

func (c *Composer) putInfoBlock(mask spoollog.FormatMask) {
	c.putByte('[')

	if mask.Has(spoollog.FmtTime) {
		c.putString(c.info.Time())

		if mask.Has(spoollog.FmtProcess | spoollog.FmtThread) {
			c.putByte(' ')
		}
	}

	if mask.Has(spoollog.FmtProcess) {
		c.putString(c.info.Process())

		if mask.Has(spoollog.FmtThread) {
			c.putByte(' ')
		}
	}

	if mask.Has(spoollog.FmtThread) {
		c.putString(c.info.Thread())
	}

	c.putByte(']')
	c.putByte(' ')
}

func (c *Composer) putSourceBlock(mask spoollog.FormatMask, call *Call) {
	c.putByte('(')

	if mask.Has(spoollog.FmtFile) {
		c.putString(call.File)

		if mask.Has(spoollog.FmtFunc) {
			c.putByte(' ')
		} else if mask.Has(spoollog.FmtLine) {
			c.putByte(':')
		}
	}

	if mask.Has(spoollog.FmtFunc) {
		c.putString(call.Func)

		if mask.Has(spoollog.FmtLine) {
			c.putByte(':')
		}
	}

	if mask.Has(spoollog.FmtLine) {
		line := call.Line
		if line < 0 {
			line = 0
		}

		c.putLineNumber(uint64(line))
	}

	c.putByte(')')
}

func (c *Composer) putString(s string) {
	room := c.limit - c.n
	if len(s) > room {
		s = s[:room]
	}

	c.n += copy(c.buf[c.n:], s)
}

func (c *Composer) putByte(b byte) {
	if c.n < c.limit {
		c.buf[c.n] = b
		c.n++
	}
}

func (c *Composer) putSpaces(count int) {
	for range count {
		c.putByte(' ')
	}
}
