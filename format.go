package spoollog

import (
	"strings"

	"github.com/hyp3rd/ewrap"
)

// FormatMask selects the metadata fields written in front of a line.
// Each level carries its own mask.
type FormatMask uint8

// Format fields, in composition order.
const (
	// FmtLevel writes the level marker ("I/").
	FmtLevel FormatMask = 1 << iota
	// FmtTag writes the tag, padded for alignment.
	FmtTag
	// FmtTime writes the timestamp.
	FmtTime
	// FmtProcess writes the process info.
	FmtProcess
	// FmtThread writes the thread info.
	FmtThread
	// FmtFile writes the source file.
	FmtFile
	// FmtFunc writes the function name.
	FmtFunc
	// FmtLine writes the line number.
	FmtLine
)

// FmtAll enables every field.
const FmtAll = FmtLevel | FmtTag | FmtTime | FmtProcess | FmtThread | FmtFile | FmtFunc | FmtLine

//nolint:gochecknoglobals
var formatNames = []struct {
	name string
	flag FormatMask
}{
	{"level", FmtLevel},
	{"tag", FmtTag},
	{"time", FmtTime},
	{"process", FmtProcess},
	{"thread", FmtThread},
	{"file", FmtFile},
	{"func", FmtFunc},
	{"line", FmtLine},
}

// Has reports whether any of the given flags is set.
func (m FormatMask) Has(flags FormatMask) bool {
	return m&flags != 0
}

// String lists the enabled fields joined by '|'.
func (m FormatMask) String() string {
	if m == 0 {
		return "none"
	}

	parts := make([]string, 0, len(formatNames))

	for _, f := range formatNames {
		if m.Has(f.flag) {
			parts = append(parts, f.name)
		}
	}

	return strings.Join(parts, "|")
}

// ParseFormatMask builds a mask from field names. "all" and "none" are accepted.
func ParseFormatMask(fields []string) (FormatMask, error) {
	var mask FormatMask

	for _, raw := range fields {
		name := strings.ToLower(strings.TrimSpace(raw))

		switch name {
		case "":
			continue
		case "all":
			mask |= FmtAll

			continue
		case "none":
			continue
		}

		found := false

		for _, f := range formatNames {
			if f.name == name {
				mask |= f.flag
				found = true

				break
			}
		}

		if !found {
			return 0, ewrap.Wrap(ErrInvalidFormat, "parsing format mask").WithMetadata("field", raw)
		}
	}

	return mask, nil
}

// DefaultFormats returns the per-level masks applied at startup.
// Assert lines carry the full source location; Error and Warn carry the function.
func DefaultFormats() [LevelCount]FormatMask {
	base := FmtLevel | FmtTag | FmtTime

	return [LevelCount]FormatMask{
		AssertLevel:  base | FmtFile | FmtFunc | FmtLine,
		ErrorLevel:   base | FmtFunc,
		WarnLevel:    base | FmtFunc,
		InfoLevel:    base,
		DebugLevel:   base,
		VerboseLevel: base,
	}
}

// Filter is the level/tag/keyword filter configuration.
type Filter struct {
	// Level is the inclusive severity threshold.
	Level Level
	// Tag must be a substring of a call's tag for the call to be queued.
	Tag string
	// Keyword must be a substring of a queued line for it to be written at flush.
	Keyword string
}
