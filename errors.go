package spoollog

import "github.com/hyp3rd/ewrap"

// Common errors returned by configuration and flush calls.
var (
	// ErrInvalidLevel is returned when a level is outside Assert..Verbose.
	ErrInvalidLevel = ewrap.New("invalid log level")

	// ErrInvalidFormat is returned when a format field name is not recognised.
	ErrInvalidFormat = ewrap.New("invalid format field")

	// ErrDeviceOpen is returned by Flush when the output device could not be opened.
	// The pending queue has been discarded when this is reported.
	ErrDeviceOpen = ewrap.New("output device unavailable")

	// ErrEngineClosed is returned when operating on a closed engine.
	ErrEngineClosed = ewrap.New("engine is closed")

	// ErrEmptyKeyword is returned when a skip table is requested for an empty keyword.
	ErrEmptyKeyword = ewrap.New("keyword cannot be empty")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = ewrap.New("invalid configuration")
)
