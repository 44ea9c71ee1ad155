// Package constants provides the fixed limits and defaults shared by the
// spooling engine: scratch buffer geometry, filter field widths and timeouts.
package constants

import "time"

const (
	// NonProductionEnvironment is the environment name for non-production environments.
	NonProductionEnvironment = "development"
	// DefaultTimeout bounds waits on stats handlers and background flush shutdown.
	DefaultTimeout = 5 * time.Second

	// ScratchSize is the default capacity of the composition buffer.
	ScratchSize = 256
	// MinScratchSize is the smallest buffer able to hold a marker, separator and CRLF tail.
	MinScratchSize = 16
	// TagMaxLen is the filter tag width; tags up to half of it are padded for alignment.
	TagMaxLen = 16
	// KeywordMaxLen is the maximum keyword filter length.
	KeywordMaxLen = 16
	// LockTimeout is the default wait on the scratch buffer lock.
	LockTimeout = 100 * time.Millisecond

	// InternalTag tags lines the engine emits about itself.
	InternalTag = "SPOOL"
	// Version is the engine version reported by tools.
	Version = "1.0.0"
)
