package constants

// OutputType names a destination selectable from configuration.
type OutputType string

const (
	// LogOutputStdout represents the standard output stream.
	LogOutputStdout OutputType = "stdout"
	// LogOutputStderr represents the standard error stream.
	LogOutputStderr OutputType = "stderr"
	// LogOutputDiscard drops everything that is flushed.
	LogOutputDiscard OutputType = "discard"
	// LogOutputFile represents a file output.
	LogOutputFile OutputType = "file"
)

// IsValid returns true if the given OutputType is a valid output type, and false otherwise.
func (o OutputType) IsValid() bool {
	switch o {
	case LogOutputStdout, LogOutputStderr, LogOutputDiscard, LogOutputFile:
		return true
	default:
		return false
	}
}

// String returns the string representation of the OutputType.
func (o OutputType) String() string {
	return string(o)
}
