package spoollog

//nolint:revive // Pointless to comment the colors.
const (
	// ANSI color codes for terminal output.

	Black   = "\x1b[30m"
	Red     = "\x1b[31m"
	Green   = "\x1b[32m"
	Yellow  = "\x1b[33m"
	Blue    = "\x1b[34m"
	Magenta = "\x1b[35m"
	Cyan    = "\x1b[36m"
	White   = "\x1b[37m"

	BoldRed    = "\x1b[31;1m"
	BoldYellow = "\x1b[33;1m"

	// Reset resets the terminal's color settings.
	Reset = "\x1b[0m"
)

// DefaultLevelColors returns the ANSI color used for each level on a terminal.
func DefaultLevelColors() map[Level]string {
	return map[Level]string{
		AssertLevel:  BoldRed,
		ErrorLevel:   Red,
		WarnLevel:    BoldYellow,
		InfoLevel:    Green,
		DebugLevel:   Cyan,
		VerboseLevel: White,
	}
}

// ColorConfig holds color-related configuration for console devices.
type ColorConfig struct {
	// Enable enables colored output
	Enable bool
	// ForceTTY forces colored output even when the output is not a terminal
	ForceTTY bool
	// LevelColors maps log levels to their ANSI color codes
	LevelColors map[Level]string
}

// DefaultColorConfig returns colors enabled for terminals only.
func DefaultColorConfig() ColorConfig {
	return ColorConfig{
		Enable:      true,
		ForceTTY:    false,
		LevelColors: DefaultLevelColors(),
	}
}
