package configloader

import (
	"strings"
	"time"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/spoollog"
	"github.com/hyp3rd/spoollog/internal/constants"
)

type rawConfig struct {
	Level           string              `mapstructure:"level"             yaml:"level"`
	Tag             *string             `mapstructure:"tag"               yaml:"tag"`
	Keyword         *string             `mapstructure:"keyword"           yaml:"keyword"`
	Output          string              `mapstructure:"output"            yaml:"output"`
	OutputEnabled   *bool               `mapstructure:"output_enabled"    yaml:"output_enabled"`
	BufferSize      *int                `mapstructure:"buffer_size"       yaml:"buffer_size"`
	MaxPendingBytes *int                `mapstructure:"max_pending_bytes" yaml:"max_pending_bytes"`
	LockTimeout     *time.Duration      `mapstructure:"lock_timeout"      yaml:"lock_timeout"`
	FlushInterval   *time.Duration      `mapstructure:"flush_interval"    yaml:"flush_interval"`
	Formats         map[string][]string `mapstructure:"formats"           yaml:"formats"`
	Color           struct {
		Enable   *bool `mapstructure:"enable"    yaml:"enable"`
		ForceTTY *bool `mapstructure:"force_tty" yaml:"force_tty"`
	} `mapstructure:"color" yaml:"color"`
	File struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"file" yaml:"file"`
}

func applyRaw(raw rawConfig) (*spoollog.Config, error) {
	cfg := spoollog.DefaultConfig()

	if raw.Level != "" {
		level, err := spoollog.ParseLevel(raw.Level)
		if err != nil {
			return nil, err
		}

		cfg.Level = level
	}

	if raw.Tag != nil {
		cfg.Tag = *raw.Tag
	}

	if raw.Keyword != nil {
		cfg.Keyword = *raw.Keyword
	}

	if raw.OutputEnabled != nil {
		cfg.OutputEnabled = *raw.OutputEnabled
	}

	if raw.BufferSize != nil {
		cfg.BufferSize = *raw.BufferSize
	}

	if raw.MaxPendingBytes != nil {
		cfg.MaxPendingBytes = *raw.MaxPendingBytes
	}

	if raw.LockTimeout != nil {
		cfg.LockTimeout = *raw.LockTimeout
	}

	if raw.FlushInterval != nil {
		cfg.FlushInterval = *raw.FlushInterval
	}

	if raw.Color.Enable != nil {
		cfg.Color.Enable = *raw.Color.Enable
	}

	if raw.Color.ForceTTY != nil {
		cfg.Color.ForceTTY = *raw.Color.ForceTTY
	}

	err := applyFormats(&cfg, raw.Formats)
	if err != nil {
		return nil, err
	}

	err = applyOutput(&cfg, raw)
	if err != nil {
		return nil, err
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyFormats(cfg *spoollog.Config, formats map[string][]string) error {
	for name, fields := range formats {
		level, err := spoollog.ParseLevel(name)
		if err != nil {
			return ewrap.Wrap(err, "invalid formats key").WithMetadata("key", name)
		}

		mask, err := spoollog.ParseFormatMask(splitFields(fields))
		if err != nil {
			return ewrap.Wrap(err, "invalid format").WithMetadata("level", level.String())
		}

		cfg.Formats[level] = mask
	}

	return nil
}

// splitFields accepts both YAML lists and comma separated strings from the environment.
func splitFields(fields []string) []string {
	out := make([]string, 0, len(fields))

	for _, field := range fields {
		out = append(out, strings.Split(field, ",")...)
	}

	return out
}

func applyOutput(cfg *spoollog.Config, raw rawConfig) error {
	output := strings.ToLower(strings.TrimSpace(raw.Output))

	switch {
	case output == constants.LogOutputFile.String() || (output == "" && raw.File.Path != ""):
		if raw.File.Path == "" {
			return ewrap.Wrap(spoollog.ErrInvalidConfig, "file output requires file.path")
		}

		cfg.FilePath = raw.File.Path
	case output != "":
		writer, err := spoollog.SetOutput(raw.Output)
		if err != nil {
			return err
		}

		cfg.Output = writer
	}

	return nil
}

func allKeys() []string {
	keys := []string{
		"level",
		"tag",
		"keyword",
		"output",
		"output_enabled",
		"buffer_size",
		"max_pending_bytes",
		"lock_timeout",
		"flush_interval",
		"color.enable",
		"color.force_tty",
		"file.path",
	}

	for level := spoollog.AssertLevel; level <= spoollog.VerboseLevel; level++ {
		keys = append(keys, "formats."+strings.ToLower(level.String()))
	}

	return keys
}
