// Package configloader builds spoollog configurations with Viper.
//
// Configuration can come from environment variables, a YAML document or a YAML
// file with environment overrides. Watch keeps a running engine's filter and
// formats in sync with a file as it changes on disk.
package configloader

import (
	"bytes"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/hyp3rd/ewrap"
	"github.com/spf13/viper"

	"github.com/hyp3rd/spoollog"
)

const defaultEnvPrefix = "SPOOLLOG"

// FromEnv loads configuration sourced from environment variables using the provided prefix.
// Environment keys are normalized by uppercasing and replacing dots with underscores,
// e.g. SPOOLLOG_FILE_PATH or SPOOLLOG_FORMATS_INFO="level,tag".
func FromEnv(prefix string) (*spoollog.Config, error) {
	viperInstance := viper.New()

	err := bindEnvironment(viperInstance, normalizePrefix(prefix))
	if err != nil {
		return nil, err
	}

	return fromViper(viperInstance)
}

// FromYAML loads configuration from a YAML document provided as bytes.
func FromYAML(data []byte) (*spoollog.Config, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigType("yaml")

	err := viperInstance.ReadConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to read YAML configuration")
	}

	return fromViper(viperInstance)
}

// FromFile loads configuration from a YAML file and merges environment overrides using the default prefix.
func FromFile(path string) (*spoollog.Config, error) {
	viperInstance, err := newFileViper(path)
	if err != nil {
		return nil, err
	}

	return fromViper(viperInstance)
}

// Apply pushes the runtime-adjustable parts of cfg into target: the filter, the
// per-level formats and the output switch.
func Apply(cfg *spoollog.Config, target spoollog.Controls) error {
	errorGroup := ewrap.NewErrorGroup()

	err := target.SetFilter(cfg.Level, cfg.Tag, cfg.Keyword)
	if err != nil {
		errorGroup.Add(err)
	}

	for level, mask := range cfg.Formats {
		err = target.SetFormat(spoollog.Level(level), mask)
		if err != nil {
			errorGroup.Add(err)
		}
	}

	target.SetOutputEnabled(cfg.OutputEnabled)

	if errorGroup.HasErrors() {
		return errorGroup
	}

	return nil
}

// Watch applies the file at path to target and re-applies it every time the file
// changes. Reload failures are passed to onError and leave target untouched.
// Settings that only take effect at construction, such as the buffer size or the
// output, are ignored on reload.
func Watch(path string, target spoollog.Controls, onError func(error)) error {
	viperInstance, err := newFileViper(path)
	if err != nil {
		return err
	}

	cfg, err := fromViper(viperInstance)
	if err != nil {
		return err
	}

	err = Apply(cfg, target)
	if err != nil {
		return err
	}

	if onError == nil {
		onError = func(error) {}
	}

	viperInstance.OnConfigChange(func(event fsnotify.Event) {
		reloaded, err := fromViper(viperInstance)
		if err != nil {
			onError(ewrap.Wrap(err, "reloading configuration").
				WithMetadata("path", event.Name).
				WithMetadata("op", event.Op.String()))

			return
		}

		err = Apply(reloaded, target)
		if err != nil {
			onError(err)
		}
	})
	viperInstance.WatchConfig()

	return nil
}

func newFileViper(path string) (*viper.Viper, error) {
	viperInstance := viper.New()

	err := bindEnvironment(viperInstance, defaultEnvPrefix)
	if err != nil {
		return nil, err
	}

	viperInstance.SetConfigFile(path)

	err = viperInstance.ReadInConfig()
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to read configuration file").
			WithMetadata("path", path)
	}

	return viperInstance, nil
}

func fromViper(viperInstance *viper.Viper) (*spoollog.Config, error) {
	var raw rawConfig

	// Env-bound keys are part of AllSettings, so Unmarshal sees overrides without
	// pinning them with Set, which would mask later file reloads.
	err := viperInstance.Unmarshal(&raw)
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to decode configuration")
	}

	return applyRaw(raw)
}

func bindEnvironment(viperInstance *viper.Viper, prefix string) error {
	replacer := strings.NewReplacer(".", "_")
	viperInstance.SetEnvKeyReplacer(replacer)

	if prefix != "" {
		viperInstance.SetEnvPrefix(prefix)
	}

	viperInstance.AutomaticEnv()

	errorGroup := ewrap.NewErrorGroup()

	for _, key := range allKeys() {
		err := viperInstance.BindEnv(key)
		if err != nil {
			errorGroup.Add(ewrap.Wrap(err, "failed to bind environment key").
				WithMetadata("key", key).
				WithMetadata("prefix", prefix))
		}
	}

	if errorGroup.HasErrors() {
		return errorGroup
	}

	return nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return defaultEnvPrefix
	}

	prefix = strings.TrimSuffix(prefix, "_")
	prefix = strings.ReplaceAll(prefix, "-", "_")

	return strings.ToUpper(prefix)
}
