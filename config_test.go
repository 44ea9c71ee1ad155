package spoollog

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, os.Stdout, config.Output)
	assert.Equal(t, DefaultLevel, config.Level)
	assert.Equal(t, DefaultBufferSize, config.BufferSize)
	assert.Equal(t, DefaultLockTimeout, config.LockTimeout)
	assert.Equal(t, DefaultFormats(), config.Formats)
	assert.True(t, config.OutputEnabled)
	assert.Zero(t, config.MaxPendingBytes)
	assert.Zero(t, config.FlushInterval)
	assert.Empty(t, config.Tag)
	assert.Empty(t, config.Keyword)
	require.NoError(t, config.Validate())
}

func TestProductionConfig(t *testing.T) {
	config := ProductionConfig()

	assert.Equal(t, InfoLevel, config.Level)
	assert.False(t, config.Color.Enable)
	assert.Positive(t, config.MaxPendingBytes)
	assert.Equal(t, time.Second, config.FlushInterval)
	require.NoError(t, config.Validate())
}

func TestDevelopmentConfig(t *testing.T) {
	config := DevelopmentConfig()

	assert.Equal(t, VerboseLevel, config.Level)
	assert.True(t, config.Color.Enable)
	assert.True(t, config.Formats[DebugLevel].Has(FmtFunc))
	assert.True(t, config.Formats[VerboseLevel].Has(FmtLine))
	assert.Equal(t, DefaultFormats()[InfoLevel], config.Formats[InfoLevel])
	require.NoError(t, config.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"invalid level", func(c *Config) { c.Level = Level(9) }},
		{"buffer too small", func(c *Config) { c.BufferSize = 4 }},
		{"negative budget", func(c *Config) { c.MaxPendingBytes = -1 }},
		{"negative lock timeout", func(c *Config) { c.LockTimeout = -time.Millisecond }},
		{"negative flush interval", func(c *Config) { c.FlushInterval = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)

			err := config.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	t.Run("zero buffer size means default", func(t *testing.T) {
		config := DefaultConfig()
		config.BufferSize = 0

		require.NoError(t, config.Validate())
	})
}

func TestSetOutput(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		wantWriter io.Writer
		wantErr    bool
	}{
		{name: "stdout output", output: "stdout", wantWriter: os.Stdout},
		{name: "stderr output", output: "STDERR", wantWriter: os.Stderr},
		{name: "discard output", output: " discard ", wantWriter: io.Discard},
		{name: "bare file keyword", output: "file", wantErr: true},
		{name: "empty path", output: "", wantErr: true},
		{name: "traversal", output: "../../outside.log", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer, err := SetOutput(tt.output)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, writer)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantWriter, writer)
		})
	}

	t.Run("file path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "spool.log")

		writer, err := SetOutput(path)
		require.NoError(t, err)

		file, ok := writer.(*os.File)
		require.True(t, ok)

		t.Cleanup(func() { _ = file.Close() })

		_, err = io.WriteString(file, "I/line\r\n")
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "I/line\r\n", string(content))
	})
}
