package configloader

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyp3rd/spoollog"
)

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("APP_LEVEL", "warn")
	t.Setenv("APP_TAG", "NET")
	t.Setenv("APP_KEYWORD", "link")
	t.Setenv("APP_OUTPUT", "stderr")
	t.Setenv("APP_BUFFER_SIZE", "512")
	t.Setenv("APP_MAX_PENDING_BYTES", "8192")
	t.Setenv("APP_LOCK_TIMEOUT", "250ms")
	t.Setenv("APP_FLUSH_INTERVAL", "2s")
	t.Setenv("APP_COLOR_ENABLE", "false")
	t.Setenv("APP_FORMATS_INFO", "level,tag,line")

	cfg, err := FromEnv("app_")
	require.NoError(t, err)

	require.Equal(t, spoollog.WarnLevel, cfg.Level)
	require.Equal(t, "NET", cfg.Tag)
	require.Equal(t, "link", cfg.Keyword)
	require.Equal(t, os.Stderr, cfg.Output)
	require.Equal(t, 512, cfg.BufferSize)
	require.Equal(t, 8192, cfg.MaxPendingBytes)
	require.Equal(t, 250*time.Millisecond, cfg.LockTimeout)
	require.Equal(t, 2*time.Second, cfg.FlushInterval)
	require.False(t, cfg.Color.Enable)
	require.Equal(t, spoollog.FmtLevel|spoollog.FmtTag|spoollog.FmtLine, cfg.Formats[spoollog.InfoLevel])
	require.Equal(t, spoollog.DefaultFormats()[spoollog.ErrorLevel], cfg.Formats[spoollog.ErrorLevel])
}

func TestFromFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()

	configPath := filepath.Join(dir, "config.yaml")
	configData := []byte(`
level: debug
tag: APP
output_enabled: false
formats:
  assert: [all]
  verbose: [none]
file:
  path: ` + filepath.Join(dir, "spool.log") + `
`)

	require.NoError(t, os.WriteFile(configPath, configData, 0o600))

	t.Setenv("SPOOLLOG_LEVEL", "error")

	cfg, err := FromFile(configPath)
	require.NoError(t, err)

	require.Equal(t, spoollog.ErrorLevel, cfg.Level)
	require.Equal(t, "APP", cfg.Tag)
	require.False(t, cfg.OutputEnabled)
	require.Equal(t, spoollog.FmtAll, cfg.Formats[spoollog.AssertLevel])
	require.Zero(t, cfg.Formats[spoollog.VerboseLevel])
	require.Equal(t, filepath.Join(dir, "spool.log"), cfg.FilePath)
}

func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte(`
level: info
keyword: boot
output: discard
`))
	require.NoError(t, err)

	assert.Equal(t, spoollog.InfoLevel, cfg.Level)
	assert.Equal(t, "boot", cfg.Keyword)
	assert.Equal(t, io.Discard, cfg.Output)
	assert.True(t, cfg.OutputEnabled)
}

func TestFromYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{name: "bad level", data: "level: loud", want: spoollog.ErrInvalidLevel},
		{name: "bad format key", data: "formats:\n  fatal: [level]", want: spoollog.ErrInvalidLevel},
		{name: "bad format field", data: "formats:\n  info: [color]", want: spoollog.ErrInvalidFormat},
		{name: "file without path", data: "output: file", want: spoollog.ErrInvalidConfig},
		{name: "buffer too small", data: "buffer_size: 4", want: spoollog.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromYAML([]byte(tt.data))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestApply(t *testing.T) {
	target := spoollog.NewNoop()

	cfg := spoollog.DefaultConfig()
	cfg.Level = spoollog.WarnLevel
	cfg.Tag = "NET"
	cfg.Keyword = "up"
	cfg.Formats[spoollog.InfoLevel] = spoollog.FmtLine
	cfg.OutputEnabled = false

	require.NoError(t, Apply(&cfg, target))

	assert.Equal(t, spoollog.Filter{Level: spoollog.WarnLevel, Tag: "NET", Keyword: "up"}, target.Filter())
	assert.Equal(t, spoollog.FmtLine, target.Format(spoollog.InfoLevel))
	assert.False(t, target.OutputEnabled())
}

// lockedControls serialises access to a NoopLogger shared with the watcher goroutine.
type lockedControls struct {
	spoollog.Logger

	mu sync.Mutex
}

func (l *lockedControls) SetFilter(level spoollog.Level, tag, keyword string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.Logger.SetFilter(level, tag, keyword)
}

func (l *lockedControls) SetFormat(level spoollog.Level, mask spoollog.FormatMask) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.Logger.SetFormat(level, mask)
}

func (l *lockedControls) SetOutputEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.Logger.SetOutputEnabled(enabled)
}

func (l *lockedControls) Filter() spoollog.Filter {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.Logger.Filter()
}

func TestWatch(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "spool.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("level: info\ntag: NET\n"), 0o600))

	target := &lockedControls{Logger: spoollog.NewNoop()}

	require.NoError(t, Watch(configPath, target, nil))
	assert.Equal(t, spoollog.Filter{Level: spoollog.InfoLevel, Tag: "NET"}, target.Filter())

	require.NoError(t, os.WriteFile(configPath, []byte("level: error\ntag: APP\nkeyword: boot\n"), 0o600))

	assert.Eventually(t, func() bool {
		return target.Filter() == spoollog.Filter{Level: spoollog.ErrorLevel, Tag: "APP", Keyword: "boot"}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestNormalizePrefix(t *testing.T) {
	assert.Equal(t, defaultEnvPrefix, normalizePrefix("  "))
	assert.Equal(t, "MY_APP", normalizePrefix("my-app_"))
}
