package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyp3rd/spoollog"
)

func TestNewRejectsInvalidLevel(t *testing.T) {
	_, err := New(spoollog.Level(9))
	require.ErrorIs(t, err, spoollog.ErrInvalidLevel)
}

func TestAdmitForCompose(t *testing.T) {
	base, err := New(spoollog.WarnLevel)
	require.NoError(t, err)

	tagged := base.WithTag("NET")

	tests := []struct {
		name  string
		state *State
		level spoollog.Level
		tag   string
		want  bool
	}{
		{"more severe passes", base, spoollog.ErrorLevel, "APP", true},
		{"threshold is inclusive", base, spoollog.WarnLevel, "APP", true},
		{"less severe rejected", base, spoollog.InfoLevel, "APP", false},
		{"verbose rejected", base, spoollog.VerboseLevel, "APP", false},
		{"empty filter tag matches all", base, spoollog.AssertLevel, "", true},
		{"tag substring matches", tagged, spoollog.ErrorLevel, "WIFI_NET", true},
		{"tag mismatch rejected", tagged, spoollog.ErrorLevel, "APP", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.AdmitForCompose(tt.level, tt.tag))
		})
	}
}

func TestKeywordTableLifetime(t *testing.T) {
	state, err := New(spoollog.VerboseLevel)
	require.NoError(t, err)
	assert.False(t, state.HasTable())
	assert.True(t, state.AdmitForFlush([]byte("anything")))

	withKeyword := state.WithKeyword("up")
	assert.True(t, withKeyword.HasTable())
	assert.True(t, withKeyword.AdmitForFlush([]byte("I/NET : conn up\r\n")))
	assert.False(t, withKeyword.AdmitForFlush([]byte("I/NET : conn down\r\n")))

	cleared := withKeyword.WithKeyword("")
	assert.False(t, cleared.HasTable())
	assert.Empty(t, cleared.Keyword())

	// the previous snapshot is untouched
	assert.True(t, withKeyword.HasTable())
}

func TestTruncation(t *testing.T) {
	state, err := New(spoollog.VerboseLevel)
	require.NoError(t, err)

	state = state.WithTag("ABCDEFGHIJKLMNOPQRSTUVWXYZ").WithKeyword("0123456789abcdefXYZ")

	assert.Equal(t, "ABCDEFGHIJKLMNOP", state.Tag())
	assert.Equal(t, "0123456789abcdef", state.Keyword())
}

func TestWithLevel(t *testing.T) {
	state, err := New(spoollog.VerboseLevel)
	require.NoError(t, err)

	next, err := state.WithLevel(spoollog.ErrorLevel)
	require.NoError(t, err)
	assert.Equal(t, spoollog.ErrorLevel, next.Level())
	assert.Equal(t, spoollog.VerboseLevel, state.Level())

	_, err = state.WithLevel(spoollog.Level(6))
	require.ErrorIs(t, err, spoollog.ErrInvalidLevel)

	assert.Equal(t, spoollog.Filter{Level: spoollog.ErrorLevel}, next.Snapshot())
}
