package log

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyp3rd/spoollog"
	"github.com/hyp3rd/spoollog/internal/constants"
)

func TestNewWithDefaults(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		service     string
		wantLevel   spoollog.Level
		wantProcess bool
	}{
		{
			name:        "non-production environment",
			environment: constants.NonProductionEnvironment,
			service:     "test-service",
			wantLevel:   spoollog.VerboseLevel,
			wantProcess: true,
		},
		{
			name:        "production environment",
			environment: "production",
			service:     "test-service",
			wantLevel:   spoollog.InfoLevel,
			wantProcess: true,
		},
		{
			name:        "empty environment",
			environment: "",
			service:     "test-service",
			wantLevel:   spoollog.InfoLevel,
			wantProcess: true,
		},
		{
			name:        "empty service name",
			environment: constants.NonProductionEnvironment,
			service:     "",
			wantLevel:   spoollog.VerboseLevel,
			wantProcess: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, err := NewWithDefaults(context.Background(), tt.environment, tt.service)
			require.NoError(t, err)

			t.Cleanup(func() { _ = eng.Close() })

			assert.Equal(t, tt.wantLevel, eng.Filter().Level)
			assert.Equal(t, tt.wantProcess, eng.Format(spoollog.InfoLevel).Has(spoollog.FmtProcess))
		})
	}
}

func TestNewWithDefaultsClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	eng, err := NewWithDefaults(ctx, constants.NonProductionEnvironment, "svc")
	require.NoError(t, err)

	eng.SetOutputEnabled(false)
	cancel()

	assert.Eventually(t, func() bool {
		return eng.Flush() != nil
	}, time.Second, time.Millisecond)
}
