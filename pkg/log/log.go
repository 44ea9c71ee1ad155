// Package log provides the application entry point for creating a spooling engine.
//
// NewWithDefaults picks settings from the environment name:
//
// - In non-production environments: every level, source locations on debug lines, colors
// - In production environments: Info and above, a bounded queue and a one second flush
//
// The service name is written in the process field of each line.
//
// Usage:
//
//	eng, err := log.NewWithDefaults(ctx, "development", "gateway")
//	if err != nil {
//		panic(err)
//	}
//
//	eng.Infof("BOOT", "service started")
package log

import (
	"context"
	"os"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/spoollog"
	"github.com/hyp3rd/spoollog/internal/constants"
	"github.com/hyp3rd/spoollog/internal/port"
	"github.com/hyp3rd/spoollog/pkg/engine"
)

// NewWithDefaults creates an engine writing to stdout, configured for environment.
// The service name replaces the process label and is shown on every level.
// The engine is closed when ctx is cancelled.
func NewWithDefaults(ctx context.Context, environment, service string) (*engine.Engine, error) {
	var cfg spoollog.Config

	if environment == constants.NonProductionEnvironment {
		cfg = spoollog.DevelopmentConfig()
	} else {
		cfg = spoollog.ProductionConfig()
	}

	cfg.Output = os.Stdout

	if service != "" {
		cfg.Info = port.NewSystemInfo(port.WithProcessLabel(service))

		for level := range cfg.Formats {
			cfg.Formats[level] |= spoollog.FmtProcess
		}
	}

	eng, err := engine.New(cfg)
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to create engine").
			WithMetadata("environment", environment).
			WithMetadata("service", service)
	}

	if done := ctx.Done(); done != nil {
		go func() {
			<-done

			_ = eng.Close() //nolint:errcheck // nothing left to report to
		}()
	}

	return eng, nil
}
