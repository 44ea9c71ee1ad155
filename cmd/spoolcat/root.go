package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hyp3rd/ewrap"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hyp3rd/spoollog"
	"github.com/hyp3rd/spoollog/internal/constants"
	"github.com/hyp3rd/spoollog/pkg/configloader"
	"github.com/hyp3rd/spoollog/pkg/engine"
)

type options struct {
	configPath string
	level      string
	minLevel   string
	tag        string
	filterTag  string
	keyword    string
	file       string
	format     []string
	interval   time.Duration
	bufferSize int
	color      bool
	stats      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "spoolcat",
		Short: "Spool stdin lines through a filtering log engine",
		Long: "spoolcat logs every line read from stdin at a fixed level and tag, " +
			"applies the level, tag and keyword filters, and flushes the spooled lines " +
			"to stdout or a file.",
		Version:       constants.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML config file (env SPOOLLOG_* still applies)")
	flags.StringVarP(&opts.level, "level", "l", "info", "level every input line is logged at")
	flags.StringVar(&opts.minLevel, "min-level", "", "least severe level that passes the filter")
	flags.StringVarP(&opts.tag, "tag", "t", "STDIN", "tag every input line is logged under")
	flags.StringVar(&opts.filterTag, "filter-tag", "", "only keep lines whose tag contains this text")
	flags.StringVarP(&opts.keyword, "keyword", "k", "", "only flush lines containing this keyword")
	flags.StringVarP(&opts.file, "file", "f", "", "append flushed lines to this file instead of stdout")
	flags.StringSliceVar(&opts.format, "format", nil, "fields prefixing every line (level,tag,time,process,thread,file,func,line)")
	flags.DurationVarP(&opts.interval, "interval", "i", 0, "flush period, 0 flushes only at end of input")
	flags.IntVar(&opts.bufferSize, "buffer-size", 0, "scratch buffer size in bytes")
	flags.BoolVar(&opts.color, "color", false, "color lines by level when writing to a terminal")
	flags.BoolVar(&opts.stats, "stats", false, "print queue counters to stderr when done")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := buildConfig(cmd, opts)
	if err != nil {
		return err
	}

	level, err := spoollog.ParseLevel(opts.level)
	if err != nil {
		return err
	}

	eng, err := engine.New(*cfg)
	if err != nil {
		return err
	}

	readDone := make(chan struct{})

	group, ctx := errgroup.WithContext(cmd.Context())

	group.Go(func() error {
		defer close(readDone)

		return pump(ctx, cmd.InOrStdin(), eng, level, opts.tag)
	})

	if opts.interval > 0 {
		group.Go(func() error {
			return flushLoop(ctx, eng, opts.interval, readDone)
		})
	}

	err = group.Wait()

	closeErr := eng.Close()
	if err == nil {
		err = closeErr
	}

	if opts.stats {
		printStats(cmd.ErrOrStderr(), eng.Stats())
	}

	return err
}

func buildConfig(cmd *cobra.Command, opts *options) (*spoollog.Config, error) {
	cfg := spoollog.DefaultConfig()

	if opts.configPath != "" {
		loaded, err := configloader.FromFile(opts.configPath)
		if err != nil {
			return nil, err
		}

		cfg = *loaded
	}

	flags := cmd.Flags()

	if cfg.FilePath == "" && cfg.Output == os.Stdout {
		cfg.Output = cmd.OutOrStdout()
	}

	if flags.Changed("min-level") {
		level, err := spoollog.ParseLevel(opts.minLevel)
		if err != nil {
			return nil, err
		}

		cfg.Level = level
	}

	if flags.Changed("filter-tag") {
		cfg.Tag = opts.filterTag
	}

	if flags.Changed("keyword") {
		cfg.Keyword = opts.keyword
	}

	if opts.file != "" {
		cfg.FilePath = opts.file
	}

	if flags.Changed("format") {
		mask, err := spoollog.ParseFormatMask(opts.format)
		if err != nil {
			return nil, err
		}

		for level := range cfg.Formats {
			cfg.Formats[level] = mask
		}
	}

	if flags.Changed("buffer-size") {
		cfg.BufferSize = opts.bufferSize
	}

	if flags.Changed("color") || opts.configPath == "" {
		cfg.Color.Enable = opts.color
	}

	// The CLI drives flushing itself.
	cfg.FlushInterval = 0
	cfg.ErrorHandler = func(err error) {
		fmt.Fprintln(cmd.ErrOrStderr(), "spoolcat:", err)
	}

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func pump(ctx context.Context, in io.Reader, eng *engine.Engine, level spoollog.Level, tag string) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		eng.Log(level, tag, "stdin", "spoolcat", 0, "%s", scanner.Text())
	}

	err := scanner.Err()
	if err != nil {
		return ewrap.Wrap(err, "reading input")
	}

	return nil
}

func flushLoop(ctx context.Context, eng *engine.Engine, interval time.Duration, readDone <-chan struct{}) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-readDone:
			return nil
		case <-ticker.C:
			err := eng.Flush()
			if err != nil {
				return err
			}
		}
	}
}

func printStats(out io.Writer, stats spoollog.Stats) {
	fmt.Fprintf(out, "enqueued=%d written=%d filtered=%d dropped=%d write_errors=%d flushes=%d\n",
		stats.Enqueued, stats.Written, stats.Filtered, stats.Dropped, stats.WriteErrors, stats.Flushes)
}
