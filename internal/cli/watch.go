package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/HartBrook/toonify/internal/convert"
	"github.com/HartBrook/toonify/internal/errors"
	"github.com/HartBrook/toonify/internal/memo"
	"github.com/HartBrook/toonify/internal/watch"
)

type watchOptions struct {
	format   string
	debounce time.Duration
	noStats  bool
}

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-convert a file whenever it changes",
		Long: `Converts a file, then converts it again each time it is saved.

Bursts of filesystem events are debounced, and saves that leave the content
unchanged are skipped. Press Ctrl+C to stop.`,
		Example: `  toonify watch Login.tsx
  toonify watch data.json --debounce 1s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Input format: json, yaml, html, react, text or auto")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 0, "Quiet period before re-converting (default from config, 250ms)")
	cmd.Flags().BoolVar(&opts.noStats, "no-stats", false, "Do not print token statistics")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, opts *watchOptions, path string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	flagFormat, err := parseFormatFlag(opts.format)
	if err != nil {
		return err
	}
	format := formatFor(flagFormat, path, s.cfg)

	debounce := opts.debounce
	if debounce <= 0 {
		debounce = s.cfg.Watch.DebounceDuration()
	}

	engine, err := memo.New(convert.NewEngine(), s.cfg.Memo.Size, s.logger)
	if err != nil {
		return errors.ConfigInvalid(err.Error())
	}

	w, err := watch.New(path, debounce, s.logger)
	if err != nil {
		return errors.WatchFailed(path, err)
	}

	out := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	printSuccess(stderr, "Watching %s %s", w.Path(), dim("(Ctrl+C to stop)"))

	handle := func(content string) {
		r := engine.Convert(content, format)
		fmt.Fprintf(out, "%s\n", dim(fmt.Sprintf("==> %s %s <==", path, time.Now().Format(time.TimeOnly))))
		if r.Tokens != "" {
			fmt.Fprintln(out, r.Tokens)
		}
		if s.cfg.Stats && !opts.noStats {
			displayStats(stderr, convertedInput{Input: path, Result: r}, false)
		}
	}

	if err := w.Run(ctx, handle); err != nil {
		return errors.WatchFailed(path, err)
	}

	st := engine.Stats()
	s.logger.Debug("watch stopped", "conversions", st.Misses, "memo_hits", st.Hits)
	return nil
}
