package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/HartBrook/toonify/internal/config"
	"github.com/HartBrook/toonify/internal/convert"
	"github.com/HartBrook/toonify/internal/errors"
	"github.com/HartBrook/toonify/internal/memo"
)

type convertOptions struct {
	format  string
	output  string
	noStats bool
	json    bool
}

// convertedInput pairs an input name with its conversion.
type convertedInput struct {
	Input string `json:"input"`
	convert.Result
}

// NewConvertCmd creates the convert command.
func NewConvertCmd() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Convert files or stdin to notation",
		Long: `Converts each input to notation and prints the result.

With no files, or with -, input is read from stdin. Several files are
converted concurrently and printed in argument order.

The format is taken from --format, then the file extension, then the
configured default. "auto" detects it from the content.

Token statistics (estimated input and output tokens, savings) are printed
to stderr unless --no-stats is given or stats are disabled in the config.`,
		Example: `  toonify convert data.json                # Convert a file
  cat page.html | toonify convert          # Convert stdin
  toonify convert -f react Login.js        # Skip detection
  toonify convert a.json b.yaml c.tsx      # Convert several files
  toonify convert notes.md -o notes.toon   # Write the result to a file
  toonify convert --json data.json         # Machine-readable output`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Input format: json, yaml, html, react, text or auto")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write notation to file (single input only)")
	cmd.Flags().BoolVar(&opts.noStats, "no-stats", false, "Do not print token statistics")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print results as JSON")

	return cmd
}

func runConvert(cmd *cobra.Command, opts *convertOptions, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	flagFormat, err := parseFormatFlag(opts.format)
	if err != nil {
		return err
	}

	inputs := args
	if len(inputs) == 0 {
		inputs = []string{stdinArg}
	}
	if opts.output != "" && len(inputs) > 1 {
		return errors.New(errors.ErrOutputFailed,
			"--output accepts a single input",
			"Drop --output to print every result, or convert one file at a time")
	}

	engine, err := memo.New(convert.NewEngine(), s.cfg.Memo.Size, s.logger)
	if err != nil {
		return errors.ConfigInvalid(err.Error())
	}

	results, err := convertInputs(cmd.Context(), cmd.InOrStdin(), engine, inputs, func(path string) convert.Format {
		return formatFor(flagFormat, path, s.cfg)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("converted inputs", "count", len(results), "memo_hits", engine.Stats().Hits)

	out := cmd.OutOrStdout()
	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(results[0].Tokens+"\n"), config.DefaultFileMode); err != nil {
			return errors.OutputFailed(opts.output, err)
		}
		printSuccess(cmd.ErrOrStderr(), "Wrote %s", opts.output)
	} else if opts.json {
		if err := writeJSONResults(out, results); err != nil {
			return err
		}
	} else {
		writeTextResults(out, results)
	}

	if s.cfg.Stats && !opts.noStats && !opts.json {
		for _, r := range results {
			displayStats(cmd.ErrOrStderr(), r, len(results) > 1)
		}
	}

	failed := 0
	for _, r := range results {
		if r.IsError() {
			failed++
		}
	}
	if failed > 0 {
		return errors.ConversionFailed(failed)
	}
	return nil
}

// convertInputs reads and converts inputs concurrently. Results keep argument order.
// Stdin is read once, up front, however many times "-" appears.
func convertInputs(ctx context.Context, stdin io.Reader, engine *memo.Engine, inputs []string, formatOf func(string) convert.Format) ([]convertedInput, error) {
	var stdinContent string
	for _, in := range inputs {
		if in == stdinArg {
			content, err := readInput(stdin, stdinArg)
			if err != nil {
				return nil, err
			}
			stdinContent = content
			break
		}
	}

	results := make([]convertedInput, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content := stdinContent
			if in != stdinArg {
				var err error
				if content, err = readInput(nil, in); err != nil {
					return err
				}
			}
			results[i] = convertedInput{Input: in, Result: engine.Convert(content, formatOf(in))}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeTextResults(w io.Writer, results []convertedInput) {
	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, dim(fmt.Sprintf("==> %s <==", displayName(r.Input))))
		}
		if r.Tokens != "" {
			fmt.Fprintln(w, r.Tokens)
		}
	}
}

func writeJSONResults(w io.Writer, results []convertedInput) error {
	var v any = results
	if len(results) == 1 {
		v = results[0]
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrOutputFailed, "failed to encode results", "", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// displayStats prints the token statistics for one result.
func displayStats(w io.Writer, r convertedInput, named bool) {
	stats := r.Stats()

	fmt.Fprintln(w)
	if named {
		fmt.Fprintf(w, "  %s\n", info(displayName(r.Input)))
	}
	printInfo(w, "Format", r.Format.Label())
	fmt.Fprintf(w, "  %s: %d tokens\n", dim("Before"), stats.Before)
	fmt.Fprintf(w, "  %s: %d tokens\n", dim("After"), stats.After)

	saved := fmt.Sprintf("%d tokens (%.0f%%)", stats.Saved(), stats.PercentReduction())
	switch {
	case r.IsError():
		printWarning(w, "Conversion failed: %s", strings.TrimPrefix(r.Tokens, "ERROR "))
	case stats.Saved() > 0:
		fmt.Fprintf(w, "  %s: %s\n", dim("Saved"), success(saved))
	default:
		fmt.Fprintf(w, "  %s: %s\n", dim("Saved"), warning(saved))
	}
}

func displayName(input string) string {
	if input == stdinArg {
		return "stdin"
	}
	return input
}
