package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HartBrook/toonify/internal/convert"
	"github.com/HartBrook/toonify/internal/errors"
	"github.com/HartBrook/toonify/internal/starter"
)

// NewExampleCmd creates the example command.
func NewExampleCmd() *cobra.Command {
	var save string

	cmd := &cobra.Command{
		Use:   "example <" + strings.Join(starter.SampleNames(), "|") + ">",
		Short: "Show a sample input and its conversion",
		Long: `Prints one of the built-in sample inputs next to its notation.

Use --save to copy every sample file into a directory to experiment with.`,
		Example: `  toonify example json
  toonify example react
  toonify example --save ./samples`,
		Args: func(cmd *cobra.Command, args []string) error {
			if save != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		ValidArgs: starter.SampleNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if save != "" {
				return runExampleSave(cmd, save)
			}
			return runExample(cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&save, "save", "", "Copy the sample files into this directory")

	return cmd
}

func runExample(cmd *cobra.Command, name string) error {
	sample, err := starter.GetSample(name)
	if err != nil {
		return errors.New(errors.ErrInvalidFormat,
			fmt.Sprintf("unknown example: %s", name),
			"Available examples: "+strings.Join(starter.SampleNames(), ", "))
	}

	result := convert.NewEngine().Convert(sample.Content, sample.Format)
	stats := result.Stats()

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s\n\n", info(fmt.Sprintf("Input: %s (%s)", sample.File, result.Format.Label())))
	fmt.Fprintln(w, dim(strings.TrimRight(sample.Content, "\n")))
	fmt.Fprintf(w, "\n%s\n\n", info("Notation"))
	fmt.Fprintln(w, result.Tokens)
	fmt.Fprintln(w)
	printInfo(w, "Tokens", fmt.Sprintf("%d → %d (%.0f%% saved)", stats.Before, stats.After, stats.PercentReduction()))
	return nil
}

func runExampleSave(cmd *cobra.Command, dir string) error {
	count, err := starter.BootstrapSamples(dir)
	if err != nil {
		return errors.OutputFailed(dir, err)
	}
	if count == 0 {
		printWarning(cmd.OutOrStdout(), "All samples already exist in %s", dir)
		return nil
	}
	printSuccess(cmd.OutOrStdout(), "Copied %d samples to %s", count, dir)
	return nil
}
