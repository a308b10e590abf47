package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HartBrook/toonify/internal/convert"
)

// NewDetectCmd creates the detect command.
func NewDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [file]",
		Short: "Print the detected input format",
		Long: `Runs format detection on a file (or stdin) without converting it.

Detectors run most-specific first: react, html, json, yaml. Anything they
reject is treated as free text. The file extension is not consulted.`,
		Example: `  toonify detect data.json
  echo '{"a":1}' | toonify detect`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := stdinArg
			if len(args) == 1 {
				path = args[0]
			}
			return runDetect(cmd, path)
		},
	}
}

func runDetect(cmd *cobra.Command, path string) error {
	content, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	f := convert.NewEngine().Detect(content)
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", f, dim(f.Label()))
	return nil
}
