package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/HartBrook/toonify/internal/convert"
)

// NewFormatsCmd creates the formats command.
func NewFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported input formats",
		Long:  `Lists the input formats in detection order, with the file extensions that select each one.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormats(cmd)
		},
	}
}

func runFormats(cmd *cobra.Command) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, f := range convert.Formats() {
		exts := strings.Join(f.Extensions(), " ")
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", f, f.Label(), exts)
	}
	fmt.Fprintf(tw, "  %s\t%s\t%s\n", convert.FormatAuto, convert.FormatAuto.Label(), "(default)")
	return tw.Flush()
}
