package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/HartBrook/toonify/internal/config"
)

// NewConfigCmd creates the config command.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the toonify config file",
		Long: `Creates and inspects ~/.config/toonify/config.yaml.

Every setting can be overridden with a TOONIFY_* environment variable,
for example TOONIFY_FORMAT=json or TOONIFY_MEMO_SIZE=0.`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	path := configFilePath(cmd)

	if _, err := os.Stat(path); err == nil && !force {
		printWarning(cmd.OutOrStdout(), "Config already exists at %s", path)
		fmt.Fprintln(cmd.OutOrStdout(), dim("Use --force to overwrite it with defaults."))
		return nil
	}

	if err := config.SaveTo(config.Default(), path); err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "Wrote %s", path)
	return nil
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd)
		},
	}
}

func runConfigShow(cmd *cobra.Command) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	path := configFilePath(cmd)
	source := path
	if _, err := os.Stat(path); os.IsNotExist(err) {
		source = path + " " + dim("(not found, using defaults)")
	}

	w := cmd.OutOrStdout()
	cfg := s.cfg
	printInfo(w, "File", source)
	printInfo(w, "Format", cfg.Format)
	printInfo(w, "Stats", strconv.FormatBool(cfg.Stats))
	printInfo(w, "Color", strconv.FormatBool(cfg.Color))
	printInfo(w, "Memo size", strconv.Itoa(cfg.Memo.Size))
	printInfo(w, "Watch debounce", cfg.Watch.DebounceDuration().String())
	return nil
}

// configFilePath returns the --config path, or the default location.
func configFilePath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return config.NewPaths().ConfigFile
}
