package cmd

import (
	"os"

	"dreamcpp/internal/logger"

	"github.com/spf13/cobra"
)

// verbose enables debug logging. Toggled with `-v/--verbose`.
var verbose bool

// manifestPath is the project manifest every command operates on.
// `new` only uses its base name for the manifest it writes.
var manifestPath string

// settingsPath is the tool settings file. Empty means $DREAMCPP_SETTINGS or ~/.dreamcpp/config.yaml.
var settingsPath string

// rootCmd is the base command for the CLI tool `dreamcpp`.
var rootCmd = &cobra.Command{
	Use:   "dreamcpp",
	Short: "C/C++ project manager: scaffold, fetch dependencies, build and run",

	// Errors are logged once by Execute, not by cobra with a usage dump
	SilenceUsage:  true,
	SilenceErrors: true,

	// PersistentPreRun runs before any subcommand and sets up logging.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(verbose)
	},
}

// Execute registers the global flags, runs the selected subcommand and exits
// with status 1 when it fails.
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "config", "c", "dreamcpp.toml", "Path to the project manifest")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Path to the dreamcpp settings file")

	if err := rootCmd.Execute(); err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
}
