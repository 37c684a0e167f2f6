package cmd

import (
	"dreamcpp/internal/builder"
	"dreamcpp/internal/shell"

	"github.com/spf13/cobra"
)

// buildCmd compiles the project into build/<name>.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile the project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject()
		if err != nil {
			return err
		}
		_, err = (&builder.Orchestrator{Runner: shell.ExecRunner{}}).Build(p)
		return err
	},
}

// runCmd rebuilds the project and runs the resulting binary.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build the project and run it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject()
		if err != nil {
			return err
		}
		return (&builder.Orchestrator{Runner: shell.ExecRunner{}}).Run(p)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(runCmd)
}
