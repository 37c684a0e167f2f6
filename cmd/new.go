package cmd

import (
	"os"

	"dreamcpp/internal/logger"
	"dreamcpp/internal/project"

	"github.com/spf13/cobra"
)

// newCmd scaffolds a project directory in the current working directory.
var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		p, err := project.Scaffold(cwd, args[0], manifestPath)
		if err != nil {
			return err
		}
		logger.Info("[INFO] Created project '%s' at %s\n", p.Manifest.Name, p.Root)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
