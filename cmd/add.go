package cmd

import (
	"dreamcpp/internal/logger"

	"github.com/spf13/cobra"
)

// addCmd resolves a dependency against the index and records it in the manifest.
// Nothing is fetched; run `sync` afterwards.
var addCmd = &cobra.Command{
	Use:   "add <dependency>",
	Short: "Add a dependency to the manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireGit(); err != nil {
			return err
		}
		p, err := openProject()
		if err != nil {
			return err
		}
		sync, err := newSynchronizer()
		if err != nil {
			return err
		}

		added, err := sync.Add(p, args[0])
		if err != nil {
			return err
		}
		if added {
			logger.Info("[INFO] Added '%s'. Run `dreamcpp sync` to fetch it.\n", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
