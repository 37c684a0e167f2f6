package cmd

import (
	"fmt"

	"dreamcpp/internal/installer"
	"dreamcpp/internal/project"

	"github.com/disiqueira/gotree/v3"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

// syncCmd materializes every non-system dependency that is not on disk yet.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch missing dependencies into build/deps",
	Args:  cobra.NoArgs,
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

		report := sync.Sync(p)
		if len(report.Outcomes) > 0 {
			fmt.Fprint(cmd.OutOrStdout(), reportTree(p, report).Print())
		}
		if !report.OK() {
			return eris.Errorf("%d dependencies failed to sync", len(report.Failed()))
		}
		return nil
	},
}

// reportTree renders one node per dependency with its status, and the error
// or warning underneath when there is one.
func reportTree(p *project.Project, report installer.Report) gotree.Tree {
	tree := gotree.New(p.Manifest.Name)
	for _, o := range report.Outcomes {
		node := tree.Add(fmt.Sprintf("%s: %s", o.Name, o.Status))
		if o.Err != nil {
			node.Add(o.Err.Error())
		}
		if o.Warning != nil {
			node.Add("warning: " + o.Warning.Error())
		}
	}
	return tree
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
