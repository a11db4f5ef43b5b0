// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/spf13/cobra"

func newPlanCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the packaging plan without changing anything",
		Long: `Show the packaging plan without changing anything.

The plan names the extracted version, the staging directory, the archive
and every release file that would be copied. It is the same as running
maketar with --dry-run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runPackage(cmd, true)
		},
	}
}
