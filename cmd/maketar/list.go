// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/cluelessplus/maketar/pkg/types"

	"github.com/spf13/cobra"
)

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <archive>",
		Short: "List the entries of a tar archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.listArchive(cmd, args[0])
		},
	}
}

func (a *App) listArchive(cmd *cobra.Command, archive string) error {
	if !filepath.IsAbs(archive) {
		archive = filepath.Join(a.flags.dir, archive)
	}

	entries, err := a.packager.List(cmd.Context(), archive)
	if err != nil {
		cmd.SilenceUsage = true
		return &ExitError{Code: types.ExitFailure, Err: err}
	}
	for _, e := range entries {
		fmt.Fprintln(a.stdout, e)
	}
	return nil
}
