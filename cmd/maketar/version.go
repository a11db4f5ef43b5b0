// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/cluelessplus/maketar/pkg/version"

	"github.com/spf13/cobra"
)

func newVersionCommand(app *App) *cobra.Command {
	var tag bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the release version declared in the version source",
		Long: `Print the release version declared in the version source.

The first line of the form "SELF_VERSION <- <digits>" wins. Use --tag to
print the version as it appears in release names (v42). The version of
maketar itself is shown by --version.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.printVersion(cmd, tag)
		},
	}
	versionCmd.Flags().BoolVar(&tag, "tag", false, "print the version with its v prefix")

	return versionCmd
}

func (a *App) printVersion(cmd *cobra.Command, tag bool) error {
	cfg, _, err := a.effectiveConfig(cmd)
	if err != nil {
		return a.fail(cmd, err)
	}

	path := cfg.VersionFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.flags.dir, path)
	}
	v, err := version.ExtractFile(path, cfg.Identifier)
	if err != nil {
		return a.fail(cmd, err)
	}

	if tag {
		fmt.Fprintln(a.stdout, v.Tag())
		return nil
	}
	fmt.Fprintln(a.stdout, v)
	return nil
}
