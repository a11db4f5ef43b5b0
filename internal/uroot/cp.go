// SPDX-License-Identifier: MPL-2.0

package uroot

import (
	"context"

	"github.com/u-root/u-root/pkg/core/cp"
)

// cpCommand wraps the u-root cp implementation.
type cpCommand struct {
	baseWrapper
}

func init() {
	RegisterDefault(newCpCommand())
}

func newCpCommand() *cpCommand {
	return &cpCommand{
		baseWrapper: baseWrapper{
			name: "cp",
			flags: []FlagInfo{
				{Name: "r", ShortName: "r", Description: "copy directories recursively"},
				{Name: "R", Description: "same as -r"},
				{Name: "f", ShortName: "f", Description: "force copy by removing destination file if needed"},
				{Name: "n", ShortName: "n", Description: "do not overwrite an existing file"},
				{Name: "P", Description: "never follow symbolic links"},
			},
		},
	}
}

// Run executes the cp command. File contents are streamed and modes are kept.
func (c *cpCommand) Run(ctx context.Context, args []string) error {
	return c.runCore(ctx, cp.New(), args)
}
