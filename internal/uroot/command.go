// SPDX-License-Identifier: MPL-2.0

package uroot

import "context"

type (
	// Command is a single file-system utility (mkdir, cp, tar, rm).
	Command interface {
		// Name returns the command name (e.g., "cp").
		Name() string

		// Run executes the command. args[0] is the command name, args[1:] are the
		// arguments. Returns nil on success, or an error prefixed with "[uroot] <cmd>:".
		Run(ctx context.Context, args []string) error

		// SupportedFlags returns the flags this implementation supports.
		SupportedFlags() []FlagInfo
	}

	// FlagInfo describes a supported flag.
	FlagInfo struct {
		// Name is the flag name without dashes (e.g., "r" for -r).
		Name string
		// ShortName is the single-character alias, empty if none.
		ShortName string
		// Description explains what the flag does.
		Description string
		// TakesValue indicates if the flag requires a value (e.g., -f ARCHIVE).
		TakesValue bool
	}
)
