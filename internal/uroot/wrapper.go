// SPDX-License-Identifier: MPL-2.0

package uroot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/u-root/u-root/pkg/core"
)

// baseWrapper provides common functionality for pkg/core wrappers.
type baseWrapper struct {
	name  string
	flags []FlagInfo
}

// Name returns the command name.
func (w *baseWrapper) Name() string {
	return w.name
}

// SupportedFlags returns the flags supported by this command.
func (w *baseWrapper) SupportedFlags() []FlagInfo {
	return w.flags
}

// runCore runs a u-root core command with the handler context.
//
// Some pkg/core commands report per-operand failures on stderr and still
// return nil. Stderr is teed so that any such report becomes the returned error.
func (w *baseWrapper) runCore(ctx context.Context, cmd core.Command, args []string) error {
	hc := GetHandlerContext(ctx)

	var diag bytes.Buffer
	stderr := io.Writer(&diag)
	if hc.Stderr != nil {
		stderr = io.MultiWriter(hc.Stderr, &diag)
	}
	cmd.SetIO(hc.Stdin, hc.Stdout, stderr)
	cmd.SetWorkingDir(hc.Dir)
	cmd.SetLookupEnv(hc.LookupEnv)

	// args[0] is the command name, args[1:] are the actual arguments
	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	if err := cmd.RunContext(ctx, cmdArgs...); err != nil {
		return wrapError(w.name, err)
	}
	if msg := strings.TrimSpace(diag.String()); msg != "" {
		return wrapError(w.name, errors.New(msg))
	}
	return nil
}

// wrapError wraps an error with the [uroot] prefix format.
// Returns nil if err is nil.
func wrapError(cmdName string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("[uroot] %s: %w", cmdName, err)
}
