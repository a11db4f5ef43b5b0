// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/cluelessplus/maketar/internal/config"
	"github.com/cluelessplus/maketar/internal/issue"
	"github.com/cluelessplus/maketar/internal/packager"
	"github.com/cluelessplus/maketar/pkg/types"
	"github.com/cluelessplus/maketar/pkg/version"

	"github.com/spf13/cobra"
)

// fail turns err into an ExitError for the RunE caller. Remediation hints
// go to stderr; the error line itself is printed by fang.
func (a *App) fail(cmd *cobra.Command, err error) error {
	cmd.SilenceUsage = true

	code, ae := classifyError(err, a.product)
	renderErrorDetails(a.stderr, ae, a.flags.verbose, a.style)
	return &ExitError{Code: code, Err: ae}
}

// classifyError maps err to an exit code and wraps it with user-facing
// context. displayName names the product in version diagnostics.
func classifyError(err error, displayName string) (types.ExitCode, *issue.ActionableError) {
	var (
		ae       *issue.ActionableError
		stepErr  *packager.StepError
		notFound *version.NotFoundError
	)

	switch {
	case errors.As(err, &ae) && ae.Issue == issue.ConfigLoadFailedId:
		return types.ExitInvalidConfig, ae

	case errors.Is(err, config.ErrInvalidConfig), errors.Is(err, version.ErrInvalidIdentifier):
		return types.ExitInvalidConfig, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Check the flags and MAKETAR_* environment variables").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			Build()

	case errors.As(err, &notFound):
		return types.ExitVersionNotFound, issue.NewErrorContext().
			WithOperation(fmt.Sprintf("find %s version", productName(displayName))).
			WithResource(notFound.Source).
			WithSuggestion(fmt.Sprintf("Add a line such as '%s <- 1' to the version source", notFound.Identifier)).
			WithIssue(issue.VersionNotFoundId).
			Wrap(err).
			Build()

	case errors.Is(err, version.ErrInvalidVersion):
		return types.ExitVersionNotFound, issue.NewErrorContext().
			WithOperation(fmt.Sprintf("read %s version", productName(displayName))).
			WithIssue(issue.VersionNotFoundId).
			Wrap(err).
			Build()

	case errors.As(err, &stepErr):
		id := issue.ArchiveFailedId
		if errors.Is(err, packager.ErrStagingExists) {
			id = issue.StagingExistsId
		}
		return types.ExitPackagingFailed, issue.NewErrorContext().
			WithOperation(string(stepErr.Step)).
			WithResource(stepErr.Path).
			WithIssue(id).
			Wrap(stepErr.Err).
			Build()

	case errors.Is(err, packager.ErrMissingReleaseFile),
		errors.Is(err, packager.ErrNoReleaseFiles),
		errors.Is(err, packager.ErrInvalidPattern):
		return types.ExitPackagingFailed, issue.NewErrorContext().
			WithOperation("collect release files").
			WithSuggestion("Use --allow-missing to skip absent named files").
			WithIssue(issue.MissingReleaseFileId).
			Wrap(err).
			Build()

	case errors.Is(err, fs.ErrNotExist):
		return types.ExitVersionNotFound, issue.NewErrorContext().
			WithOperation(fmt.Sprintf("read %s version", productName(displayName))).
			WithSuggestion("Run maketar from the script directory or pass -C <dir>").
			WithIssue(issue.VersionSourceMissingId).
			Wrap(err).
			Build()

	case errors.Is(err, context.Canceled):
		return types.ExitFailure, issue.WrapWithContext(err, "package release", "")
	}

	if errors.As(err, &ae) {
		return types.ExitFailure, ae
	}
	return types.ExitFailure, issue.WrapWithContext(err, "package release", "")
}

func productName(displayName string) string {
	if displayName == "" {
		return config.DefaultConfig().Name
	}
	return displayName
}

// renderErrorDetails writes the suggestions of ae. In verbose mode it writes
// the full error chain and the catalog entry rendered with glamour instead.
func renderErrorDetails(w io.Writer, ae *issue.ActionableError, verbose bool, style string) {
	if !verbose {
		for _, s := range ae.Suggestions {
			fmt.Fprintf(w, "%s %s\n", WarningStyle.Render("•"), s)
		}
		return
	}

	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), ae.Format(true))
	if ae.Issue == 0 {
		return
	}
	if entry := issue.Get(ae.Issue); entry != nil {
		rendered, err := entry.Render(style)
		if err != nil {
			fmt.Fprintf(w, "%s failed to render remediation notes: %v\n", WarningStyle.Render("!"), err)
			return
		}
		fmt.Fprint(w, rendered)
	}
}
