// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cluelessplus/maketar/internal/config"
	"github.com/cluelessplus/maketar/internal/issue"
	"github.com/cluelessplus/maketar/internal/packager"
	"github.com/cluelessplus/maketar/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// NewRootCommand builds the maketar command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "maketar",
		Short: "Package a script release as a versioned tar archive",
		Long: TitleStyle.Render("maketar") + SubtitleStyle.Render(" - package a script release") + `

maketar reads the release version from version.nut, stages the release
files in <name>-v<version>/, archives that directory as <name>-v<version>.tar
and removes the staging copy. Any failing step aborts the run and removes
what it created.

` + SubtitleStyle.Render("Examples:") + `
  maketar                   Package the release in the current directory
  maketar -C ai/            Package the release in ai/
  maketar plan              Show what would be packaged
  maketar version           Print the release version
  maketar list X-v1.tar     List the entries of an archive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runPackage(cmd, app.flags.dryRun)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&app.flags.configFile, "config", "", "config file (default is ./maketar.cue, then the user config dir)")
	pf.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVarP(&app.flags.dir, "dir", "C", "", "directory holding the release (default is the current directory)")
	pf.StringVar(&app.flags.name, "name", "", "product display name (default \"CluelessPlus\")")
	pf.StringVar(&app.flags.versionFile, "version-file", "", "file holding the version declaration (default \"version.nut\")")
	pf.StringVar(&app.flags.identifier, "identifier", "", "constant holding the version (default \"SELF_VERSION\")")
	pf.StringArrayVar(&app.flags.include, "include", nil, "release file pattern, repeatable (replaces the configured list)")
	pf.StringVar(&app.flags.outputDir, "output-dir", "", "directory receiving the archive (default is the release directory)")
	pf.BoolVar(&app.flags.allowMissing, "allow-missing", false, "skip named release files that do not exist")
	pf.BoolVar(&app.flags.dryRun, "dry-run", false, "print the packaging plan without changing anything")

	rootCmd.AddCommand(newPlanCommand(app))
	rootCmd.AddCommand(newVersionCommand(app))
	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// Execute runs the command tree and exits with the code of the failure, if any.
// It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	// fang overrides rootCmd.Version, so the version is passed explicitly.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// effectiveConfig loads the configuration and applies the flags the user set.
// Flags override environment, which overrides the config file.
func (a *App) effectiveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg, path, err := config.Load(cmd.Context(), a.loadOptions())
	if err != nil {
		return nil, "", err
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.Name = a.flags.name
	}
	if flags.Changed("version-file") {
		cfg.VersionFile = a.flags.versionFile
	}
	if flags.Changed("identifier") {
		cfg.Identifier = a.flags.identifier
	}
	if flags.Changed("include") {
		cfg.Include = a.flags.include
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = a.flags.outputDir
	}
	if flags.Changed("allow-missing") {
		cfg.AllowMissing = a.flags.allowMissing
	}
	if flags.Changed("verbose") {
		cfg.UI.Verbose = a.flags.verbose
	}

	a.setVerbose(cfg.UI.Verbose)
	a.style = cfg.UI.Style
	a.product = cfg.Name

	if err := cfg.Validate(); err != nil {
		return nil, path, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path).
			WithSuggestion("Check the flags and MAKETAR_* environment variables").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	a.logger.Debug("configuration loaded", "file", path, "name", cfg.Name, "include", cfg.Include)
	return cfg, path, nil
}

// packageOptions converts the effective configuration into packager inputs.
func (a *App) packageOptions(cfg *config.Config) packager.Options {
	workDir := a.flags.dir
	if workDir == "" {
		workDir = "."
	}
	return packager.Options{
		DisplayName:  cfg.Name,
		WorkDir:      workDir,
		OutputDir:    cfg.OutputDir,
		VersionFile:  cfg.VersionFile,
		Identifier:   cfg.Identifier,
		Include:      cfg.Include,
		AllowMissing: cfg.AllowMissing,
	}
}

// runPackage plans the release and, unless dryRun is set, executes it.
func (a *App) runPackage(cmd *cobra.Command, dryRun bool) error {
	cfg, _, err := a.effectiveConfig(cmd)
	if err != nil {
		return a.fail(cmd, err)
	}

	ctx := cmd.Context()
	plan, err := a.packager.Plan(ctx, a.packageOptions(cfg))
	if err != nil {
		return a.fail(cmd, err)
	}

	if dryRun {
		renderPlan(a.stdout, plan)
		return nil
	}

	res, err := a.packager.Run(ctx, plan)
	if err != nil {
		return a.fail(cmd, err)
	}

	renderResult(a.stdout, plan, res, a.flags.verbose)
	return nil
}
