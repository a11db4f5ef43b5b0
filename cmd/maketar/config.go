// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cluelessplus/maketar/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `maketar config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage maketar configuration",
		Long: `Manage maketar configuration.

Configuration is read from the first file found:
  - the --config flag
  - maketar.cue in the release directory
  - config.cue in the user config directory (e.g. ~/.config/maketar/config.cue)

MAKETAR_* environment variables override file values; flags override both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfig(cmd)
		},
	})

	var local bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.initConfig(cmd, local)
		},
	}
	initCmd.Flags().BoolVar(&local, "local", false, "create maketar.cue in the release directory instead of the user config dir")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfigPath(cmd)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := app.effectiveConfig(cmd)
			if err != nil {
				return app.fail(cmd, err)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func (a *App) showConfig(cmd *cobra.Command) error {
	cfg, path, err := a.effectiveConfig(cmd)
	if err != nil {
		return a.fail(cmd, err)
	}

	w := a.stdout
	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if path != "" {
		fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = SubtitleStyle.Render("(release directory)")
	}

	fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("name"), SuccessStyle.Render(cfg.Name))
	fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("version_file"), SuccessStyle.Render(cfg.VersionFile))
	fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("identifier"), SuccessStyle.Render(cfg.Identifier))
	fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("include"), SuccessStyle.Render(strings.Join(cfg.Include, ", ")))
	fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("output_dir"), outputDir)
	fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("allow_missing"), SuccessStyle.Render(fmt.Sprintf("%v", cfg.AllowMissing)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", KeyStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", SuccessStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Fprintf(w, "  style: %s\n", SuccessStyle.Render(cfg.UI.Style))

	return nil
}

func (a *App) initConfig(cmd *cobra.Command, local bool) error {
	path := filepath.Join(a.flags.dir, config.LocalConfigFile)
	if !local {
		var err error
		if path, err = a.userConfigFile(); err != nil {
			return a.fail(cmd, err)
		}
	}

	created, err := config.CreateDefault(path)
	if err != nil {
		return a.fail(cmd, err)
	}
	if !created {
		fmt.Fprintf(a.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}

	fmt.Fprintf(a.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func (a *App) showConfigPath(cmd *cobra.Command) error {
	userFile, err := a.userConfigFile()
	if err != nil {
		return a.fail(cmd, err)
	}
	path, err := config.ResolvePath(a.loadOptions())
	if err != nil {
		return a.fail(cmd, err)
	}

	fmt.Fprintf(a.stdout, "Config directory: %s\n", filepath.Dir(userFile))
	fmt.Fprintf(a.stdout, "User config file: %s\n", userFile)
	if path == "" {
		fmt.Fprintf(a.stdout, "In use: %s\n", SubtitleStyle.Render("(defaults)"))
	} else {
		fmt.Fprintf(a.stdout, "In use: %s\n", path)
	}
	return nil
}

// userConfigFile returns the user-level config file path.
func (a *App) userConfigFile() (string, error) {
	dir := a.configDir
	if dir == "" {
		var err error
		if dir, err = config.ConfigDir(); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt), nil
}
