// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"

	"github.com/cluelessplus/maketar/internal/config"
	"github.com/cluelessplus/maketar/internal/packager"
	"github.com/cluelessplus/maketar/internal/uroot"

	"github.com/charmbracelet/log"
)

type (
	// App is the composition root of the CLI. Command handlers read the
	// effective configuration from it and delegate to its Packager.
	App struct {
		stdout    io.Writer
		stderr    io.Writer
		lookupEnv func(string) (string, bool)
		configDir string
		registry  *uroot.Registry
		// style is the glamour style for remediation notes.
		style string
		// product is the effective display name, used in diagnostics.
		product string

		flags    rootFlags
		logger   *log.Logger
		packager *packager.Packager
	}

	// Dependencies defines the injection points for building an App. Nil or
	// empty fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Stdout    io.Writer
		Stderr    io.Writer
		LookupEnv func(string) (string, bool)
		// ConfigDir overrides the user configuration directory.
		ConfigDir string
		// Registry provides the file-system commands used by the packager.
		Registry *uroot.Registry
	}

	// rootFlags holds the persistent flag values.
	rootFlags struct {
		configFile   string
		verbose      bool
		dir          string
		name         string
		versionFile  string
		identifier   string
		include      []string
		outputDir    string
		allowMissing bool
		dryRun       bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.LookupEnv == nil {
		deps.LookupEnv = os.LookupEnv
	}
	if deps.Registry == nil {
		deps.Registry = uroot.DefaultRegistry
	}

	app := &App{
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
		lookupEnv: deps.LookupEnv,
		configDir: deps.ConfigDir,
		registry:  deps.Registry,
		style:     config.DefaultConfig().UI.Style,
	}
	app.setVerbose(false)
	return app
}

// newLogger returns the step logger writing to w. Verbose lowers the level
// to debug.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  log.InfoLevel,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadOptions returns the configuration lookup inputs for this invocation.
func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: a.flags.configFile,
		ConfigDirPath:  a.configDir,
		WorkDir:        a.flags.dir,
		LookupEnv:      a.lookupEnv,
	}
}

// setVerbose applies the effective verbosity and rebuilds the packager
// around the adjusted logger.
func (a *App) setVerbose(verbose bool) {
	a.flags.verbose = verbose
	a.logger = newLogger(a.stderr, verbose)
	a.packager = packager.New(
		packager.WithRegistry(a.registry),
		packager.WithLogger(a.logger),
	)
}
