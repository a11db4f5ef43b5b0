// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/cluelessplus/maketar/internal/issue"
)

// isolated returns options that never touch the user's real configuration.
func isolated(t *testing.T, env map[string]string) LoadOptions {
	t.Helper()

	return LoadOptions{
		WorkDir:       t.TempDir(),
		ConfigDirPath: t.TempDir(),
		LookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Name != "CluelessPlus" {
		t.Errorf("Name = %q, want CluelessPlus", cfg.Name)
	}
	if cfg.VersionFile != "version.nut" {
		t.Errorf("VersionFile = %q, want version.nut", cfg.VersionFile)
	}
	if cfg.Identifier != "SELF_VERSION" {
		t.Errorf("Identifier = %q, want SELF_VERSION", cfg.Identifier)
	}
	want := []string{"*.nut", "readme.txt", "changelog.txt", "license.txt"}
	if !slices.Equal(cfg.Include, want) {
		t.Errorf("Include = %v, want %v", cfg.Include, want)
	}
	if cfg.AllowMissing {
		t.Error("AllowMissing should be false by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, path, err := Load(t.Context(), isolated(t, nil))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	if cfg.Name != "CluelessPlus" || len(cfg.Include) != 4 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_LocalFile(t *testing.T) {
	t.Parallel()

	opts := isolated(t, nil)
	local := filepath.Join(opts.WorkDir, LocalConfigFile)
	writeConfig(t, local, `
name: "Clueless Plus"
include: ["*.nut", "readme.txt"]
ui: verbose: true
`)

	cfg, path, err := Load(t.Context(), opts)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if path != local {
		t.Errorf("path = %q, want %q", path, local)
	}
	if cfg.Name != "Clueless Plus" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if !slices.Equal(cfg.Include, []string{"*.nut", "readme.txt"}) {
		t.Errorf("Include = %v", cfg.Include)
	}
	if !cfg.UI.Verbose {
		t.Error("ui.verbose should be true")
	}
	if cfg.VersionFile != "version.nut" {
		t.Errorf("unset fields should keep defaults, VersionFile = %q", cfg.VersionFile)
	}
}

func TestLoad_UserFile(t *testing.T) {
	t.Parallel()

	opts := isolated(t, nil)
	user := filepath.Join(opts.ConfigDirPath, ConfigFileName+"."+ConfigFileExt)
	writeConfig(t, user, `identifier: "LIB_VERSION"`)

	cfg, path, err := Load(t.Context(), opts)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if path != user {
		t.Errorf("path = %q, want %q", path, user)
	}
	if cfg.Identifier != "LIB_VERSION" {
		t.Errorf("Identifier = %q", cfg.Identifier)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	opts := isolated(t, nil)
	opts.ConfigFilePath = filepath.Join(opts.WorkDir, "nope.cue")

	_, _, err := Load(t.Context(), opts)
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("Load() error = %v, want *issue.ActionableError", err)
	}
	if ae.Issue != issue.ConfigLoadFailedId {
		t.Errorf("Issue = %d, want ConfigLoadFailedId", ae.Issue)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "syntax error", content: `name: "x`},
		{name: "unknown field", content: `compression: "gzip"`},
		{name: "wrong type", content: `allow_missing: "yes"`},
		{name: "bad identifier", content: `identifier: "1st"`},
		{name: "empty name", content: `name: ""`},
		{name: "bad style", content: `ui: style: "neon"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := isolated(t, nil)
			opts.ConfigFilePath = filepath.Join(opts.WorkDir, "bad.cue")
			writeConfig(t, opts.ConfigFilePath, tt.content)

			_, _, err := Load(t.Context(), opts)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), "bad.cue") {
				t.Errorf("error should name the file, got: %v", err)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Parallel()

	opts := isolated(t, map[string]string{
		"MAKETAR_NAME":          "Other AI",
		"MAKETAR_INCLUDE":       "*.nut, license.txt",
		"MAKETAR_ALLOW_MISSING": "true",
		"MAKETAR_UI_VERBOSE":    "true",
	})
	writeConfig(t, filepath.Join(opts.WorkDir, LocalConfigFile), `name: "From File"`)

	cfg, _, err := Load(t.Context(), opts)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Name != "Other AI" {
		t.Errorf("environment should override the file, Name = %q", cfg.Name)
	}
	if !slices.Equal(cfg.Include, []string{"*.nut", "license.txt"}) {
		t.Errorf("Include = %v", cfg.Include)
	}
	if !cfg.AllowMissing || !cfg.UI.Verbose {
		t.Errorf("boolean overrides not applied: %+v", cfg)
	}
}

func TestLoad_EnvInvalid(t *testing.T) {
	t.Parallel()

	_, _, err := Load(t.Context(), isolated(t, map[string]string{"MAKETAR_IDENTIFIER": "not valid"}))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if _, _, err := Load(ctx, isolated(t, nil)); err == nil {
		t.Error("Load() with canceled context should fail")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "blank name", mutate: func(c *Config) { c.Name = "  " }, field: "name"},
		{name: "blank version file", mutate: func(c *Config) { c.VersionFile = "" }, field: "version_file"},
		{name: "bad identifier", mutate: func(c *Config) { c.Identifier = "a-b" }, field: "identifier"},
		{name: "no include", mutate: func(c *Config) { c.Include = nil }, field: "include"},
		{name: "blank include", mutate: func(c *Config) { c.Include = []string{"*.nut", " "} }, field: "include[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var ice *InvalidConfigError
			if !errors.As(err, &ice) {
				t.Fatalf("Validate() error = %v, want *InvalidConfigError", err)
			}
			if ice.Field != tt.field {
				t.Errorf("Field = %q, want %q", ice.Field, tt.field)
			}
		})
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	want := DefaultConfig()
	want.Name = "Clueless Plus"
	want.OutputDir = "dist"
	want.AllowMissing = true

	opts := isolated(t, nil)
	opts.ConfigFilePath = filepath.Join(opts.WorkDir, "gen.cue")
	writeConfig(t, opts.ConfigFilePath, GenerateCUE(want))

	got, _, err := Load(t.Context(), opts)
	if err != nil {
		t.Fatalf("Load() of generated CUE returned error: %v", err)
	}
	if got.Name != want.Name || got.OutputDir != want.OutputDir || got.AllowMissing != want.AllowMissing {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
	if !slices.Equal(got.Include, want.Include) {
		t.Errorf("Include = %v, want %v", got.Include, want.Include)
	}
}

func TestCreateDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sub", "config.cue")

	created, err := CreateDefault(path)
	if err != nil {
		t.Fatalf("CreateDefault() returned error: %v", err)
	}
	if !created {
		t.Error("CreateDefault() should report a new file")
	}

	writeConfig(t, path, `name: "Kept"`)
	created, err = CreateDefault(path)
	if err != nil {
		t.Fatalf("second CreateDefault() returned error: %v", err)
	}
	if created {
		t.Error("CreateDefault() should not overwrite an existing file")
	}
	data, _ := os.ReadFile(path)
	if string(data) != `name: "Kept"` {
		t.Errorf("existing file was modified: %q", data)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG lookup is not used on Windows")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if dir != filepath.Join(xdg, AppName) && !strings.HasSuffix(dir, filepath.Join("Application Support", AppName)) {
		t.Errorf("ConfigDir() = %q", dir)
	}
}
