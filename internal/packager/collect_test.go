// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"errors"
	"slices"
	"testing"

	"github.com/cluelessplus/maketar/internal/testutil"
)

var defaultInclude = []string{"*.nut", "readme.txt", "changelog.txt", "license.txt"}

func TestCollect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tree     map[string]string
		patterns []string
		opts     CollectOptions
		want     []string
		wantErr  error
	}{
		{
			name: "default release",
			tree: map[string]string{
				"version.nut": "", "foo.nut": "", "readme.txt": "", "changelog.txt": "", "license.txt": "",
				"notes.md": "",
			},
			patterns: defaultInclude,
			want:     []string{"changelog.txt", "foo.nut", "license.txt", "readme.txt", "version.nut"},
		},
		{
			name:     "glob matching nothing is not an error",
			tree:     map[string]string{"readme.txt": ""},
			patterns: []string{"*.nut", "readme.txt"},
			want:     []string{"readme.txt"},
		},
		{
			name:     "missing named file",
			tree:     map[string]string{"a.nut": ""},
			patterns: []string{"*.nut", "readme.txt"},
			wantErr:  ErrMissingReleaseFile,
		},
		{
			name:     "missing named file allowed",
			tree:     map[string]string{"a.nut": ""},
			patterns: []string{"*.nut", "readme.txt"},
			opts:     CollectOptions{AllowMissing: true},
			want:     []string{"a.nut"},
		},
		{
			name:     "duplicates removed",
			tree:     map[string]string{"a.nut": ""},
			patterns: []string{"*.nut", "a.nut", "a.*"},
			want:     []string{"a.nut"},
		},
		{
			name:     "dot files skipped by globs",
			tree:     map[string]string{"a.nut": "", ".hidden.nut": ""},
			patterns: []string{"*.nut"},
			want:     []string{"a.nut"},
		},
		{
			name:     "nested entries under a selected directory dropped",
			tree:     map[string]string{"lib/x.nut": "", "lib-a/y.nut": ""},
			patterns: []string{"lib", "**/*.nut"},
			want:     []string{"lib", "lib-a/y.nut"},
		},
		{
			name:     "excluded names",
			tree:     map[string]string{"a.nut": "", "Pkg-v1/a.nut": "", "Pkg-v1.tar": ""},
			patterns: []string{"*", "**/*.nut"},
			opts:     CollectOptions{Exclude: []string{"Pkg-v1", "Pkg-v1.tar"}},
			want:     []string{"a.nut"},
		},
		{
			name:     "working directory contains the staging directory",
			tree:     map[string]string{"a.nut": ""},
			patterns: []string{"."},
			opts:     CollectOptions{Exclude: []string{"Pkg-v1", "Pkg-v1.tar"}},
			wantErr:  ErrInvalidPattern,
		},
		{
			name:     "named staging directory",
			tree:     map[string]string{"a.nut": "", "Pkg-v1/a.nut": ""},
			patterns: []string{"a.nut", "Pkg-v1"},
			opts:     CollectOptions{Exclude: []string{"Pkg-v1", "Pkg-v1.tar"}},
			wantErr:  ErrInvalidPattern,
		},
		{
			name:     "recursive glob skips the working directory",
			tree:     map[string]string{"a.nut": "", "Pkg-v1/a.nut": ""},
			patterns: []string{"**"},
			opts:     CollectOptions{Exclude: []string{"Pkg-v1", "Pkg-v1.tar"}},
			want:     []string{"a.nut"},
		},
		{
			name:     "output directory excluded",
			tree:     map[string]string{"a.nut": "", "dist/Pkg-v0.tar": ""},
			patterns: []string{"*"},
			opts:     CollectOptions{Exclude: []string{"Pkg-v1", "Pkg-v1.tar", "dist"}},
			want:     []string{"a.nut"},
		},
		{
			name:     "directory containing the output directory",
			tree:     map[string]string{"a.nut": "", "build/notes.txt": "", "build/dist/Pkg-v0.tar": ""},
			patterns: []string{"*"},
			opts:     CollectOptions{Exclude: []string{"Pkg-v1", "Pkg-v1.tar", "build/dist"}},
			wantErr:  ErrInvalidPattern,
		},
		{
			name:     "pattern leaving the working directory",
			patterns: []string{"../secret.txt"},
			wantErr:  ErrInvalidPattern,
		},
		{
			name:     "absolute pattern",
			patterns: []string{"/etc/passwd"},
			wantErr:  ErrInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			testutil.WriteTree(t, dir, tt.tree)

			got, err := Collect(dir, tt.patterns, tt.opts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Collect() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Collect() returned error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Collect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollect_OnMissing(t *testing.T) {
	t.Parallel()

	var skipped []string
	_, err := Collect(t.TempDir(), []string{"readme.txt", "license.txt"}, CollectOptions{
		AllowMissing: true,
		OnMissing:    func(name string) { skipped = append(skipped, name) },
	})
	if err != nil {
		t.Fatalf("Collect() returned error: %v", err)
	}
	if !slices.Equal(skipped, []string{"readme.txt", "license.txt"}) {
		t.Errorf("OnMissing saw %v", skipped)
	}
}

func TestMissingFileError(t *testing.T) {
	t.Parallel()

	_, err := Collect(t.TempDir(), []string{"readme.txt"}, CollectOptions{})
	var mf *MissingFileError
	if !errors.As(err, &mf) {
		t.Fatalf("Collect() error = %v, want *MissingFileError", err)
	}
	if mf.Name != "readme.txt" {
		t.Errorf("MissingFileError.Name = %q, want readme.txt", mf.Name)
	}
}

func TestIsGlob(t *testing.T) {
	t.Parallel()

	for pattern, want := range map[string]bool{
		"*.nut":      true,
		"a?.txt":     true,
		"[ab].nut":   true,
		"{a,b}.nut":  true,
		"readme.txt": false,
		"lib/x.nut":  false,
	} {
		if got := IsGlob(pattern); got != want {
			t.Errorf("IsGlob(%q) = %v, want %v", pattern, got, want)
		}
	}
}
