// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// ReleaseFiles are the default release artifacts next to the version source.
var ReleaseFiles = []string{"readme.txt", "changelog.txt", "license.txt"}

// WriteTree creates every file of tree below dir. Keys are slash-separated
// relative paths; parent directories are created as needed.
func WriteTree(t testing.TB, dir string, tree map[string]string) {
	t.Helper()
	for name, content := range tree {
		path := filepath.Join(dir, filepath.FromSlash(name))
		MustMkdirAll(t, filepath.Dir(path))
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
}

// WriteRelease creates a minimal script release in dir: version.nut declaring
// SELF_VERSION <- ver, main.nut and the default release text files. It
// returns the tree it wrote.
func WriteRelease(t testing.TB, dir string, ver uint64) map[string]string {
	t.Helper()
	tree := map[string]string{
		"version.nut": fmt.Sprintf("SELF_MAJORVERSION <- 1;\nSELF_VERSION <- %d;\n", ver),
		"main.nut":    "class CluelessPlus extends AIController {}\n",
	}
	for _, name := range ReleaseFiles {
		tree[name] = name + "\n"
	}
	WriteTree(t, dir, tree)
	return tree
}

// MustMkdirAll creates a directory along with any necessary parents.
// The test fails immediately if the operation fails.
func MustMkdirAll(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// MustExist fails the test if path does not exist.
func MustExist(t testing.TB, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

// MustNotExist fails the test if path exists.
func MustNotExist(t testing.TB, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Fatalf("expected %s not to exist", path)
	} else if !os.IsNotExist(err) {
		t.Fatalf("failed to stat %s: %v", path, err)
	}
}
