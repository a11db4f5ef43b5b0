// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"archive/tar"
	"errors"
	"io"
	"os"
	"testing"
)

// Entry is a tar entry as seen by tests.
type Entry struct {
	Name    string
	Dir     bool
	Mode    os.FileMode
	Content string
}

// ReadArchive returns the entries of the tar archive at path in archive order.
func ReadArchive(t testing.TB, path string) []Entry {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			t.Logf("warning: close returned error: %v", err)
		}
	}()

	var entries []Entry
	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return entries
		}
		if err != nil {
			t.Fatalf("failed to read archive %s: %v", path, err)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("failed to read entry %s: %v", hdr.Name, err)
		}
		entries = append(entries, Entry{
			Name:    hdr.Name,
			Dir:     hdr.Typeflag == tar.TypeDir,
			Mode:    hdr.FileInfo().Mode(),
			Content: string(data),
		})
	}
}

// ArchiveFiles returns the regular file entries of the archive keyed by name.
func ArchiveFiles(t testing.TB, path string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	for _, e := range ReadArchive(t, path) {
		if !e.Dir {
			files[e.Name] = e.Content
		}
	}
	return files
}
