// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"archive/tar"
	"errors"
	"io"
	"os"
	"slices"

	"github.com/rogpeppe/go-internal/testscript"
)

// cmdTarHas implements "tarhas ARCHIVE ENTRY...": it fails unless every entry
// is in the archive. With "!" it fails if any entry is present.
func cmdTarHas(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) < 2 {
		ts.Fatalf("usage: tarhas archive entry...")
	}

	f, err := os.Open(ts.MkAbs(args[0]))
	ts.Check(err)
	defer func() { ts.Check(f.Close()) }()

	var names []string
	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		ts.Check(err)
		names = append(names, hdr.Name)
	}

	for _, want := range args[1:] {
		found := slices.Contains(names, want)
		if found && neg {
			ts.Fatalf("archive %s unexpectedly contains %s", args[0], want)
		}
		if !found && !neg {
			ts.Fatalf("archive %s does not contain %s (entries: %v)", args[0], want, names)
		}
	}
}
