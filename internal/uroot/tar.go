// SPDX-License-Identifier: MPL-2.0

package uroot

import (
	"archive/tar"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	utar "github.com/u-root/u-root/pkg/core/tar"
	"github.com/u-root/u-root/pkg/tarutil"
)

// tarCommand creates uncompressed archives with u-root's tarutil and delegates
// listing and extraction to the u-root tar command.
//
// The tar command's create mode resolves entry names against an empty
// ChangeDirectory and fails for absolute operands, so -c calls tarutil with
// the resolved -C directory instead.
type tarCommand struct {
	baseWrapper
}

func init() {
	RegisterDefault(newTarCommand())
}

func newTarCommand() *tarCommand {
	return &tarCommand{
		baseWrapper: baseWrapper{
			name: "tar",
			flags: []FlagInfo{
				{Name: "c", Description: "create a new archive"},
				{Name: "x", Description: "extract files from an archive"},
				{Name: "t", Description: "list the contents of an archive"},
				{Name: "f", Description: "use archive file", TakesValue: true},
				{Name: "C", Description: "change to directory before archiving", TakesValue: true},
				{Name: "v", Description: "verbosely list files processed"},
			},
		},
	}
}

// Run executes the tar command.
// Create usage: tar -c -f ARCHIVE [-C DIR] [-v] PATH...
func (c *tarCommand) Run(ctx context.Context, args []string) error {
	if !isCreate(args) {
		return c.runCore(ctx, utar.New(), args)
	}

	hc := GetHandlerContext(ctx)

	fset := flag.NewFlagSet(c.name, flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	fset.Bool("c", false, "create")
	file := fset.String("f", "", "archive file")
	dir := fset.String("C", "", "base directory")
	verbose := fset.Bool("v", false, "verbose")
	if err := fset.Parse(args[1:]); err != nil {
		return wrapError(c.name, err)
	}

	if *file == "" {
		return wrapError(c.name, errors.New("no archive file given (-f)"))
	}
	if fset.NArg() == 0 {
		return wrapError(c.name, errors.New("cowardly refusing to create an empty archive"))
	}

	base := resolve(hc.Dir, *dir)
	var listing io.Writer
	if *verbose {
		listing = hc.Stdout
	}

	if err := createArchive(ctx, resolve(hc.Dir, *file), base, fset.Args(), listing); err != nil {
		return wrapError(c.name, err)
	}
	return nil
}

// isCreate reports whether -c appears among the flags.
func isCreate(args []string) bool {
	for _, a := range args[1:] {
		if a == "--" {
			return false
		}
		if a == "-c" {
			return true
		}
	}
	return false
}

// resolve joins p onto dir unless p is absolute. An empty p yields dir.
func resolve(dir, p string) string {
	if p == "" {
		return dir
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// createArchive writes every operand, recursively, to archivePath through
// tarutil. Entry names are operand paths relative to base, slash separated,
// with directories ending in "/". A partially written archive is removed on
// failure.
func createArchive(ctx context.Context, archivePath, base string, operands []string, listing io.Writer) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(archivePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(archivePath) // Best-effort removal of the partial archive
		}
	}()

	filters := []tarutil.Filter{releaseHeader}
	if listing != nil {
		filters = append(filters, func(hdr *tar.Header) bool {
			_, _ = fmt.Fprintln(listing, hdr.Name)
			return true
		})
	}
	return tarutil.CreateTar(f, operands, &tarutil.Opts{
		ChangeDirectory: base,
		Filters:         filters,
	})
}

// releaseHeader normalizes entry names and drops host specific owner names.
func releaseHeader(hdr *tar.Header) bool {
	hdr.Name = filepath.ToSlash(hdr.Name)
	if hdr.Typeflag == tar.TypeDir && !strings.HasSuffix(hdr.Name, "/") {
		hdr.Name += "/"
	}
	hdr.Uname, hdr.Gname = "", ""
	return true
}
