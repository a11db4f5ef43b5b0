// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// CollectOptions controls release file resolution.
type CollectOptions struct {
	// AllowMissing skips named files that do not exist instead of failing.
	AllowMissing bool
	// Exclude lists paths, slash separated and relative to workDir, that are
	// never selected: the staging directory, the archive and an output
	// directory inside workDir. Glob matches equal to or under one are skipped.
	// A named entry equal to one, or any selection containing one, is an error.
	Exclude []string
	// OnMissing is called for every named file skipped under AllowMissing.
	OnMissing func(name string)
}

// IsGlob reports whether pattern contains glob metacharacters.
func IsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// Collect resolves include patterns against workDir and returns the selected
// paths, slash separated and relative to workDir, sorted and de-duplicated.
//
// Glob patterns may match nothing. Named entries must exist unless
// opts.AllowMissing is set. Directories are returned as-is; the copy step
// copies them recursively, so a selection may not contain an excluded path.
func Collect(workDir string, patterns []string, opts CollectOptions) ([]string, error) {
	fsys := os.DirFS(workDir)

	var files []string
	for _, raw := range patterns {
		pattern := filepath.ToSlash(filepath.Clean(raw))
		if !filepath.IsLocal(filepath.FromSlash(pattern)) {
			return nil, fmt.Errorf("%w: %q leaves the working directory", ErrInvalidPattern, raw)
		}

		if !IsGlob(pattern) {
			if _, err := fs.Stat(fsys, pattern); err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					return nil, err
				}
				if !opts.AllowMissing {
					return nil, &MissingFileError{Name: pattern}
				}
				if opts.OnMissing != nil {
					opts.OnMissing(pattern)
				}
				continue
			}
			if ex, ok := excluded(opts.Exclude, pattern); ok {
				return nil, fmt.Errorf("%w: %q selects %s", ErrInvalidPattern, raw, ex)
			}
			if ex, ok := containsExcluded(opts.Exclude, pattern); ok {
				return nil, fmt.Errorf("%w: %q contains %s", ErrInvalidPattern, raw, ex)
			}
			files = append(files, pattern)
			continue
		}

		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, raw, err)
		}
		for _, m := range matches {
			if m == "." || hiddenMatch(pattern, m) {
				continue
			}
			if _, ok := excluded(opts.Exclude, m); ok {
				continue
			}
			if ex, ok := containsExcluded(opts.Exclude, m); ok {
				return nil, fmt.Errorf("%w: %q matches %s, which contains %s", ErrInvalidPattern, raw, m, ex)
			}
			files = append(files, m)
		}
	}

	slices.Sort(files)
	files = slices.Compact(files)
	files = dropNested(files)

	return files, nil
}

// excluded returns the exclude path that f equals or lies under.
func excluded(exclude []string, f string) (string, bool) {
	for _, ex := range exclude {
		if f == ex || strings.HasPrefix(f, ex+"/") {
			return ex, true
		}
	}
	return "", false
}

// containsExcluded returns the exclude path that lies strictly under f.
func containsExcluded(exclude []string, f string) (string, bool) {
	for _, ex := range exclude {
		if f == "." || strings.HasPrefix(ex, f+"/") {
			return ex, true
		}
	}
	return "", false
}

// hiddenMatch reports whether a glob matched a dot file the pattern did not
// ask for, following shell globbing.
func hiddenMatch(pattern, match string) bool {
	return strings.HasPrefix(path.Base(match), ".") && !strings.HasPrefix(path.Base(pattern), ".")
}

// dropNested removes paths already covered by a selected parent directory.
func dropNested(files []string) []string {
	selected := slices.Clone(files)
	return slices.DeleteFunc(files, func(f string) bool {
		return slices.ContainsFunc(selected, func(parent string) bool {
			return strings.HasPrefix(f, parent+"/")
		})
	})
}
