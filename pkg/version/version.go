// SPDX-License-Identifier: MPL-2.0

// Package version extracts the release version from a script source file.
//
// A version declaration is a line assigning a decimal integer to a named
// constant using the squirrel slot operator:
//
//	SELF_VERSION <- 42
//
// The first matching line wins. Lines after it are not inspected.
package version

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultIdentifier is the constant name holding the release version.
	DefaultIdentifier = "SELF_VERSION"
	// DefaultSource is the file scanned for the version declaration.
	DefaultSource = "version.nut"
)

var (
	// ErrVersionNotFound is the sentinel error wrapped by NotFoundError.
	ErrVersionNotFound = errors.New("version declaration not found")
	// ErrInvalidVersion is returned when the declared digits do not fit a Version.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrInvalidIdentifier is returned when the identifier is not a valid constant name.
	ErrInvalidIdentifier = errors.New("invalid version identifier")

	identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

type (
	// Version is a non-negative release number.
	Version uint64

	// NotFoundError is returned when no line of the source declares the version.
	// It wraps ErrVersionNotFound for errors.Is() compatibility.
	NotFoundError struct {
		// Identifier is the constant name that was searched for.
		Identifier string
		// Source names the scanned input (a file path, or empty for readers).
		Source string
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("no %s declaration found in %s", e.Identifier, e.Source)
	}
	return fmt.Sprintf("no %s declaration found", e.Identifier)
}

// Unwrap returns ErrVersionNotFound.
func (e *NotFoundError) Unwrap() error { return ErrVersionNotFound }

// String returns the decimal representation of the version.
func (v Version) String() string { return strconv.FormatUint(uint64(v), 10) }

// Tag returns the version as used in release names, e.g. "v42".
func (v Version) Tag() string { return "v" + v.String() }

// Pattern returns the line pattern used to find the declaration for identifier.
// The single capture group holds the digit run.
func Pattern(identifier string) (*regexp.Regexp, error) {
	if !identifierRegex.MatchString(identifier) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, identifier)
	}
	return regexp.Compile(regexp.QuoteMeta(identifier) + `\s+<-\s+([0-9]+)`)
}

// Extract scans r line by line and returns the version declared for identifier.
// It returns a *NotFoundError when no line matches.
func Extract(r io.Reader, identifier string) (Version, error) {
	re, err := Pattern(identifier)
	if err != nil {
		return 0, err
	}

	// Lines have no length limit; a bufio.Scanner would stop at 64 KiB.
	br := bufio.NewReader(r)
	for {
		line, readErr := br.ReadString('\n')
		if m := re.FindStringSubmatch(strings.TrimRight(line, "\r\n")); m != nil {
			n, err := strconv.ParseUint(m[1], 10, 64)
			if err != nil {
				return 0, fmt.Errorf("%w: %s: %w", ErrInvalidVersion, m[1], err)
			}
			return Version(n), nil
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return 0, fmt.Errorf("failed to read version source: %w", readErr)
		}
	}

	return 0, &NotFoundError{Identifier: identifier}
}

// ExtractFile opens path and extracts the version declared for identifier.
func ExtractFile(path, identifier string) (v Version, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open version source: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close version source: %w", closeErr)
		}
	}()

	v, err = Extract(f, identifier)
	var nf *NotFoundError
	if errors.As(err, &nf) {
		nf.Source = path
	}
	return v, err
}
