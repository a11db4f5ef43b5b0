// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"errors"
	"fmt"
)

// Step names a packaging step.
type Step string

const (
	StepStage   Step = "stage"
	StepCopy    Step = "copy"
	StepArchive Step = "archive"
	StepCleanup Step = "clean up"
)

var (
	// ErrStagingExists is returned when the staging directory is already present.
	ErrStagingExists = errors.New("staging directory already exists")
	// ErrMissingReleaseFile is the sentinel error wrapped by MissingFileError.
	ErrMissingReleaseFile = errors.New("release file missing")
	// ErrInvalidPattern is returned for include patterns that escape the working directory or do not parse.
	ErrInvalidPattern = errors.New("invalid include pattern")
	// ErrNoReleaseFiles is returned when the include patterns select nothing.
	ErrNoReleaseFiles = errors.New("no release files selected")
)

type (
	// StepError reports the packaging step that failed and the path it acted on.
	StepError struct {
		Step Step
		Path string
		Err  error
	}

	// MissingFileError names a release file that was listed explicitly but does not exist.
	// It wraps ErrMissingReleaseFile for errors.Is() compatibility.
	MissingFileError struct {
		Name string
	}
)

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s step failed: %s: %v", e.Step, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error { return e.Err }

// Error implements the error interface.
func (e *MissingFileError) Error() string {
	return fmt.Sprintf("release file %q not found", e.Name)
}

// Unwrap returns ErrMissingReleaseFile.
func (e *MissingFileError) Unwrap() error { return ErrMissingReleaseFile }
