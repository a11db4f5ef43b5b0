// SPDX-License-Identifier: MPL-2.0

// Package packager builds a release archive for a script project.
//
// A run has two phases. Plan reads the version declaration, derives the
// release names and resolves the release files; it does not modify the file
// system. Run then executes four checked steps:
//
//  1. stage: create <identifier>-v<version>/ in the working directory
//  2. copy: copy the release files into it
//  3. archive: write <identifier>-v<version>.tar with entries rooted at the staging directory
//  4. clean up: remove the staging directory
//
// The first failing step aborts the run with a *StepError and removes the
// staging directory and partial archive it created. A staging directory that
// existed before the run is never touched. When only clean up fails, the
// complete archive is kept.
package packager
