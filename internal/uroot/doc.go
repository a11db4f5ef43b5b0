// SPDX-License-Identifier: MPL-2.0

// Package uroot provides the checked file-system utilities maketar runs its
// packaging steps with.
//
// The commands mirror the shell utilities a release script would call
// (mkdir, cp, tar, rm), but every invocation reports failure through its
// returned error instead of an exit status nobody reads. mkdir, cp and rm
// wrap the u-root project's pkg/core implementations
// (github.com/u-root/u-root). tar delegates listing and extraction to u-root
// and implements archive creation in this package.
//
// # Error Format
//
// All errors are prefixed with "[uroot]" and the command name:
//
//	[uroot] cp: /source/readme.txt: no such file or directory
//	[uroot] mkdir: CluelessPlus-v42: file exists
//
// # Context
//
// Commands read their standard streams, working directory and environment
// from a HandlerContext stored in the context with WithHandlerContext. When
// none is stored, the process defaults are used.
package uroot
