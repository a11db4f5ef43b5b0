// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions for fixing it. The issue catalog holds Markdown remediation
// notes for the failures maketar knows how to explain; they are rendered with
// glamour when the CLI runs in verbose mode.
package issue
