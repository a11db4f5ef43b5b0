// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the maketar command tree.
//
// The root command packages a script release; subcommands print the
// extracted version, show the packaging plan, list archives and manage
// configuration. Handlers delegate to internal/packager through an App.
package cmd
