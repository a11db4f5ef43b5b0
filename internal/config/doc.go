// SPDX-License-Identifier: MPL-2.0

// Package config handles maketar configuration using Viper with CUE as the file format.
//
// Values are layered, lowest precedence first: built-in defaults, a CUE config
// file, MAKETAR_* environment variables, and finally command-line flags applied
// by the CLI. The config file is looked up as maketar.cue in the working
// directory, then config.cue in the user configuration directory
// ($XDG_CONFIG_HOME/maketar on Linux). Files are validated against the embedded
// #Config schema (config_schema.cue).
package config
