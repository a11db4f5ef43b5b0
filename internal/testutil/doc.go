// SPDX-License-Identifier: MPL-2.0

// Package testutil provides fixtures and assertions shared by package tests:
// release trees on disk (WriteTree, WriteRelease) and tar inspection
// (ReadArchive, MustExist, MustNotExist).
package testutil
