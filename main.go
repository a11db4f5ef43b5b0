// SPDX-License-Identifier: MPL-2.0

// maketar packages a script release as a versioned tar archive.
package main

import cmd "github.com/cluelessplus/maketar/cmd/maketar"

func main() {
	cmd.Execute()
}
