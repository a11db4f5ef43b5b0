// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/cluelessplus/maketar/internal/packager"
)

// renderPlan prints what a run would do without doing it.
func renderPlan(w io.Writer, plan *packager.Plan) {
	fmt.Fprintln(w, TitleStyle.Render("Packaging Plan"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render("Product:"), plan.DisplayName)
	fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render("Version:"), plan.Version)
	fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render("Staging:"), plan.StagingPath)
	fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render("Archive:"), plan.ArchivePath)

	fmt.Fprintln(w)
	fmt.Fprintln(w, KeyStyle.Render("  Files:"))
	for _, f := range plan.Files {
		fmt.Fprintf(w, "    %s\n", f)
	}
	fmt.Fprintln(w)
}

// renderResult prints the produced archive. Verbose adds the entry list.
func renderResult(w io.Writer, plan *packager.Plan, res *packager.Result, verbose bool) {
	fmt.Fprintf(w, "%s Created %s (%d files, %d bytes)\n",
		SuccessStyle.Render("✓"), res.ArchivePath, len(plan.Files), res.Size)
	if !verbose {
		return
	}
	for _, e := range res.Entries {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render(e))
	}
}
