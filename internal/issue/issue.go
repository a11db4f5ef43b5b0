// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

// Id identifies a catalog entry. The zero value means "no entry".
type Id int

const (
	VersionNotFoundId Id = iota + 1
	VersionSourceMissingId
	StagingExistsId
	MissingReleaseFileId
	ArchiveFailedId
	ConfigLoadFailedId
)

type (
	// MarkdownMsg is remediation text in Markdown.
	MarkdownMsg string

	// Issue is a catalog entry explaining a failure and how to fix it.
	Issue struct {
		id    Id
		mdMsg MarkdownMsg
	}
)

// Id returns the catalog id.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw Markdown text.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the Markdown text for a terminal using the given glamour style
// ("auto", "dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	versionNotFoundIssue = &Issue{
		id: VersionNotFoundId,
		mdMsg: `
# No version declaration found

The version source was read, but no line declares the release version.

## Things you can try
- Add a declaration to the version source:
~~~
SELF_VERSION <- 1
~~~
- Check that whitespace surrounds the ` + "`<-`" + ` operator.
- Use ` + "`--identifier`" + ` if the constant has a different name.`,
	}

	versionSourceMissingIssue = &Issue{
		id: VersionSourceMissingId,
		mdMsg: `
# Version source not found

maketar reads the release version from ` + "`version.nut`" + ` in the working directory by default.

## Things you can try
- Run maketar from the script directory, or pass ` + "`-C <dir>`" + `.
- Point at another file with ` + "`--version-file`" + `.`,
	}

	stagingExistsIssue = &Issue{
		id: StagingExistsId,
		mdMsg: `
# Staging directory already exists

A directory with the release name is left over from an earlier run. maketar
never reuses or deletes a directory it did not create.

## Things you can try
- Remove the leftover directory and run again:
~~~
$ rm -r CluelessPlus-v<version>
~~~`,
	}

	missingReleaseFileIssue = &Issue{
		id: MissingReleaseFileId,
		mdMsg: `
# Release file missing

A release file named explicitly in the include list does not exist. Glob
patterns such as ` + "`*.nut`" + ` may match nothing, but named files are required.

## Things you can try
- Create the missing file (for instance an empty ` + "`changelog.txt`" + `).
- Pass ` + "`--allow-missing`" + ` to skip absent named files.`,
	}

	archiveFailedIssue = &Issue{
		id: ArchiveFailedId,
		mdMsg: `
# Packaging step failed

One of the packaging steps (stage, copy, archive, clean up) failed. Files
created by this run were removed.

## Things you can try
- Check free disk space and write permissions in the output directory.
- Run with ` + "`--verbose`" + ` to see every step.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded

## Things you can try
- Show the effective configuration:
~~~
$ maketar config show
~~~
- Recreate the default configuration file:
~~~
$ maketar config init
~~~`,
	}

	issues = map[Id]*Issue{
		versionNotFoundIssue.Id():      versionNotFoundIssue,
		versionSourceMissingIssue.Id(): versionSourceMissingIssue,
		stagingExistsIssue.Id():        stagingExistsIssue,
		missingReleaseFileIssue.Id():   missingReleaseFileIssue,
		archiveFailedIssue.Id():        archiveFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
	}
)

// Values returns all catalog entries ordered by id.
func Values() []*Issue {
	ids := slices.Sorted(maps.Keys(issues))
	out := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
