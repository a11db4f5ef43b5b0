// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cluelessplus/maketar/internal/uroot"
	"github.com/cluelessplus/maketar/pkg/version"

	"github.com/charmbracelet/log"
)

// ArchiveExt is the extension of produced archives.
const ArchiveExt = ".tar"

type (
	// Options are the inputs of a packaging run.
	Options struct {
		// DisplayName is the human-readable product name, e.g. "CluelessPlus".
		DisplayName string
		// WorkDir holds the version source and release files, and receives the staging directory.
		WorkDir string
		// OutputDir receives the archive. Empty means WorkDir.
		OutputDir string
		// VersionFile is the version source, relative to WorkDir unless absolute.
		VersionFile string
		// Identifier is the constant holding the version.
		Identifier string
		// Include lists release file patterns, relative to WorkDir.
		Include []string
		// AllowMissing skips named release files that do not exist.
		AllowMissing bool
	}

	// Plan is the immutable outcome of the planning phase.
	Plan struct {
		DisplayName string
		Identifier  string
		Version     version.Version
		WorkDir     string
		OutputDir   string
		// DirName is <Identifier>-v<Version>, the staging directory and archive root.
		DirName string
		// ArchiveName is DirName + ".tar".
		ArchiveName string
		StagingPath string
		ArchivePath string
		// Files are the release files, slash separated and relative to WorkDir.
		Files []string
	}

	// Result describes a produced archive.
	Result struct {
		ArchivePath string
		Size        int64
		// Entries are the archive entry names in archive order.
		Entries []string
	}

	// Packager runs packaging steps through a command registry.
	Packager struct {
		registry *uroot.Registry
		logger   *log.Logger
	}

	// Option configures a Packager.
	Option func(*Packager)
)

// WithRegistry sets the registry providing mkdir, cp, tar and rm.
func WithRegistry(r *uroot.Registry) Option {
	return func(p *Packager) { p.registry = r }
}

// WithLogger sets the step logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Packager) { p.logger = l }
}

// New creates a Packager using uroot.DefaultRegistry and a silent logger
// unless overridden.
func New(opts ...Option) *Packager {
	p := &Packager{
		registry: uroot.DefaultRegistry,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Identifier turns a display name into the package identifier by replacing
// every space with a hyphen.
func Identifier(displayName string) string {
	return strings.ReplaceAll(displayName, " ", "-")
}

// DirName returns the staging directory name <identifier>-v<version>.
func DirName(identifier string, v version.Version) string {
	return identifier + "-" + v.Tag()
}

// Plan extracts the version and resolves names and release files. It fails
// before any file-system change when the version cannot be found.
func (p *Packager) Plan(ctx context.Context, opts Options) (*Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	workDir, err := filepath.Abs(opts.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}
	outputDir := workDir
	if opts.OutputDir != "" {
		outputDir = opts.OutputDir
		if !filepath.IsAbs(outputDir) {
			outputDir = filepath.Join(workDir, outputDir)
		}
	}

	versionFile := opts.VersionFile
	if !filepath.IsAbs(versionFile) {
		versionFile = filepath.Join(workDir, versionFile)
	}
	v, err := version.ExtractFile(versionFile, opts.Identifier)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("version found", "file", versionFile, "version", v)

	ident := Identifier(opts.DisplayName)
	dirName := DirName(ident, v)
	archiveName := dirName + ArchiveExt

	exclude := []string{dirName, archiveName}
	if rel, err := filepath.Rel(workDir, outputDir); err == nil && rel != "." && filepath.IsLocal(rel) {
		exclude = append(exclude, filepath.ToSlash(rel))
	}

	files, err := Collect(workDir, opts.Include, CollectOptions{
		AllowMissing: opts.AllowMissing,
		Exclude:      exclude,
		OnMissing: func(name string) {
			p.logger.Warn("release file missing, skipped", "file", name)
		},
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoReleaseFiles, strings.Join(opts.Include, " "))
	}

	return &Plan{
		DisplayName: opts.DisplayName,
		Identifier:  ident,
		Version:     v,
		WorkDir:     workDir,
		OutputDir:   outputDir,
		DirName:     dirName,
		ArchiveName: archiveName,
		StagingPath: filepath.Join(workDir, dirName),
		ArchivePath: filepath.Join(outputDir, archiveName),
		Files:       files,
	}, nil
}

// Run executes stage, copy, archive and clean up for plan. On failure it
// removes what this run created and returns a *StepError.
func (p *Packager) Run(ctx context.Context, plan *Plan) (res *Result, err error) {
	if err := ctx.Err(); err != nil {
		return nil, &StepError{Step: StepStage, Path: plan.StagingPath, Err: err}
	}
	ctx = p.handlerContext(ctx, plan.WorkDir, io.Discard)

	if _, statErr := os.Lstat(plan.StagingPath); statErr == nil {
		return nil, &StepError{Step: StepStage, Path: plan.StagingPath, Err: ErrStagingExists}
	}

	var staged, archiving bool
	defer func() {
		if err == nil {
			return
		}
		if rbErr := p.rollback(ctx, plan, staged, archiving); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
	}()

	p.logger.Info("staging", "step", StepStage, "dir", plan.StagingPath)
	if err := p.registry.Exec(ctx, "mkdir", plan.StagingPath); err != nil {
		return nil, &StepError{Step: StepStage, Path: plan.StagingPath, Err: err}
	}
	staged = true

	if err := p.copyFiles(ctx, plan); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, &StepError{Step: StepArchive, Path: plan.ArchivePath, Err: err}
	}
	p.logger.Info("archiving", "step", StepArchive, "archive", plan.ArchivePath)
	if plan.OutputDir != plan.WorkDir {
		if err := p.registry.Exec(ctx, "mkdir", "-p", plan.OutputDir); err != nil {
			return nil, &StepError{Step: StepArchive, Path: plan.OutputDir, Err: err}
		}
	}
	archiving = true
	if err := p.registry.Exec(ctx, "tar", "-c", "-f", plan.ArchivePath, "-C", plan.WorkDir, plan.DirName); err != nil {
		return nil, &StepError{Step: StepArchive, Path: plan.ArchivePath, Err: err}
	}
	archiving = false

	p.logger.Info("cleaning up", "step", StepCleanup, "dir", plan.StagingPath)
	if err := p.registry.Exec(ctx, "rm", "-r", plan.StagingPath); err != nil {
		return nil, &StepError{Step: StepCleanup, Path: plan.StagingPath, Err: err}
	}
	staged = false

	info, err := os.Stat(plan.ArchivePath)
	if err != nil {
		return nil, &StepError{Step: StepArchive, Path: plan.ArchivePath, Err: err}
	}
	entries, err := p.List(ctx, plan.ArchivePath)
	if err != nil {
		return nil, &StepError{Step: StepArchive, Path: plan.ArchivePath, Err: err}
	}

	return &Result{
		ArchivePath: plan.ArchivePath,
		Size:        info.Size(),
		Entries:     entries,
	}, nil
}

// copyFiles copies the release files into the staging directory, keeping
// their directory layout relative to the working directory.
func (p *Packager) copyFiles(ctx context.Context, plan *Plan) error {
	byDir := make(map[string][]string)
	var dirs []string
	for _, f := range plan.Files {
		dir := path.Dir(f)
		if _, ok := byDir[dir]; !ok {
			dirs = append(dirs, dir)
		}
		byDir[dir] = append(byDir[dir], filepath.Join(plan.WorkDir, filepath.FromSlash(f)))
	}

	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return &StepError{Step: StepCopy, Path: plan.StagingPath, Err: err}
		}

		dest := filepath.Join(plan.StagingPath, filepath.FromSlash(dir))
		if dir != "." {
			if err := p.registry.Exec(ctx, "mkdir", "-p", dest); err != nil {
				return &StepError{Step: StepCopy, Path: dest, Err: err}
			}
		}

		srcs := byDir[dir]
		p.logger.Debug("copying", "step", StepCopy, "files", len(srcs), "dest", dest)
		args := append([]string{"-r"}, srcs...)
		if err := p.registry.Exec(ctx, "cp", append(args, dest)...); err != nil {
			return &StepError{Step: StepCopy, Path: dest, Err: err}
		}
	}
	return nil
}

// rollback removes the staging directory and partial archive left by a failed run.
func (p *Packager) rollback(ctx context.Context, plan *Plan, staged, archiving bool) error {
	ctx = context.WithoutCancel(ctx)

	var errs []error
	if archiving {
		p.logger.Warn("removing partial archive", "archive", plan.ArchivePath)
		if err := p.registry.Exec(ctx, "rm", "-f", plan.ArchivePath); err != nil {
			errs = append(errs, fmt.Errorf("rollback: %w", err))
		}
	}
	if staged {
		p.logger.Warn("removing staging directory", "dir", plan.StagingPath)
		if err := p.registry.Exec(ctx, "rm", "-r", "-f", plan.StagingPath); err != nil {
			errs = append(errs, fmt.Errorf("rollback: %w", err))
		}
	}
	return errors.Join(errs...)
}

// List returns the entry names of a tar archive.
func (p *Packager) List(ctx context.Context, archivePath string) ([]string, error) {
	archivePath, err := filepath.Abs(archivePath)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	ctx = p.handlerContext(ctx, filepath.Dir(archivePath), &out)

	if err := p.registry.Exec(ctx, "tar", "-t", "-f", archivePath); err != nil {
		return nil, err
	}

	var entries []string
	for _, line := range strings.Split(out.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			entries = append(entries, line)
		}
	}
	return entries, nil
}

// handlerContext roots registry commands at dir. Stdout goes to stdout and
// stderr is discarded; failures arrive as returned errors.
func (p *Packager) handlerContext(ctx context.Context, dir string, stdout io.Writer) context.Context {
	return uroot.WithHandlerContext(ctx, &uroot.HandlerContext{
		Stdin:     strings.NewReader(""),
		Stdout:    stdout,
		Stderr:    io.Discard,
		Dir:       dir,
		LookupEnv: os.LookupEnv,
	})
}
