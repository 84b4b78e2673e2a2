// Package build drives the external converters that turn the manifest into
// the single-file HTML manual, the web site, the EPUB/MOBI pair and the PDF.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adnsv/panbook/logger"
	"github.com/adnsv/panbook/model"
	"github.com/adnsv/panbook/publish"
	"github.com/adnsv/panbook/runner"
	log "github.com/sirupsen/logrus"
)

// ErrMissingIntermediate is reported when a converter did not produce the
// file the next step reads.
var ErrMissingIntermediate = errors.New("missing intermediate file")

// Builder runs the pipeline for one project and one date stamp. Steps run
// strictly in sequence; every tool is waited on before the next one starts.
type Builder struct {
	Project *model.Project
	Layout  *model.Layout
	Runner  runner.Runner
	Out     io.Writer // progress banners; nil disables them

	title string
	log   *log.Entry
}

func New(prj *model.Project, stamp string, r runner.Runner) *Builder {
	return &Builder{
		Project: prj,
		Layout:  model.NewLayout(prj, stamp),
		Runner:  r,
		Out:     os.Stdout,
		log:     log.NewEntry(log.StandardLogger()),
	}
}

// WithLog replaces the log entry used for warnings, e.g. one tagged with a run id.
func (b *Builder) WithLog(e *log.Entry) *Builder {
	if e != nil {
		b.log = e
	}
	return b
}

// Check runs the manifest check on its own. Entries declared in the
// manifest but absent on disk are logged, not fatal.
func (b *Builder) Check() error {
	missing, err := b.Project.CheckManifest()
	if err != nil {
		return err
	}
	for _, fn := range missing {
		b.log.Warnf("manifest entry %s does not exist\n", fn)
	}
	return nil
}

// Run executes the whole pipeline: check, single-file HTML, web site, EPUB,
// MOBI, LaTeX fragments, PDF, cleanup and release.
func (b *Builder) Run(ctx context.Context) error {
	if err := b.Project.Validate(); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}
	if err := b.Check(); err != nil {
		return err
	}
	if err := b.Layout.Prepare(); err != nil {
		return err
	}
	if err := b.Layout.ClearArtifacts(); err != nil {
		return err
	}

	steps := []func(context.Context) error{
		b.resolveTitle,
		b.SingleHTML,
		b.Website,
		b.EPUB,
		b.MOBI,
		b.LaTeX,
		b.PDF,
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step(ctx); err != nil {
			return err
		}
	}

	logger.Banner(b.Out, "Cleanup..")
	if err := publish.Cleanup(b.Layout, b.Project.TempSuffixes, b.Project.KeepTemp); err != nil {
		return err
	}

	logger.Banner(b.Out, "Copying release docs to %s", b.rel(b.Layout.Release))
	if err := publish.Release(b.Layout); err != nil {
		return err
	}

	logger.Banner(b.Out, "Done - %s", b.Layout.Stamp)
	return nil
}

// tool runs a converter. In best-effort mode a failure is logged and the
// run goes on; the missing output surfaces when it is published.
func (b *Builder) tool(ctx context.Context, c runner.Command) error {
	if c.Dir == "" {
		c.Dir = b.Layout.SrcDir
	}
	err := b.Runner.Run(ctx, c)
	if err == nil {
		return nil
	}
	if b.Project.Strict || ctx.Err() != nil {
		return err
	}
	b.log.WithField("tool", c.Name).Warnf("%v\n", err)
	return nil
}

// intermediate filters a converter's output file; a missing source file is
// skipped in best-effort mode.
func (b *Builder) intermediate(err error, fn string) error {
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	err = fmt.Errorf("%w: %s", ErrMissingIntermediate, b.rel(fn))
	if b.Project.Strict {
		return err
	}
	b.log.Warnf("%v\n", err)
	return nil
}

func (b *Builder) pandoc(args ...string) runner.Command {
	return runner.Command{Name: b.Project.Tools.Pandoc, Args: args}
}

// rel returns fn relative to the source directory, which is the working
// directory of every tool.
func (b *Builder) rel(fn string) string {
	r, err := filepath.Rel(b.Layout.SrcDir, fn)
	if err != nil {
		return fn
	}
	return filepath.ToSlash(r)
}

func (b *Builder) bookFiles() []string {
	return model.Files(b.Project.BookEntries())
}
