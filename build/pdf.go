package build

import (
	"context"
	"os"
	"path/filepath"

	"github.com/adnsv/go-utils/fs"
	"github.com/adnsv/panbook/filter"
	"github.com/adnsv/panbook/logger"
	"github.com/adnsv/panbook/model"
	"github.com/adnsv/panbook/runner"
)

// LaTeX converts every book entry into temp/<stem>.tex, with the table
// environments rewritten so that cell text wraps.
func (b *Builder) LaTeX(ctx context.Context) error {
	logger.Banner(b.Out, "Generating LaTeX")

	l := b.Layout
	for _, fn := range b.bookFiles() {
		if err := ctx.Err(); err != nil {
			return err
		}
		stem := model.Stem(fn)
		orig := l.Temp(stem + ".orig.tex")
		err := b.tool(ctx, b.pandoc(
			"-t", "latex", "-f", "markdown-smart", "--listings",
			"--default-image-extension=pdf", "--top-level-division=chapter",
			fn, "-o", b.rel(orig),
		))
		if err != nil {
			return err
		}

		frag := l.Temp(stem + ".tex")
		b.log.Debugf("writing %s\n", b.rel(frag))
		err = b.intermediate(filter.RewriteLines(orig, frag, filter.LatexLine), orig)
		if err != nil {
			return err
		}
	}
	return nil
}

// PDF compiles the master document twice; the second pass resolves the table
// of contents and cross references. Both passes log to the same file.
func (b *Builder) PDF(ctx context.Context) error {
	prj, l := b.Project, b.Layout
	logger.Banner(b.Out, "Generating pdf (%s)", b.rel(l.XelatexLog()))

	out, err := os.Create(l.XelatexLog())
	if err != nil {
		return err
	}
	defer out.Close()

	c := runner.Command{Name: prj.Tools.Xelatex, Args: []string{prj.PDF.Master}, Stdout: out}
	if err = b.tool(ctx, c); err != nil {
		return err
	}
	logger.Banner(b.Out, "Generating pdf pass 2..")
	if err = b.tool(ctx, c); err != nil {
		return err
	}

	// xelatex writes into its working directory regardless of where the
	// master lives
	pdf := filepath.Join(l.SrcDir, model.Stem(prj.PDF.Master)+".pdf")
	if !fs.FileExists(pdf) {
		return b.intermediate(os.ErrNotExist, pdf)
	}
	return os.Rename(pdf, l.Artifact(model.ArtifactPDF))
}
