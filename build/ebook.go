package build

import (
	"context"
	"os"

	"github.com/adnsv/panbook/logger"
	"github.com/adnsv/panbook/model"
	"github.com/adnsv/panbook/runner"
)

// EPUB renders the title page and the book entries into an EPUB 3 file.
func (b *Builder) EPUB(ctx context.Context) error {
	logger.Banner(b.Out, "Generating epub")

	prj, l := b.Project, b.Layout
	args := []string{
		"-N", "--toc",
		"--epub-cover-image=" + prj.EPUB.Cover,
		"-t", "epub3", "--default-image-extension=png", "-f", "markdown-smart",
		"--css=" + prj.EPUB.CSS,
		"--epub-metadata=" + prj.EPUB.Metadata,
		"-o", b.rel(l.Artifact(model.ArtifactEPUB)),
		prj.EPUB.TitlePage,
	}
	args = append(args, b.bookFiles()...)
	return b.tool(ctx, b.pandoc(args...))
}

// MOBI converts the EPUB with kindlegen, which writes the .mobi next to its
// input. The tool's console output goes to a log file in the temp dir.
func (b *Builder) MOBI(ctx context.Context) error {
	l := b.Layout
	logger.Banner(b.Out, "Converting epub -> mobi (%s)", b.rel(l.KindlegenLog()))

	out, err := os.Create(l.KindlegenLog())
	if err != nil {
		return err
	}
	defer out.Close()

	return b.tool(ctx, runner.Command{
		Name:   b.Project.Tools.Kindlegen,
		Args:   []string{b.rel(l.Artifact(model.ArtifactEPUB)), "-c2"},
		Stdout: out,
	})
}
