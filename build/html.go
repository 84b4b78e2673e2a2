package build

import (
	"context"
	"os"
	"path/filepath"

	"github.com/adnsv/go-utils/fs"
	"github.com/adnsv/panbook/filter"
	"github.com/adnsv/panbook/logger"
	"github.com/adnsv/panbook/model"
)

// SingleHTML renders the book entries into one self-contained HTML file.
func (b *Builder) SingleHTML(ctx context.Context) error {
	logger.Banner(b.Out, "Generating single-file HTML docs")

	prj, l := b.Project, b.Layout
	args := []string{
		"-s", "-t", "html5", "-f", "markdown-smart",
		"--metadata", "title=" + b.title + " " + l.Stamp,
		"-H", prj.HTML.Head,
		"-B", prj.HTML.BeforeBody,
		"--toc", "--self-contained", "--default-image-extension=png",
		"-o", b.rel(l.Artifact(model.ArtifactHTML)),
	}
	args = append(args, b.bookFiles()...)
	return b.tool(ctx, b.pandoc(args...))
}

// Website renders every manifest entry, website-only ones included, into its
// own page under <stamp>/web. The landing entry becomes index.html.
func (b *Builder) Website(ctx context.Context) error {
	logger.Banner(b.Out, "Generating web site")

	prj, l := b.Project, b.Layout
	for _, e := range prj.WebEntries() {
		if err := ctx.Err(); err != nil {
			return err
		}
		stem := model.Stem(e.File)
		orig := l.Temp(stem + ".orig.html")
		err := b.tool(ctx, b.pandoc(
			"--template="+prj.Website.Template,
			"-f", "markdown-smart", "-t", "html5",
			"--metadata", "title="+b.title+" "+l.Stamp+" "+stem,
			"-B", prj.Website.BeforeBody,
			"-A", prj.Website.AfterBody,
			"--default-image-extension=png",
			e.File,
			"-o", b.rel(orig),
		))
		if err != nil {
			return err
		}

		page := l.WebPage(stem)
		b.log.Debugf("writing %s\n", b.rel(page))
		err = b.intermediate(filter.RewriteLines(orig, page, filter.WebLine), orig)
		if err != nil {
			return err
		}

		if e.File == prj.Landing && fs.FileExists(page) {
			if err = b.promoteLanding(page); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Builder) promoteLanding(page string) error {
	index := filepath.Join(b.Layout.WebDir, "index.html")
	if fs.FileExists(index) {
		if err := os.Remove(index); err != nil {
			return err
		}
	}
	b.log.Debugf("renaming %s -> %s\n", b.rel(page), b.rel(index))
	return os.Rename(page, index)
}
