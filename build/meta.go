package build

import (
	"context"
	"strings"

	"github.com/adnsv/go-pandoc"
	"github.com/adnsv/go-utils/fs"
	"github.com/adnsv/panbook/runner"
)

// resolveTitle picks the book title: the project title when set, otherwise
// the title metadata of the EPUB title page, otherwise the project name.
func (b *Builder) resolveTitle(ctx context.Context) error {
	b.title = b.Project.Title
	if b.title != "" {
		return nil
	}
	b.title = b.Project.Name

	fn := b.Project.EPUB.TitlePage
	if !fs.FileExists(b.Layout.Src(fn)) {
		return nil
	}

	b.log.Printf("reading title from %s\n", fn)
	jbuf, err := runner.Output(ctx, b.Runner, runner.Command{
		Name: b.Project.Tools.Pandoc,
		Args: []string{"-t", "json", fn},
		Dir:  b.Layout.SrcDir,
	})
	if err != nil {
		b.log.Warnf("pandoc error: %v\n", err)
		return nil
	}
	d, err := pandoc.NewDocument(jbuf)
	if err != nil {
		b.log.Warnf("cannot parse pandoc output for %s: %v\n", fn, err)
		return nil
	}
	if s := strings.TrimSpace(d.ParseMeta()["title"]); s != "" {
		b.title = s
	}
	return nil
}

// Title returns the resolved book title.
func (b *Builder) Title() string {
	return b.title
}
