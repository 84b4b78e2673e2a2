package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type Project struct {
	Name       string  `yaml:"name"`
	Title      string  `yaml:"title"`
	Extension  string  `yaml:"extension"`
	Sources    []Entry `yaml:"sources"`
	Landing    string  `yaml:"landing"`
	ReleaseDir string  `yaml:"release-dir"`
	TempDir    string  `yaml:"temp-dir"`

	HTML    HTMLTarget    `yaml:"html"`
	Website WebsiteTarget `yaml:"website"`
	EPUB    EPUBTarget    `yaml:"epub"`
	PDF     PDFTarget     `yaml:"pdf"`
	Tools   Tools         `yaml:"tools"`

	TempSuffixes []string `yaml:"temp-suffixes"`

	Strict   bool `yaml:"strict"`    // abort on the first tool failure
	KeepTemp bool `yaml:"keep-temp"` // leave the temp dir in place after the run

	// runtime helpers
	Dir  string `yaml:"-"` // absolute directory holding the sources
	File string `yaml:"-"` // absolute path of the project file
}

// Entry is one manifest item. Website-only entries are rendered into the
// web site but left out of the single-file HTML, EPUB and PDF outputs.
type Entry struct {
	File        string `yaml:"file"`
	WebsiteOnly bool   `yaml:"website-only"`
}

// UnmarshalYAML accepts either a bare file name or a mapping.
func (e *Entry) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		e.File = n.Value
		e.WebsiteOnly = false
		return nil
	case yaml.MappingNode:
		type plain Entry
		var p plain
		if err := n.Decode(&p); err != nil {
			return err
		}
		*e = Entry(p)
		return nil
	}
	return fmt.Errorf("line %d: manifest entry must be a file name or a mapping", n.Line)
}

type HTMLTarget struct {
	Head       string `yaml:"head"`
	BeforeBody string `yaml:"before-body"`
}

type WebsiteTarget struct {
	Template   string `yaml:"template"`
	BeforeBody string `yaml:"before-body"`
	AfterBody  string `yaml:"after-body"`
}

type EPUBTarget struct {
	Cover     string `yaml:"cover"`
	CSS       string `yaml:"css"`
	Metadata  string `yaml:"metadata"`
	TitlePage string `yaml:"title-page"`
}

type PDFTarget struct {
	Master string `yaml:"master"`
}

type Tools struct {
	Pandoc    string `yaml:"pandoc"`
	Kindlegen string `yaml:"kindlegen"`
	Xelatex   string `yaml:"xelatex"`
}

// DefaultTempSuffixes lists the transient files left behind by the TeX run.
var DefaultTempSuffixes = []string{
	"aux", "toc", "out", "log", "lg", "4ct", "4tc", "idv", "tmp", "xdv", "xref", "bak",
}

func (prj *Project) applyDefaults() {
	if prj.Extension == "" {
		prj.Extension = ".mmd"
	}
	if prj.ReleaseDir == "" {
		prj.ReleaseDir = "../doc"
	}
	if prj.TempDir == "" {
		prj.TempDir = "temp"
	}
	if prj.Landing == "" && len(prj.Sources) > 0 {
		prj.Landing = prj.Sources[0].File
	}
	if prj.HTML.Head == "" {
		prj.HTML.Head = "singlehtml_head.txt"
	}
	if prj.HTML.BeforeBody == "" {
		prj.HTML.BeforeBody = "singlehtml_body.txt"
	}
	if prj.Website.Template == "" {
		prj.Website.Template = "html.pandoc"
	}
	if prj.Website.BeforeBody == "" {
		prj.Website.BeforeBody = "htmlpre.txt"
	}
	if prj.Website.AfterBody == "" {
		prj.Website.AfterBody = "htmlpost.txt"
	}
	if prj.EPUB.Cover == "" {
		prj.EPUB.Cover = "images/cover.png"
	}
	if prj.EPUB.CSS == "" {
		prj.EPUB.CSS = "epub.css"
	}
	if prj.EPUB.Metadata == "" {
		prj.EPUB.Metadata = "metadata.xml"
	}
	if prj.EPUB.TitlePage == "" {
		prj.EPUB.TitlePage = "title.txt"
	}
	if prj.Tools.Pandoc == "" {
		prj.Tools.Pandoc = "pandoc"
	}
	if prj.Tools.Kindlegen == "" {
		prj.Tools.Kindlegen = "kindlegen"
	}
	if prj.Tools.Xelatex == "" {
		prj.Tools.Xelatex = "xelatex"
	}
	if prj.TempSuffixes == nil {
		prj.TempSuffixes = append([]string(nil), DefaultTempSuffixes...)
	}
}

// BookEntries returns the manifest without website-only entries, in manifest order.
func (prj *Project) BookEntries() []Entry {
	out := make([]Entry, 0, len(prj.Sources))
	for _, e := range prj.Sources {
		if !e.WebsiteOnly {
			out = append(out, e)
		}
	}
	return out
}

// WebEntries returns the full manifest.
func (prj *Project) WebEntries() []Entry {
	return append([]Entry(nil), prj.Sources...)
}

// Declares reports whether fn is a manifest entry.
func (prj *Project) Declares(fn string) bool {
	for _, e := range prj.Sources {
		if e.File == fn {
			return true
		}
	}
	return false
}

func Files(ee []Entry) []string {
	out := make([]string, len(ee))
	for i, e := range ee {
		out[i] = e.File
	}
	return out
}
