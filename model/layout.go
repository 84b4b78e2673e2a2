package model

import (
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Artifact kinds, in the order they are published.
const (
	ArtifactEPUB = "epub"
	ArtifactMOBI = "mobi"
	ArtifactHTML = "html"
	ArtifactPDF  = "pdf"
)

var ArtifactKinds = []string{ArtifactEPUB, ArtifactMOBI, ArtifactHTML, ArtifactPDF}

// DateStamp formats t the way dated working directories are named.
func DateStamp(t time.Time) string {
	return t.Format("20060102")
}

// Layout holds every path used by a single run.
type Layout struct {
	Stamp   string
	SrcDir  string // sources, companion files and the PDF master
	WorkDir string // <src>/<stamp>
	WebDir  string // <src>/<stamp>/web
	TempDir string
	Release string

	name string
}

func NewLayout(prj *Project, stamp string) *Layout {
	work := filepath.Join(prj.Dir, stamp)
	return &Layout{
		Stamp:   stamp,
		SrcDir:  prj.Dir,
		WorkDir: work,
		WebDir:  filepath.Join(work, "web"),
		TempDir: resolve(prj.Dir, prj.TempDir),
		Release: resolve(prj.Dir, prj.ReleaseDir),
		name:    prj.Name,
	}
}

// Prepare creates the dated web directory and the temp directory.
func (l *Layout) Prepare() error {
	if err := os.MkdirAll(l.WebDir, 0755); err != nil {
		return err
	}
	return os.MkdirAll(l.TempDir, 0755)
}

// ClearArtifacts removes the dated artifacts an earlier run of the same day
// left behind, so that a failed step cannot publish stale output.
func (l *Layout) ClearArtifacts() error {
	for _, kind := range ArtifactKinds {
		err := os.Remove(l.Artifact(kind))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Artifact returns the dated path of an output, e.g. <stamp>/soloud_<stamp>.pdf.
func (l *Layout) Artifact(kind string) string {
	return filepath.Join(l.WorkDir, l.name+"_"+l.Stamp+"."+kind)
}

// Published returns the release path of an output, e.g. ../doc/soloud.pdf.
func (l *Layout) Published(kind string) string {
	return filepath.Join(l.Release, l.name+"."+kind)
}

func (l *Layout) Src(fn string) string {
	return resolve(l.SrcDir, fn)
}

func (l *Layout) Temp(fn string) string {
	return filepath.Join(l.TempDir, fn)
}

func (l *Layout) WebPage(stem string) string {
	return filepath.Join(l.WebDir, stem+".html")
}

func (l *Layout) KindlegenLog() string {
	return l.Temp("kindlegen_output.txt")
}

func (l *Layout) XelatexLog() string {
	return l.Temp("xelatex_output.txt")
}

func resolve(dir, fn string) string {
	if fn == "" || filepath.IsAbs(fn) {
		return fn
	}
	return filepath.Join(dir, fn)
}
