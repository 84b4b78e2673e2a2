package publish

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adnsv/panbook/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLayout(t *testing.T) *model.Layout {
	t.Helper()
	return newLayoutIn(t, "docsrc")
}

func newLayoutIn(t *testing.T, srcDir string) *model.Layout {
	t.Helper()
	root := t.TempDir()
	prj := &model.Project{Name: "soloud", TempDir: "temp", ReleaseDir: "../doc", Dir: filepath.Join(root, srcDir)}
	l := model.NewLayout(prj, "20261019")
	require.NoError(t, l.Prepare())
	return l
}

func touch(t *testing.T, fn, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(fn, []byte(content), 0644))
}

func TestCleanup(t *testing.T) {
	l := newLayout(t)
	touch(t, filepath.Join(l.SrcDir, "SoLoud.aux"), "")
	touch(t, filepath.Join(l.SrcDir, "SoLoud.toc"), "")
	touch(t, filepath.Join(l.SrcDir, "SoLoud.tex"), "master")
	touch(t, filepath.Join(l.WebDir, "index.html"), "page")
	touch(t, filepath.Join(l.WebDir, "stale.tmp"), "")
	touch(t, l.Temp("intro.orig.tex"), "")

	require.NoError(t, Cleanup(l, model.DefaultTempSuffixes, false))

	assert.NoFileExists(t, filepath.Join(l.SrcDir, "SoLoud.aux"))
	assert.NoFileExists(t, filepath.Join(l.SrcDir, "SoLoud.toc"))
	assert.NoFileExists(t, filepath.Join(l.WebDir, "stale.tmp"))
	assert.FileExists(t, filepath.Join(l.SrcDir, "SoLoud.tex"))
	assert.FileExists(t, filepath.Join(l.WebDir, "index.html"))
	assert.NoDirExists(t, l.TempDir)
}

func TestCleanupBracketedDir(t *testing.T) {
	l := newLayoutIn(t, "docs [v1]")
	touch(t, filepath.Join(l.SrcDir, "SoLoud.aux"), "")
	touch(t, filepath.Join(l.SrcDir, "intro.mmd"), "# Intro")
	touch(t, filepath.Join(l.WebDir, "stale.tmp"), "")

	require.NoError(t, Cleanup(l, model.DefaultTempSuffixes, false))

	assert.NoFileExists(t, filepath.Join(l.SrcDir, "SoLoud.aux"))
	assert.NoFileExists(t, filepath.Join(l.WebDir, "stale.tmp"))
	assert.FileExists(t, filepath.Join(l.SrcDir, "intro.mmd"))
	assert.NoDirExists(t, l.TempDir)
}

func TestCleanupLeavesTempSubdirs(t *testing.T) {
	l := newLayout(t)
	touch(t, l.Temp("intro.orig.tex"), "")
	require.NoError(t, os.MkdirAll(l.Temp("keep"), 0755))
	touch(t, l.Temp("keep/notes.txt"), "notes")

	require.NoError(t, Cleanup(l, model.DefaultTempSuffixes, false))

	assert.NoFileExists(t, l.Temp("intro.orig.tex"))
	assert.FileExists(t, l.Temp("keep/notes.txt"))
}

func TestCleanupKeepTemp(t *testing.T) {
	l := newLayout(t)
	touch(t, l.KindlegenLog(), "log")

	require.NoError(t, Cleanup(l, model.DefaultTempSuffixes, true))
	assert.FileExists(t, l.KindlegenLog())
}

func TestRelease(t *testing.T) {
	l := newLayout(t)
	for _, kind := range model.ArtifactKinds {
		touch(t, l.Artifact(kind), "new "+kind)
	}
	require.NoError(t, os.MkdirAll(l.Release, 0755))
	touch(t, l.Published(model.ArtifactPDF), "old pdf")

	require.NoError(t, Release(l))

	entries, err := os.ReadDir(l.Release)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
	for _, kind := range model.ArtifactKinds {
		buf, err := os.ReadFile(filepath.Join(l.Release, "soloud."+kind))
		require.NoError(t, err)
		assert.Equal(t, "new "+kind, string(buf))
	}
}

func TestReleaseRewritesUnchanged(t *testing.T) {
	l := newLayout(t)
	for _, kind := range model.ArtifactKinds {
		touch(t, l.Artifact(kind), "same "+kind)
	}
	require.NoError(t, os.MkdirAll(l.Release, 0755))
	dst := l.Published(model.ArtifactEPUB)
	touch(t, dst, "same epub")
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(dst, old, old))

	require.NoError(t, Release(l))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().After(old.Add(time.Hour)))
}

func TestReleaseMissingArtifact(t *testing.T) {
	l := newLayout(t)
	touch(t, l.Artifact(model.ArtifactEPUB), "epub")

	err := Release(l)
	assert.ErrorIs(t, err, ErrMissingArtifact)
	assert.Contains(t, err.Error(), "soloud_20261019.mobi")
}
