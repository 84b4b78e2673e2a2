// Package publish removes the transient files of a run and copies the final
// artifacts into the release directory.
package publish

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adnsv/go-utils/fs"
	"github.com/adnsv/panbook/model"
	log "github.com/sirupsen/logrus"
)

var ErrMissingArtifact = errors.New("missing artifact")

// Cleanup deletes every *.<suffix> file in the source directory and in the
// web directory, then empties and removes the temp directory unless keepTemp
// is set. Only files are deleted; a temp directory that still holds
// subdirectories is left in place with a warning.
func Cleanup(l *model.Layout, suffixes []string, keepTemp bool) error {
	for _, suffix := range suffixes {
		for _, dir := range []string{l.SrcDir, l.WebDir} {
			if err := removeMatching(dir, "*."+suffix); err != nil {
				return err
			}
		}
	}
	if keepTemp {
		log.Printf("keeping %s\n", l.TempDir)
		return nil
	}
	if err := removeMatching(l.TempDir, "*"); err != nil {
		return err
	}
	err := os.Remove(l.TempDir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("temp directory not removed: %v\n", err)
	}
	return nil
}

func removeMatching(dir, pattern string) error {
	names, err := model.MatchFiles(dir, pattern)
	if err != nil {
		return err
	}
	for _, name := range names {
		fn := filepath.Join(dir, name)
		log.Debugf("removing %s\n", fn)
		if err = os.Remove(fn); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Release copies the dated artifacts to the release directory under their
// unqualified names. Published files are always rewritten, even when the
// content is unchanged.
func Release(l *model.Layout) error {
	if err := os.MkdirAll(l.Release, 0755); err != nil {
		return err
	}
	for _, kind := range model.ArtifactKinds {
		src, dst := l.Artifact(kind), l.Published(kind)
		if !fs.FileExists(src) {
			return fmt.Errorf("%w: %s", ErrMissingArtifact, src)
		}
		buf, err := os.ReadFile(src)
		if err != nil {
			return err
		}
		log.Printf("copying %s -> %s\n", src, dst)
		if err = os.WriteFile(dst, buf, 0644); err != nil {
			return err
		}
	}
	return nil
}
