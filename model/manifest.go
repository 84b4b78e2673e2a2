package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adnsv/go-utils/fs"
)

// ManifestError lists markup files found on disk that are not manifest entries.
type ManifestError struct {
	Unknown []string
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("%d file(s) not included in docs: %s", len(e.Unknown), strings.Join(e.Unknown, ", "))
}

// Report produces the user facing message: one line per undeclared file,
// followed by the places a new file has to be registered in.
func (e *ManifestError) Report(prj *Project) string {
	b := strings.Builder{}
	for _, fn := range e.Unknown {
		b.WriteString(fn + " not included in docs!\n")
	}
	projectFN := DefaultProjectFile
	if prj.File != "" {
		projectFN = filepath.Base(prj.File)
	}
	fmt.Fprintf(&b, "Add the new files to %s, %s and %s.", projectFN, prj.PDF.Master, prj.Website.BeforeBody)
	return b.String()
}

// CheckManifest scans the source directory for markup files and fails with
// a *ManifestError when any of them is not declared. Declared entries that
// do not exist on disk are returned as missing; they do not fail the check.
func (prj *Project) CheckManifest() (missing []string, err error) {
	found, err := MatchFiles(prj.Dir, "*"+prj.Extension)
	if err != nil {
		return nil, err
	}

	unknown := []string{}
	for _, bn := range found {
		if !prj.Declares(bn) {
			unknown = append(unknown, bn)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &ManifestError{Unknown: unknown}
	}

	for _, e := range prj.Sources {
		if !fs.FileExists(filepath.Join(prj.Dir, e.File)) {
			missing = append(missing, e.File)
		}
	}
	return missing, nil
}

// MatchFiles returns the sorted names of the regular files in dir whose name
// matches pattern. Only the name is matched, so dir may contain glob
// metacharacters. A missing dir yields no names.
func MatchFiles(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	ret := []string{}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			ret = append(ret, e.Name())
		}
	}
	return ret, nil
}

// Stem returns the file name without its extension.
func Stem(fn string) string {
	bn := filepath.Base(fn)
	return bn[:len(bn)-len(filepath.Ext(bn))]
}
