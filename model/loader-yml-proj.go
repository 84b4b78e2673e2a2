package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultProjectFile is looked up in the current directory when no project file is given.
const DefaultProjectFile = "panbook.yml"

var (
	reName      = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)
	reExtension = regexp.MustCompile(`^\.[A-Za-z0-9]+$`)
	reSuffix    = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	reStamp     = regexp.MustCompile(`^[0-9]{8}$`)
	reEnvRef    = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)
)

// LoadProject reads a project file. Environment references (${VAR}) in
// string values are expanded, relative paths are resolved against the
// directory of the project file.
func LoadProject(fn string) (*Project, error) {
	fn, err := filepath.Abs(fn)
	if err != nil {
		return nil, err
	}

	log.Printf("loading project from %s\n", fn)
	buf, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}

	prj, err := ParseProject(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	prj.File = fn
	prj.Dir = filepath.Dir(fn)
	return prj, nil
}

// ParseProject parses and validates project content. Dir and File are left
// for the caller to fill in.
func ParseProject(buf []byte) (*Project, error) {
	doc := yaml.Node{}
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return nil, err
	}
	expandEnv(&doc)
	prj := &Project{}
	if doc.Kind != 0 {
		if err := doc.Decode(prj); err != nil {
			return nil, err
		}
	}
	prj.applyDefaults()
	if err := prj.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project: %w", err)
	}
	return prj, nil
}

func (prj *Project) Validate() error {
	return validation.ValidateStruct(prj,
		validation.Field(&prj.Name, validation.Required, validation.Match(reName)),
		validation.Field(&prj.Extension, validation.Required, validation.Match(reExtension)),
		validation.Field(&prj.Sources, validation.Required, validation.By(prj.uniqueSources)),
		validation.Field(&prj.Landing, validation.By(prj.declared)),
		validation.Field(&prj.ReleaseDir, validation.Required),
		validation.Field(&prj.TempDir, validation.Required, validation.By(prj.safeTempDir)),
		validation.Field(&prj.TempSuffixes, validation.Each(validation.Match(reSuffix), validation.By(prj.notMarkup))),
		validation.Field(&prj.PDF),
	)
}

func (t PDFTarget) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Master, validation.Required),
	)
}

func (e Entry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.File, validation.Required, validation.By(plainFileName)),
	)
}

func (prj *Project) uniqueSources(any) error {
	seen := map[string]struct{}{}
	for _, e := range prj.Sources {
		if _, ok := seen[e.File]; ok {
			return fmt.Errorf("duplicate entry %s", e.File)
		}
		seen[e.File] = struct{}{}
		if filepath.Ext(e.File) != prj.Extension {
			return fmt.Errorf("entry %s does not have the %s extension", e.File, prj.Extension)
		}
	}
	return nil
}

func (prj *Project) declared(v any) error {
	s, _ := v.(string)
	if s == "" || prj.Declares(s) {
		return nil
	}
	return fmt.Errorf("%s is not a manifest entry", s)
}

func plainFileName(v any) error {
	s, _ := v.(string)
	if s != filepath.Base(s) {
		return errors.New("must be a file name in the project directory")
	}
	return nil
}

// safeTempDir accepts a directory strictly inside the project directory that
// neither holds the dated working directory nor the release directory.
func (prj *Project) safeTempDir(v any) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	if filepath.IsAbs(s) {
		return errors.New("must be relative to the project directory")
	}
	s = filepath.Clean(s)
	if s == "." || s == ".." || strings.HasPrefix(s, ".."+string(filepath.Separator)) {
		return errors.New("must be inside the project directory")
	}
	if first := strings.Split(filepath.ToSlash(s), "/")[0]; reStamp.MatchString(first) {
		return errors.New("must not be a dated working directory")
	}
	if r := prj.ReleaseDir; r != "" && !filepath.IsAbs(r) {
		rel, err := filepath.Rel(s, filepath.Clean(r))
		if err == nil && (rel == "." || !strings.HasPrefix(rel, "..")) {
			return errors.New("must not contain the release directory")
		}
	}
	return nil
}

func (prj *Project) notMarkup(v any) error {
	s, _ := v.(string)
	if strings.EqualFold("."+s, prj.Extension) {
		return fmt.Errorf("%s files are manifest entries", prj.Extension)
	}
	return nil
}

// expandEnv replaces ${VAR} references in string scalars. A bare $ is kept.
func expandEnv(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" {
		v := reEnvRef.ReplaceAllStringFunc(n.Value, func(ref string) string {
			return os.Getenv(ref[2 : len(ref)-1])
		})
		if v != n.Value {
			n.Value = v
			if n.Style == 0 {
				n.Tag = ""
			}
		}
	}
	for _, c := range n.Content {
		expandEnv(c)
	}
}
