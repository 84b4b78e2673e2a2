// Package runner invokes the external converters the build depends on.
package runner

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Command describes one external tool invocation.
type Command struct {
	Name   string
	Args   []string
	Dir    string    // working directory of the tool
	Stdout io.Writer // receives the tool's stdout; logged at debug level when nil
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner runs a command to completion.
type Runner interface {
	Run(ctx context.Context, c Command) error
}

// Exec runs binaries found on PATH.
type Exec struct{}

func (Exec) Run(ctx context.Context, c Command) error {
	log.Debugf("running %s\n", c.String())

	x := exec.CommandContext(ctx, c.Name, c.Args...)
	x.Dir = c.Dir
	var stdout, stderr bytes.Buffer
	if c.Stdout != nil {
		x.Stdout = c.Stdout
	} else {
		x.Stdout = &stdout
	}
	x.Stderr = &stderr

	err := x.Run()

	if s := strings.TrimSpace(stdout.String()); s != "" {
		log.WithField("tool", c.Name).Debug(s)
	}
	if s := strings.TrimSpace(stderr.String()); s != "" {
		log.WithField("tool", c.Name).Warn(s)
	}
	if err != nil {
		return &ToolError{Tool: c.Name, Args: c.Args, Stderr: stderr.String(), Cause: err}
	}
	return nil
}

// Output runs c through r and returns what the tool wrote to stdout.
func Output(ctx context.Context, r Runner, c Command) ([]byte, error) {
	buf := bytes.Buffer{}
	c.Stdout = &buf
	err := r.Run(ctx, c)
	return buf.Bytes(), err
}

// Lookup returns the names that cannot be found on PATH.
func Lookup(names ...string) (missing []string) {
	for _, n := range names {
		if _, err := exec.LookPath(n); err != nil {
			missing = append(missing, n)
		}
	}
	return missing
}
