// Package filter holds the text rewrites applied to converter output before
// it is published.
package filter

import (
	"bufio"
	"bytes"
	"os"

	"github.com/adnsv/go-utils/fs"
)

// LineFunc rewrites a single line. The line includes its terminator, if any.
type LineFunc func(string) string

// Lines applies fn to every line of buf.
func Lines(buf []byte, fn LineFunc) []byte {
	out := bytes.Buffer{}
	out.Grow(len(buf))
	r := bufio.NewReader(bytes.NewReader(buf))
	for {
		s, err := r.ReadString('\n')
		if s != "" {
			out.WriteString(fn(s))
		}
		if err != nil {
			break
		}
	}
	return out.Bytes()
}

// RewriteLines reads src, applies fn to every line and writes the result to dst.
func RewriteLines(src, dst string, fn LineFunc) error {
	buf, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return fs.WriteFileIfChanged(dst, Lines(buf, fn))
}
