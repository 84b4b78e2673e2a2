package runner

import (
	"fmt"
	"strings"
)

// ToolError reports an external tool that could not be started or exited
// with a non-zero status.
type ToolError struct {
	Tool   string
	Args   []string
	Stderr string
	Cause  error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.Tool, e.Cause)
	if s := lastLine(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Cause
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}
