// Package logger configures console output: a logrus text formatter with
// colored levels, and the progress banners printed between build steps.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Formatter prints "[15:04:05] LEVEL message {key=value ...}".
type Formatter struct {
	TimestampFormat string
	DisableColors   bool
}

func (f *Formatter) Format(e *log.Entry) ([]byte, error) {
	ts := f.TimestampFormat
	if ts == "" {
		ts = "15:04:05"
	}

	var lc *color.Color
	switch e.Level {
	case log.PanicLevel, log.FatalLevel, log.ErrorLevel:
		lc = color.New(color.FgRed, color.Bold)
	case log.WarnLevel:
		lc = color.New(color.FgYellow, color.Bold)
	case log.InfoLevel:
		lc = color.New(color.FgCyan)
	default:
		lc = color.New(color.FgWhite, color.Faint)
	}
	level := strings.ToUpper(e.Level.String())
	if f.DisableColors {
		lc.DisableColor()
	}

	b := &bytes.Buffer{}
	fmt.Fprintf(b, "[%s] %s %s", e.Time.Format(ts), lc.Sprint(level), strings.TrimRight(e.Message, "\n"))

	if len(e.Data) > 0 {
		keys := make([]string, 0, len(e.Data))
		for k := range e.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		kv := make([]string, len(keys))
		for i, k := range keys {
			kv[i] = fmt.Sprintf("%s=%v", k, e.Data[k])
		}
		fc := color.New(color.FgWhite, color.Faint)
		if f.DisableColors {
			fc.DisableColor()
		}
		b.WriteString(fc.Sprint(" {" + strings.Join(kv, ", ") + "}"))
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// Setup configures the standard logrus logger used across the packages.
// Unknown level names fall back to info.
func Setup(out io.Writer, level string, noColor bool) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetOutput(out)
	log.SetLevel(lvl)
	log.SetFormatter(&Formatter{DisableColors: noColor})
}

// WithRun tags a log entry with a fresh run id.
func WithRun() *log.Entry {
	return log.WithField("run", uuid.NewString()[:8])
}

// Banner prints a step header.
func Banner(w io.Writer, format string, args ...any) {
	if w == nil {
		return
	}
	color.New(color.FgCyan).Fprintf(w, "- -- --- -- - "+format+"\n", args...)
}
