// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/grailbio/base/log"
)

// Logger is a log.Outputter bound to one run's stderr. Install it with
// log.SetOutputter to route package-level log calls to the same stream.
type Logger struct {
	mu    sync.Mutex
	dst   io.Writer
	level log.Level
}

var _ log.Outputter = (*Logger)(nil)

// NewLogger picks the level from the CLI switches: quiet wins over verbose.
func NewLogger(dst io.Writer, quiet, verbose bool) *Logger {
	lvl := log.Info
	switch {
	case quiet:
		lvl = log.Off
	case verbose:
		lvl = log.Debug
	}
	return &Logger{dst: dst, level: lvl}
}

func (l *Logger) Level() log.Level { return l.level }

func (l *Logger) Output(_ int, level log.Level, s string) error {
	if level > l.level || l.level == log.Off {
		return nil
	}
	prefix := ""
	switch {
	case level <= log.Error:
		prefix = "WARN: "
	case level >= log.Debug:
		prefix = "DEBUG: "
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := io.WriteString(l.dst, prefix+s)
	return err
}

func (l *Logger) Warnf(format string, a ...any) {
	_ = l.Output(2, log.Error, fmt.Sprintf(format, a...))
}

func (l *Logger) Infof(format string, a ...any) {
	_ = l.Output(2, log.Info, fmt.Sprintf(format, a...))
}

func (l *Logger) Debugf(format string, a ...any) {
	_ = l.Output(2, log.Debug, fmt.Sprintf(format, a...))
}
