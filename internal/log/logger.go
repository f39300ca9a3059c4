package log

import (
	"fmt"
	"io"
	"time"
)

// Logger writes verbose diagnostic messages when Enabled is true.
// Output goes to the configured writer (typically stderr). A nil Logger
// is valid and silent.
type Logger struct {
	Enabled bool
	W       io.Writer
}

// Printf writes a formatted message to W when Enabled is true.
// It is a no-op when Enabled is false.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || !l.Enabled {
		return
	}
	_, _ = fmt.Fprintf(l.W, format+"\n", args...)
}

// Timed returns a function that logs the elapsed time since the call,
// prefixed with the formatted label. Intended for use with defer.
func (l *Logger) Timed(format string, args ...any) func() {
	if l == nil || !l.Enabled {
		return func() {}
	}
	start := time.Now()
	label := fmt.Sprintf(format, args...)
	return func() {
		l.Printf("%s: %s", label, time.Since(start).Round(time.Microsecond))
	}
}
