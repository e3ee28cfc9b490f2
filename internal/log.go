package internal

import (
	"fmt"
	"io"
	"time"

	"gitlab.com/variadico/lctime"
)

// logFormat mirrors the directives coreext/date uses with lctime.Strftime;
// here it times ambient diagnostic lines instead of formatting a Date
// builtin's value, since this language has no Date type.
const logFormat = "%Y-%m-%d %H:%M:%S"

// Logf writes one timestamped diagnostic line to w if w is non-nil. It is
// used by VM.SetTracer's eval tracing (which cmd/dolittle's -trace flag turns
// on); it is never on the hot path of eval itself when no tracer is installed.
func Logf(w io.Writer, format string, args ...interface{}) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[%s] %s\n", lctime.Strftime(logFormat, time.Now()), fmt.Sprintf(format, args...))
}
