package log

import (
	"io"

	kitlog "github.com/go-kit/log"
)

// NewOCJSONLogger returns a Logger writing one JSON object per entry with a
// UTC "ts" field. w must be safe for concurrent writes, see NewSyncWriter.
func NewOCJSONLogger(w io.Writer) Logger {
	return &ocLogger{kitlog.With(kitlog.NewJSONLogger(w), "ts", kitlog.DefaultTimestampUTC)}
}

// NewOCJSONLoggerNoTS omits the timestamp, which keeps test output stable.
func NewOCJSONLoggerNoTS(w io.Writer) Logger {
	return &ocLogger{kitlog.NewJSONLogger(w)}
}
