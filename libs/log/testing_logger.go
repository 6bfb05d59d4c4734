package log

import (
	"os"
	"sync"
	"testing"
)

var (
	testingLogger     Logger
	testingLoggerOnce sync.Once
)

// TestingLogger returns a text logger on stdout under go test -v and a
// NopLogger otherwise. Call it from a test, not from init: the verbose flag
// is parsed only once the test binary runs.
func TestingLogger() Logger {
	testingLoggerOnce.Do(func() {
		if testing.Verbose() {
			testingLogger = NewOCLogger(NewSyncWriter(os.Stdout))
		} else {
			testingLogger = NewNopLogger()
		}
	})
	return testingLogger
}
