package log_test

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/go-logfmt/logfmt"
	"github.com/stretchr/testify/require"

	"github.com/Finschia/cardano-vrf/libs/log"
)

func TestLoggerLogsItsErrors(t *testing.T) {
	var buf bytes.Buffer

	logger := log.NewOCLogger(&buf)
	logger.Info("foo", nil, "bar")
	msg := strings.TrimSpace(buf.String())
	require.True(t, strings.HasPrefix(msg, "E["), msg)
	require.Contains(t, msg, logfmt.ErrNilKey.Error())
}

func TestLoggerSanitizesInvalidKeys(t *testing.T) {
	var buf bytes.Buffer

	logger := log.NewOCLogger(&buf)
	logger.Info("foo", "baz baz", "bar")
	msg := strings.TrimSpace(buf.String())
	require.True(t, strings.HasPrefix(msg, "I["), msg)
	require.Contains(t, msg, "bazbaz=bar")
}

func TestOCFmtLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewOCLogger(&buf).With("module", "signer")

	logger.Info("vrf prove", "key_id", "pool1", "pk", []byte{0xde, 0xad})
	line := buf.String()
	require.Regexp(t, regexp.MustCompile(`^I\[\d{4}-\d{2}-\d{2}\|\d{2}:\d{2}:\d{2}\.\d{3}\] vrf prove\s+module=signer `), line)
	require.Contains(t, line, "key_id=pool1")
	require.Contains(t, line, "pk=DEAD")
	require.True(t, strings.HasSuffix(line, "\n"))

	buf.Reset()
	logger.Debug("hsm ping", "err", errors.New("timeout"))
	require.True(t, strings.HasPrefix(buf.String(), "D["), buf.String())
	require.Contains(t, buf.String(), "err=timeout")
}

func TestNopLogger(t *testing.T) {
	logger := log.NewNopLogger()
	logger.Info("nothing")
	require.NotNil(t, logger.With("k", "v"))
}

func BenchmarkOCLoggerSimple(b *testing.B) {
	benchmarkRunner(b, log.NewOCLogger(io.Discard), baseInfoMessage)
}

func BenchmarkOCLoggerContextual(b *testing.B) {
	benchmarkRunner(b, log.NewOCLogger(io.Discard), withInfoMessage)
}

func benchmarkRunner(b *testing.B, logger log.Logger, f func(log.Logger)) {
	lc := logger.With("common_key", "common_value")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f(lc)
	}
}

var (
	baseInfoMessage = func(logger log.Logger) { logger.Info("foo_message", "foo_key", "foo_value") }
	withInfoMessage = func(logger log.Logger) { logger.With("a", "b").Info("c", "d", "f") }
)
