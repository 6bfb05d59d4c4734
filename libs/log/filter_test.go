package log_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Finschia/cardano-vrf/libs/log"
)

func TestVariousLevels(t *testing.T) {
	testCases := []struct {
		name    string
		allowed log.Option
		want    string
	}{
		{
			"AllowAll",
			log.AllowAll(),
			strings.Join([]string{
				`{"_msg":"here","level":"debug","this is":"debug log"}`,
				`{"_msg":"here","level":"info","this is":"info log"}`,
				`{"_msg":"here","level":"error","this is":"error log"}`,
			}, "\n"),
		},
		{
			"AllowDebug",
			log.AllowDebug(),
			strings.Join([]string{
				`{"_msg":"here","level":"debug","this is":"debug log"}`,
				`{"_msg":"here","level":"info","this is":"info log"}`,
				`{"_msg":"here","level":"error","this is":"error log"}`,
			}, "\n"),
		},
		{
			"AllowInfo",
			log.AllowInfo(),
			strings.Join([]string{
				`{"_msg":"here","level":"info","this is":"info log"}`,
				`{"_msg":"here","level":"error","this is":"error log"}`,
			}, "\n"),
		},
		{
			"AllowError",
			log.AllowError(),
			strings.Join([]string{
				`{"_msg":"here","level":"error","this is":"error log"}`,
			}, "\n"),
		},
		{
			"AllowNone",
			log.AllowNone(),
			``,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := log.NewFilter(log.NewOCJSONLoggerNoTS(&buf), tc.allowed)

			logger.Debug("here", "this is", "debug log")
			logger.Info("here", "this is", "info log")
			logger.Error("here", "this is", "error log")

			require.Equal(t, tc.want, strings.TrimSpace(buf.String()))
		})
	}
}

func TestLevelContext(t *testing.T) {
	var buf bytes.Buffer

	logger := log.NewOCJSONLoggerNoTS(&buf)
	logger = log.NewFilter(logger, log.AllowError())
	logger = logger.With("context", "value")

	logger.Error("foo", "bar", "baz")

	want := `{"_msg":"foo","bar":"baz","context":"value","level":"error"}`
	require.Equal(t, want, strings.TrimSpace(buf.String()))

	buf.Reset()
	logger.Info("foo", "bar", "baz")
	require.Empty(t, buf.String())
}

func TestVariousAllowWith(t *testing.T) {
	var buf bytes.Buffer

	logger := log.NewOCJSONLoggerNoTS(&buf)

	logger1 := log.NewFilter(logger, log.AllowError(), log.AllowInfoWith("context", "value"))
	logger1.With("context", "value").Info("foo", "bar", "baz")

	want := `{"_msg":"foo","bar":"baz","context":"value","level":"info"}`
	require.Equal(t, want, strings.TrimSpace(buf.String()))

	buf.Reset()

	logger2 := log.NewFilter(
		logger,
		log.AllowError(),
		log.AllowInfoWith("context", "value"),
		log.AllowNoneWith("user", "Sam"),
	)

	logger2.With("context", "value", "user", "Sam").Info("foo", "bar", "baz")
	require.Empty(t, buf.String())

	buf.Reset()

	logger3 := log.NewFilter(
		logger,
		log.AllowError(),
		log.AllowInfoWith("context", "value"),
		log.AllowNoneWith("user", "Sam"),
	)

	logger3.With("user", "Sam").With("context", "value").Info("foo", "bar", "baz")

	want = `{"_msg":"foo","bar":"baz","context":"value","level":"info","user":"Sam"}`
	require.Equal(t, want, strings.TrimSpace(buf.String()))
}

func TestParseLogLevel(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger := log.NewOCJSONLoggerNoTS(&buf)

	correctLogLevels := []struct {
		lvl              string
		expectedLogLines []string
	}{
		{"signer:error", []string{
			``, // if no default is given, assume info
			``,
			`{"_msg":"Mesmero","level":"error","module":"signer"}`,
			`{"_msg":"Mind","level":"info","module":"verifier"}`, // if no default is given, assume info
			``}},

		{"signer:error,*:debug", []string{
			`{"_msg":"Kingpin","level":"debug","module":"cli"}`,
			``,
			`{"_msg":"Mesmero","level":"error","module":"signer"}`,
			`{"_msg":"Mind","level":"info","module":"verifier"}`,
			`{"_msg":"Gideon","level":"debug"}`}},

		{"*:debug,verifier:none", []string{
			`{"_msg":"Kingpin","level":"debug","module":"cli"}`,
			`{"_msg":"Kitty Pryde","level":"info","module":"signer"}`,
			`{"_msg":"Mesmero","level":"error","module":"signer"}`,
			``,
			`{"_msg":"Gideon","level":"debug"}`}},
	}

	for _, c := range correctLogLevels {
		logger, err := log.ParseLogLevel(c.lvl, jsonLogger, "info")
		require.NoError(t, err, c.lvl)

		buf.Reset()
		logger.With("module", "cli").Debug("Kingpin")
		require.Equal(t, c.expectedLogLines[0], strings.TrimSpace(buf.String()), c.lvl)

		buf.Reset()
		logger.With("module", "signer").Info("Kitty Pryde")
		require.Equal(t, c.expectedLogLines[1], strings.TrimSpace(buf.String()), c.lvl)

		buf.Reset()
		logger.With("module", "signer").Error("Mesmero")
		require.Equal(t, c.expectedLogLines[2], strings.TrimSpace(buf.String()), c.lvl)

		buf.Reset()
		logger.With("module", "verifier").Info("Mind")
		require.Equal(t, c.expectedLogLines[3], strings.TrimSpace(buf.String()), c.lvl)

		buf.Reset()
		logger.Debug("Gideon")
		require.Equal(t, c.expectedLogLines[4], strings.TrimSpace(buf.String()), c.lvl)
	}

	incorrectLogLevel := []string{"some", "signer:some", "*:some,signer:error"}
	for _, lvl := range incorrectLogLevel {
		_, err := log.ParseLogLevel(lvl, jsonLogger, "info")
		require.Error(t, err, lvl)
	}
}
