package log

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var _ Logger = (*ZeroLogWrapper)(nil)

// ZeroLogWrapper adapts a zerolog.Logger to Logger.
type ZeroLogWrapper struct {
	zerolog.Logger
}

type ZeroLogConfig struct {
	IsLogPlain bool
	LogLevel   string

	LogPath       string
	LogMaxAge     int
	LogMaxSize    int
	LogMaxBackups int
}

func NewZeroLogConfig(isLogPlain bool, logLevel string, logPath string, logMaxAge int, logMaxSize int, logMaxBackups int) ZeroLogConfig {
	return ZeroLogConfig{
		IsLogPlain:    isLogPlain,
		LogLevel:      logLevel,
		LogPath:       logPath,
		LogMaxAge:     logMaxAge,
		LogMaxSize:    logMaxSize,
		LogMaxBackups: logMaxBackups,
	}
}

const zeroLogTimeFormat = "2006/01/02-15:04:05.999"

// NewZeroLogLogger writes to consoleWriter and, when LogPath is set, to a
// lumberjack rotated file as well. The result is wrapped in the level filter
// built from cfg.LogLevel.
func NewZeroLogLogger(cfg ZeroLogConfig, consoleWriter io.Writer) (Logger, error) {
	out := formatWriter(consoleWriter, cfg.IsLogPlain, false)
	if cfg.LogPath != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxAge:     cfg.LogMaxAge,
			MaxSize:    cfg.LogMaxSize,
			MaxBackups: cfg.LogMaxBackups,
		}
		out = zerolog.MultiLevelWriter(out, formatWriter(rotator, cfg.IsLogPlain, true))
	}

	zl := zerolog.New(out).With().Timestamp().Logger()
	leveled, err := ParseLogLevel(cfg.LogLevel, ZeroLogWrapper{zl}, "info")
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level (%s): %w", cfg.LogLevel, err)
	}
	return leveled, nil
}

func formatWriter(w io.Writer, plain, noColor bool) io.Writer {
	if !plain {
		return w
	}
	return zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: zeroLogTimeFormat}
}

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
}

// Info logs at zerolog level INFO, or WARN for entries tagged
// severity=WARN by an OperationLogger.
func (z ZeroLogWrapper) Info(msg string, keyVals ...interface{}) {
	fields := getLogFields(keyVals...)
	if fields[severityKey] == LevelWarning.String() {
		delete(fields, severityKey)
		z.Logger.Warn().Fields(fields).Msg(msg)
		return
	}
	z.Logger.Info().Fields(fields).Msg(msg)
}

func (z ZeroLogWrapper) Error(msg string, keyVals ...interface{}) {
	z.Logger.Error().Fields(getLogFields(keyVals...)).Msg(msg)
}

func (z ZeroLogWrapper) Debug(msg string, keyVals ...interface{}) {
	z.Logger.Debug().Fields(getLogFields(keyVals...)).Msg(msg)
}

// With returns a new wrapped logger with additional context fields.
func (z ZeroLogWrapper) With(keyVals ...interface{}) Logger {
	return ZeroLogWrapper{z.Logger.With().Fields(getLogFields(keyVals...)).Logger()}
}

// getLogFields turns key/value pairs into zerolog fields. An odd trailing
// key is dropped. Byte slices are hex encoded like the text logger does.
func getLogFields(keyVals ...interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keyVals)/2)
	for i := 0; i+1 < len(keyVals); i += 2 {
		key, ok := keyVals[i].(string)
		if !ok {
			key = fmt.Sprint(keyVals[i])
		}
		switch v := keyVals[i+1].(type) {
		case []byte:
			fields[key] = strings.ToUpper(hex.EncodeToString(v))
		case fmt.Stringer:
			fields[key] = v.String()
		default:
			fields[key] = v
		}
	}
	return fields
}
