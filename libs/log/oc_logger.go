package log

import (
	"io"

	kitlog "github.com/go-kit/log"
	kitlevel "github.com/go-kit/log/level"
	"github.com/go-kit/log/term"
)

const (
	msgKey      = "_msg" // "_" prefixed to avoid collisions
	moduleKey   = "module"
	severityKey = "severity"
)

type ocLogger struct {
	srcLogger kitlog.Logger
}

var _ Logger = (*ocLogger)(nil)

// NewOCLogger returns a colored text logger. Debug lines are gray, errors red
// and info lines tagged severity=WARN yellow.
func NewOCLogger(w io.Writer) Logger {
	return &ocLogger{term.NewLogger(w, NewOCFmtLogger, levelColor)}
}

func levelColor(keyvals ...interface{}) term.FgBgColor {
	for i := 0; i+1 < len(keyvals); i += 2 {
		if keyvals[i] == severityKey && keyvals[i+1] == LevelWarning.String() {
			return term.FgBgColor{Fg: term.Yellow}
		}
	}
	if len(keyvals) < 2 || keyvals[0] != kitlevel.Key() {
		return term.FgBgColor{}
	}
	if lvl, ok := keyvals[1].(kitlevel.Value); ok {
		switch lvl.String() {
		case "debug":
			return term.FgBgColor{Fg: term.DarkGray}
		case "error":
			return term.FgBgColor{Fg: term.Red}
		}
	}
	return term.FgBgColor{}
}

func (l *ocLogger) log(leveled kitlog.Logger, msg string, keyvals []interface{}) {
	if err := kitlog.With(leveled, msgKey, msg).Log(keyvals...); err != nil {
		kitlog.With(kitlevel.Error(l.srcLogger), msgKey, msg).Log("err", err) //nolint:errcheck
	}
}

func (l *ocLogger) Debug(msg string, keyvals ...interface{}) {
	l.log(kitlevel.Debug(l.srcLogger), msg, keyvals)
}

func (l *ocLogger) Info(msg string, keyvals ...interface{}) {
	l.log(kitlevel.Info(l.srcLogger), msg, keyvals)
}

func (l *ocLogger) Error(msg string, keyvals ...interface{}) {
	l.log(kitlevel.Error(l.srcLogger), msg, keyvals)
}

// With returns a logger with keyvals prepended to every entry.
func (l *ocLogger) With(keyvals ...interface{}) Logger {
	return &ocLogger{kitlog.With(l.srcLogger, keyvals...)}
}
