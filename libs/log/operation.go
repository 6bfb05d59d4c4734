package log

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LogLevel orders VRF operation entries. Entries below an OperationLogger's
// minimum level are dropped.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarning
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ParseOperationLevel accepts the String forms and the filter level names.
func ParseOperationLevel(s string) (LogLevel, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	default:
		return 0, fmt.Errorf("unknown operation log level %q", s)
	}
}

type Operation int

const (
	OpProve Operation = iota
	OpVerify
	OpKeyGeneration
	OpKeyRetrieval
	OpHSM
)

func (o Operation) String() string {
	switch o {
	case OpProve:
		return "PROVE"
	case OpVerify:
		return "VERIFY"
	case OpKeyGeneration:
		return "KEYGEN"
	case OpKeyRetrieval:
		return "KEYGET"
	case OpHSM:
		return "HSM"
	default:
		return fmt.Sprintf("OP(%d)", int(o))
	}
}

// Entry is one structured record of a VRF operation. Key id, duration and
// success are optional and rendered only when set.
type Entry struct {
	Timestamp time.Time
	Level     LogLevel
	Operation Operation
	Message   string

	keyID      *string
	durationUs *uint64
	success    *bool
}

func NewEntry(lvl LogLevel, op Operation, msg string) Entry {
	return Entry{
		Timestamp: time.Now(),
		Level:     lvl,
		Operation: op,
		Message:   msg,
	}
}

func (e Entry) WithKeyID(keyID string) Entry {
	e.keyID = &keyID
	return e
}

func (e Entry) WithDuration(d time.Duration) Entry {
	us := uint64(d.Microseconds())
	e.durationUs = &us
	return e
}

func (e Entry) WithSuccess(ok bool) Entry {
	e.success = &ok
	return e
}

type entryJSON struct {
	Timestamp  int64   `json:"timestamp"`
	Level      string  `json:"level"`
	Operation  string  `json:"operation"`
	Message    string  `json:"message"`
	KeyID      *string `json:"key_id,omitempty"`
	DurationUs *uint64 `json:"duration_us,omitempty"`
	Success    *bool   `json:"success,omitempty"`
}

// JSON renders the entry as a single line JSON object with a unix seconds
// timestamp.
func (e Entry) JSON() string {
	bz, err := json.Marshal(entryJSON{
		Timestamp:  e.Timestamp.Unix(),
		Level:      e.Level.String(),
		Operation:  e.Operation.String(),
		Message:    e.Message,
		KeyID:      e.keyID,
		DurationUs: e.durationUs,
		Success:    e.success,
	})
	if err != nil {
		// only strings, integers and bools
		panic(err)
	}
	return string(bz)
}

// Text renders "[ts] LEVEL OP - message | key=.. | duration=..μs | success=..".
func (e Entry) Text() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%d] %s %s - %s", e.Timestamp.Unix(), e.Level, e.Operation, e.Message)
	if e.keyID != nil {
		fmt.Fprintf(&sb, " | key=%s", *e.keyID)
	}
	if e.durationUs != nil {
		fmt.Fprintf(&sb, " | duration=%dμs", *e.durationUs)
	}
	if e.success != nil {
		fmt.Fprintf(&sb, " | success=%t", *e.success)
	}
	return sb.String()
}

func (e Entry) keyvals() []interface{} {
	kv := []interface{}{"op", e.Operation.String()}
	if e.keyID != nil {
		kv = append(kv, "key_id", *e.keyID)
	}
	if e.durationUs != nil {
		kv = append(kv, "duration_us", *e.durationUs)
	}
	if e.success != nil {
		kv = append(kv, "success", *e.success)
	}
	return kv
}

// OperationLogger forwards VRF operation entries at or above a minimum level
// to a Logger. Warnings go out at info level tagged severity=WARN.
type OperationLogger struct {
	minLevel LogLevel
	logger   Logger
}

func NewOperationLogger(logger Logger, minLevel LogLevel) *OperationLogger {
	return &OperationLogger{minLevel: minLevel, logger: logger}
}

// Enabled reports whether entries at lvl are forwarded.
func (l *OperationLogger) Enabled(lvl LogLevel) bool {
	return lvl >= l.minLevel
}

func (l *OperationLogger) Log(e Entry) {
	if !l.Enabled(e.Level) {
		return
	}
	kv := e.keyvals()
	switch e.Level {
	case LevelDebug:
		l.logger.Debug(e.Message, kv...)
	case LevelInfo:
		l.logger.Info(e.Message, kv...)
	case LevelWarning:
		l.logger.Info(e.Message, append(kv, severityKey, LevelWarning.String())...)
	default:
		l.logger.Error(e.Message, kv...)
	}
}

func (l *OperationLogger) Debug(op Operation, msg string) {
	l.Log(NewEntry(LevelDebug, op, msg))
}

func (l *OperationLogger) Info(op Operation, msg string) {
	l.Log(NewEntry(LevelInfo, op, msg))
}

func (l *OperationLogger) Warning(op Operation, msg string) {
	l.Log(NewEntry(LevelWarning, op, msg))
}

func (l *OperationLogger) Error(op Operation, msg string) {
	l.Log(NewEntry(LevelError, op, msg))
}
