package log

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
)

type record struct {
	level   zapcore.Level
	message string
}

// memoryLogger stores all messages in memory.
type memoryLogger struct {
	lock    sync.Mutex
	fields  string
	records *[]record
}

// NewMemoryLogger creates a logger for tests, messages can be read back
// through the DebugLogger interface.
func NewMemoryLogger() DebugLogger {
	return &memoryLogger{records: &[]record{}}
}

func (l *memoryLogger) log(level zapcore.Level, msg string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	if l.fields != "" {
		msg = msg + "  " + l.fields
	}
	*l.records = append(*l.records, record{level: level, message: msg})
}

func (l *memoryLogger) Debug(args ...any) { l.log(DebugLevel, fmt.Sprint(args...)) }
func (l *memoryLogger) Info(args ...any)  { l.log(InfoLevel, fmt.Sprint(args...)) }
func (l *memoryLogger) Warn(args ...any)  { l.log(WarnLevel, fmt.Sprint(args...)) }
func (l *memoryLogger) Error(args ...any) { l.log(ErrorLevel, fmt.Sprint(args...)) }

func (l *memoryLogger) Debugf(template string, args ...any) {
	l.log(DebugLevel, fmt.Sprintf(template, args...))
}

func (l *memoryLogger) Infof(template string, args ...any) {
	l.log(InfoLevel, fmt.Sprintf(template, args...))
}

func (l *memoryLogger) Warnf(template string, args ...any) {
	l.log(WarnLevel, fmt.Sprintf(template, args...))
}

func (l *memoryLogger) Errorf(template string, args ...any) {
	l.log(ErrorLevel, fmt.Sprintf(template, args...))
}

func (l *memoryLogger) With(args ...any) Logger {
	pairs := make([]string, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, fmt.Sprintf("%v=%v", args[i], args[i+1]))
	}
	fields := strings.Join(pairs, " ")
	if l.fields != "" {
		fields = l.fields + " " + fields
	}
	return &memoryLogger{fields: fields, records: l.records}
}

func (l *memoryLogger) Sync() error {
	return nil
}

func (l *memoryLogger) Truncate() {
	l.lock.Lock()
	defer l.lock.Unlock()
	*l.records = nil
}

func (l *memoryLogger) messages(filter func(zapcore.Level) bool) string {
	l.lock.Lock()
	defer l.lock.Unlock()
	var out strings.Builder
	for _, r := range *l.records {
		if filter(r.level) {
			out.WriteString(strings.ToUpper(r.level.String()))
			out.WriteString("  ")
			out.WriteString(r.message)
			out.WriteString("\n")
		}
	}
	return out.String()
}

func (l *memoryLogger) AllMessages() string {
	return l.messages(func(zapcore.Level) bool { return true })
}

func (l *memoryLogger) DebugMessages() string {
	return l.messages(func(lvl zapcore.Level) bool { return lvl == DebugLevel })
}

func (l *memoryLogger) InfoMessages() string {
	return l.messages(func(lvl zapcore.Level) bool { return lvl == InfoLevel })
}

func (l *memoryLogger) WarnMessages() string {
	return l.messages(func(lvl zapcore.Level) bool { return lvl == WarnLevel })
}

func (l *memoryLogger) ErrorMessages() string {
	return l.messages(func(lvl zapcore.Level) bool { return lvl == ErrorLevel })
}
