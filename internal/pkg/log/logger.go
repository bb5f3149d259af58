package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapLogger is the default implementation of the Logger interface.
type zapLogger struct {
	*zap.SugaredLogger
}

func (l *zapLogger) With(args ...any) Logger {
	return &zapLogger{SugaredLogger: l.SugaredLogger.With(args...)}
}

// NewLogger logs info+ to stdout and warn+ to stderr.
// With verbose=true, debug messages are written to stdout too.
func NewLogger(stdout io.Writer, stderr io.Writer, verbose bool) Logger {
	cores := []zapcore.Core{
		stdoutCore(stdout, verbose),
		stderrCore(stderr),
	}
	return &zapLogger{SugaredLogger: zap.New(zapcore.NewTee(cores...)).Sugar()}
}

// NewNopLogger discards all messages.
func NewNopLogger() Logger {
	return &zapLogger{SugaredLogger: zap.NewNop().Sugar()}
}

func stdoutCore(stdout io.Writer, verbose bool) zapcore.Core {
	levels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		if verbose {
			return l < zapcore.WarnLevel
		}
		return l == zapcore.InfoLevel
	})
	return zapcore.NewCore(messageEncoder(), zapcore.AddSync(stdout), levels)
}

func stderrCore(stderr io.Writer) zapcore.Core {
	levels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.WarnLevel
	})
	return zapcore.NewCore(messageEncoder(), zapcore.AddSync(stderr), levels)
}

// messageEncoder writes the plain message only, no timestamp or level,
// the output is for humans.
func messageEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LineEnding:       "\n",
		ConsoleSeparator: "  ",
	})
}
