package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryLogger(t *testing.T) {
	t.Parallel()
	l := NewMemoryLogger()
	l.Debug("debug msg")
	l.Infof("info %s", "msg")
	l.Warn("warn msg")
	l.Error("error msg")
	assert.Equal(t, "DEBUG  debug msg\nINFO  info msg\nWARN  warn msg\nERROR  error msg\n", l.AllMessages())
	assert.Equal(t, "WARN  warn msg\n", l.WarnMessages())
	l.Truncate()
	assert.Equal(t, "", l.AllMessages())
}

func TestMemoryLoggerWith(t *testing.T) {
	t.Parallel()
	l := NewMemoryLogger()
	l.With("mapping", "demo").Info("saved")
	assert.Equal(t, "INFO  saved  mapping=demo\n", l.AllMessages())
}

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()
	var stdout, stderr bytes.Buffer
	l := NewLogger(&stdout, &stderr, false)
	l.Debug("debug msg")
	l.Info("info msg")
	l.Warn("warn msg")
	assert.NotContains(t, stdout.String(), "debug msg")
	assert.Contains(t, stdout.String(), "info msg")
	assert.Contains(t, stderr.String(), "warn msg")
}
