package applog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   LogLevelDebug,
		"INFO":    LogLevelInfo,
		"warning": LogLevelWarn,
		" error ": LogLevelError,
		"none":    LogLevelOff,
	}
	for in, want := range cases {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	lvl, err := ParseLogLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, LogLevelInfo, lvl)
}

func TestDefaultLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, LogLevelWarn)

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warn("shown %d", 3)
	l.Error("shown %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 3")
	assert.Contains(t, out, "[ERROR] shown 4")

	l.SetLevel(LogLevelOff)
	buf.Reset()
	l.Error("nothing")
	assert.Empty(t, buf.String())
}

func TestConsoleLoggerEmojiPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(&buf, LogLevelDebug)

	l.Success("run %s", "done")
	assert.Contains(t, buf.String(), "✅ ")
	assert.Contains(t, buf.String(), "run done")

	buf.Reset()
	l.SetUseEmojis(false)
	l.Failure("run %s", "failed")
	assert.NotContains(t, buf.String(), "❌")
	assert.Contains(t, buf.String(), "run failed")
}
