package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
		enabled zapcore.Level
	}{
		{name: "json info", level: "info", format: "json", enabled: zapcore.InfoLevel},
		{name: "default format", level: "debug", format: "", enabled: zapcore.DebugLevel},
		{name: "console", level: "WARN", format: "console", enabled: zapcore.WarnLevel},
		{name: "bad level", level: "loud", format: "json", wantErr: true},
		{name: "bad format", level: "info", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.level, tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.enabled))
			assert.False(t, l.Core().Enabled(tt.enabled-1))
		})
	}
}

func TestPort(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := Port(zap.New(core))

	p.Debug("d", "k", 1)
	p.Info("i")
	p.Warn("w", "request_id", "abc")
	p.Error("e", errors.New("boom"), "step", "parse")

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "abc", entries[2].ContextMap()["request_id"])

	last := entries[3]
	assert.Equal(t, zapcore.ErrorLevel, last.Level)
	assert.Equal(t, "boom", last.ContextMap()["error"])
	assert.Equal(t, "parse", last.ContextMap()["step"])
}

func TestPort_Nil(t *testing.T) {
	assert.NotPanics(t, func() { Port(nil).Error("x", nil) })
}
