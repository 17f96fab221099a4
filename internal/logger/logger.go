// Package logger builds the process-wide zap logger.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pdfdecrypt/internal/decrypt"
)

// New returns a zap logger for the given level and format.
// format is either "json" (default) or "console".
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		cfg.Encoding = "json"
	case "console", "text":
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	return cfg.Build()
}

// Port adapts l to the decrypt.Logger interface.
func Port(l *zap.Logger) decrypt.Logger {
	if l == nil {
		return decrypt.NopLogger{}
	}
	return &zapPort{s: l.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

type zapPort struct {
	s *zap.SugaredLogger
}

func (p *zapPort) Debug(msg string, kv ...any) { p.s.Debugw(msg, kv...) }
func (p *zapPort) Info(msg string, kv ...any)  { p.s.Infow(msg, kv...) }
func (p *zapPort) Warn(msg string, kv ...any)  { p.s.Warnw(msg, kv...) }

func (p *zapPort) Error(msg string, err error, kv ...any) {
	p.s.Errorw(msg, append([]any{"error", err}, kv...)...)
}
