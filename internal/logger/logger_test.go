package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_Environments(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker", "test"} {
		if _, err := NewLogger(env); err != nil {
			t.Errorf("%s: unexpected error: %v", env, err)
		}
	}
	if _, err := NewLogger("staging"); err == nil {
		t.Error("expected error for unknown environment")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("prod", "debug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level should be enabled")
	}

	if _, err := NewLogger("prod", "loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestNewLogger_TestEnvIsQuiet(t *testing.T) {
	l, err := NewLogger("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled in test env")
	}
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := zap.New(core)

	ctx := ContextWithLogger(context.Background(), l)
	FromContext(ctx).Info("hello")
	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}

	FromContext(context.Background(), l).Info("fallback")
	if logs.Len() != 2 {
		t.Errorf("expected fallback logger to be used, got %d entries", logs.Len())
	}

	// No logger and no fallback must not panic.
	FromContext(context.Background()).Info("dropped")
	FromContext(context.Background(), nil).Info("dropped")
}
