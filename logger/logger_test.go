package logger_test

import (
	"testing"

	"github.com/kbukum/lightning-transcriber/logger"
)

func TestConfigDefaults(t *testing.T) {
	cfg := &logger.Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "warn" {
		t.Fatalf("expected default level warn, got %s", cfg.Level)
	}
	if cfg.Output != "stderr" {
		t.Fatalf("expected default output stderr, got %s", cfg.Output)
	}
	if cfg.Format != "console" {
		t.Fatalf("expected default format console, got %s", cfg.Format)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := &logger.Config{Level: "verbose", Format: "console"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid level")
	}

	cfg = &logger.Config{Level: "debug", Format: "xml"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid format")
	}

	cfg = &logger.Config{Level: "debug", Format: "json"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFields(t *testing.T) {
	m := logger.Fields("operation", "transcribe", "model", "distil-medium.en")
	if m["operation"] != "transcribe" {
		t.Fatalf("unexpected fields: %v", m)
	}
	if m["model"] != "distil-medium.en" {
		t.Fatalf("unexpected fields: %v", m)
	}
}

func TestFieldsOddArgs(t *testing.T) {
	m := logger.Fields("operation", "transcribe", "dangling")
	if len(m) != 1 {
		t.Fatalf("expected dangling key to be dropped, got %v", m)
	}
}

func TestWithComponent(t *testing.T) {
	l := logger.NewDefault("test").WithComponent("cli")
	// Smoke test: must not panic and must stay chainable.
	l.Debug("component logger works")
	l.WithError(nil).Debug("with error")
}
