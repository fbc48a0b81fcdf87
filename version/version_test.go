package version_test

import (
	"strings"
	"testing"

	"github.com/kbukum/lightning-transcriber/version"
)

func TestGet(t *testing.T) {
	info := version.Get()
	if info.Version == "" {
		t.Fatal("version must never be empty")
	}
}

func TestShort(t *testing.T) {
	s := version.Short()
	if s == "" {
		t.Fatal("short version must never be empty")
	}
	if !strings.HasPrefix(s, version.Version) {
		t.Fatalf("short version %q should start with %q", s, version.Version)
	}
}
