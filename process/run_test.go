package process_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/lightning-transcriber/process"
)

func TestRunEcho(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary: "echo",
		Args:   []string{"hello", "world"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", result.ExitCode)
	}
	out := strings.TrimSpace(string(result.Stdout))
	if out != "hello world" {
		t.Fatalf("expected 'hello world', got %q", out)
	}
}

func TestRunMissingBinary(t *testing.T) {
	if _, err := process.Run(context.Background(), process.Command{}); err == nil {
		t.Fatal("expected error for empty binary")
	}
	if _, err := process.Run(context.Background(), process.Command{
		Binary: "definitely-not-a-real-binary-xyz",
	}); err == nil {
		t.Fatal("expected error for unresolvable binary")
	}
}

func TestRunExitCode(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "exit 42"},
	})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if result.ExitCode != 42 {
		t.Fatalf("expected exit code 42, got %d", result.ExitCode)
	}
}

func TestRunStderrCaptured(t *testing.T) {
	result, err := process.Run(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "echo oops >&2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stderr := strings.TrimSpace(string(result.Stderr))
	if stderr != "oops" {
		t.Fatalf("expected 'oops' on stderr, got %q", stderr)
	}
	if len(result.Stdout) != 0 {
		t.Fatalf("expected empty stdout, got %q", result.Stdout)
	}
}

func TestRunContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := process.Run(ctx, process.Command{
		Binary:      "sleep",
		Args:        []string{"10"},
		GracePeriod: 500 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected error from context cancellation")
	}
	if !strings.Contains(err.Error(), "killed by context") {
		t.Fatalf("expected context kill error, got: %v", err)
	}
}

func TestStderrTail(t *testing.T) {
	r := &process.Result{Stderr: []byte("line1\nline2\nline3\n")}
	if got := r.StderrTail(2); got != "line2\nline3" {
		t.Fatalf("expected last two lines, got %q", got)
	}
	if got := r.StderrTail(10); got != "line1\nline2\nline3" {
		t.Fatalf("expected all lines, got %q", got)
	}

	empty := &process.Result{}
	if got := empty.StderrTail(3); got != "" {
		t.Fatalf("expected empty tail, got %q", got)
	}
}
