package mlx_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kbukum/lightning-transcriber/process"
	"github.com/kbukum/lightning-transcriber/transcription"
	"github.com/kbukum/lightning-transcriber/transcription/mlx"
	"github.com/kbukum/lightning-transcriber/util"
)

// fakeRuntime is a python.Runtime that returns canned results and records
// the shim arguments it was called with.
type fakeRuntime struct {
	moduleOK bool
	result   *process.Result
	runErr   error
	lastArgs []string
}

func (f *fakeRuntime) ModuleAvailable(_ context.Context, _ string) bool { return f.moduleOK }

func (f *fakeRuntime) Install(_ context.Context, _ string) (*process.Result, error) {
	return &process.Result{}, nil
}

func (f *fakeRuntime) Run(_ context.Context, _ string, args []string) (*process.Result, error) {
	f.lastArgs = args
	return f.result, f.runErr
}

func TestTranscribeSuccess(t *testing.T) {
	rt := &fakeRuntime{
		moduleOK: true,
		result: &process.Result{
			Stdout: []byte(`{"success": true, "text": "hello", "segments": [{"start": 0, "end": 1.5, "text": "hello"}], "language": "en"}`),
		},
	}
	p := mlx.NewProvider(rt, mlx.Config{})

	resp, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: "/tmp/a.wav"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "hello" {
		t.Fatalf("expected text hello, got %q", resp.Text)
	}
	if len(resp.Segments) != 1 || resp.Segments[0].End != 1.5 {
		t.Fatalf("unexpected segments: %v", resp.Segments)
	}
	if resp.Language != "en" {
		t.Fatalf("expected language en, got %q", resp.Language)
	}
}

func TestTranscribeEmptySegmentsNeverNil(t *testing.T) {
	rt := &fakeRuntime{
		moduleOK: true,
		result: &process.Result{
			Stdout: []byte(`{"success": true, "text": "", "language": ""}`),
		},
	}
	p := mlx.NewProvider(rt, mlx.Config{})

	resp, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: "/tmp/a.wav"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Segments == nil {
		t.Fatal("segments must be an empty slice, not nil")
	}
}

func TestTranscribeEngineErrorVerbatim(t *testing.T) {
	rt := &fakeRuntime{
		moduleOK: true,
		result: &process.Result{
			Stdout: []byte(`{"success": false, "error": "boom"}`),
		},
	}
	p := mlx.NewProvider(rt, mlx.Config{})

	_, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: "/tmp/a.wav"})
	var engineErr *transcription.EngineError
	if !errors.As(err, &engineErr) {
		t.Fatalf("expected EngineError, got %T: %v", err, err)
	}
	if engineErr.Message != "boom" {
		t.Fatalf("expected verbatim message boom, got %q", engineErr.Message)
	}
}

func TestTranscribeCrashUsesStderrTail(t *testing.T) {
	rt := &fakeRuntime{
		moduleOK: true,
		result: &process.Result{
			Stderr:   []byte("Traceback (most recent call last):\nSegmentation fault\n"),
			ExitCode: 139,
		},
		runErr: fmt.Errorf("process: exit code 139"),
	}
	p := mlx.NewProvider(rt, mlx.Config{})

	_, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: "/tmp/a.wav"})
	var engineErr *transcription.EngineError
	if !errors.As(err, &engineErr) {
		t.Fatalf("expected EngineError, got %T: %v", err, err)
	}
	if engineErr.Message != "Traceback (most recent call last):\nSegmentation fault" {
		t.Fatalf("expected stderr tail, got %q", engineErr.Message)
	}
}

func TestShimArgsDefaultsAndOverrides(t *testing.T) {
	rt := &fakeRuntime{
		moduleOK: true,
		result:   &process.Result{Stdout: []byte(`{"success": true, "text": "", "segments": [], "language": ""}`)},
	}
	p := mlx.NewProvider(rt, mlx.Config{})

	_, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: "/tmp/a.wav"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"/tmp/a.wav", "distil-medium.en", "12", "", ""}
	if len(rt.lastArgs) != len(want) {
		t.Fatalf("expected %v, got %v", want, rt.lastArgs)
	}
	for i := range want {
		if rt.lastArgs[i] != want[i] {
			t.Fatalf("arg %d: expected %q, got %q", i, want[i], rt.lastArgs[i])
		}
	}

	_, err = p.Transcribe(context.Background(), transcription.Request{
		AudioPath: "/tmp/b.wav",
		Model:     "large-v3",
		BatchSize: 4,
		Quant:     util.Ptr("8bit"),
		Language:  "en",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = []string{"/tmp/b.wav", "large-v3", "4", "8bit", "en"}
	for i := range want {
		if rt.lastArgs[i] != want[i] {
			t.Fatalf("arg %d: expected %q, got %q", i, want[i], rt.lastArgs[i])
		}
	}
}

func TestIsAvailable(t *testing.T) {
	p := mlx.NewProvider(&fakeRuntime{moduleOK: false}, mlx.Config{})
	if p.IsAvailable(context.Background()) {
		t.Fatal("expected unavailable when module import fails")
	}
	p = mlx.NewProvider(&fakeRuntime{moduleOK: true}, mlx.Config{})
	if !p.IsAvailable(context.Background()) {
		t.Fatal("expected available when module import succeeds")
	}
}
