package whisper_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/lightning-transcriber/transcription"
	"github.com/kbukum/lightning-transcriber/transcription/whisper"
)

func writeAudioFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.wav")
	if err := os.WriteFile(path, []byte("RIFF fake wav"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTranscribeAgainstSidecar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/transcribe":
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("parse multipart: %v", err)
			}
			if got := r.FormValue("model"); got != "base" {
				t.Errorf("expected model base, got %q", got)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"text":     "hello world",
				"segments": []map[string]any{{"start": 0.0, "end": 2.0, "text": "hello world"}},
				"language": "en",
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p := whisper.NewProvider(whisper.Config{URL: srv.URL})
	if !p.IsAvailable(context.Background()) {
		t.Fatal("expected sidecar to be available")
	}

	resp, err := p.Transcribe(context.Background(), transcription.Request{
		AudioPath: writeAudioFixture(t),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "hello world" {
		t.Fatalf("expected text, got %q", resp.Text)
	}
	if len(resp.Segments) != 1 || resp.Segments[0].End != 2.0 {
		t.Fatalf("unexpected segments: %v", resp.Segments)
	}
}

func TestTranscribeSidecarError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := whisper.NewProvider(whisper.Config{URL: srv.URL})
	_, err := p.Transcribe(context.Background(), transcription.Request{
		AudioPath: writeAudioFixture(t),
	})

	var engineErr *transcription.EngineError
	if !errors.As(err, &engineErr) {
		t.Fatalf("expected EngineError, got %T: %v", err, err)
	}
}

func TestIsAvailableDownSidecar(t *testing.T) {
	p := whisper.NewProvider(whisper.Config{URL: "http://127.0.0.1:1"})
	if p.IsAvailable(context.Background()) {
		t.Fatal("expected unreachable sidecar to be unavailable")
	}
}

func TestTranscribeMissingFile(t *testing.T) {
	p := whisper.NewProvider(whisper.Config{URL: "http://127.0.0.1:1"})
	if _, err := p.Transcribe(context.Background(), transcription.Request{
		AudioPath: "/tmp/does-not-exist.wav",
	}); err == nil {
		t.Fatal("expected error for missing audio file")
	}
}
