// Package testutil provides shared helpers for the package tests:
// fake interpreter scripts and assertions over the single-line JSON
// output contract.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteScript writes an executable shell script into dir and returns its
// path. Used to stand in for python or pip in tests.
func WriteScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if !strings.HasPrefix(body, "#!") {
		body = "#!/bin/sh\n" + body
	}
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write script %s: %v", name, err)
	}
	return path
}

// DecodeJSONLine asserts that out is exactly one newline-terminated line
// of valid JSON and unmarshals it into v.
func DecodeJSONLine(t *testing.T, out []byte, v any) {
	t.Helper()
	s := string(out)
	if !strings.HasSuffix(s, "\n") {
		t.Fatalf("output is not newline-terminated: %q", s)
	}
	trimmed := strings.TrimSuffix(s, "\n")
	if strings.Contains(trimmed, "\n") {
		t.Fatalf("expected exactly one output line, got %q", s)
	}
	if err := json.Unmarshal([]byte(trimmed), v); err != nil {
		t.Fatalf("output is not valid JSON: %v (%q)", err, trimmed)
	}
}

// JSONKeys returns the top-level keys of a JSON object in document order.
func JSONKeys(t *testing.T, line []byte) []string {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(string(line)))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		t.Fatalf("expected JSON object, got %q", line)
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			t.Fatalf("read key: %v", err)
		}
		key, ok := tok.(string)
		if !ok {
			t.Fatalf("expected object key, got %v", tok)
		}
		keys = append(keys, key)
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			t.Fatalf("decode value for key %s: %v", key, err)
		}
	}
	return keys
}
