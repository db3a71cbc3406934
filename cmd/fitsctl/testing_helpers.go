package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/fitskit/fits"
)

// writeTestFITS writes a small FITS file with the given cards into a
// temp directory and returns its path.
func writeTestFITS(t *testing.T, name string, cards ...fits.Card) string {
	t.Helper()
	h, err := fits.NewHeader(cards...)
	if err != nil {
		t.Fatalf("failed to build header: %v", err)
	}
	buf, err := fits.WriteHeader(h)
	if err != nil {
		t.Fatalf("failed to serialize header: %v", err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}
