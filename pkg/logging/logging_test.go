package logging

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func captureConsole(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := console
	prevFlags := log.Flags()
	console = &buf
	log.SetFlags(0)
	t.Cleanup(func() {
		_ = Close()
		console = prev
		log.SetFlags(prevFlags)
		log.SetOutput(os.Stderr)
	})
	return &buf
}

func TestInitTeesToFile(t *testing.T) {
	buf := captureConsole(t)
	path := filepath.Join(t.TempDir(), "logs", "qmreport.log")

	if err := Init(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	LogEvent("report", "generated %d pages", 3)
	if err := Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	want := "[report] generated 3 pages\n"
	if string(data) != want {
		t.Errorf("file got %q, want %q", data, want)
	}
	if buf.String() != want {
		t.Errorf("console got %q, want %q", buf.String(), want)
	}
}

func TestInitConsoleOnly(t *testing.T) {
	buf := captureConsole(t)
	if err := Init(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	LogEvent("", "plain")
	if buf.String() != "plain\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestLogFields(t *testing.T) {
	buf := captureConsole(t)
	if err := Init(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	LogFields("API", "report", "pages", 2, "model", "", "labels", []string{"a", "b"})

	got := strings.TrimSpace(buf.String())
	want := `[api] report pages=2 model="" labels=["a","b"]`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
