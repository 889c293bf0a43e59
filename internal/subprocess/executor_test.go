package subprocess

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestRunner_DryRunSkipsExecution(t *testing.T) {
	r := NewRunner(slog.Default(), true)

	// A nonexistent binary would fail if actually executed
	if err := r.Run(context.Background(), "definitely-not-a-binary", []string{"-x"}); err != nil {
		t.Fatalf("dry-run Run returned error: %v", err)
	}

	out, err := r.RunWithOutput(context.Background(), "definitely-not-a-binary", nil)
	if err != nil {
		t.Fatalf("dry-run RunWithOutput returned error: %v", err)
	}
	if out != nil {
		t.Errorf("dry-run RunWithOutput should return nil output, got %q", out)
	}
}

func TestRunner_DryRunWritesCommandLine(t *testing.T) {
	r := NewRunner(slog.Default(), true)

	var stdout bytes.Buffer
	err := r.RunWithPipes(context.Background(), "ffmpeg", []string{"-i", "a.jpg"}, &stdout, &stdout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "ffmpeg -i a.jpg") {
		t.Errorf("expected command line in output, got %q", stdout.String())
	}
}

func TestRunner_MissingBinary(t *testing.T) {
	r := NewRunner(slog.Default(), false)

	if err := r.Run(context.Background(), "definitely-not-a-binary", nil); err == nil {
		t.Fatal("expected error for missing binary, got nil")
	}
	if _, err := r.RunWithOutput(context.Background(), "definitely-not-a-binary", nil); err == nil {
		t.Fatal("expected error for missing binary, got nil")
	}
}
