package exiftool

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

// recordingExecutor captures the invocation and replays a canned response.
type recordingExecutor struct {
	cmd    string
	args   []string
	output []byte
	err    error
}

func (e *recordingExecutor) Run(ctx context.Context, cmd string, args []string) error {
	e.cmd, e.args = cmd, args
	return e.err
}

func (e *recordingExecutor) RunWithOutput(ctx context.Context, cmd string, args []string) ([]byte, error) {
	e.cmd, e.args = cmd, args
	return e.output, e.err
}

func (e *recordingExecutor) RunWithPipes(ctx context.Context, cmd string, args []string, stdout, stderr io.Writer) error {
	e.cmd, e.args = cmd, args
	return e.err
}

func TestRead_ParsesFirstRecord(t *testing.T) {
	exec := &recordingExecutor{
		output: []byte(`[{"SourceFile":"photo.jpg","Orientation":6,"ImageWidth":4032,"ImageHeight":3024}]`),
	}
	cli := NewCLI("exiftool", exec, slog.Default())

	meta, err := cli.Read(context.Background(), "photo.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Orientation != 6 {
		t.Errorf("expected orientation 6, got %d", meta.Orientation)
	}
	if meta.ImageWidth != 4032 || meta.ImageHeight != 3024 {
		t.Errorf("unexpected dimensions: %dx%d", meta.ImageWidth, meta.ImageHeight)
	}
}

func TestRead_InvokesWithNumericJSONFlags(t *testing.T) {
	exec := &recordingExecutor{output: []byte(`[{}]`)}
	cli := NewCLI("/opt/bin/exiftool", exec, slog.Default())

	if _, err := cli.Read(context.Background(), "a.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exec.cmd != "/opt/bin/exiftool" {
		t.Errorf("expected configured binary, got %q", exec.cmd)
	}
	want := []string{"-json", "-n", "a.png"}
	if len(exec.args) != len(want) {
		t.Fatalf("expected args %v, got %v", want, exec.args)
	}
	for i := range want {
		if exec.args[i] != want[i] {
			t.Errorf("arg[%d]: expected %q, got %q", i, want[i], exec.args[i])
		}
	}
}

func TestRead_MissingOrientationIsZero(t *testing.T) {
	exec := &recordingExecutor{output: []byte(`[{"SourceFile":"flat.png"}]`)}
	cli := NewCLI("exiftool", exec, slog.Default())

	meta, err := cli.Read(context.Background(), "flat.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Orientation != 0 {
		t.Errorf("expected zero orientation, got %d", meta.Orientation)
	}
}

func TestRead_ToolFailure(t *testing.T) {
	exec := &recordingExecutor{err: errors.New("exit status 1")}
	cli := NewCLI("exiftool", exec, slog.Default())

	if _, err := cli.Read(context.Background(), "broken.jpg"); err == nil {
		t.Fatal("expected error from failing tool, got nil")
	}
}

func TestRead_EmptyOutput(t *testing.T) {
	exec := &recordingExecutor{}
	cli := NewCLI("exiftool", exec, slog.Default())

	meta, err := cli.Read(context.Background(), "dry.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta != nil {
		t.Errorf("expected nil metadata for empty output, got %+v", meta)
	}
}

func TestRead_EmptyArray(t *testing.T) {
	exec := &recordingExecutor{output: []byte(`[]`)}
	cli := NewCLI("exiftool", exec, slog.Default())

	if _, err := cli.Read(context.Background(), "a.jpg"); err == nil {
		t.Fatal("expected error for empty metadata array, got nil")
	}
}
