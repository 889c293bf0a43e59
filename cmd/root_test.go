package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Kruithne/webp/internal/output"
)

func setupRootTest(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "b.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// Reset state that persists between executions
	dryRun = false
	quiet = false
	colorFlag = "never"
	cfgFile = ""
	return dir
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestRoot_MissingInput(t *testing.T) {
	setupRootTest(t)

	err := execute(t, "--dry-run", "--quiet")
	if err == nil {
		t.Fatal("expected error for missing input, got nil")
	}

	var cliErr *output.CLIError
	if !errors.As(err, &cliErr) {
		t.Fatalf("expected CLIError, got %T", err)
	}
	if cliErr.ExitCode != output.ExitError {
		t.Errorf("expected exit code %d, got %d", output.ExitError, cliErr.ExitCode)
	}
}

func TestRoot_DryRunBatch(t *testing.T) {
	dir := setupRootTest(t)

	if err := execute(t, dir, "ext=jpg,png", "quality=80", "--dry-run", "--quiet"); err != nil {
		t.Fatalf("dry-run batch failed: %v", err)
	}
}

func TestRoot_InvalidOptionIsFatal(t *testing.T) {
	dir := setupRootTest(t)

	err := execute(t, dir, "quality=101", "--dry-run", "--quiet")
	if err == nil {
		t.Fatal("expected error for quality out of range, got nil")
	}
}

func TestRoot_MissingInputPathIsFatal(t *testing.T) {
	dir := setupRootTest(t)

	err := execute(t, filepath.Join(dir, "does-not-exist"), "--dry-run", "--quiet")
	if err == nil {
		t.Fatal("expected error for nonexistent input, got nil")
	}
}

func TestRoot_SingleFileDryRun(t *testing.T) {
	dir := setupRootTest(t)

	if err := execute(t, filepath.Join(dir, "a.jpg"), "lossless", "--dry-run", "--quiet"); err != nil {
		t.Fatalf("single file dry-run failed: %v", err)
	}
}
