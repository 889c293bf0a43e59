package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestCLIError_Error(t *testing.T) {
	err := &CLIError{Summary: "something broke", ExitCode: ExitError}
	if err.Error() != "something broke" {
		t.Errorf("expected summary as error string, got %q", err.Error())
	}
}

func TestFormatError_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{out: &buf, err: &buf, useColors: false}

	p.FormatError(&CLIError{
		Summary:    "invalid quality",
		Detail:     "quality must be between 0 and 100",
		Suggestion: "Run 'webp --help' for usage",
		ExitCode:   ExitError,
	})

	out := buf.String()
	for _, want := range []string{"[ERROR] invalid quality", "Cause:", "Suggestion:"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestFormatError_OmitsEmptySections(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{out: &buf, err: &buf, useColors: false}

	p.FormatError(&CLIError{Summary: "missing input path", ExitCode: ExitError})

	out := buf.String()
	if strings.Contains(out, "Cause:") || strings.Contains(out, "Suggestion:") {
		t.Errorf("expected no empty sections, got %q", out)
	}
}
