package output

import (
	"testing"
)

func TestParseColorMode_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  ColorMode
	}{
		{"auto", ColorAuto},
		{"always", ColorAlways},
		{"never", ColorNever},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColorMode(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseColorMode(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseColorMode_Invalid(t *testing.T) {
	_, err := ParseColorMode("invalid")
	if err == nil {
		t.Error("expected error for invalid color mode, got nil")
	}
}

func TestResolveColors_Always(t *testing.T) {
	// Even with NO_COLOR set, ColorAlways should return true
	t.Setenv("NO_COLOR", "1")
	if !ResolveColors(ColorAlways, false) {
		t.Error("ResolveColors(ColorAlways, false) with NO_COLOR=1 should return true")
	}
}

func TestResolveColors_Never(t *testing.T) {
	// Even with config=true, ColorNever should return false
	if ResolveColors(ColorNever, true) {
		t.Error("ResolveColors(ColorNever, true) should return false")
	}
}

func TestResolveColors_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	if ResolveColors(ColorAuto, true) {
		t.Error("ResolveColors(ColorAuto, true) with NO_COLOR set should return false")
	}
}

func TestResolveColors_DumbTerm(t *testing.T) {
	t.Setenv("TERM", "dumb")
	if ResolveColors(ColorAuto, true) {
		t.Error("ResolveColors(ColorAuto, true) with TERM=dumb should return false")
	}
}

func TestStatusBadge_NoColors(t *testing.T) {
	p := NewPrinter(false)
	if got := p.StatusBadge("converted"); got != "[converted]" {
		t.Errorf("expected plain badge, got %q", got)
	}
}
