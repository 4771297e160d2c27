package middleware

import (
	"strings"
	"testing"
)

func TestValidateNicho(t *testing.T) {
	if err := ValidateNicho("yoga"); err != nil {
		t.Errorf("ValidateNicho(yoga) = %v", err)
	}
	if err := ValidateNicho(""); err == nil {
		t.Error("empty nicho accepted")
	}
	if err := ValidateNicho("   "); err == nil {
		t.Error("whitespace-only nicho accepted")
	}
	if err := ValidateNicho(strings.Repeat("a", 201)); err == nil {
		t.Error("over-length nicho accepted")
	}
	if err := ValidateNicho(strings.Repeat("a", 200)); err != nil {
		t.Errorf("max-length nicho rejected: %v", err)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  yoga  "); got != "yoga" {
		t.Errorf("SanitizeString trims: got %q", got)
	}
	if got := SanitizeString("yo\x00ga"); got != "yoga" {
		t.Errorf("null byte survived: %q", got)
	}
	if got := SanitizeString("a\x01b\x1fc"); got != "abc" {
		t.Errorf("control characters survived: %q", got)
	}
	if got := SanitizeString("linha1\nlinha2\tfim"); got != "linha1\nlinha2\tfim" {
		t.Errorf("newline/tab must be kept: %q", got)
	}
	if got := SanitizeString("café e açaí"); got != "café e açaí" {
		t.Errorf("multibyte text mangled: %q", got)
	}
}

func TestValidateLimit(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 10},
		{-5, 10},
		{1, 1},
		{50, 50},
		{100, 100},
		{101, 100},
	}
	for _, c := range cases {
		if got := ValidateLimit(c.in); got != c.want {
			t.Errorf("ValidateLimit(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
