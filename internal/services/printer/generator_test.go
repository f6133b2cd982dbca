package printer

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	if got := truncate("Polo Shirt", 38); got != "Polo Shirt" {
		t.Errorf("Short names must pass through, got %q", got)
	}

	long := strings.Repeat("x", 50)
	got := truncate(long, 38)
	if got != strings.Repeat("x", 35)+"..." {
		t.Errorf("Long names should end in an ellipsis, got %q", got)
	}

	// Multi-byte labels must never be cut mid-rune
	accented := strings.Repeat("Barong Tagálog Piña ", 3)
	got = truncate(accented, 38)
	if !utf8.ValidString(got) {
		t.Errorf("Truncation split a rune: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 38 {
		t.Errorf("Expected 38 runes including the ellipsis, got %d", n)
	}
}
