package validation

import (
	"strings"
	"testing"
)

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name       string
		maxLength  int
		content    string
		wantErrors int
		wantMsg    string
	}{
		{"plain text", 0, "Great value for money", 0, ""},
		{"empty string is valid", 0, "", 0, ""},
		{"unbounded length", 0, strings.Repeat("a", 100000), 0, ""},
		{"over limit", 10, "héllo wörld", 1, "exceeds 10"},
		{"multibyte counted as runes", 5, "😊😊😊😊😊", 0, ""},
		{"invalid utf8", 0, "bad \xff byte", 1, "UTF-8"},
		{"nul byte", 0, "null\x00byte", 1, "NUL"},
		{"multiple problems", 3, "\xff\x00abcd", 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := NewValidator(tt.maxLength).ValidateContent(tt.content)
			if len(errs) != tt.wantErrors {
				t.Fatalf("Expected %d errors, got %d: %v", tt.wantErrors, len(errs), errs)
			}
			if tt.wantMsg != "" && !strings.Contains(Join(errs), tt.wantMsg) {
				t.Errorf("Expected message containing %q, got %q", tt.wantMsg, Join(errs))
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	for _, s := range []string{"", " ", "\t\n", " "} {
		if !IsBlank(s) {
			t.Errorf("IsBlank(%q) should be true", s)
		}
	}
	if IsBlank(" x ") {
		t.Error("IsBlank(\" x \") should be false")
	}
}
