package validation

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  excavator  ", "EXCAVATOR"},
		{"abc-123", "ABC-123"},
		{"with\x00null", "WITHNULL"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateAssetID(t *testing.T) {
	valid := []string{"EXC-001", "A", "GEN_22", "1234567890"}
	for _, id := range valid {
		if !ValidateAssetID(id) {
			t.Errorf("ValidateAssetID(%q) = false, want true", id)
		}
	}

	invalid := []string{"", "exc-001", "EXC 001", "EXC/001", "Ñ-1",
		strings.Repeat("X", 65)}
	for _, id := range invalid {
		if ValidateAssetID(id) {
			t.Errorf("ValidateAssetID(%q) = true, want false", id)
		}
	}
}
