package utils

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	testCases := map[string]int{"0": 0, "140": 140, " 45 ": 45, "2000": 2000}

	for raw, want := range testCases {
		got, err := ParseAmount("calories", raw)
		if err != nil {
			t.Errorf("ParseAmount(%q) error = %v, want nil", raw, err)
		}
		if got != want {
			t.Errorf("ParseAmount(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	testCases := []string{"", "abc", "12.5", "-3", "1e3"}

	for _, raw := range testCases {
		if _, err := ParseAmount("protein", raw); !errors.Is(err, ErrInvalidNumericInput) {
			t.Errorf("ParseAmount(%q) error = %v, want ErrInvalidNumericInput", raw, err)
		}
	}
}
