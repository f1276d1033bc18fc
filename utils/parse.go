package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidNumericInput is returned when a value is not a well-formed non-negative integer.
var ErrInvalidNumericInput = errors.New("invalid numeric input")

// ParseAmount parses user input for calories, macros and goals.
func ParseAmount(field, raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", field, raw, ErrInvalidNumericInput)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s %d is negative: %w", field, value, ErrInvalidNumericInput)
	}
	return value, nil
}
