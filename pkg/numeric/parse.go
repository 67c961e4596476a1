// Package numeric provides the normalization policy for free-text numeric input.
package numeric

import (
	"strconv"
	"strings"
)

// Amount converts a free-text field into a float64. Any value that does not
// parse as a floating-point number, including the empty string, yields exactly
// 0 rather than an error; blank fields contribute nothing to downstream sums.
// Negative values pass through unmodified.
func Amount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
