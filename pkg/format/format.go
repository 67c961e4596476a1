// Package format provides the locale-stable number rendering shared by the
// in-app summary output and the export collaborators. Both helpers must
// produce byte-identical output for identical input regardless of caller.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Currency returns a currency string with a dollar sign, thousands separators,
// and zero decimal places (e.g., "-$1,235").
func Currency(amount float64) string {
	formatted := groupDigits(fmt.Sprintf("%.0f", math.Abs(amount)))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Number returns a number string with thousands separators and at most two
// decimal places; trailing zeros in the fraction are dropped (e.g.,
// "1,234.5", "1,234.57", "1,234").
func Number(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
	}
	formatted := fmt.Sprintf("%.2f", math.Abs(value))
	parts := strings.SplitN(formatted, ".", 2)
	intPart := groupDigits(parts[0])
	decPart := strings.TrimRight(parts[1], "0")
	if decPart == "" {
		return sign + intPart
	}
	return sign + intPart + "." + decPart
}

func groupDigits(intPart string) string {
	if len(intPart) <= 3 {
		return intPart
	}
	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return builder.String()
}
