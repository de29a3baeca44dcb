package utils

import (
	"fmt"
	"strings"
)

// SanitizeFilename replaces the characters that break Content-Disposition
// filenames. Spaces become underscores.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	return name
}

// FormatDecimalBR formats a number with comma as the decimal separator and
// dot as the thousands separator, e.g. 1234.5 -> "1.234,50".
func FormatDecimalBR(value float64, decimals int) string {
	formatted := fmt.Sprintf("%.*f", decimals, value)

	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]

	negative := strings.HasPrefix(intPart, "-")
	if negative {
		intPart = intPart[1:]
	}

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}

	result := grouped.String()
	if negative {
		result = "-" + result
	}
	if len(parts) == 2 {
		result += "," + parts[1]
	}
	return result
}
