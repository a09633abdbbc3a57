package util

import (
	"fmt"
	"strings"
)

// outputFormats lists the supported output formats in display order.
var outputFormats = []string{"text", "json", "yaml"}

// NormalizeFormat normalizes a format string to lowercase.
func NormalizeFormat(format string) string {
	return strings.ToLower(format)
}

// ValidateOutputFormat checks that the given format is supported.
func ValidateOutputFormat(format string) error {
	normalized := NormalizeFormat(format)
	for _, f := range outputFormats {
		if normalized == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s. Valid formats are: %s", format, strings.Join(outputFormats, ", "))
}
