// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"strings"
	"unicode"
)

// Capitalize uppercases the first rune and lowercases the rest, the
// normalization applied to product names on write and display.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
