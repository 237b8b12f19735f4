package ui

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Label turns identifiers like "shape_differs" or "nonpayable" into table
// labels such as "Shape Differs" and "Nonpayable".
func Label(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}

// ShortHex shortens long hex strings to "0xabcdef…123456".
func ShortHex(s string) string {
	if len(s) <= 16 {
		return s
	}
	return s[:8] + "…" + s[len(s)-6:]
}
