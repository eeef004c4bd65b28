package xlsx

import (
	"strings"
	"unicode/utf16"

	"mercator-hq/tabula/pkg/table"
)

// MaxSheetNameLength is the longest sheet name spreadsheet applications
// accept, counted in UTF-16 code units.
const MaxSheetNameLength = 31

// illegalSheetNameChars may not appear in a sheet name.
const illegalSheetNameChars = `\/*?:[]`

// SanitizeSheetName makes name usable as a sheet title. It strips the
// characters \ / * ? : [ ] and anything XML cannot carry, trims surrounding
// whitespace and truncates to 31 UTF-16 code units. An empty result becomes
// table.DefaultSheetName.
func SanitizeSheetName(name string) string {
	if name == "" {
		return table.DefaultSheetName
	}

	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegalSheetNameChars, r) {
			return -1
		}
		return r
	}, cleanText(name))
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return table.DefaultSheetName
	}
	return truncateUTF16(cleaned, MaxSheetNameLength)
}

// truncateUTF16 cuts s after the last whole rune that fits in max UTF-16
// code units.
func truncateUTF16(s string, max int) string {
	units := 0
	for i, r := range s {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		if units+n > max {
			return s[:i]
		}
		units += n
	}
	return s
}
