package xlsx

import (
	"strings"
	"unicode/utf8"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape replaces the five XML special characters with entity references.
// Every byte of the input is considered exactly once, so existing entities
// are escaped again rather than preserved.
func Escape(text string) string {
	return xmlEscaper.Replace(text)
}

// cleanText drops characters that XML 1.0 does not allow anywhere in a
// document and replaces invalid UTF-8 with U+FFFD.
func cleanText(s string) string {
	clean := true
	for _, r := range s {
		if !isXMLChar(r) || r == utf8.RuneError {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(utf8.RuneError)
			continue
		}
		if isXMLChar(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isXMLChar(r rune) bool {
	switch {
	case r == 0x09 || r == 0x0A || r == 0x0D:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

// xmlText prepares arbitrary text for a text node or attribute value.
func xmlText(s string) string {
	return Escape(cleanText(s))
}
