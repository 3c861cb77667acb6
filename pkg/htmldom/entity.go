package htmldom

import (
	"strings"
	"unicode/utf8"
)

// namedEntities is the set of named character references the decoder
// understands. Full HTML5 entity coverage is out of scope; this covers
// the references that dominate real-world markup.
var namedEntities = map[string]rune{
	"lt":     '<',
	"gt":     '>',
	"amp":    '&',
	"apos":   '\'',
	"quot":   '"',
	"nbsp":   ' ',
	"copy":   '©',
	"reg":    '®',
	"mdash":  '—',
	"ndash":  '–',
	"hellip": '…',
	"laquo":  '«',
	"raquo":  '»',
	"times":  '×',
}

// decodeEntities resolves named and numeric character references in s.
// Unrecognized references are left verbatim. When s contains no '&' the
// input is returned unchanged without allocating.
func decodeEntities(s string) string {
	amp := strings.IndexByte(s, '&')
	if amp < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:amp])

	for i := amp; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		r, width, ok := decodeEntity(s[i:])
		if !ok {
			b.WriteByte('&')
			i++
			continue
		}
		b.WriteRune(r)
		i += width
	}
	return b.String()
}

// decodeEntity decodes a single reference at the start of s (which
// begins with '&'). It returns the rune, the byte width of the
// reference including '&' and ';', and whether it was recognized.
func decodeEntity(s string) (rune, int, bool) {
	semi := strings.IndexByte(s, ';')
	if semi <= 1 || semi > 32 {
		return 0, 0, false
	}
	ent := s[1:semi]

	if ent[0] == '#' {
		r, ok := decodeNumericEntity(ent[1:])
		if !ok {
			return 0, 0, false
		}
		return r, semi + 1, true
	}

	if r, ok := namedEntities[ent]; ok {
		return r, semi + 1, true
	}
	return 0, 0, false
}

func decodeNumericEntity(digits string) (rune, bool) {
	if digits == "" {
		return 0, false
	}
	var num int64
	if digits[0] == 'x' || digits[0] == 'X' {
		if len(digits) == 1 {
			return 0, false
		}
		for _, c := range digits[1:] {
			num <<= 4
			switch {
			case c >= '0' && c <= '9':
				num += int64(c - '0')
			case c >= 'a' && c <= 'f':
				num += int64(c-'a') + 10
			case c >= 'A' && c <= 'F':
				num += int64(c-'A') + 10
			default:
				return 0, false
			}
			if num > utf8.MaxRune {
				return 0, false
			}
		}
	} else {
		for _, c := range digits {
			if c < '0' || c > '9' {
				return 0, false
			}
			num = num*10 + int64(c-'0')
			if num > utf8.MaxRune {
				return 0, false
			}
		}
	}
	if !utf8.ValidRune(rune(num)) {
		return 0, false
	}
	return rune(num), true
}
