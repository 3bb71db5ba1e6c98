/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: mask.go
Description: Mask engine for the bytefreq profiler. Converts raw field values into
generalized patterns over character classes at one of four grains, with optional
run-length compression of repeated classes.
*/

package mask

import (
	"strings"
	"unicode"
)

// Grain selects how aggressively characters are generalized
type Grain string

const (
	// GrainHigh maps ASCII letters and digits, leaving everything else untouched
	GrainHigh Grain = "H"
	// GrainLow is GrainHigh followed by run-length compression
	GrainLow Grain = "L"
	// GrainUnicode classifies every character by its Unicode general category
	GrainUnicode Grain = "U"
	// GrainLowUnicode is GrainUnicode followed by run-length compression
	GrainLowUnicode Grain = "LU"
)

// DefaultGrain is used when no grain is configured
const DefaultGrain = GrainLowUnicode

// emptyPattern stands in for a compressed pattern with no characters
const emptyPattern = "_"

// ParseGrain maps a configuration string to a Grain. Unrecognised values
// report ok=false and resolve to GrainUnicode, which is also how Mask treats them.
func ParseGrain(s string) (Grain, bool) {
	switch g := Grain(strings.ToUpper(strings.TrimSpace(s))); g {
	case GrainHigh, GrainLow, GrainUnicode, GrainLowUnicode:
		return g, true
	default:
		return GrainUnicode, false
	}
}

// Mask converts value into its pattern under grain g
func Mask(value string, g Grain) string {
	switch g {
	case GrainHigh:
		return mapRunes(value, HighRune)
	case GrainLow:
		return Compress(mapRunes(value, HighRune))
	case GrainLowUnicode:
		return Compress(mapRunes(value, UnicodeRune))
	default:
		return mapRunes(value, UnicodeRune)
	}
}

// Compress collapses each run of identical characters into a single one.
// An empty result becomes "_" so a compressed pattern is never empty.
func Compress(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var last rune
	first := true
	for _, r := range s {
		if first || r != last {
			b.WriteRune(r)
			last = r
			first = false
		}
	}

	if b.Len() == 0 {
		return emptyPattern
	}
	return b.String()
}

// HighRune is the ASCII-only class mapping
func HighRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z':
		return 'a'
	case r >= 'A' && r <= 'Z':
		return 'A'
	case r >= '0' && r <= '9':
		return '9'
	default:
		return r
	}
}

// UnicodeRune maps r to a class using its Unicode general category.
// ASCII alphanumerics follow HighRune; " - . , are kept as-is.
func UnicodeRune(r rune) rune {
	switch {
	case r < 0x80 && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'):
		return HighRune(r)
	case r == '"' || r == '-' || r == '.' || r == ',':
		return r
	case unicode.Is(unicode.White_Space, r):
		return ' '
	}

	switch {
	case unicode.In(r, unicode.Lu, unicode.Lt):
		return 'A'
	case unicode.In(r, unicode.Ll, unicode.Lo, unicode.Lm):
		return 'a'
	case unicode.In(r, unicode.Nd, unicode.Nl, unicode.No):
		return '9'
	case unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp):
		return ' '
	default:
		return '_'
	}
}

func mapRunes(value string, fn func(rune) rune) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		b.WriteRune(fn(r))
	}
	return b.String()
}
