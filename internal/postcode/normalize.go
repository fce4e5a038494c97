package postcode

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Accepted length range of a normalized postcode, inclusive.
const (
	MinLength = 5
	MaxLength = 7

	// InwardLength is the fixed size of the inward code.
	InwardLength = 3
)

// Normalize removes all whitespace and uppercases the rest.
// Example: " sw1w 0ny " -> "SW1W0NY"
func Normalize(raw string) string {
	return strings.ToUpper(stripSpace(raw))
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// shape is a gate-checked postcode split at the inward boundary.
type shape struct {
	outward string
	inward  string
}

func (s shape) String() string {
	return s.outward + " " + s.inward
}

// gate runs the length and charset checks and splits the code.
// The charset check looks at the whitespace-stripped input before case
// folding, so runes like 'ı' that uppercase into ASCII are still rejected.
func gate(raw string) (shape, error) {
	stripped := stripSpace(raw)

	if n := utf8.RuneCountInString(stripped); n < MinLength || n > MaxLength {
		return shape{}, lengthError(stripped, n)
	}

	for _, c := range stripped {
		if !isASCIIAlnum(c) {
			return shape{}, characterError(stripped, c)
		}
	}

	normalized := strings.ToUpper(stripped)
	cut := len(normalized) - InwardLength
	return shape{outward: normalized[:cut], inward: normalized[cut:]}, nil
}

func isASCIIAlnum(c rune) bool {
	return isLetter(c) || isDigit(c) || ('a' <= c && c <= 'z')
}

func isLetter(c rune) bool {
	return 'A' <= c && c <= 'Z'
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
