package postcode

import (
	"slices"
	"strings"
)

// SpecialCode is the non-geographic Girobank postcode, valid outside the
// general grammar.
const SpecialCode = "GIR 0AA"

// Shape is the letter/digit outline of a code: 'A' for a letter, '9' for a
// digit, '?' for anything else.
type Shape string

const (
	ShapeA9   Shape = "A9"
	ShapeA99  Shape = "A99"
	ShapeA9A  Shape = "A9A"
	ShapeAA9  Shape = "AA9"
	ShapeAA99 Shape = "AA99"
	ShapeAA9A Shape = "AA9A"

	// ShapeInward is the only accepted inward shape.
	ShapeInward Shape = "9AA"
)

// OutwardShapes lists every outward shape the grammar accepts.
var OutwardShapes = []Shape{ShapeA9, ShapeA99, ShapeA9A, ShapeAA9, ShapeAA99, ShapeAA9A}

// letterSet is a membership table over A-Z.
type letterSet [26]bool

func letters(s string) letterSet {
	var set letterSet
	for i := 0; i < len(s); i++ {
		set[s[i]-'A'] = true
	}
	return set
}

func (s *letterSet) has(c byte) bool {
	return 'A' <= c && c <= 'Z' && s[c-'A']
}

// Position constraints of the grammar.
var (
	excludedFirst  = letters("QVX")
	excludedSecond = letters("IJZ")
	allowedA9A     = letters("ABCDEFGHJKPSTUW")
	allowedAA9A    = letters("ABEHMNPRVWXY")
	excludedInward = letters("CIKMOV")
)

// ShapeOf returns the outline of an uppercase code.
func ShapeOf(code string) Shape {
	b := make([]byte, len(code))
	for i := 0; i < len(code); i++ {
		switch c := rune(code[i]); {
		case isLetter(c):
			b[i] = 'A'
		case isDigit(c):
			b[i] = '9'
		default:
			b[i] = '?'
		}
	}
	return Shape(b)
}

// Match checks a formatted postcode ("<outward> <inward>", uppercase)
// against the UK postcode grammar. A nil error licenses the area-rule
// stage; it does not make the postcode valid on its own.
func Match(formatted string) error {
	if formatted == SpecialCode {
		return nil
	}

	outward, inward, ok := strings.Cut(formatted, " ")
	if !ok {
		return patternError(formatted, "no space between outward and inward code")
	}
	if err := matchOutward(formatted, outward); err != nil {
		return err
	}
	return matchInward(formatted, inward)
}

func matchOutward(formatted, outward string) error {
	s := ShapeOf(outward)
	if !slices.Contains(OutwardShapes, s) {
		return patternError(formatted, "outward shape %s not accepted", s)
	}

	if excludedFirst.has(outward[0]) {
		return patternError(formatted, "%c not allowed in first position", outward[0])
	}

	switch s {
	case ShapeAA9, ShapeAA99, ShapeAA9A:
		if excludedSecond.has(outward[1]) {
			return patternError(formatted, "%c not allowed in second position", outward[1])
		}
	}

	switch s {
	case ShapeA9A:
		if !allowedA9A.has(outward[2]) {
			return patternError(formatted, "%c not allowed in third position of A9A", outward[2])
		}
	case ShapeAA9A:
		if !allowedAA9A.has(outward[3]) {
			return patternError(formatted, "%c not allowed in fourth position of AA9A", outward[3])
		}
	}

	return nil
}

func matchInward(formatted, inward string) error {
	if s := ShapeOf(inward); s != ShapeInward {
		return patternError(formatted, "inward shape %s not accepted", s)
	}

	for i := 1; i < len(inward); i++ {
		if excludedInward.has(inward[i]) {
			return patternError(formatted, "%c not allowed in inward code", inward[i])
		}
	}

	return nil
}
