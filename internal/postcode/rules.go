package postcode

import "strings"

// set is a read-only string membership table.
type set map[string]struct{}

func newSet(items ...string) set {
	s := make(set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

func (s set) has(v string) bool {
	_, ok := s[v]
	return ok
}

// prefixOf reports whether any member is a prefix of v.
func (s set) prefixOf(v string) bool {
	for i := 1; i <= len(v); i++ {
		if s.has(v[:i]) {
			return true
		}
	}
	return false
}

// Area override tables. The grammar accepts every code these reject.
var (
	// Outward codes valid regardless of the rules below, including the
	// blocked prefixes (E1W is valid even though E1 is blocked).
	namedExceptions = newSet("WC1A", "BS10", "E1W", "N1C", "N1P", "NW1W", "SE1P")

	// Central London districts split by a trailing letter.
	subdividedLondon = newSet("EC1", "EC2", "EC3", "EC4", "SW1", "W1", "WC1", "WC2")

	doubleDigitAreas  = newSet("AB", "LL", "SO")
	zeroDistrictAreas = newSet("BL", "BS", "CM", "CR", "FY", "HA", "PR", "SL", "SS")
	singleDigitAreas  = newSet("BR", "FY", "HA", "HD", "HG", "HR", "HS", "HX", "JE", "LD", "SM", "SR", "WC", "WN", "ZE")

	blockedOutward = newSet("E1", "N1", "NW1", "SE1", "EC50")
)

// girobank is the only outward code without a district.
const girobank = "GIR"

// SplitOutward splits an outward code at its first digit.
func SplitOutward(outward string) (area, district string) {
	// GIR 0AA keeps its three letter outward as the area and has no
	// district. Every other area is one or two letters.
	if outward == girobank {
		return girobank, ""
	}

	i := strings.IndexFunc(outward, isDigit)
	if i < 0 {
		return outward, ""
	}
	return outward[:i], outward[i:]
}

// SplitInward splits an inward code into sector and unit.
func SplitInward(inward string) (sector, unit string) {
	if inward == "" {
		return "", ""
	}
	return inward[:1], inward[1:]
}

// CheckAreaRules applies the area overrides to a grammar-matched outward
// code. Named exceptions short-circuit everything, including the blocked
// prefixes; otherwise at most one of the subdivided/double/zero/single
// rules applies, and the blocked-prefix rule always runs afterwards.
func CheckAreaRules(outward, area, district string) error {
	if namedExceptions.has(outward) {
		return nil
	}

	switch {
	case subdividedLondon.prefixOf(outward):
		if district == "" || !isLetter(rune(district[len(district)-1])) {
			return areaRuleError(outward, "subdivided district %s must end in a letter", district)
		}
	case doubleDigitAreas.has(area):
		if !isDigits(district, 2) {
			return areaRuleError(outward, "area %s only has two-digit districts", area)
		}
	case zeroDistrictAreas.has(area):
		if district != "0" {
			return areaRuleError(outward, "area %s only has district 0", area)
		}
	case singleDigitAreas.has(area):
		if !isDigits(district, 1) {
			return areaRuleError(outward, "area %s only has single-digit districts", area)
		}
	}

	if blockedOutward.prefixOf(outward) {
		return areaRuleError(outward, "outward prefix is not in use")
	}

	return nil
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, c := range s {
		if !isDigit(c) {
			return false
		}
	}
	return true
}
