package postcode

import (
	"fmt"

	"github.com/dukerupert/ukpostcode/internal/domain"
)

// Sentinels for errors.Is. Each carries the status line reported for it.
var (
	ErrLength    = &domain.Error{Code: domain.ELENGTH, Message: StatusLength}
	ErrCharacter = &domain.Error{Code: domain.ECHARACTER, Message: StatusCharacter}
	ErrPattern   = &domain.Error{Code: domain.EPATTERN, Message: StatusInvalid}
	ErrAreaRule  = &domain.Error{Code: domain.EAREARULE, Message: StatusInvalid}
)

func lengthError(stripped string, n int) error {
	return &domain.Error{
		Code:    domain.ELENGTH,
		Op:      "postcode.format",
		Message: StatusLength,
		Detail:  fmt.Sprintf("%d characters in %q", n, stripped),
	}
}

func characterError(stripped string, c rune) error {
	return &domain.Error{
		Code:    domain.ECHARACTER,
		Op:      "postcode.format",
		Message: StatusCharacter,
		Detail:  fmt.Sprintf("unexpected %q in %q", c, stripped),
	}
}

func patternError(formatted, format string, args ...any) error {
	return &domain.Error{
		Code:    domain.EPATTERN,
		Op:      "postcode.match",
		Message: StatusInvalid,
		Detail:  fmt.Sprintf("%q: ", formatted) + fmt.Sprintf(format, args...),
	}
}

func areaRuleError(outward, format string, args ...any) error {
	return &domain.Error{
		Code:    domain.EAREARULE,
		Op:      "postcode.area_rules",
		Message: StatusInvalid,
		Detail:  outward + ": " + fmt.Sprintf(format, args...),
	}
}
