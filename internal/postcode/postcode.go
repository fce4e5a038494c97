// Package postcode normalizes, validates and decomposes UK postcodes.
//
// Every entry point takes the raw user input and returns a fresh Result.
// Nothing is shared between calls except read-only rule tables, so the
// functions are safe for concurrent use.
package postcode

import "github.com/dukerupert/ukpostcode/internal/domain"

// Status lines shown to users. The length message says "5 to 8" while the
// enforced range is [MinLength, MaxLength]; the text is kept as published.
const (
	StatusLength    = "ERROR: 5 to 8 characters only"
	StatusCharacter = "ERROR: No special Characters allowed"
	StatusFormatted = "Formatted"
	StatusValid     = "VALID: the post code is valid"
	StatusInvalid   = "INVALID: the post code is invalid"
)

// Result is the outcome of checking one postcode.
type Result struct {
	Input     string `json:"input" yaml:"input"`
	Formatted string `json:"formatted" yaml:"formatted"`
	Outward   string `json:"outward_code" yaml:"outward_code"`
	Inward    string `json:"inward_code" yaml:"inward_code"`
	Area      string `json:"area" yaml:"area"`
	District  string `json:"district" yaml:"district"`
	Sector    string `json:"sector" yaml:"sector"`
	Unit      string `json:"unit" yaml:"unit"`
	Valid     bool   `json:"valid" yaml:"valid"`
	Status    string `json:"status" yaml:"status"`

	// Err is the failure that decided Status, nil when the stage passed.
	Err error `json:"-" yaml:"-"`
}

// Code returns the domain error code of the failure, or "" on success.
func (r Result) Code() string {
	return domain.ErrorCode(r.Err)
}

// Format normalizes raw and runs the length and charset checks. On success
// the status is StatusFormatted; the grammar is not consulted.
func Format(raw string) Result {
	s, err := gate(raw)
	if err != nil {
		return failed(raw, err)
	}
	return formatted(raw, s)
}

// Validate formats raw and matches it against the grammar. Area rules are
// not applied; use Check for the full pipeline.
func Validate(raw string) Result {
	s, err := gate(raw)
	if err != nil {
		return failed(raw, err)
	}

	r := formatted(raw, s)
	if err := Match(s.String()); err != nil {
		return invalid(r, err)
	}

	r.Valid = true
	r.Status = StatusValid
	return r
}

// Check runs the full pipeline: format, grammar, structural split and area
// rules. Area and District are only set when the area rules pass; Sector
// and Unit likewise.
func Check(raw string) Result {
	s, err := gate(raw)
	if err != nil {
		return failed(raw, err)
	}

	r := formatted(raw, s)
	if err := Match(s.String()); err != nil {
		return invalid(r, err)
	}

	area, district := SplitOutward(s.outward)
	if err := CheckAreaRules(s.outward, area, district); err != nil {
		return invalid(r, err)
	}

	r.Area, r.District = area, district
	r.Sector, r.Unit = SplitInward(s.inward)
	r.Valid = true
	r.Status = StatusValid
	return r
}

func failed(raw string, err error) Result {
	return Result{
		Input:  raw,
		Status: domain.ErrorMessage(err),
		Err:    err,
	}
}

func formatted(raw string, s shape) Result {
	return Result{
		Input:     raw,
		Formatted: s.String(),
		Outward:   s.outward,
		Inward:    s.inward,
		Status:    StatusFormatted,
	}
}

func invalid(r Result, err error) Result {
	r.Status = StatusInvalid
	r.Err = err
	return r
}
