package handler

import (
	"html/template"
	"time"

	"github.com/dukerupert/ukpostcode/internal/domain"
	"github.com/dukerupert/ukpostcode/internal/postcode"
)

// TemplateFuncs returns a FuncMap with custom template functions
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"year": func() int {
			return time.Now().Year()
		},
		"statusClass": StatusClass,
	}
}

// StatusClass is the CSS class for a result row: "valid", "invalid" for a
// grammar or area-rule failure, and "error" for input rejected before the
// grammar ran.
func StatusClass(r postcode.Result) string {
	switch {
	case r.Valid:
		return "valid"
	case domain.IsCode(r.Err, domain.EPATTERN), domain.IsCode(r.Err, domain.EAREARULE):
		return "invalid"
	default:
		return "error"
	}
}
