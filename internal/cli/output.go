package cli

import (
	"encoding/json"
	"io"
	"slices"
	"strings"

	"github.com/dukerupert/ukpostcode/internal/postcode"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

var outputFormats = strings.Join([]string{outputText, outputJSON, outputYAML}, ", ")

func validOutput(format string) bool {
	return slices.Contains([]string{outputText, outputJSON, outputYAML}, format)
}

// row is a result with its failure code, for structured output
type row struct {
	postcode.Result `yaml:",inline"`

	Code string `json:"code,omitempty" yaml:"code,omitempty"`
}

func newRow(r postcode.Result) row {
	return row{Result: r, Code: r.Code()}
}

// write encodes v as JSON or YAML, or calls text for the text format
func write(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}
