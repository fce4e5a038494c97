package cli

import (
	"fmt"
	"io"

	"github.com/dukerupert/ukpostcode/internal/postcode"
	"github.com/spf13/cobra"
)

// stageReport holds the three independent stage results for one input
type stageReport struct {
	Input    string `json:"input" yaml:"input"`
	Format   row    `json:"format" yaml:"format"`
	Validate row    `json:"validate" yaml:"validate"`
	Check    row    `json:"check" yaml:"check"`
}

func newCheckCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <postcode>",
		Short: "Run the format, validate and check stages on one postcode",
		Long: `Runs each stage independently on the raw input and reports all three:
formatting only, grammar validation, and the full check with area rules
and the area/district/sector/unit split.`,
		Example: `  ukpostcode check "sw1w 0ny"
  ukpostcode check -o json EC1A1BB`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := args[0]
			report := stageReport{
				Input:    raw,
				Format:   newRow(postcode.Format(raw)),
				Validate: newRow(postcode.Validate(raw)),
				Check:    newRow(postcode.Check(raw)),
			}

			opts.log().Debug("checked postcode",
				"input", raw,
				"valid", report.Check.Valid,
				"code", report.Check.Code,
			)

			return write(cmd.OutOrStdout(), opts.output, report, report.writeText)
		},
	}
}

func (r stageReport) writeText(w io.Writer) error {
	f, v, c := r.Format.Result, r.Validate.Result, r.Check.Result

	_, err := fmt.Fprintf(w, `
Input Post Code String: %s


######### Formatting Postcode #########
Message: %s
Formatted post code: %s


######### Validating Postcode #########
Status: %t
Message: %s


######### Formatting, Validating and Splitting Postcode #########
Status: %t
Message: %s
Formatted post code: %s
Outward code: %s
Inward code: %s
postcode area: %s
postcode district: %s
postcode sector: %s
postcode unit: %s
`,
		r.Input,
		f.Status, f.Formatted,
		v.Valid, v.Status,
		c.Valid, c.Status, c.Formatted, c.Outward, c.Inward, c.Area, c.District, c.Sector, c.Unit,
	)
	return err
}
