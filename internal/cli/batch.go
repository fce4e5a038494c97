package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dukerupert/ukpostcode/internal/postcode"
	"github.com/spf13/cobra"
)

type batchReport struct {
	Results []row `json:"results" yaml:"results"`
}

func newBatchCommand(opts *options) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "batch <postcode;postcode;...>",
		Short: "Check a ;-separated batch of postcodes",
		Long: `Splits the argument on ';' and checks every entry, printing one row per
entry in input order. Empty entries are reported as length errors.`,
		Example: `  ukpostcode batch "SW1W 0NY;ec1a1bb;M1 1AE"
  ukpostcode batch -o yaml --concurrency 4 "W1A 0AX;E1 1AA"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items := postcode.SplitBatch(args[0])

			results, err := postcode.CheckAll(cmd.Context(), items, concurrency)
			if err != nil {
				return err
			}

			report := batchReport{Results: make([]row, len(results))}
			valid := 0
			for i, r := range results {
				report.Results[i] = newRow(r)
				if r.Valid {
					valid++
				}
			}

			opts.log().Debug("checked batch", "items", len(results), "valid", valid)

			return write(cmd.OutOrStdout(), opts.output, report, report.writeText)
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "Number of postcodes checked in parallel")

	return cmd
}

func (r batchReport) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tINPUT\tFORMATTED\tAREA\tDISTRICT\tSECTOR\tUNIT\tSTATUS")
	for i, r := range r.Results {
		fmt.Fprintf(tw, "%d\t%q\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, r.Input, r.Formatted, r.Area, r.District, r.Sector, r.Unit, r.Status)
	}
	return tw.Flush()
}
