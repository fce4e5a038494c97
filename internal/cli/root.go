// Package cli is the ukpostcode command line: a thin adapter that runs
// the postcode engine on its arguments and prints the results.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukerupert/ukpostcode/internal"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=..."
var Version = "dev"

type options struct {
	output   string
	logLevel string
	logger   *slog.Logger
}

// NewRootCommand builds the ukpostcode command tree. Invalid postcodes are
// reported, not treated as failures: the command only errors on bad usage.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:     "ukpostcode",
		Short:   "Format, validate and split UK postcodes",
		Version: Version,
		Long: `ukpostcode normalizes UK postcodes, checks them against the postcode
grammar and the area rules, and splits valid codes into area, district,
sector and unit.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !validOutput(opts.output) {
				return fmt.Errorf("invalid --output %q: want one of %s", opts.output, outputFormats)
			}
			opts.logger = internal.NewLogger(cmd.ErrOrStderr(), "dev", opts.logLevel)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputText, "Output format: text, json or yaml")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	root.AddCommand(newCheckCommand(opts))
	root.AddCommand(newBatchCommand(opts))

	return root
}

// Execute runs the root command with ctx and the process arguments
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (o *options) log() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.logger
}
