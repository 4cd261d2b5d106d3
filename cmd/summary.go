package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/payments/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	engineFlags
	currency string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a summary of a transaction log processing" }
func (*summaryCmd) Usage() string {
	return `pay summary [-on-error continue|abort] [-owner] [-currency <code>] <file>

  Processes the transaction log <file> and displays record statistics,
  the reasons why records were ignored, the client accounts and the
  dropped rows.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	c.engineFlags.setFlags(f)
	f.StringVar(&c.currency, "currency", "", "Display amounts in this currency (ISO 4217 code). Defaults to the configuration.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: summary expects exactly one transaction log, got %d\n", f.NArg())
		return subcommands.ExitUsageError
	}
	e, err := c.engine(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	dropped, err := run(e, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	s := renderer.NewSummary(f.Arg(0), e, dropped)
	s.Currency = c.currency
	if s.Currency == "" {
		cfg, err := LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		s.Currency = cfg.Currency
	}
	printMarkdown(renderer.RenderSummary(s))
	return subcommands.ExitSuccess
}
