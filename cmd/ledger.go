package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/payments"
	"github.com/google/subcommands"
)

type ledgerCmd struct {
	engineFlags
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "print the disputable transactions and their state" }
func (*ledgerCmd) Usage() string {
	return `pay ledger [-on-error continue|abort] [-owner] <file>

  Processes the transaction log <file> and prints every accepted deposit
  and withdrawal as a JSON line, with its dispute state, ordered by
  transaction id.
`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) { c.engineFlags.setFlags(f) }

func (c *ledgerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: ledger expects exactly one transaction log, got %d\n", f.NArg())
		return subcommands.ExitUsageError
	}
	e, err := c.engine(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if _, err := run(e, f.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	if err := payments.EncodeLedger(stdout, e.Ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
