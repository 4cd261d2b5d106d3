package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/payments"
	"github.com/google/subcommands"
)

// processCmd holds the flags for the 'process' subcommand.
type processCmd struct {
	engineFlags
	format string
}

func (*processCmd) Name() string     { return "process" }
func (*processCmd) Synopsis() string { return "process a transaction log and print the client accounts" }
func (*processCmd) Usage() string {
	return `pay process [-on-error continue|abort] [-owner] [-format csv|jsonl] <file>

  Reads the transaction log <file> ("-" for the standard input), applies
  every record in order and prints the resulting client accounts, ordered
  by client id.

  "pay <file>" is a shorthand for "pay process <file>".
`
}

func (c *processCmd) SetFlags(f *flag.FlagSet) {
	c.engineFlags.setFlags(f)
	f.StringVar(&c.format, "format", "csv", "Output format: csv or jsonl.")
}

func (c *processCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: process expects exactly one transaction log, got %d\n", f.NArg())
		return subcommands.ExitUsageError
	}
	encode := payments.EncodeAccounts
	switch c.format {
	case "csv":
	case "jsonl":
		encode = payments.EncodeAccountsJSONL
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown output format %q\n", c.format)
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

	if err := encode(stdout, e.Accounts); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing accounts: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
