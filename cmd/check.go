package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/payments"
	"github.com/google/subcommands"
)

type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "check the format of a transaction log" }
func (*checkCmd) Usage() string {
	return `pay check <file>

  Reads the transaction log <file> without processing it, and reports every
  malformed row with its line number. Exits with status 1 if there is any.
`
}

func (*checkCmd) SetFlags(f *flag.FlagSet) {}

func (*checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: check expects exactly one transaction log, got %d\n", f.NArg())
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)
	r, err := openInput(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer r.Close()

	var records, malformed int
	d := payments.NewDecoder(r)
	for {
		_, err := d.Decode()
		if err == io.EOF {
			break
		}
		var row *payments.RowError
		if errors.As(err, &row) {
			malformed++
			fmt.Fprintf(stdout, "%s:%v\n", name, err)
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", name, err)
			return subcommands.ExitFailure
		}
		records++
	}

	fmt.Fprintf(stdout, "%s: %d records, %d malformed rows\n", name, records, malformed)
	if malformed > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
