package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/payments"
	"github.com/google/subcommands"
)

// accountsCmd holds the flags for the 'accounts' subcommand.
type accountsCmd struct {
	engineFlags
	query string
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "print client accounts as JSON, optionally filtered" }
func (*accountsCmd) Usage() string {
	return `pay accounts [-on-error continue|abort] [-owner] [-q <jsonpath>] <file>

  Processes the transaction log <file> and prints the client accounts as a
  JSON array. With -q, prints the result of the JSONPath query on that
  array instead, for instance:

    pay accounts -q '$[?(@.locked)].client' transactions.csv
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	c.engineFlags.setFlags(f)
	f.StringVar(&c.query, "q", "", "JSONPath query on the account array.")
}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: accounts expects exactly one transaction log, got %d\n", f.NArg())
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

	data, err := payments.MarshalAccounts(e.Accounts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding accounts: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.query != "" {
		data, err = query(c.query, data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	var b bytes.Buffer
	if err := json.Indent(&b, data, "", "  "); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding accounts: %v\n", err)
		return subcommands.ExitFailure
	}
	b.WriteByte('\n')
	b.WriteTo(stdout)
	return subcommands.ExitSuccess
}

// query evaluates the JSONPath expression path on a JSON document.
// Numbers keep their literal form, amounts are still printed with 4 decimals.
func query(path string, data []byte) ([]byte, error) {
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	var doc any
	if err := d.Decode(&doc); err != nil {
		return nil, err
	}
	result, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", path, err)
	}
	return json.Marshal(result)
}
