// Package cmd implements the pay command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/payments"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&processCmd{}, "transactions")
	c.Register(&summaryCmd{}, "transactions")
	c.Register(&accountsCmd{}, "transactions")
	c.Register(&ledgerCmd{}, "transactions")
	c.Register(&checkCmd{}, "transactions")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the configuration file. Defaults to pay.yaml in the current directory or in $HOME/.config/pay.")
var verbose = flag.Bool("v", false, "Log every ignored record.")
var plain = flag.Bool("plain", false, "Print markdown without terminal styling.")

// stdout is where commands write their result.
var stdout io.Writer = os.Stdout

// engineFlags are the flags shared by the commands that process a transaction log.
type engineFlags struct {
	onError string
	owner   bool
}

func (c *engineFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.onError, "on-error", "continue", "What to do with a failing row or record: continue or abort.")
	f.BoolVar(&c.owner, "owner", false, "Ignore disputes, resolves and chargebacks from a client that does not own the transaction.")
}

// engine creates an engine. Flags that are not on the command line take their value from the configuration.
func (c *engineFlags) engine(f *flag.FlagSet) (*payments.Engine, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	onError, owner := cfg.OnError, cfg.RequireOwner
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "on-error":
			onError = c.onError
		case "owner":
			owner = c.owner
		}
	})
	policy, err := payments.ParsePolicy(onError)
	if err != nil {
		return nil, err
	}

	e := payments.NewEngine()
	e.Policy = policy
	e.Processor.RequireOwner = owner
	e.Verbose = cfg.Verbose || *verbose
	return e, nil
}

// openInput opens a transaction log, "-" is the standard input.
func openInput(name string) (io.ReadCloser, error) {
	if name == "" {
		return nil, errors.New("missing transaction log argument")
	}
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

// run reads the transaction log name and applies it to e.
//
// It returns the errors of the rows and records that were dropped, and a fatal error if the run could not complete.
func run(e *payments.Engine, name string) (dropped error, err error) {
	r, err := openInput(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	records, rerr := payments.ReadRecords(payments.NewDecoder(r), e.Policy)
	if rerr != nil {
		var row *payments.RowError
		if e.Policy == payments.Abort || !errors.As(rerr, &row) {
			return nil, fmt.Errorf("cannot read %q: %w", name, rerr)
		}
		log.Printf("dropping malformed rows of %q:\n%v", name, rerr)
		dropped = rerr
	}

	if err := e.Run(records); err != nil {
		if e.Policy == payments.Abort {
			return nil, err
		}
		dropped = errors.Join(dropped, err)
	}
	return dropped, nil
}

// printMarkdown prints md to stdout, styled for the terminal unless -plain is set.
func printMarkdown(md string) {
	if !*plain {
		out, err := styleMarkdown(md)
		if err == nil {
			fmt.Fprint(stdout, out)
			return
		}
		log.Printf("cannot style markdown: %v", err)
	}
	fmt.Fprint(stdout, md)
}

func styleMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
