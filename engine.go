package payments

import (
	"errors"
	"fmt"
	"log"
)

// Policy tells an [Engine] what to do with a record that fails.
type Policy int

const (
	// Continue logs and drops the failing record, then moves on.
	Continue Policy = iota
	// Abort stops at the first failing record.
	Abort
)

func (p Policy) String() string {
	switch p {
	case Continue:
		return "continue"
	case Abort:
		return "abort"
	default:
		return "unknown"
	}
}

// ParsePolicy parses "continue" or "abort".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "continue":
		return Continue, nil
	case "abort":
		return Abort, nil
	default:
		return 0, fmt.Errorf("unknown error policy: %q", s)
	}
}

// Stats counts what an engine did with its records.
type Stats struct {
	Records  int
	Applied  int
	Ignored  int
	Rejected int
	Reasons  map[Outcome]int // ignored records per reason.
}

// Engine owns the ledger and the account table of a run and folds records
// into them, one at a time, in order.
type Engine struct {
	Ledger    *Ledger
	Accounts  *Accounts
	Processor Processor
	Policy    Policy
	Verbose   bool // log every ignored record.

	stats Stats
}

// NewEngine creates an engine with empty state and the canonical rules.
func NewEngine() *Engine {
	return &Engine{
		Ledger:   NewLedger(),
		Accounts: NewAccounts(),
		stats:    Stats{Reasons: make(map[Outcome]int)},
	}
}

// Stats returns the counters accumulated so far.
func (e *Engine) Stats() Stats { return e.stats }

// Apply applies a single record and updates the engine counters.
func (e *Engine) Apply(rec Record) (Outcome, error) {
	if e.stats.Reasons == nil {
		e.stats.Reasons = make(map[Outcome]int)
	}
	e.stats.Records++
	outcome, err := e.Processor.Explain(rec, e.Ledger, e.Accounts)
	switch {
	case err != nil:
		e.stats.Rejected++
	case outcome.Ignored():
		e.stats.Ignored++
		e.stats.Reasons[outcome]++
		if e.Verbose {
			log.Printf("ignored %v: %v", rec, outcome)
		}
	default:
		e.stats.Applied++
	}
	return outcome, err
}

// Run applies all records in order.
//
// With [Continue] every record is applied and failures are logged, then
// returned joined. With [Abort] processing stops at the first failure, that
// is returned with its position.
func (e *Engine) Run(records []Record) error {
	var errs error
	for i, rec := range records {
		if _, err := e.Apply(rec); err != nil {
			err = fmt.Errorf("record #%d: %w", i+1, err)
			if e.Policy == Abort {
				return err
			}
			log.Printf("dropping %v", err)
			errs = errors.Join(errs, err)
		}
	}
	return errs
}
