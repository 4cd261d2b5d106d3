package renderer

import (
	"errors"
	"slices"

	"github.com/Rhymond/go-money"
	"github.com/etnz/payments"
)

// Summary holds the result of a processing run, ready to render.
type Summary struct {
	Source   string // name of the transaction log, may be empty.
	Currency string // display currency code, empty to print bare amounts.
	Stats    payments.Stats
	Accounts []*payments.Account
	Errors   []string
}

// NewSummary collects the state of engine e after a run that returned err.
func NewSummary(source string, e *payments.Engine, err error) *Summary {
	return &Summary{
		Source:   source,
		Stats:    e.Stats(),
		Accounts: slices.Collect(e.Accounts.All()),
		Errors:   errorLines(err),
	}
}

// errorLines flattens joined errors, one message per line.
func errorLines(err error) []string {
	if err == nil {
		return nil
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var lines []string
		for _, e := range joined.Unwrap() {
			lines = append(lines, errorLines(e)...)
		}
		return lines
	}
	return []string{err.Error()}
}

// Available returns the sum of all available funds.
func (s *Summary) Available() payments.Amount {
	return s.sum(func(a *payments.Account) payments.Amount { return a.Available })
}

// Held returns the sum of all held funds.
func (s *Summary) Held() payments.Amount {
	return s.sum(func(a *payments.Account) payments.Amount { return a.Held })
}

// Total returns the sum of all funds.
func (s *Summary) Total() payments.Amount {
	return s.sum(func(a *payments.Account) payments.Amount { return a.Total })
}

// Locked returns the number of locked accounts.
func (s *Summary) Locked() int {
	n := 0
	for _, a := range s.Accounts {
		if a.Locked {
			n++
		}
	}
	return n
}

func (s *Summary) sum(field func(*payments.Account) payments.Amount) (total payments.Amount) {
	for _, a := range s.Accounts {
		total = total.Add(field(a))
	}
	return total
}

// Format formats an amount in the display currency, with [payments.Places]
// fractional digits.
//
// Unknown currency codes, and amounts too large for the currency
// formatter, are printed as the bare amount followed by the code.
func (s *Summary) Format(a payments.Amount) string {
	if s.Currency == "" {
		return a.String()
	}
	cur := money.GetCurrency(s.Currency)
	minor := a.Decimal().Shift(payments.Places).Round(0).BigInt()
	if cur == nil || !minor.IsInt64() {
		return a.String() + " " + s.Currency
	}
	f := money.NewFormatter(payments.Places, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
	return f.Format(minor.Int64())
}
