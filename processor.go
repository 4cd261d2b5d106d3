package payments

import (
	"errors"
	"fmt"
	"slices"
)

// ErrMissingAmount is returned for a deposit or a withdrawal without amount.
var ErrMissingAmount = errors.New("missing amount")

// ErrUnknownKind is returned for a record whose Kind is none of [Kinds].
// Decoded records never have one.
var ErrUnknownKind = errors.New("unknown transaction type")

// Outcome describes what applying a record did.
type Outcome int

const (
	Applied Outcome = iota
	Rejected
	IgnoredLocked            // the client account is locked.
	IgnoredDuplicate         // a deposit or withdrawal reuses a known tx id.
	IgnoredUnknownTx         // a dispute, resolve or chargeback references an unknown tx.
	IgnoredWrongState        // the referenced tx is not in the state the record requires.
	IgnoredWithdrawalDispute // the referenced tx is a withdrawal, they cannot be disputed.
	IgnoredInsufficientFunds // a withdrawal exceeds the available funds.
	IgnoredForeignTx         // the referenced tx belongs to another client (RequireOwner only).
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Rejected:
		return "rejected"
	case IgnoredLocked:
		return "locked account"
	case IgnoredDuplicate:
		return "duplicate tx"
	case IgnoredUnknownTx:
		return "unknown tx"
	case IgnoredWrongState:
		return "wrong state"
	case IgnoredWithdrawalDispute:
		return "withdrawal dispute"
	case IgnoredInsufficientFunds:
		return "insufficient funds"
	case IgnoredForeignTx:
		return "foreign tx"
	default:
		return "unknown"
	}
}

// Ignored reports whether the record was a silent no-op.
func (o Outcome) Ignored() bool { return o >= IgnoredLocked }

// Processor applies transaction records to a ledger and an account table.
//
// Its zero value implements the canonical rules.
type Processor struct {
	// RequireOwner ignores disputes, resolves and chargebacks issued by a
	// client that does not own the referenced transaction.
	RequireOwner bool
}

// Apply applies rec with the canonical rules. See [Processor.Apply].
func Apply(rec Record, ledger *Ledger, accounts *Accounts) error {
	return Processor{}.Apply(rec, ledger, accounts)
}

// Apply folds a single record into ledger and accounts.
//
// A record of a known kind only fails with [ErrMissingAmount], and a record
// that fails leaves both ledger and accounts untouched. Any other anomaly (unknown or
// duplicate tx, wrong dispute state, insufficient funds, locked account)
// is a silent no-op.
func (p Processor) Apply(rec Record, ledger *Ledger, accounts *Accounts) error {
	_, err := p.Explain(rec, ledger, accounts)
	return err
}

// Explain is Apply that also reports the outcome.
func (p Processor) Explain(rec Record, ledger *Ledger, accounts *Accounts) (Outcome, error) {
	if !slices.Contains(Kinds, rec.Kind) {
		return Rejected, fmt.Errorf("client %d tx %d: %w %q", rec.Client, rec.Tx, ErrUnknownKind, rec.Kind)
	}
	if a := accounts.Lookup(rec.Client); a != nil && a.Locked {
		return IgnoredLocked, nil
	}

	if e := ledger.Lookup(rec.Tx); e != nil {
		return p.settle(rec, e, accounts.GetOrCreate(rec.Client)), nil
	}

	if !rec.Kind.carriesAmount() {
		accounts.GetOrCreate(rec.Client)
		return IgnoredUnknownTx, nil
	}
	if rec.Amount == nil {
		return Rejected, fmt.Errorf("%s client %d tx %d: %w", rec.Kind, rec.Client, rec.Tx, ErrMissingAmount)
	}

	account := accounts.GetOrCreate(rec.Client)
	amount := *rec.Amount
	if rec.Kind == KindDeposit {
		amount = amount.Abs()
		ledger.Insert(rec.Tx, Entry{Kind: KindDeposit, Amount: amount, Client: rec.Client})
		account.credit(amount)
		return Applied, nil
	}

	if !amount.LessThanOrEqual(account.Available) {
		return IgnoredInsufficientFunds, nil
	}
	ledger.Insert(rec.Tx, Entry{Kind: KindWithdrawal, Amount: amount, Client: rec.Client})
	account.debit(amount)
	return Applied, nil
}

// settle applies a record that references the known entry e.
func (p Processor) settle(rec Record, e *Entry, account *Account) Outcome {
	if rec.Kind.carriesAmount() {
		return IgnoredDuplicate
	}
	if p.RequireOwner && e.Client != rec.Client {
		return IgnoredForeignTx
	}
	if e.Kind != KindDeposit {
		return IgnoredWithdrawalDispute
	}

	// Normal --dispute--> Disputed --resolve--> Normal
	//                              --chargeback--> ChargedBack
	// The owner of a charged back entry is locked, another client can still
	// dispute it.
	switch rec.Kind {
	case KindDispute:
		if e.Disputed {
			return IgnoredWrongState
		}
		e.Disputed, e.ChargedBack = true, false
		account.hold(e.Reversal())
	case KindResolve:
		if e.State() != Disputed {
			return IgnoredWrongState
		}
		e.Disputed, e.ChargedBack = false, false
		account.release(e.Reversal())
	case KindChargeback:
		if e.State() != Disputed {
			return IgnoredWrongState
		}
		e.Disputed, e.ChargedBack = false, true
		account.reverse(e.Reversal())
	}
	return Applied
}
