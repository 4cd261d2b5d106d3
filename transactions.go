package payments

import (
	"fmt"
	"strings"
)

// Kind is a typed string identifying a transaction record type.
type Kind string

// Record kinds, as spelled in the input files.
const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindDispute    Kind = "dispute"
	KindResolve    Kind = "resolve"
	KindChargeback Kind = "chargeback"
)

// Kinds lists all the record kinds in their canonical order.
var Kinds = []Kind{KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback}

// ParseKind parses a record kind, case insensitive.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// carriesAmount reports whether records of this kind must have an amount.
func (k Kind) carriesAmount() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// Record is a single line of the transaction log.
type Record struct {
	Kind   Kind
	Client uint16
	Tx     uint32
	Amount *Amount // nil when the record has no amount.
}

// NewDeposit creates a deposit record.
func NewDeposit(client uint16, tx uint32, amount Amount) Record {
	return Record{Kind: KindDeposit, Client: client, Tx: tx, Amount: &amount}
}

// NewWithdrawal creates a withdrawal record.
func NewWithdrawal(client uint16, tx uint32, amount Amount) Record {
	return Record{Kind: KindWithdrawal, Client: client, Tx: tx, Amount: &amount}
}

// NewDispute creates a dispute record referencing transaction tx.
func NewDispute(client uint16, tx uint32) Record {
	return Record{Kind: KindDispute, Client: client, Tx: tx}
}

// NewResolve creates a resolve record referencing transaction tx.
func NewResolve(client uint16, tx uint32) Record {
	return Record{Kind: KindResolve, Client: client, Tx: tx}
}

// NewChargeback creates a chargeback record referencing transaction tx.
func NewChargeback(client uint16, tx uint32) Record {
	return Record{Kind: KindChargeback, Client: client, Tx: tx}
}

// Equal reports whether both records are identical.
func (r Record) Equal(o Record) bool {
	if r.Kind != o.Kind || r.Client != o.Client || r.Tx != o.Tx {
		return false
	}
	if r.Amount == nil || o.Amount == nil {
		return r.Amount == nil && o.Amount == nil
	}
	return r.Amount.Equal(*o.Amount)
}

func (r Record) String() string {
	if r.Amount == nil {
		return fmt.Sprintf("%s client=%d tx=%d", r.Kind, r.Client, r.Tx)
	}
	return fmt.Sprintf("%s client=%d tx=%d amount=%s", r.Kind, r.Client, r.Tx, r.Amount.Exact())
}
