package payments

import (
	"iter"
	"maps"
	"slices"
)

// EntryState is the dispute state of a ledger entry.
type EntryState int

const (
	// Normal is the state of an entry that is not under dispute.
	Normal EntryState = iota
	// Disputed entries have their amount held on the client account.
	Disputed
	// ChargedBack entries have been reversed. Their owner account is locked.
	ChargedBack
)

func (s EntryState) String() string {
	switch s {
	case Normal:
		return "normal"
	case Disputed:
		return "disputed"
	case ChargedBack:
		return "charged-back"
	default:
		return "unknown"
	}
}

// Entry is the retained state of an accepted deposit or withdrawal, so that
// later disputes, resolves and chargebacks can reference it.
type Entry struct {
	Kind        Kind   // KindDeposit or KindWithdrawal.
	Amount      Amount // magnitude, never negative for well formed input.
	Client      uint16 // owning client.
	Disputed    bool
	ChargedBack bool
}

// State returns the entry dispute state.
func (e *Entry) State() EntryState {
	switch {
	case e.Disputed:
		return Disputed
	case e.ChargedBack:
		return ChargedBack
	default:
		return Normal
	}
}

// Reversal returns the signed value that the entry contributed to the
// client's available funds: positive for deposits, negative for withdrawals.
func (e *Entry) Reversal() Amount {
	if e.Kind == KindWithdrawal {
		return e.Amount.Neg()
	}
	return e.Amount
}

// Ledger indexes referenceable transactions by transaction id.
//
// Entries are never deleted, nor replaced.
type Ledger struct {
	entries map[uint32]*Entry
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[uint32]*Entry)}
}

// Lookup returns the entry for tx, or nil if unknown.
//
// The returned entry is owned by the ledger, modifying it modifies the ledger.
func (l *Ledger) Lookup(tx uint32) *Entry {
	return l.entries[tx]
}

// Insert records a new entry for tx. It returns false and leaves the ledger
// unchanged if tx is already known.
func (l *Ledger) Insert(tx uint32, e Entry) bool {
	if _, exists := l.entries[tx]; exists {
		return false
	}
	l.entries[tx] = &e
	return true
}

// Len returns the number of entries.
func (l *Ledger) Len() int { return len(l.entries) }

// Entries iterates over all entries in transaction id order.
func (l *Ledger) Entries() iter.Seq2[uint32, *Entry] {
	return func(yield func(uint32, *Entry) bool) {
		ids := slices.Sorted(maps.Keys(l.entries))
		for _, id := range ids {
			if !yield(id, l.entries[id]) {
				return
			}
		}
	}
}
