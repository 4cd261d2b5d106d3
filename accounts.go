package payments

import (
	"iter"
	"maps"
	"slices"
)

// Account is a client balance snapshot.
//
// Total is always Available + Held. Once Locked, an account never changes again.
type Account struct {
	Client    uint16
	Available Amount
	Held      Amount
	Total     Amount
	Locked    bool
}

// Balanced reports whether Total == Available + Held.
func (a *Account) Balanced() bool {
	return a.Total.Equal(a.Available.Add(a.Held))
}

// credit adds funds to available.
func (a *Account) credit(amount Amount) {
	a.Available = a.Available.Add(amount)
	a.Total = a.Total.Add(amount)
}

// debit removes funds from available.
func (a *Account) debit(amount Amount) {
	a.Available = a.Available.Sub(amount)
	a.Total = a.Total.Sub(amount)
}

// hold moves funds from available to held.
func (a *Account) hold(amount Amount) {
	a.Available = a.Available.Sub(amount)
	a.Held = a.Held.Add(amount)
}

// release moves funds from held back to available.
func (a *Account) release(amount Amount) {
	a.Held = a.Held.Sub(amount)
	a.Available = a.Available.Add(amount)
}

// reverse removes held funds permanently and freezes the account.
func (a *Account) reverse(amount Amount) {
	a.Held = a.Held.Sub(amount)
	a.Total = a.Total.Sub(amount)
	a.Locked = true
}

// Accounts is the table of client accounts, indexed by client id.
type Accounts struct {
	accounts map[uint16]*Account
}

// NewAccounts creates an empty account table.
func NewAccounts() *Accounts {
	return &Accounts{accounts: make(map[uint16]*Account)}
}

// GetOrCreate returns the account of client, creating an empty unlocked one if needed.
func (t *Accounts) GetOrCreate(client uint16) *Account {
	a, ok := t.accounts[client]
	if !ok {
		a = &Account{Client: client}
		t.accounts[client] = a
	}
	return a
}

// Lookup returns the account of client, or nil if it was never referenced.
func (t *Accounts) Lookup(client uint16) *Account {
	return t.accounts[client]
}

// Len returns the number of accounts.
func (t *Accounts) Len() int { return len(t.accounts) }

// All iterates over accounts in client id order.
func (t *Accounts) All() iter.Seq[*Account] {
	return func(yield func(*Account) bool) {
		clients := slices.Sorted(maps.Keys(t.accounts))
		for _, c := range clients {
			if !yield(t.accounts[c]) {
				return
			}
		}
	}
}
