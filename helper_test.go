package payments

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// amountComparer compares amounts by value, "1.0" equals "1".
var amountComparer = cmp.Comparer(func(x, y Amount) bool { return x.Equal(y) })

// amt is a helper for tests to create an amount from a const.
func amt(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// acc is a helper for tests to create an expected account.
func acc(client uint16, available, held, total string, locked bool) Account {
	return Account{Client: client, Available: amt(available), Held: amt(held), Total: amt(total), Locked: locked}
}

// apply folds records into fresh state, failing the test on any error.
func apply(t *testing.T, records ...Record) (*Ledger, *Accounts) {
	t.Helper()
	ledger, accounts := NewLedger(), NewAccounts()
	for _, rec := range records {
		if err := Apply(rec, ledger, accounts); err != nil {
			t.Fatalf("Apply(%v) = %v, want nil", rec, err)
		}
	}
	return ledger, accounts
}

// checkAccount compares the account of want.Client with want.
func checkAccount(t *testing.T, accounts *Accounts, want Account) {
	t.Helper()
	got := accounts.Lookup(want.Client)
	if got == nil {
		t.Fatalf("account %d does not exist", want.Client)
	}
	if diff := cmp.Diff(want, *got, amountComparer); diff != "" {
		t.Errorf("account %d mismatch (-want +got):\n%s", want.Client, diff)
	}
}
