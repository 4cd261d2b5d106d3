package payments

import (
	"slices"
	"testing"
)

func TestLedger_InsertNeverOverwrites(t *testing.T) {
	l := NewLedger()
	if !l.Insert(1, Entry{Kind: KindDeposit, Amount: amt("1"), Client: 1}) {
		t.Fatal("first Insert(1) = false, want true")
	}
	if l.Insert(1, Entry{Kind: KindWithdrawal, Amount: amt("9"), Client: 2}) {
		t.Error("second Insert(1) = true, want false")
	}
	e := l.Lookup(1)
	if e.Kind != KindDeposit || !e.Amount.Equal(amt("1")) || e.Client != 1 {
		t.Errorf("Lookup(1) = %+v, want the first entry", e)
	}
	if l.Lookup(2) != nil {
		t.Error("Lookup(2) != nil, want nil")
	}
}

func TestLedger_LookupIsMutable(t *testing.T) {
	l := NewLedger()
	l.Insert(5, Entry{Kind: KindDeposit, Amount: amt("1")})
	l.Lookup(5).Disputed = true
	if got := l.Lookup(5).State(); got != Disputed {
		t.Errorf("State() = %v, want %v", got, Disputed)
	}
}

func TestLedger_Entries(t *testing.T) {
	l := NewLedger()
	for _, tx := range []uint32{30, 10, 20} {
		l.Insert(tx, Entry{Kind: KindDeposit, Amount: A(int(tx))})
	}
	var got []uint32
	for tx, e := range l.Entries() {
		if !e.Amount.Equal(A(tx)) {
			t.Errorf("entry %d amount = %v", tx, e.Amount)
		}
		got = append(got, tx)
	}
	if want := []uint32{10, 20, 30}; !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestEntry_Reversal(t *testing.T) {
	testCases := []struct {
		entry Entry
		want  string
	}{
		{Entry{Kind: KindDeposit, Amount: amt("2.5")}, "2.5"},
		{Entry{Kind: KindWithdrawal, Amount: amt("2.5")}, "-2.5"},
	}
	for _, tc := range testCases {
		if got := tc.entry.Reversal(); !got.Equal(amt(tc.want)) {
			t.Errorf("%s Reversal() = %v, want %v", tc.entry.Kind, got, tc.want)
		}
	}
}

func TestAccounts_GetOrCreate(t *testing.T) {
	accounts := NewAccounts()
	if accounts.Lookup(3) != nil {
		t.Fatal("Lookup(3) != nil on an empty table")
	}
	a := accounts.GetOrCreate(3)
	a.credit(amt("4"))
	if b := accounts.GetOrCreate(3); b != a {
		t.Error("GetOrCreate(3) returned a different account")
	}
	checkAccount(t, accounts, acc(3, "4", "0", "4", false))
}

func TestAccounts_All(t *testing.T) {
	accounts := NewAccounts()
	for _, c := range []uint16{9, 1, 65535, 4} {
		accounts.GetOrCreate(c)
	}
	var got []uint16
	for a := range accounts.All() {
		got = append(got, a.Client)
	}
	if want := []uint16{1, 4, 9, 65535}; !slices.Equal(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}

func TestAccount_Movements(t *testing.T) {
	var a Account
	a.credit(amt("10"))
	a.hold(amt("4"))
	a.release(amt("1"))
	a.debit(amt("2"))
	a.reverse(amt("3"))
	want := Account{Available: amt("5"), Held: amt("0"), Total: amt("5"), Locked: true}
	if !a.Available.Equal(want.Available) || !a.Held.Equal(want.Held) || !a.Total.Equal(want.Total) || !a.Locked {
		t.Errorf("account = %+v, want %+v", a, want)
	}
	if !a.Balanced() {
		t.Error("Balanced() = false, want true")
	}
}
