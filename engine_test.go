package payments

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

func TestEngine_Run(t *testing.T) {
	records := []Record{
		NewDeposit(1, 1, amt("5")),
		{Kind: KindDeposit, Client: 1, Tx: 2}, // missing amount
		NewWithdrawal(1, 3, amt("10")),       // insufficient funds
		NewDeposit(2, 4, amt("2")),
		NewDispute(2, 99), // unknown tx
	}

	t.Run("continue", func(t *testing.T) {
		e := NewEngine()
		err := e.Run(records)
		if !errors.Is(err, ErrMissingAmount) {
			t.Fatalf("Run() = %v, want %v", err, ErrMissingAmount)
		}
		if !strings.Contains(err.Error(), "record #2") {
			t.Errorf("Run() = %q, want the record position", err)
		}
		checkAccount(t, e.Accounts, acc(1, "5", "0", "5", false))
		checkAccount(t, e.Accounts, acc(2, "2", "0", "2", false))

		stats := e.Stats()
		if stats.Records != 5 || stats.Applied != 2 || stats.Ignored != 2 || stats.Rejected != 1 {
			t.Errorf("Stats() = %+v", stats)
		}
		if stats.Reasons[IgnoredInsufficientFunds] != 1 || stats.Reasons[IgnoredUnknownTx] != 1 {
			t.Errorf("Stats().Reasons = %v", stats.Reasons)
		}
	})

	t.Run("abort", func(t *testing.T) {
		e := NewEngine()
		e.Policy = Abort
		err := e.Run(records)
		if !errors.Is(err, ErrMissingAmount) {
			t.Fatalf("Run() = %v, want %v", err, ErrMissingAmount)
		}
		if e.Accounts.Lookup(2) != nil {
			t.Error("records after the failure were applied")
		}
		if got := e.Stats().Records; got != 2 {
			t.Errorf("Stats().Records = %d, want 2", got)
		}
	})

	t.Run("no error", func(t *testing.T) {
		e := NewEngine()
		if err := e.Run(records[:1]); err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	})
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []Policy{Continue, Abort} {
		got, err := ParsePolicy(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePolicy(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParsePolicy("retry"); err == nil {
		t.Error("ParsePolicy(retry) = nil error")
	}
}

// randomRecords generates a plausible log over a few clients and tx ids,
// with many references to existing and unknown transactions.
func randomRecords(r *rand.Rand, n int) []Record {
	records := make([]Record, 0, n)
	var nextTx uint32 = 1
	for range n {
		client := uint16(r.IntN(4) + 1)
		amount := A(int64(r.IntN(100_000))).Decimal().Shift(-4) // up to 9.9999
		switch r.IntN(6) {
		case 0, 1:
			records = append(records, NewDeposit(client, nextTx, A(amount)))
			nextTx++
		case 2:
			records = append(records, NewWithdrawal(client, nextTx, A(amount)))
			nextTx++
		case 3:
			records = append(records, NewDispute(client, uint32(r.IntN(int(nextTx)+2))))
		case 4:
			records = append(records, NewResolve(client, uint32(r.IntN(int(nextTx)+2))))
		default:
			records = append(records, NewChargeback(client, uint32(r.IntN(int(nextTx)+2))))
		}
	}
	return records
}

func TestEngine_Invariants(t *testing.T) {
	for seed := range uint64(50) {
		r := rand.New(rand.NewPCG(seed, 2024))
		records := randomRecords(r, 300)

		e := NewEngine()
		locked := make(map[uint16]Account)
		for i, rec := range records {
			if _, err := e.Apply(rec); err != nil {
				t.Fatalf("seed %d record %d: Apply(%v) = %v", seed, i, rec, err)
			}
			for a := range e.Accounts.All() {
				if !a.Balanced() {
					t.Fatalf("seed %d record %d: account %+v is not balanced", seed, i, a)
				}
				if was, ok := locked[a.Client]; ok {
					if !a.Locked || !a.Available.Equal(was.Available) || !a.Held.Equal(was.Held) || !a.Total.Equal(was.Total) {
						t.Fatalf("seed %d record %d: locked account %d changed from %+v to %+v", seed, i, a.Client, was, *a)
					}
				} else if a.Locked {
					locked[a.Client] = *a
				}
			}
		}
	}
}
