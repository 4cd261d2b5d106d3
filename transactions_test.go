package payments

import "testing"

func TestParseKind(t *testing.T) {
	testCases := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{input: "deposit", want: KindDeposit},
		{input: " Withdrawal ", want: KindWithdrawal},
		{input: "DISPUTE", want: KindDispute},
		{input: "resolve", want: KindResolve},
		{input: "chargeback", want: KindChargeback},
		{input: "transfer", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseKind(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestRecord_String(t *testing.T) {
	testCases := []struct {
		rec  Record
		want string
	}{
		{NewDeposit(1, 2, amt("1.23456")), "deposit client=1 tx=2 amount=1.23456"},
		{NewDispute(1, 2), "dispute client=1 tx=2"},
		{Record{Kind: KindWithdrawal, Client: 3, Tx: 4}, "withdrawal client=3 tx=4"},
	}
	for _, tc := range testCases {
		if got := tc.rec.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestRecord_Equal(t *testing.T) {
	a := NewDeposit(1, 2, amt("1.0"))
	if !a.Equal(NewDeposit(1, 2, amt("1"))) {
		t.Errorf("%v should equal the same deposit with an equivalent amount", a)
	}
	if a.Equal(NewWithdrawal(1, 2, amt("1"))) {
		t.Errorf("%v should not equal a withdrawal", a)
	}
	if a.Equal(Record{Kind: KindDeposit, Client: 1, Tx: 2}) {
		t.Errorf("%v should not equal a deposit without amount", a)
	}
}
