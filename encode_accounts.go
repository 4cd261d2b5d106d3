package payments

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// this file contains the writers of a run result.
// Amounts are always written rounded to [Places] digits.

// jsonFields builds a JSON object keeping fields in the order they are added.
// Its zero value is ready to use.
type jsonFields struct {
	buf bytes.Buffer
	err error
}

// add appends a field, the value is marshaled with json.Marshal.
func (w *jsonFields) add(key string, value any) *jsonFields {
	if w.err != nil {
		return w
	}
	data, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot marshal %q: %w", key, err)
		return w
	}
	if w.buf.Len() > 0 {
		w.buf.WriteByte(',')
	}
	k, _ := json.Marshal(key)
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(data)
	return w
}

// merge appends all the fields of v, that must marshal to a JSON object.
func (w *jsonFields) merge(v any) *jsonFields {
	if w.err != nil {
		return w
	}
	data, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("cannot marshal %T: %w", v, err)
		return w
	}
	data = bytes.TrimSpace(data)
	if len(data) < 2 || data[0] != '{' || data[len(data)-1] != '}' {
		w.err = fmt.Errorf("cannot merge %T: not a JSON object", v)
		return w
	}
	if inner := data[1 : len(data)-1]; len(inner) > 0 {
		if w.buf.Len() > 0 {
			w.buf.WriteByte(',')
		}
		w.buf.Write(inner)
	}
	return w
}

func (w *jsonFields) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	out := make([]byte, 0, w.buf.Len()+2)
	out = append(out, '{')
	out = append(out, w.buf.Bytes()...)
	return append(out, '}'), nil
}

// MarshalJSON writes the account fields in the report column order.
func (a Account) MarshalJSON() ([]byte, error) {
	var w jsonFields
	w.add("client", a.Client)
	w.add("available", a.Available)
	w.add("held", a.Held)
	w.add("total", a.Total)
	w.add("locked", a.Locked)
	return w.MarshalJSON()
}

// MarshalJSON writes the entry with its dispute state.
func (e Entry) MarshalJSON() ([]byte, error) {
	var w jsonFields
	w.add("kind", e.Kind)
	w.add("client", e.Client)
	w.add("amount", e.Amount)
	w.add("state", e.State().String())
	return w.MarshalJSON()
}

// accountHeader is the header line of the CSV report.
var accountHeader = []string{"client", "available", "held", "total", "locked"}

// EncodeAccounts writes accounts to w as CSV, ordered by client id.
func EncodeAccounts(w io.Writer, accounts *Accounts) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(accountHeader); err != nil {
		return fmt.Errorf("cannot write accounts header: %w", err)
	}
	for a := range accounts.All() {
		line := []string{
			strconv.FormatUint(uint64(a.Client), 10),
			a.Available.String(),
			a.Held.String(),
			a.Total.String(),
			strconv.FormatBool(a.Locked),
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("cannot write account %d: %w", a.Client, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeAccountsJSONL writes accounts to w as JSON lines, ordered by client id.
func EncodeAccountsJSONL(w io.Writer, accounts *Accounts) error {
	for a := range accounts.All() {
		data, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("cannot marshal account %d: %w", a.Client, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write account %d: %w", a.Client, err)
		}
	}
	return nil
}

// MarshalAccounts returns accounts as a JSON array ordered by client id.
func MarshalAccounts(accounts *Accounts) ([]byte, error) {
	return json.Marshal(slices.Collect(accounts.All()))
}

// EncodeLedger writes every ledger entry to w as JSON lines, ordered by tx id.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for tx, e := range ledger.Entries() {
		var line jsonFields
		line.add("tx", tx).merge(e)
		data, err := line.MarshalJSON()
		if err != nil {
			return fmt.Errorf("cannot marshal tx %d: %w", tx, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write tx %d: %w", tx, err)
		}
	}
	return nil
}
