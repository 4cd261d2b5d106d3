package payments

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits amounts are reported with.
const Places = 4

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T int | int64 | uint32 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	default:
		panic("unsupported type")
	}
}

// Amount is a monetary value.
//
// It keeps the full precision of its inputs, rounding happens only when the
// value is written out.
type Amount struct {
	value decimal.Decimal
}

// A creates an Amount.
func A[T int | int64 | uint32 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

// ParseAmount parses a decimal string like "1.5" or "0.0001".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{value: d}, nil
}

func (a Amount) Equal(b Amount) bool           { return a.value.Equal(b.value) }
func (a Amount) IsNegative() bool              { return a.value.IsNegative() }
func (a Amount) LessThanOrEqual(b Amount) bool { return a.value.LessThanOrEqual(b.value) }
func (a Amount) Add(b Amount) Amount           { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount           { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Neg() Amount                   { return Amount{value: a.value.Neg()} }
func (a Amount) Abs() Amount                   { return Amount{value: a.value.Abs()} }
func (a Amount) Decimal() decimal.Decimal      { return a.value }
func (a Amount) Round() Amount                 { return Amount{value: a.value.Round(Places)} }
func (a Amount) RoundedEqual(b Amount) bool    { return a.Round().Equal(b.Round()) }

// String returns the amount rounded to [Places] with exactly [Places] fractional digits.
func (a Amount) String() string {
	return a.value.StringFixed(Places)
}

// Exact returns the amount with all its digits.
func (a Amount) Exact() string { return a.value.String() }

// MarshalJSON writes the amount as a JSON number rounded to [Places].
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}
