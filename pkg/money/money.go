// Package money provides a fixed-point amount with two decimal places.
package money

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places every Money value is rounded to.
const Places = 2

// Money is an amount rounded half away from zero to two decimal places.
// The zero value is 0.00.
type Money struct {
	d decimal.Decimal
}

// Zero is 0.00.
var Zero = Money{}

// Parse parses a decimal string such as "10.5" into a rounded Money.
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return New(d), nil
}

// MustParse is like Parse but panics on error. Use for constants.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// New rounds d to two decimal places.
func New(d decimal.Decimal) Money {
	return Money{d: d.Round(Places)}
}

// Add returns m + o. Both operands are already rounded so the sum is exact.
func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

// Mul returns round2(m * n).
func (m Money) Mul(n int64) Money {
	return New(m.d.Mul(decimal.NewFromInt(n)))
}

// MulRate returns round2(m * rate), e.g. a tax rate of 0.10.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return New(m.d.Mul(rate))
}

// Sum adds all amounts.
func Sum(amounts ...Money) Money {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// IsNegative reports whether m is below 0.00.
func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

// Equal compares amounts by value.
func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}


// String renders m with exactly two decimals, e.g. "72.00".
func (m Money) String() string {
	return m.d.StringFixed(Places)
}

// MarshalJSON renders m as a JSON string with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts a JSON string or a JSON number.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("unmarshal amount: %w", err)
		}
		data = []byte(s)
	}

	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
