package cdek

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount. It keeps the scale it was created with, so
// "1000.00" is sent as "1000.00" and never as 1000 or 1e3.
type Money struct {
	value decimal.Decimal
}

// NewMoney parses a decimal string such as "1000.00".
func NewMoney(value string) (Money, error) {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, fmt.Errorf("parsing money %q: %w", value, err)
	}

	return Money{value: parsed}, nil
}

// MustMoney is like NewMoney but panics on malformed input. Intended for literals.
func MustMoney(value string) Money {
	money, err := NewMoney(value)
	if err != nil {
		panic(err)
	}

	return money
}

// MoneyFromDecimal wraps an existing decimal.
func MoneyFromDecimal(value decimal.Decimal) Money {
	return Money{value: value}
}

// MoneyFromInt returns a whole amount with no fractional digits.
func MoneyFromInt(value int64) Money {
	return Money{value: decimal.NewFromInt(value)}
}

// Decimal returns the underlying decimal.
func (m Money) Decimal() decimal.Decimal {
	return m.value
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.value.IsZero()
}

// String renders the amount at its own scale.
func (m Money) String() string {
	places := -m.value.Exponent()
	if places < 0 {
		places = 0
	}

	return m.value.StringFixed(places)
}

// MarshalJSON encodes the amount as a JSON string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts both string and number forms. null leaves m unchanged.
func (m *Money) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	raw := bytes.Trim(data, `"`)

	parsed, err := decimal.NewFromString(string(raw))
	if err != nil {
		return fmt.Errorf("parsing money %s: %w", data, err)
	}

	m.value = parsed

	return nil
}

// MarshalText lets Money appear in YAML documents and query strings.
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := decimal.NewFromString(string(text))
	if err != nil {
		return fmt.Errorf("parsing money %q: %w", text, err)
	}

	m.value = parsed

	return nil
}
