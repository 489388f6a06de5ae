package decimal

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Money represents a currency amount with exact decimal rounding for display.
// Simulation arithmetic stays in float64; Money is used at the reporting boundary.
type Money struct {
	decimal.Decimal
}

// NewMoney creates a Money from a float64. NaN and infinities become zero.
func NewMoney(value float64) Money {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Zero()
	}
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the amount to cents.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Whole rounds the amount to whole currency units.
func (m Money) Whole() Money {
	return Money{m.Decimal.Round(0)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Float64 returns the nearest float64 value.
func (m Money) Float64() float64 {
	return m.Decimal.InexactFloat64()
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount with two decimals and no separators.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as "$1,234,567.89".
func (m Money) Format() string {
	r := m.Decimal.Round(2)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Neg()
	}
	fixed := r.StringFixed(2)
	return sign + "$" + humanize.BigComma(r.BigInt()) + fixed[len(fixed)-3:]
}

// FormatWhole renders the amount rounded to whole units, as "$1,234,568".
func (m Money) FormatWhole() string {
	r := m.Decimal.Round(0)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Neg()
	}
	return sign + "$" + humanize.BigComma(r.BigInt())
}
