// Package ledger implements the holdings-tracking core: exact decimal
// amounts, cost lots, positions, and the inventory container with its
// booking algorithm. Everything in this package has single-threaded value
// semantics; callers needing shared access must serialize externally.
package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a numeric value paired with a currency code. The value is an
// arbitrary-precision decimal, never a binary float, so text parsed into an
// Amount renders back without precision loss.
type Amount struct {
	Number   decimal.Decimal
	Currency string
}

// NewAmount parses a decimal literal into an Amount. Surrounding whitespace
// is trimmed; an optional sign and fractional part are accepted.
func NewAmount(number, currency string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(number))
	if err != nil {
		return Amount{}, err
	}
	return Amount{Number: d, Currency: currency}, nil
}

// MustNewAmount parses a decimal literal into an Amount and panics on error.
// Use only in tests or with literals known to be valid.
func MustNewAmount(number, currency string) Amount {
	a, err := NewAmount(number, currency)
	if err != nil {
		panic(err)
	}
	return a
}

// Add returns the sum of two amounts. Both amounts must carry the same
// currency; adding across currencies is a caller-level logic error and
// returns a CurrencyMismatchError.
func (a Amount) Add(b Amount) (Amount, error) {
	if a.Currency != b.Currency {
		return Amount{}, NewCurrencyMismatchError(a.Currency, b.Currency)
	}
	return Amount{Number: a.Number.Add(b.Number), Currency: a.Currency}, nil
}

// Neg returns the amount with its sign flipped.
func (a Amount) Neg() Amount {
	return Amount{Number: a.Number.Neg(), Currency: a.Currency}
}

// Scale multiplies the amount by a scalar factor, keeping the currency.
// Used for cost valuation (quantity times per-unit cost).
func (a Amount) Scale(factor decimal.Decimal) Amount {
	return Amount{Number: a.Number.Mul(factor), Currency: a.Currency}
}

// Equal reports decimal equality on both fields; 1.0 USD equals 1.00 USD.
func (a Amount) Equal(b Amount) bool {
	return a.Currency == b.Currency && a.Number.Equal(b.Number)
}

// IsZero reports whether the numeric value is zero.
func (a Amount) IsZero() bool {
	return a.Number.IsZero()
}

// Cmp orders amounts by (currency, number) for deterministic iteration.
func (a Amount) Cmp(b Amount) int {
	if a.Currency != b.Currency {
		if a.Currency < b.Currency {
			return -1
		}
		return 1
	}
	return a.Number.Cmp(b.Number)
}

// String renders the amount as "NUMBER CURRENCY".
func (a Amount) String() string {
	return a.Number.String() + " " + a.Currency
}
