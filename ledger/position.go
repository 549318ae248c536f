package ledger

import (
	"github.com/shopspring/decimal"
)

// Position is a quantity held under one lot. Positions are value records;
// an inventory replaces them wholesale on mutation rather than mutating
// them in place, so copies of an inventory never alias position storage.
type Position struct {
	Lot    Lot
	Number decimal.Decimal
}

// NewPosition creates a position for the given lot and quantity.
func NewPosition(lot Lot, number decimal.Decimal) Position {
	return Position{Lot: lot, Number: number}
}

// Amount returns the held quantity as an amount in the lot's currency.
func (p Position) Amount() Amount {
	return Amount{Number: p.Number, Currency: p.Lot.Currency}
}

// CostAmount returns the position's contribution to an at-cost valuation:
// quantity times per-unit cost in the cost currency when the lot carries a
// cost, otherwise the position's own amount unchanged.
func (p Position) CostAmount() Amount {
	if p.Lot.Cost != nil {
		return p.Lot.Cost.Scale(p.Number)
	}
	return p.Amount()
}

// Neg returns the position with its quantity negated. The lot, including
// any cost, is unchanged.
func (p Position) Neg() Position {
	return Position{Lot: p.Lot, Number: p.Number.Neg()}
}

// Equal reports whether two positions hold the same quantity of equal lots.
func (p Position) Equal(other Position) bool {
	return p.Lot.Equal(other.Lot) && p.Number.Equal(other.Number)
}

// String renders the position as "NUMBER CURRENCY" followed by the lot's
// cost annotation when present, e.g. "40.50 USD {1.10 CAD / 2012-01-01}".
func (p Position) String() string {
	if lot := p.Lot.String(); lot != "" {
		return p.Amount().String() + " " + lot
	}
	return p.Amount().String()
}
