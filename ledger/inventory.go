package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Inventory is the set of positions for one account, keyed uniquely by lot:
// at most one position exists per distinct lot at any time. Positions are
// kept in insertion order, which fixes the order of GetAmounts and of the
// rendered form.
//
// A position that reduces to exactly zero is retained as an explicit zero
// entry rather than pruned; Len, equality, and rendering all reflect that.
type Inventory struct {
	positions []Position
}

// NewInventory creates an inventory from an initial list of positions.
// Positions sharing an equal lot are merged by summing their quantities;
// no booking check applies at construction time.
func NewInventory(positions ...Position) *Inventory {
	inv := &Inventory{}
	if len(positions) > 0 {
		inv.positions = make([]Position, 0, len(positions))
		for _, p := range positions {
			inv.merge(p)
		}
	}
	return inv
}

// indexOf finds the stored position with an equal lot. Linear scan; the
// number of distinct lots per account is small in practice.
func (inv *Inventory) indexOf(lot Lot) (int, bool) {
	for i := range inv.positions {
		if inv.positions[i].Lot.Equal(lot) {
			return i, true
		}
	}
	return 0, false
}

// merge applies the construction-time merge rule: sum on matching lot,
// append otherwise. Costs and dates are part of the key, never combined.
func (inv *Inventory) merge(p Position) {
	if i, ok := inv.indexOf(p.Lot); ok {
		inv.positions[i] = Position{
			Lot:    inv.positions[i].Lot,
			Number: inv.positions[i].Number.Add(p.Number),
		}
		return
	}
	inv.positions = append(inv.positions, p)
}

// Add books a signed quantity change against the lot formed from the
// amount's currency plus the optional cost and acquisition date.
//
// Reducing a booked lot (cost or date present) below zero fails with a
// BookingError unless allowNegative is set, leaving the inventory
// unchanged. Unbooked lots are exempt: a plain currency balance may always
// go negative.
func (inv *Inventory) Add(amount Amount, cost *Amount, acquisitionDate *Date, allowNegative bool) error {
	lot := Lot{Currency: amount.Currency, Cost: cost, Date: acquisitionDate}

	prior := decimal.Zero
	i, ok := inv.indexOf(lot)
	if ok {
		prior = inv.positions[i].Number
	}

	next := prior.Add(amount.Number)
	if next.IsNegative() && lot.IsBooked() && !allowNegative {
		return NewBookingError(lot, prior, amount.Number)
	}

	if ok {
		inv.positions[i] = Position{Lot: inv.positions[i].Lot, Number: next}
	} else {
		inv.positions = append(inv.positions, Position{Lot: lot, Number: next})
	}
	return nil
}

// AddAmount adds a plain currency amount without cost basis. Unbooked lots
// carry no negativity restriction, so this cannot fail.
func (inv *Inventory) AddAmount(amount Amount) {
	_ = inv.Add(amount, nil, nil, false)
}

// AddPosition books a position's quantity against its lot, routing through
// the same algorithm as Add so the invariants are identical.
func (inv *Inventory) AddPosition(p Position, allowNegative bool) error {
	return inv.Add(p.Amount(), p.Lot.Cost, p.Lot.Date, allowNegative)
}

// Update books every position of other into inv, in other's insertion
// order. On failure, merges already applied from the same call remain in
// place; callers needing atomic batch semantics should Update a copy and
// swap it in on success.
func (inv *Inventory) Update(other *Inventory) error {
	for _, p := range other.positions {
		if err := inv.AddPosition(p, false); err != nil {
			return err
		}
	}
	return nil
}

// Plus returns the combination of both inventories without mutating either.
func (inv *Inventory) Plus(other *Inventory) (*Inventory, error) {
	sum := inv.Copy()
	if err := sum.Update(other); err != nil {
		return nil, err
	}
	return sum, nil
}

// Neg returns a new inventory with every quantity negated; lots, including
// costs, are unchanged. Negation is a direct transform that bypasses
// booking, so the resulting booked positions may legitimately be negative.
func (inv *Inventory) Neg() *Inventory {
	out := &Inventory{positions: make([]Position, len(inv.positions))}
	for i, p := range inv.positions {
		out.positions[i] = p.Neg()
	}
	return out
}

// Copy returns an independent inventory; mutating one never affects the
// other.
func (inv *Inventory) Copy() *Inventory {
	return &Inventory{positions: append([]Position(nil), inv.positions...)}
}

// IsEmpty returns true iff no positions are stored.
func (inv *Inventory) IsEmpty() bool {
	return len(inv.positions) == 0
}

// Len returns the number of distinct stored positions (distinct lots).
func (inv *Inventory) Len() int {
	return len(inv.positions)
}

// Positions returns a copy of the stored positions in insertion order.
func (inv *Inventory) Positions() []Position {
	return append([]Position(nil), inv.positions...)
}

// GetAmount sums the quantities of every stored position in the given
// currency. Returns a zero amount in that currency if none match.
func (inv *Inventory) GetAmount(currency string) Amount {
	total := decimal.Zero
	for _, p := range inv.positions {
		if p.Lot.Currency == currency {
			total = total.Add(p.Number)
		}
	}
	return Amount{Number: total, Currency: currency}
}

// GetAmounts returns one aggregated amount per distinct currency present,
// in order of first occurrence among stored positions.
func (inv *Inventory) GetAmounts() []Amount {
	if len(inv.positions) == 0 {
		return nil
	}

	index := getCurrencyIndex()
	defer putCurrencyIndex(index)

	amounts := make([]Amount, 0, len(inv.positions))
	for _, p := range inv.positions {
		if i, ok := index[p.Lot.Currency]; ok {
			amounts[i].Number = amounts[i].Number.Add(p.Number)
			continue
		}
		index[p.Lot.Currency] = len(amounts)
		amounts = append(amounts, p.Amount())
	}
	return amounts
}

// GetPosition returns the stored position with an exactly equal lot.
func (inv *Inventory) GetPosition(lot Lot) (Position, bool) {
	if i, ok := inv.indexOf(lot); ok {
		return inv.positions[i], true
	}
	return Position{}, false
}

// GetPositionsWithCurrency returns every stored position whose lot currency
// matches, costs and dates preserved, in insertion order.
func (inv *Inventory) GetPositionsWithCurrency(currency string) []Position {
	var out []Position
	for _, p := range inv.positions {
		if p.Lot.Currency == currency {
			out = append(out, p)
		}
	}
	return out
}

// GetCost revalues every position at its acquisition cost and merges the
// contributions by currency alone: positions with a cost contribute
// quantity times per-unit cost in the cost currency, positions without one
// contribute their own amount. The resulting lots are all unbooked.
func (inv *Inventory) GetCost() *Inventory {
	out := NewInventory()
	for _, p := range inv.positions {
		a := p.CostAmount()
		out.merge(Position{Lot: Lot{Currency: a.Currency}, Number: a.Number})
	}
	return out
}

// IsSmall returns true iff every distinct currency's aggregated amount has
// an absolute value at or below the threshold. An empty inventory is small
// for any non-negative threshold.
func (inv *Inventory) IsSmall(threshold decimal.Decimal) bool {
	if inv.IsEmpty() {
		return !threshold.IsNegative()
	}
	for _, a := range inv.GetAmounts() {
		if a.Number.Abs().GreaterThan(threshold) {
			return false
		}
	}
	return true
}

// Equal reports whether both inventories contain the same set of positions
// (lot plus quantity), independent of insertion order.
func (inv *Inventory) Equal(other *Inventory) bool {
	if len(inv.positions) != len(other.positions) {
		return false
	}
	for _, p := range inv.positions {
		q, ok := other.GetPosition(p.Lot)
		if !ok || !q.Number.Equal(p.Number) {
			return false
		}
	}
	return true
}

// String renders the stored positions in insertion order, comma-separated.
// An empty inventory renders as the empty string. The output parses back
// into an equal inventory for any canonical (merged) content.
func (inv *Inventory) String() string {
	var buf strings.Builder
	for i, p := range inv.positions {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(p.String())
	}
	return buf.String()
}
