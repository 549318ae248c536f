package ledger

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Balance aggregates amounts by currency across one or more inventories.
// Unlike an inventory it has no lot structure: it is the reporting-side
// view of holdings, with entries kept sorted by currency for deterministic
// display.
type Balance struct {
	entries []Amount
}

// NewBalance creates an empty balance.
func NewBalance() *Balance {
	return &Balance{}
}

// Get returns the aggregated number for a currency, or zero if not present.
func (b *Balance) Get(currency string) decimal.Decimal {
	for _, e := range b.entries {
		if e.Currency == currency {
			return e.Number
		}
	}
	return decimal.Zero
}

// Add folds an amount into the balance.
func (b *Balance) Add(a Amount) {
	for i := range b.entries {
		if b.entries[i].Currency == a.Currency {
			b.entries[i].Number = b.entries[i].Number.Add(a.Number)
			return
		}
	}
	b.entries = append(b.entries, a)
	sort.Slice(b.entries, func(i, j int) bool {
		return b.entries[i].Currency < b.entries[j].Currency
	})
}

// AddInventory folds an inventory's aggregated amounts into the balance.
func (b *Balance) AddInventory(inv *Inventory) {
	for _, a := range inv.GetAmounts() {
		b.Add(a)
	}
}

// Merge combines another balance into this one by adding amounts.
func (b *Balance) Merge(other *Balance) {
	if other == nil {
		return
	}
	for _, e := range other.entries {
		b.Add(e)
	}
}

// IsZero returns true if all amounts are zero or the balance is empty.
func (b *Balance) IsZero() bool {
	for _, e := range b.entries {
		if !e.Number.IsZero() {
			return false
		}
	}
	return true
}

// Currencies returns the currencies present, sorted alphabetically.
func (b *Balance) Currencies() []string {
	currencies := make([]string, len(b.entries))
	for i, e := range b.entries {
		currencies[i] = e.Currency
	}
	return currencies
}

// Amounts returns the aggregated amounts, sorted by currency.
func (b *Balance) Amounts() []Amount {
	return append([]Amount(nil), b.entries...)
}

// Copy creates an independent copy of this balance.
func (b *Balance) Copy() *Balance {
	if b == nil {
		return NewBalance()
	}
	return &Balance{entries: append([]Amount(nil), b.entries...)}
}

// String returns a human-readable representation of the balance.
func (b *Balance) String() string {
	if len(b.entries) == 0 {
		return "(empty)"
	}

	parts := make([]string, len(b.entries))
	for i, e := range b.entries {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
