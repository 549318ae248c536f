package ledger

import "fmt"

// checkInvariants verifies the standing inventory invariant: no two stored
// positions share an equal lot. It is exercised from tests around every
// public operation instead of intercepting the operations themselves.
//
// Booked-lot non-negativity is deliberately not asserted here: Neg and
// allowNegative bookings legitimately produce negative booked positions,
// so that invariant is checked at the enforcement point in Add.
func (inv *Inventory) checkInvariants() error {
	for i := range inv.positions {
		for j := i + 1; j < len(inv.positions); j++ {
			if inv.positions[i].Lot.Equal(inv.positions[j].Lot) {
				return fmt.Errorf("duplicate lot stored: %s", inv.positions[i].String())
			}
		}
	}
	return nil
}
