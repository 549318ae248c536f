package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CurrencyMismatchError is returned when amount arithmetic is attempted
// across different currencies. It always surfaces to the caller; currency
// conversion is out of scope for this layer.
type CurrencyMismatchError struct {
	Left  string
	Right string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("currency mismatch: %s vs %s", e.Left, e.Right)
}

// NewCurrencyMismatchError creates an error for arithmetic across currencies.
func NewCurrencyMismatchError(left, right string) *CurrencyMismatchError {
	return &CurrencyMismatchError{Left: left, Right: right}
}

// BookingError is returned when reducing a booked lot would take its
// quantity below zero without an explicit override. The inventory is left
// unchanged for the failing lot.
type BookingError struct {
	Lot    Lot
	Have   decimal.Decimal // quantity held before the change
	Change decimal.Decimal // signed quantity change that was requested
}

func (e *BookingError) Error() string {
	lot := e.Lot.Currency
	if annot := e.Lot.String(); annot != "" {
		lot += " " + annot
	}
	return fmt.Sprintf("would reduce lot %s below zero: have %s, change %s",
		lot, e.Have.String(), e.Change.String())
}

// NewBookingError creates an error for a booked-lot reduction past zero.
func NewBookingError(lot Lot, have, change decimal.Decimal) *BookingError {
	return &BookingError{Lot: lot, Have: have, Change: change}
}
