package ledger

import (
	"fmt"
	"time"
)

// Date represents a calendar date in ISO 8601 format (YYYY-MM-DD), used for
// lot acquisition dates. Dates are compared by calendar value.
type Date struct {
	time.Time
}

// NewDate parses an ISO 8601 date string.
func NewDate(value string) (*Date, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %s", value)
	}
	return &Date{Time: t}, nil
}

// MustNewDate parses an ISO 8601 date string and panics on error.
// Use only in tests or with literals known to be valid.
func MustNewDate(value string) *Date {
	d, err := NewDate(value)
	if err != nil {
		panic(err)
	}
	return d
}

// Equal reports whether two dates fall on the same calendar day.
// Nil-safe: two nil dates are equal, a nil date never equals a present one.
func (d *Date) Equal(other *Date) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Time.Equal(other.Time)
}

// IsZero returns true if the Date is nil or represents the zero time.
func (d *Date) IsZero() bool {
	if d == nil {
		return true
	}
	return d.Time.IsZero()
}

// String renders the date as YYYY-MM-DD.
func (d *Date) String() string {
	return d.Format("2006-01-02")
}
