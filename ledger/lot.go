package ledger

import "strings"

// Lot identifies a distinguishable holding: a currency plus an optional
// acquisition cost and an optional acquisition date. Lots are immutable
// keys; an inventory stores at most one position per distinct lot.
//
// A lot carrying a cost and/or date is a booked lot, subject to the
// non-negativity booking rule. A lot with neither is an unbooked lot and
// represents a plain currency balance, unrestricted in sign.
type Lot struct {
	Currency string
	Cost     *Amount // per-unit acquisition cost (nil if none)
	Date     *Date   // acquisition date (nil if none)
}

// IsBooked returns true if the lot carries a cost or an acquisition date.
func (l Lot) IsBooked() bool {
	return l.Cost != nil || l.Date != nil
}

// Equal reports structural equality on all three fields. An absent cost is
// distinct from any present cost; dates compare by calendar value.
func (l Lot) Equal(other Lot) bool {
	if l.Currency != other.Currency {
		return false
	}
	if (l.Cost == nil) != (other.Cost == nil) {
		return false
	}
	if l.Cost != nil && !l.Cost.Equal(*other.Cost) {
		return false
	}
	return l.Date.Equal(other.Date)
}

// String renders the cost annotation of the lot, e.g. "{1.10 CAD}" or
// "{1.10 CAD / 2012-01-01}". Unbooked lots render as the empty string.
// A date-only lot renders as "{/ 2012-01-01}" so that it stays parseable.
func (l Lot) String() string {
	if !l.IsBooked() {
		return ""
	}

	var buf strings.Builder
	buf.WriteByte('{')
	if l.Cost != nil {
		buf.WriteString(l.Cost.String())
	}
	if l.Date != nil {
		if l.Cost != nil {
			buf.WriteByte(' ')
		}
		buf.WriteString("/ ")
		buf.WriteString(l.Date.String())
	}
	buf.WriteByte('}')
	return buf.String()
}
