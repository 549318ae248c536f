package ledger

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func costOf(number, currency string) *Amount {
	a := MustNewAmount(number, currency)
	return &a
}

func TestDate(t *testing.T) {
	d, err := NewDate("2012-01-01")
	assert.NoError(t, err)
	assert.Equal(t, "2012-01-01", d.String())

	_, err = NewDate("2012-13-01")
	assert.Error(t, err)
	_, err = NewDate("not-a-date")
	assert.Error(t, err)

	t.Run("equality is nil-safe", func(t *testing.T) {
		var none *Date
		assert.True(t, none.Equal(nil))
		assert.False(t, none.Equal(d))
		assert.False(t, d.Equal(nil))
		assert.True(t, d.Equal(MustNewDate("2012-01-01")))
		assert.False(t, d.Equal(MustNewDate("2012-01-02")))
	})
}

func TestLotEqual(t *testing.T) {
	unbooked := Lot{Currency: "USD"}
	costed := Lot{Currency: "USD", Cost: costOf("1.10", "CAD")}
	dated := Lot{Currency: "USD", Cost: costOf("1.10", "CAD"), Date: MustNewDate("2012-01-01")}

	assert.True(t, unbooked.Equal(Lot{Currency: "USD"}))
	assert.False(t, unbooked.Equal(Lot{Currency: "CAD"}))

	// Absent cost is distinct from any present cost.
	assert.False(t, unbooked.Equal(costed))
	assert.False(t, costed.Equal(unbooked))

	assert.True(t, costed.Equal(Lot{Currency: "USD", Cost: costOf("1.10", "CAD")}))
	assert.True(t, costed.Equal(Lot{Currency: "USD", Cost: costOf("1.1", "CAD")}))
	assert.False(t, costed.Equal(Lot{Currency: "USD", Cost: costOf("1.10", "USD")}))
	assert.False(t, costed.Equal(dated))

	assert.True(t, dated.Equal(Lot{Currency: "USD", Cost: costOf("1.10", "CAD"), Date: MustNewDate("2012-01-01")}))
	assert.False(t, dated.Equal(Lot{Currency: "USD", Cost: costOf("1.10", "CAD"), Date: MustNewDate("2012-01-02")}))
}

func TestLotIsBooked(t *testing.T) {
	assert.False(t, Lot{Currency: "USD"}.IsBooked())
	assert.True(t, Lot{Currency: "USD", Cost: costOf("1.10", "CAD")}.IsBooked())
	assert.True(t, Lot{Currency: "USD", Date: MustNewDate("2012-01-01")}.IsBooked())
}

func TestPositionString(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want string
	}{
		{
			name: "unbooked",
			pos:  NewPosition(Lot{Currency: "USD"}, decimal.RequireFromString("40.50")),
			want: "40.5 USD",
		},
		{
			name: "with cost",
			pos: NewPosition(
				Lot{Currency: "USD", Cost: costOf("1.10", "CAD")},
				decimal.RequireFromString("40.50")),
			want: "40.5 USD {1.1 CAD}",
		},
		{
			name: "with cost and date",
			pos: NewPosition(
				Lot{Currency: "USD", Cost: costOf("1.10", "CAD"), Date: MustNewDate("2012-01-01")},
				decimal.RequireFromString("40.50")),
			want: "40.5 USD {1.1 CAD / 2012-01-01}",
		},
		{
			name: "date only",
			pos: NewPosition(
				Lot{Currency: "USD", Date: MustNewDate("2012-01-01")},
				decimal.RequireFromString("10")),
			want: "10 USD {/ 2012-01-01}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pos.String())
		})
	}
}

func TestPositionCostAmount(t *testing.T) {
	withCost := NewPosition(
		Lot{Currency: "USD", Cost: costOf("1.10", "CAD")},
		decimal.RequireFromString("40.50"))
	assert.True(t, withCost.CostAmount().Equal(MustNewAmount("44.55", "CAD")))

	withoutCost := NewPosition(Lot{Currency: "USD"}, decimal.RequireFromString("40.50"))
	assert.True(t, withoutCost.CostAmount().Equal(MustNewAmount("40.50", "USD")))
}

func TestPositionNeg(t *testing.T) {
	pos := NewPosition(
		Lot{Currency: "USD", Cost: costOf("1.10", "CAD")},
		decimal.RequireFromString("40.50"))

	neg := pos.Neg()
	assert.True(t, neg.Number.Equal(decimal.RequireFromString("-40.50")))
	assert.True(t, neg.Lot.Equal(pos.Lot))
	assert.True(t, neg.Neg().Equal(pos))
}
