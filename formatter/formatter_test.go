package formatter

import (
	"bytes"
	"context"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/holdings/loader"
)

func loadFixture(t *testing.T, contents string) *loader.File {
	t.Helper()
	file, err := loader.New().LoadBytes(context.Background(), "test.holdings", []byte(contents))
	assert.NoError(t, err)
	return file
}

func format(t *testing.T, file *loader.File, opts ...Option) string {
	t.Helper()
	var buf bytes.Buffer
	assert.NoError(t, New(opts...).Format(file, &buf))
	return buf.String()
}

func TestFormat(t *testing.T) {
	file := loadFixture(t, `
; comment lines vanish
Assets:US:Checking  100.00 USD
Assets:Savings   50 CAD   ; trailing comment
`)

	assert.Equal(t, ""+
		"Assets:US:Checking  100 USD\n"+
		"Assets:Savings      50 CAD\n",
		format(t, file))
}

func TestFormatMergesRepeatedAccounts(t *testing.T) {
	file := loadFixture(t, `
Assets:Checking  100 USD
Assets:Savings   50 CAD
Assets:Checking  25 USD
`)

	// First-occurrence order, one merged line per account.
	assert.Equal(t, ""+
		"Assets:Checking  125 USD\n"+
		"Assets:Savings   50 CAD\n",
		format(t, file))
}

func TestFormatEmptyInventory(t *testing.T) {
	file := loadFixture(t, "Assets:Empty\nAssets:Checking  1 USD\n")

	assert.Equal(t, ""+
		"Assets:Empty\n"+
		"Assets:Checking  1 USD\n",
		format(t, file))
}

func TestFormatPreservesLots(t *testing.T) {
	file := loadFixture(t, "Assets:Investments  10 GOOG {700.00 USD / 2020-01-02}, 5 GOOG {720.00 USD}\n")

	assert.Equal(t,
		"Assets:Investments  10 GOOG {700 USD / 2020-01-02}, 5 GOOG {720 USD}\n",
		format(t, file))
}

func TestFormatCurrencyColumn(t *testing.T) {
	file := loadFixture(t, "Assets:Checking  100 USD\n")

	// Column 21 means the inventory starts at byte 21 on each line.
	assert.Equal(t,
		"Assets:Checking     100 USD\n",
		format(t, file, WithCurrencyColumn(21)))
}

func TestFormatPrefixWidth(t *testing.T) {
	file := loadFixture(t, "Assets:Checking  100 USD\nAssets:A  1 CAD\n")

	assert.Equal(t, ""+
		"Assets:Checking       100 USD\n"+
		"Assets:A              1 CAD\n",
		format(t, file, WithPrefixWidth(20)))
}

func TestFormatIdempotent(t *testing.T) {
	file := loadFixture(t, `
Assets:US:Checking     100.00 USD
Assets:US:Investments  10 GOOG {700.00 USD}
`)

	once := format(t, file)
	again := format(t, loadFixture(t, once))
	assert.Equal(t, once, again)
}
