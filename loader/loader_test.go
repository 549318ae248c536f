package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/holdings/ledger"
	"github.com/robinvdvleuten/holdings/parser"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.holdings", `
; opening balances
Assets:US:Checking     100.00 USD
Assets:US:Investments  10 GOOG {700.00 USD / 2020-01-02}, 5 GOOG {720.00 USD}
Liabilities:CreditCard -45.20 USD ; statement balance
`)

	file, err := New().Load(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, path, file.Filename)
	assert.Equal(t, 3, len(file.Entries))

	assert.Equal(t, "Assets:US:Checking", file.Entries[0].Account)
	assert.True(t, file.Entries[0].Inventory.GetAmount("USD").Equal(ledger.MustNewAmount("100.00", "USD")))

	assert.Equal(t, "Assets:US:Investments", file.Entries[1].Account)
	assert.Equal(t, 2, file.Entries[1].Inventory.Len())
	assert.True(t, file.Entries[1].Inventory.GetAmount("GOOG").Equal(ledger.MustNewAmount("15", "GOOG")))

	// The trailing comment is stripped before parsing.
	assert.Equal(t, "Liabilities:CreditCard", file.Entries[2].Account)
	assert.True(t, file.Entries[2].Inventory.GetAmount("USD").Equal(ledger.MustNewAmount("-45.20", "USD")))

	// Entries record where they came from.
	assert.Equal(t, 3, file.Entries[0].Pos.Line)
	assert.Equal(t, 1, file.Entries[0].Pos.Column)
}

func TestLoadEmptyInventory(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.holdings", "Assets:Empty\n")

	file, err := New().Load(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(file.Entries))
	assert.True(t, file.Entries[0].Inventory.IsEmpty())
}

func TestLoadIncludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "retirement.holdings", "Assets:Retirement  50 VTI {200.00 USD}\n")
	path := writeFile(t, dir, "main.holdings", `
Assets:Checking  10 USD
include "retirement.holdings"
Assets:Savings   20 USD
`)

	t.Run("followed when enabled", func(t *testing.T) {
		file, err := New(WithFollowIncludes()).Load(context.Background(), path)
		assert.NoError(t, err)

		// Included entries appear at the point of the include.
		accounts := make([]string, 0, len(file.Entries))
		for _, e := range file.Entries {
			accounts = append(accounts, e.Account)
		}
		assert.Equal(t, []string{"Assets:Checking", "Assets:Retirement", "Assets:Savings"}, accounts)
		assert.Equal(t, filepath.Join(dir, "retirement.holdings"), file.Entries[1].Pos.Filename)
	})

	t.Run("rejected when disabled", func(t *testing.T) {
		_, err := New().Load(context.Background(), path)
		var incErr *IncludeError
		assert.True(t, errors.As(err, &incErr))
		assert.Equal(t, 3, incErr.Pos.Line)
	})
}

func TestLoadIncludeDedup(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shared.holdings", "Assets:Shared  1 USD\n")
	path := writeFile(t, dir, "main.holdings", `
include "shared.holdings"
include "shared.holdings"
`)

	file, err := New(WithFollowIncludes()).Load(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(file.Entries))
}

func TestLoadIncludeErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("unquoted path", func(t *testing.T) {
		path := writeFile(t, dir, "unquoted.holdings", "include other.holdings\n")
		_, err := New(WithFollowIncludes()).Load(context.Background(), path)
		var incErr *IncludeError
		assert.True(t, errors.As(err, &incErr))
	})

	t.Run("missing file", func(t *testing.T) {
		path := writeFile(t, dir, "missing.holdings", "include \"nope.holdings\"\n")
		_, err := New(WithFollowIncludes()).Load(context.Background(), path)
		var incErr *IncludeError
		assert.True(t, errors.As(err, &incErr))
	})
}

func TestLoadInvalidAccount(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"unknown root", "Banana:Checking  10 USD"},
		{"single segment", "Assets  10 USD"},
		{"bad segment", "Assets:checking  10 USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "bad.holdings", tt.line+"\n")
			_, err := New().Load(context.Background(), path)
			var accErr *InvalidAccountError
			assert.True(t, errors.As(err, &accErr), "line %q: %v", tt.line, err)
		})
	}
}

func TestLoadParseErrorPosition(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.holdings", "Assets:Checking  10 usd\n")

	_, err := New().Load(context.Background(), path)
	var perr *parser.ParseError
	assert.True(t, errors.As(err, &perr))

	// The error points into the holdings file, not the inventory substring.
	assert.Equal(t, path, perr.Pos.Filename)
	assert.Equal(t, 1, perr.Pos.Line)
	assert.Equal(t, 21, perr.Pos.Column)
}

func TestHoldings(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.holdings", `
Assets:Checking  100 USD
Assets:Savings   50 CAD
Assets:Checking  25 USD, 10 CAD
`)

	file, err := New().Load(context.Background(), path)
	assert.NoError(t, err)

	holdings := file.Holdings()
	assert.Equal(t, 2, len(holdings))
	assert.True(t, holdings["Assets:Checking"].Equal(ledger.NewInventory(
		ledger.NewPosition(ledger.Lot{Currency: "USD"}, ledger.MustNewAmount("125", "USD").Number),
		ledger.NewPosition(ledger.Lot{Currency: "CAD"}, ledger.MustNewAmount("10", "CAD").Number),
	)))
	assert.True(t, holdings["Assets:Savings"].GetAmount("CAD").Equal(ledger.MustNewAmount("50", "CAD")))
}
