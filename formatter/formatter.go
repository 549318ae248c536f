// Package formatter normalizes holdings files: one line per account in
// first-occurrence order, repeated lines merged into a canonical inventory,
// and inventories aligned on a common column.
package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/holdings/loader"
)

// Formatter writes a normalized rendering of a holdings file.
type Formatter struct {
	// currencyColumn is the 1-indexed column where inventories start.
	// When 0 it is derived from the widest account name.
	currencyColumn int

	// prefixWidth is the width reserved for account names when
	// currencyColumn is unset. When 0 it is derived from the content.
	prefixWidth int
}

// Option configures the formatter.
type Option func(*Formatter)

// WithCurrencyColumn sets a fixed column for the inventory text,
// overriding the auto-calculated account width.
func WithCurrencyColumn(col int) Option {
	return func(f *Formatter) {
		f.currencyColumn = col
	}
}

// WithPrefixWidth sets a fixed width for the account name column.
func WithPrefixWidth(width int) Option {
	return func(f *Formatter) {
		f.prefixWidth = width
	}
}

// New creates a formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format writes the normalized holdings to w. Repeated entries for one
// account are merged; accounts keep their first-occurrence order.
func (f *Formatter) Format(file *loader.File, w io.Writer) error {
	holdings := file.Holdings()

	seen := make(map[string]bool, len(file.Entries))
	order := make([]string, 0, len(file.Entries))
	for _, e := range file.Entries {
		if !seen[e.Account] {
			seen[e.Account] = true
			order = append(order, e.Account)
		}
	}

	width := f.prefixWidth
	if width == 0 {
		for _, account := range order {
			if aw := runewidth.StringWidth(account); aw > width {
				width = aw
			}
		}
	}
	if f.currencyColumn > 0 {
		// Two spaces separate the account from its inventory.
		width = f.currencyColumn - 3
	}

	for _, account := range order {
		inv := holdings[account]
		if inv.IsEmpty() {
			if _, err := fmt.Fprintln(w, account); err != nil {
				return err
			}
			continue
		}

		pad := width - runewidth.StringWidth(account)
		if pad < 0 {
			pad = 0
		}
		if _, err := fmt.Fprintf(w, "%s%s  %s\n", account, strings.Repeat(" ", pad), inv); err != nil {
			return err
		}
	}
	return nil
}
