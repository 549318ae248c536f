package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/holdings/ledger"
	"github.com/robinvdvleuten/holdings/loader"
	"github.com/robinvdvleuten/holdings/telemetry"
)

// accountRoots fixes the display order of the five account categories.
var accountRoots = []string{"Assets", "Liabilities", "Equity", "Income", "Expenses"}

type BalancesCmd struct {
	File   FileOrStdin `help:"Holdings input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	AtCost bool        `help:"Value positions at their acquisition cost." name:"at-cost"`
}

func (cmd *BalancesCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()

	if globals.Telemetry {
		collector := telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		timer := collector.Start(fmt.Sprintf("balances %s", filepath.Base(cmd.File.Filename)))
		defer func() {
			timer.End()
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr)
		}()
	}

	sourceContent, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file for error context: %w", err)
	}

	ldr := loader.New(loader.WithFollowIncludes())
	file, err := cmd.File.LoadFile(runCtx, ldr)
	if err != nil {
		renderer := NewErrorRenderer(sourceContent)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		printError(ctx.Stderr, "parse error")
		return NewCommandError(1)
	}

	cmd.render(ctx, file.Holdings())

	return nil
}

// render prints one block per account category: the category total first,
// then its accounts sorted by name.
func (cmd *BalancesCmd) render(ctx *kong.Context, holdings map[string]*ledger.Inventory) {
	accounts := make([]string, 0, len(holdings))
	width := 0
	for account := range holdings {
		accounts = append(accounts, account)
		if len(account)+2 > width {
			width = len(account) + 2
		}
	}
	slices.Sort(accounts)

	first := true
	for _, root := range accountRoots {
		total := ledger.NewBalance()
		var lines []string

		for _, account := range accounts {
			if !strings.HasPrefix(account, root+":") {
				continue
			}

			balance := ledger.NewBalance()
			balance.AddInventory(cmd.value(holdings[account]))
			total.Merge(balance)

			lines = append(lines, fmt.Sprintf("  %-*s%s", width, account, balance.String()))
		}
		if len(lines) == 0 {
			continue
		}

		if !first {
			_, _ = fmt.Fprintln(ctx.Stdout)
		}
		first = false

		_, _ = fmt.Fprintf(ctx.Stdout, "%s  %s\n",
			headerStyle.Render(root),
			dimStyle.Render(total.String()),
		)
		for _, line := range lines {
			_, _ = fmt.Fprintln(ctx.Stdout, line)
		}
	}
}

func (cmd *BalancesCmd) value(inv *ledger.Inventory) *ledger.Inventory {
	if cmd.AtCost {
		return inv.GetCost()
	}
	return inv
}
