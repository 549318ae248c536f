package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/holdings/formatter"
	"github.com/robinvdvleuten/holdings/loader"
	"github.com/robinvdvleuten/holdings/telemetry"
)

type FormatCmd struct {
	File           FileOrStdin `help:"Holdings input filename (use '-' for stdin, or omit for stdin). Included files are inlined." arg:"" optional:""`
	CurrencyColumn int         `help:"Column for inventory alignment (auto-calculated from content if 0)." default:"0"`
	PrefixWidth    int         `help:"Width in characters for account names (auto if 0)." default:"0"`
	Write          bool        `help:"Rewrite the file in place instead of printing to stdout." short:"w"`
	Force          bool        `help:"Skip the overwrite confirmation."`
}

func (cmd *FormatCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}
	if cmd.Write && cmd.File.Filename == "<stdin>" {
		return fmt.Errorf("--write requires a file argument")
	}

	runCtx := context.Background()

	if globals.Telemetry {
		collector := telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		timer := collector.Start(fmt.Sprintf("format %s", filepath.Base(cmd.File.Filename)))
		defer func() {
			timer.End()
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr)
		}()
	}

	sourceContent, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	ldr := loader.New(loader.WithFollowIncludes())
	file, err := cmd.File.LoadFile(runCtx, ldr)
	if err != nil {
		renderer := NewErrorRenderer(sourceContent)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		printError(ctx.Stderr, "parse error")
		return NewCommandError(1)
	}

	var opts []formatter.Option
	if cmd.CurrencyColumn > 0 {
		opts = append(opts, formatter.WithCurrencyColumn(cmd.CurrencyColumn))
	}
	if cmd.PrefixWidth > 0 {
		opts = append(opts, formatter.WithPrefixWidth(cmd.PrefixWidth))
	}
	f := formatter.New(opts...)

	var buf bytes.Buffer
	if err := f.Format(file, &buf); err != nil {
		return err
	}

	if !cmd.Write {
		_, _ = ctx.Stdout.Write(buf.Bytes())
		return nil
	}

	if !cmd.Force {
		confirmed, err := promptYesNo(fmt.Sprintf("Overwrite %s?", cmd.File.Filename))
		if err != nil {
			return err
		}
		if !confirmed {
			printInfof(ctx.Stdout, "Leaving %s unchanged", cmd.File.Filename)
			return nil
		}
	}

	if err := os.WriteFile(cmd.File.Filename, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cmd.File.Filename, err)
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("Formatted %s", cmd.File.Filename))

	return nil
}
