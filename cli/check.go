package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/robinvdvleuten/holdings/loader"
	"github.com/robinvdvleuten/holdings/telemetry"
)

type CheckCmd struct {
	File  FileOrStdin `help:"Holdings input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Watch bool        `help:"Re-check the file whenever it changes on disk."`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	if cmd.Watch {
		if cmd.File.Filename == "<stdin>" {
			return fmt.Errorf("--watch requires a file argument")
		}
		return cmd.watch(ctx, globals)
	}

	return cmd.check(ctx, globals)
}

func (cmd *CheckCmd) check(ctx *kong.Context, globals *Globals) error {
	runCtx := context.Background()

	if globals.Telemetry {
		collector := telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		timer := collector.Start(fmt.Sprintf("check %s", filepath.Base(cmd.File.Filename)))
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

	holdings := file.Holdings()
	positions := 0
	for _, inv := range holdings {
		positions += inv.Len()
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Check passed: %d account(s), %d position(s)", len(holdings), positions))

	return nil
}

// watch re-runs the check whenever the file changes. The parent directory
// is watched because editors commonly replace the file on save.
func (cmd *CheckCmd) watch(ctx *kong.Context, globals *Globals) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	target := cmd.File.GetAbsoluteFilename()
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	if err := cmd.check(ctx, globals); err != nil {
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			return err
		}
	}
	printInfof(ctx.Stdout, "Watching %s for changes", cmd.File.Filename)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			// Editors emit bursts of events on save; let them settle.
			time.Sleep(100 * time.Millisecond)
			drainEvents(watcher)

			_, _ = fmt.Fprintln(ctx.Stdout)
			if err := cmd.check(ctx, globals); err != nil {
				var cmdErr *CommandError
				if !errors.As(err, &cmdErr) {
					return err
				}
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(ctx.Stderr, werr.Error())
		}
	}
}

func drainEvents(watcher *fsnotify.Watcher) {
	for {
		select {
		case <-watcher.Events:
		default:
			return
		}
	}
}
