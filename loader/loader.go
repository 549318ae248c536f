// Package loader reads holdings files: the plain-text dump format used for
// fixtures and diagnostics. Each non-blank line holds an account name
// followed by an inventory in interchange syntax:
//
//	; cash and a couple of lots
//	Assets:US:Checking     100.00 USD
//	Assets:US:Investments  10 GOOG {700.00 USD / 2020-01-02}, 5 GOOG {720.00 USD}
//	include "retirement.holdings"
//
// Comments start with ';'. An include directive pulls in another holdings
// file, resolved relative to the including file; includes are followed only
// when WithFollowIncludes is set, and files included more than once are
// loaded once.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/robinvdvleuten/holdings/ledger"
	"github.com/robinvdvleuten/holdings/parser"
	"github.com/robinvdvleuten/holdings/telemetry"
)

// Entry is one account line from a holdings file. The same account may
// appear on several lines, possibly across included files.
type Entry struct {
	Account   string
	Inventory *ledger.Inventory
	Pos       parser.Position
}

// File is the loaded contents of a holdings file, entries in source order
// (entries of included files appear at the point of the include).
type File struct {
	Filename string
	Entries  []*Entry
}

// Holdings merges the file's entries per account, combining repeated lines
// for the same account with the construction-time merge rule (quantities
// summed per lot, no booking check).
func (f *File) Holdings() map[string]*ledger.Inventory {
	holdings := make(map[string]*ledger.Inventory, len(f.Entries))
	for _, e := range f.Entries {
		if inv, ok := holdings[e.Account]; ok {
			holdings[e.Account] = ledger.NewInventory(append(inv.Positions(), e.Inventory.Positions()...)...)
			continue
		}
		holdings[e.Account] = e.Inventory.Copy()
	}
	return holdings
}

// Loader reads holdings files with optional include resolution.
type Loader struct {
	// FollowIncludes determines whether include directives are resolved.
	// When false an include line is an error.
	FollowIncludes bool
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithFollowIncludes configures the loader to recursively load included
// files, resolving relative paths from the directory of the including file
// and deduplicating files included more than once.
func WithFollowIncludes() Option {
	return func(l *Loader) {
		l.FollowIncludes = true
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and parses a holdings file from disk.
func (l *Loader) Load(ctx context.Context, filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return l.LoadBytes(ctx, filename, data)
}

// LoadBytes parses holdings file contents already in memory, e.g. from
// stdin. The filename is used for error positions and include resolution.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*File, error) {
	timer := telemetry.FromContext(ctx).Start("load " + filepath.Base(filename))
	defer timer.End()

	state := &loaderState{
		loader:  l,
		visited: map[string]bool{},
	}
	file := &File{Filename: filename}
	if err := state.parseInto(ctx, file, filename, data); err != nil {
		return nil, err
	}
	return file, nil
}

// loaderState tracks visited files during include resolution.
type loaderState struct {
	loader  *Loader
	visited map[string]bool
}

func (s *loaderState) parseInto(ctx context.Context, file *File, filename string, data []byte) error {
	if abs, err := filepath.Abs(filename); err == nil {
		if s.visited[abs] {
			return nil
		}
		s.visited[abs] = true
	}

	for i, line := range strings.Split(string(data), "\n") {
		pos := parser.Position{Filename: filename, Line: i + 1, Column: 1}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}

		if strings.HasPrefix(trimmed, "include") {
			if err := s.include(ctx, file, filename, trimmed, pos); err != nil {
				return err
			}
			continue
		}

		entry, err := parseEntry(line, pos)
		if err != nil {
			return err
		}
		file.Entries = append(file.Entries, entry)
	}
	return nil
}

func (s *loaderState) include(ctx context.Context, file *File, filename, line string, pos parser.Position) error {
	if !s.loader.FollowIncludes {
		return &IncludeError{Pos: pos, Reason: "includes are not followed in this mode"}
	}

	target, err := strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(line, "include")))
	if err != nil {
		return &IncludeError{Pos: pos, Reason: "include path must be a quoted string"}
	}

	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(filename), target)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return &IncludeError{Pos: pos, Reason: fmt.Sprintf("failed to read %s: %v", target, err)}
	}
	return s.parseInto(ctx, file, target, data)
}

// parseEntry splits an account line into its account name and inventory.
func parseEntry(line string, pos parser.Position) (*Entry, error) {
	stripped := line
	if i := strings.IndexByte(stripped, ';'); i >= 0 {
		stripped = stripped[:i]
	}

	indent := len(stripped) - len(strings.TrimLeft(stripped, " \t"))
	trimmed := strings.TrimSpace(stripped)

	account, rest := trimmed, ""
	if i := strings.IndexAny(trimmed, " \t"); i >= 0 {
		account, rest = trimmed[:i], trimmed[i+1:]
	}

	pos.Column = indent + 1
	if err := validateAccount(account); err != nil {
		return nil, &InvalidAccountError{Account: account, Pos: pos, Reason: err.Error()}
	}

	inv, err := parser.ParseInventory(rest)
	if err != nil {
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			// Rebase the position onto the holdings file: the inventory text
			// starts after the account field on the same line.
			offset := strings.Index(line, rest)
			return nil, &parser.ParseError{
				Pos: parser.Position{
					Filename: pos.Filename,
					Line:     pos.Line,
					Column:   offset + perr.Pos.Column,
				},
				Message: perr.Message,
			}
		}
		return nil, err
	}

	return &Entry{Account: account, Inventory: inv, Pos: pos}, nil
}

// accountSegmentRegex validates account segments after the root category.
var accountSegmentRegex = regexp.MustCompile(`^[A-Z0-9][A-Za-z0-9-]*$`)

func validateAccount(account string) error {
	parts := strings.Split(account, ":")
	if len(parts) < 2 {
		return fmt.Errorf("account must have at least two segments: %s", account)
	}

	switch parts[0] {
	case "Assets", "Liabilities", "Equity", "Income", "Expenses":
	default:
		return fmt.Errorf("unexpected account type %q", parts[0])
	}

	for i := 1; i < len(parts); i++ {
		if !accountSegmentRegex.MatchString(parts[i]) {
			return fmt.Errorf("invalid account segment at position %d: %s", i, parts[i])
		}
	}
	return nil
}
