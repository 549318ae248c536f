// Package parser implements the textual interchange grammar for positions
// and inventories:
//
//	position  := NUMBER CURRENCY [ '{' [NUMBER CURRENCY] ['/' DATE] '}' ]
//	inventory := [ position (',' position)* ]
//
// The braces of a cost annotation must contain a cost, a date, or both;
// the date-only form "{/ 2012-01-01}" is what the renderer emits for lots
// acquired on a date without a recorded cost, so it parses back. An empty
// string parses to an empty inventory.
package parser

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/holdings/ledger"
)

// Parser consumes the token stream with a single token of lookahead.
type Parser struct {
	lexer *Lexer
	tok   Token
}

func newParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	p.next()
	return p
}

func (p *Parser) next() {
	p.tok = p.lexer.Next()
}

func (p *Parser) expect(t TokenType) (Token, error) {
	if p.tok.Type != t {
		return Token{}, NewParseError(p.tok, "expected %s, got %s", t, describe(p.tok))
	}
	tok := p.tok
	p.next()
	return tok, nil
}

// ParsePosition parses a single position, e.g. "40.50 USD {1.10 CAD}".
// Surrounding whitespace is ignored.
func ParsePosition(input string) (ledger.Position, error) {
	p := newParser(input)
	pos, err := p.parsePosition()
	if err != nil {
		return ledger.Position{}, err
	}
	if p.tok.Type != EOF {
		return ledger.Position{}, NewParseError(p.tok, "unexpected %s after position", describe(p.tok))
	}
	return pos, nil
}

// ParseInventory parses a comma-separated list of positions into a fresh
// inventory, merging positions that share an identical lot by summing their
// quantities. An empty or blank string yields an empty inventory.
func ParseInventory(input string) (*ledger.Inventory, error) {
	p := newParser(input)
	if p.tok.Type == EOF {
		return ledger.NewInventory(), nil
	}

	var positions []ledger.Position
	for {
		pos, err := p.parsePosition()
		if err != nil {
			return nil, err
		}
		positions = append(positions, pos)

		if p.tok.Type == EOF {
			break
		}
		if _, err := p.expect(COMMA); err != nil {
			return nil, err
		}
	}

	return ledger.NewInventory(positions...), nil
}

func (p *Parser) parsePosition() (ledger.Position, error) {
	num, err := p.parseNumber()
	if err != nil {
		return ledger.Position{}, err
	}

	cur, err := p.expect(CURRENCY)
	if err != nil {
		return ledger.Position{}, err
	}

	lot := ledger.Lot{Currency: cur.Value}
	if p.tok.Type == LBRACE {
		if err := p.parseCostAnnotation(&lot); err != nil {
			return ledger.Position{}, err
		}
	}

	return ledger.NewPosition(lot, num), nil
}

// parseCostAnnotation fills in the lot's cost and acquisition date from a
// "{NUMBER CURRENCY / DATE}" annotation with both parts optional but at
// least one present.
func (p *Parser) parseCostAnnotation(lot *ledger.Lot) error {
	open := p.tok
	p.next()

	if p.tok.Type == NUMBER {
		num, err := p.parseNumber()
		if err != nil {
			return err
		}
		cur, err := p.expect(CURRENCY)
		if err != nil {
			return err
		}
		lot.Cost = &ledger.Amount{Number: num, Currency: cur.Value}
	}

	if p.tok.Type == SLASH {
		p.next()
		tok, err := p.expect(DATE)
		if err != nil {
			return err
		}
		date, err := ledger.NewDate(tok.Value)
		if err != nil {
			return NewParseError(tok, "%s", err.Error())
		}
		lot.Date = date
	}

	if lot.Cost == nil && lot.Date == nil {
		return NewParseError(open, "empty cost annotation")
	}

	_, err := p.expect(RBRACE)
	return err
}

func (p *Parser) parseNumber() (decimal.Decimal, error) {
	tok, err := p.expect(NUMBER)
	if err != nil {
		return decimal.Zero, err
	}
	num, err := decimal.NewFromString(tok.Value)
	if err != nil {
		return decimal.Zero, NewParseError(tok, "invalid number %q", tok.Value)
	}
	return num, nil
}

func describe(tok Token) string {
	switch tok.Type {
	case EOF:
		return "end of input"
	case ILLEGAL:
		return fmt.Sprintf("%q", tok.Value)
	default:
		return fmt.Sprintf("%s %q", tok.Type, tok.Value)
	}
}
