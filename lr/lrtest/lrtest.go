package lrtest

import (
	"fmt"

	"github.com/pillmayer-lab/cflang/lr"
)

// stackItem is a (state, symbol) pair on the parse stack.
type stackItem struct {
	stateID uint
	symbol  string
}

// Parser walks a generated ACTION/GOTO table pair over a token stream.
type Parser struct {
	tg *lr.TableGenerator
}

// NewParser creates a table-walking parser for an already-built table generator.
func NewParser(tg *lr.TableGenerator) *Parser {
	return &Parser{tg: tg}
}

// Parse reports whether tokens is accepted by the grammar's SLR(1) table.
// tokens is a sequence of terminal symbol names; end-of-input is implicit.
func (p *Parser) Parse(tokens []string) (bool, error) {
	if p.tg.HasConflicts {
		return false, fmt.Errorf("lrtest: grammar has unresolved conflicts, cannot drive an SLR(1) parse")
	}
	g := p.tg.Productions()
	action := p.tg.ActionTable()
	goTo := p.tg.GotoTable()

	stack := []stackItem{{stateID: p.tg.CFSM().S0().ID}}
	pos := 0
	nextToken := func() string {
		if pos < len(tokens) {
			return tokens[pos]
		}
		return "$"
	}

	for {
		tos := stack[len(stack)-1]
		tok := nextToken()
		kind, target, ok := action.Action(tos.stateID, tok)
		if !ok {
			return false, fmt.Errorf("lrtest: no action in state %d on %q", tos.stateID, tok)
		}
		switch kind {
		case lr.AcceptAction:
			return true, nil
		case lr.ShiftAction:
			stack = append(stack, stackItem{stateID: uint(target), symbol: tok})
			pos++
		case lr.ReduceAction:
			prod := g[target]
			n := len(prod.Items)
			stack = stack[:len(stack)-n]
			base := stack[len(stack)-1]
			to, ok := goTo.Goto(base.stateID, prod.Nonterminal)
			if !ok {
				return false, fmt.Errorf("lrtest: no goto from state %d on %q", base.stateID, prod.Nonterminal)
			}
			stack = append(stack, stackItem{stateID: to, symbol: prod.Nonterminal})
		default:
			return false, fmt.Errorf("lrtest: unknown action kind %d", kind)
		}
	}
}
