package cfgtext

import (
	"io"

	"github.com/pillmayer-lab/cflang/cflang"
	"github.com/pillmayer-lab/cflang/cfg"
)

// Parser is a hand-written recursive-descent parser for the CFG textual
// notation, using two tokens of lookahead to disambiguate an implicit
// end-of-production from the start of the next VariableDecl (no separating
// bar is required between a grammar's variable declarations).
type Parser struct {
	sc   *Scanner
	toks [2]Token
	n    int // number of valid lookahead tokens buffered in toks
}

// NewParser builds a Parser reading CFG text from r against alphabet.
func NewParser(r io.Reader, alphabet cfg.Alphabet) *Parser {
	return &Parser{sc: NewScanner(r, alphabet.Contains)}
}

func (p *Parser) fill(n int) {
	for p.n < n {
		p.toks[p.n] = p.sc.Next()
		p.n++
	}
}

func (p *Parser) peek(k int) Token {
	p.fill(k + 1)
	return p.toks[k]
}

func (p *Parser) advance() Token {
	p.fill(1)
	t := p.toks[0]
	copy(p.toks[:], p.toks[1:p.n])
	p.n--
	return t
}

func perr(t Token, format string, args ...interface{}) error {
	return cflang.NewPositionedError(cflang.ParseError, t.Pos.Line, t.Pos.Col, format, args...)
}

// Parse parses a full CFG document. The start symbol is the LHS of the
// first VariableDecl encountered.
func Parse(r io.Reader, alphabet cfg.Alphabet) (*cfg.CFG, error) {
	p := NewParser(r, alphabet)
	var g *cfg.CFG
	for p.peek(0).Type != TokEOF {
		lhs, prods, err := p.parseVariableDecl()
		if err != nil {
			return nil, err
		}
		if g == nil {
			g = cfg.NewCFG(alphabet, lhs)
		}
		g.AddNonterminal(lhs)
		for _, prod := range prods {
			g.AddProduction(prod)
		}
	}
	if g == nil {
		return nil, cflang.NewError(cflang.ParseError, "no productions found")
	}
	return g, nil
}

func (p *Parser) parseVariableDecl() (rune, []cfg.Production, error) {
	lhsTok := p.advance()
	if lhsTok.Type != TokNonterminal {
		return 0, nil, perr(lhsTok, "expected a nonterminal, got %s", lhsTok.Type)
	}
	arrowTok := p.advance()
	if arrowTok.Type != TokArrow {
		return 0, nil, perr(arrowTok, "expected '->', got %s", arrowTok.Type)
	}
	prods, err := p.parseProductionList(lhsTok.Rune)
	if err != nil {
		return 0, nil, err
	}
	return lhsTok.Rune, prods, nil
}

func (p *Parser) parseProductionList(lhs rune) ([]cfg.Production, error) {
	var out []cfg.Production
	for {
		prod, err := p.parseProduction(lhs)
		if err != nil {
			return nil, err
		}
		out = append(out, prod)
		if p.peek(0).Type == TokBar {
			p.advance()
			continue
		}
		return out, nil
	}
}

// parseProduction consumes symbols until it hits BAR, EOF, or a lookahead-2
// pattern of (NONTERMINAL, ARROW) — the latter signals that the next
// VariableDecl has begun without an explicit separator.
func (p *Parser) parseProduction(lhs rune) (cfg.Production, error) {
	prod := cfg.Production{LHS: lhs}
	if p.peek(0).Type == TokEpsilon {
		p.advance()
		return prod, nil
	}
	for {
		t := p.peek(0)
		if t.Type == TokEOF || t.Type == TokBar {
			return prod, nil
		}
		if t.Type == TokNonterminal && p.peek(1).Type == TokArrow {
			return prod, nil
		}
		if t.Type == TokArrow {
			return prod, perr(t, "unexpected '->' inside a production")
		}
		if t.Type == TokEpsilon {
			return prod, perr(t, "'ε' may only appear alone in a production")
		}
		p.advance()
		if t.Type == TokTerminal {
			prod.RHS = append(prod.RHS, cfg.NewTerminal(t.Rune))
		} else {
			prod.RHS = append(prod.RHS, cfg.NewNonterminal(t.Rune))
		}
	}
}
