package cfgtext

import "github.com/pillmayer-lab/cflang/cflang"

// TokenType classifies a scanned token.
type TokenType int8

const (
	// TokEOF marks end of input.
	TokEOF TokenType = iota
	// TokTerminal is a rune drawn from the caller's alphabet.
	TokTerminal
	// TokNonterminal is any rune outside the alphabet and outside the
	// reserved punctuation set.
	TokNonterminal
	// TokArrow is "->" or "→".
	TokArrow
	// TokBar is "|".
	TokBar
	// TokEpsilon is "ε" or the keyword "eps".
	TokEpsilon
)

func (t TokenType) String() string {
	switch t {
	case TokEOF:
		return "EOF"
	case TokTerminal:
		return "TERMINAL"
	case TokNonterminal:
		return "NONTERMINAL"
	case TokArrow:
		return "ARROW"
	case TokBar:
		return "BAR"
	case TokEpsilon:
		return "EPSILON"
	}
	return "?"
}

// Token is one lexical unit of the CFG text notation.
type Token struct {
	Type TokenType
	Rune rune // valid for TokTerminal / TokNonterminal
	Pos  cflang.Position
}
