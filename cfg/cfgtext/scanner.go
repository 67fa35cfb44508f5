package cfgtext

import (
	"bufio"
	"io"
	"unicode"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pillmayer-lab/cflang/cflang"
)

func tracer() tracing.Trace {
	return tracing.Select("cflang.cfgtext")
}

// Scanner turns a rune stream into a Token stream, classifying each
// non-whitespace rune as terminal, nonterminal or punctuation against a
// caller-supplied alphabet. It buffers a small stack of pushed-back runes
// to handle digraphs like "->" and the "eps" keyword without a full
// tokenizing DFA.
type Scanner struct {
	r        *bufio.Reader
	alphabet cflang_Alphabet
	line     int
	col      int
	pushback []rune
	err      error
}

// cflang_Alphabet is the membership predicate the scanner classifies runes
// with. The Scanner takes a function rather than a cfg.Alphabet; Parser
// passes cfg.Alphabet.Contains.
type cflang_Alphabet = func(rune) bool

// NewScanner builds a Scanner over r, classifying runes with isTerminal.
func NewScanner(r io.Reader, isTerminal func(rune) bool) *Scanner {
	return &Scanner{r: bufio.NewReader(r), alphabet: isTerminal, line: 1, col: 0}
}

func (s *Scanner) readRune() (rune, bool) {
	if n := len(s.pushback); n > 0 {
		r := s.pushback[n-1]
		s.pushback = s.pushback[:n-1]
		return r, true
	}
	r, _, err := s.r.ReadRune()
	if err != nil {
		if err != io.EOF {
			s.err = err
		}
		return 0, false
	}
	if r == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
	return r, true
}

func (s *Scanner) unread(r rune) {
	s.pushback = append(s.pushback, r)
}

func (s *Scanner) peekRune() (rune, bool) {
	r, ok := s.readRune()
	if ok {
		s.unread(r)
	}
	return r, ok
}

func (s *Scanner) pos() cflang.Position { return cflang.Position{Line: s.line, Col: s.col} }

// Err returns the first I/O error encountered, if any.
func (s *Scanner) Err() error { return s.err }

// Next scans and returns the next token.
func (s *Scanner) Next() (tok Token) {
	defer func() { tracer().Debugf("cfgtext: scanned %v %q at %s", tok.Type, tok.Rune, tok.Pos) }()
	for {
		r, ok := s.readRune()
		if !ok {
			return Token{Type: TokEOF, Pos: s.pos()}
		}
		if unicode.IsSpace(r) {
			continue
		}
		pos := s.pos()
		switch r {
		case '|':
			return Token{Type: TokBar, Pos: pos}
		case '→':
			return Token{Type: TokArrow, Pos: pos}
		case 'ε':
			return Token{Type: TokEpsilon, Pos: pos}
		case '-':
			if next, ok := s.peekRune(); ok && next == '>' {
				s.readRune()
				return Token{Type: TokArrow, Pos: pos}
			}
			// a lone '-' outside the alphabet has no meaning in this
			// grammar; treat it as a nonterminal rune like any other.
			return s.classify(r, pos)
		case 'e':
			// possible "eps" keyword for epsilon; only consumed if it is
			// not itself a declared alphabet rune (alphabet wins ties).
			if s.alphabet == nil || !s.alphabet(r) {
				if s.tryConsumeLiteral("ps") {
					return Token{Type: TokEpsilon, Pos: pos}
				}
			}
			return s.classify(r, pos)
		default:
			return s.classify(r, pos)
		}
	}
}

// tryConsumeLiteral consumes the given literal rune sequence if it appears
// next in the stream, restoring the stream unchanged if it doesn't fully
// match (every rune read so far, up to len(rest) of them, is pushed back
// so that it is read again in its original order).
func (s *Scanner) tryConsumeLiteral(rest string) bool {
	consumed := make([]rune, 0, len(rest))
	for _, want := range rest {
		got, ok := s.readRune()
		if !ok || got != want {
			if ok {
				s.unread(got)
			}
			for i := len(consumed) - 1; i >= 0; i-- {
				s.unread(consumed[i])
			}
			return false
		}
		consumed = append(consumed, got)
	}
	return true
}

func (s *Scanner) classify(r rune, pos cflang.Position) Token {
	if s.alphabet != nil && s.alphabet(r) {
		return Token{Type: TokTerminal, Rune: r, Pos: pos}
	}
	return Token{Type: TokNonterminal, Rune: r, Pos: pos}
}
