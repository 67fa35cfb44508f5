package cfgtext

import (
	"strings"
	"testing"
)

func isDigitAlphabet(r rune) bool { return r == 'a' || r == 'b' }

func TestScannerClassifiesTerminalsAndNonterminals(t *testing.T) {
	sc := NewScanner(strings.NewReader("S -> a S"), isDigitAlphabet)
	var got []TokenType
	for {
		tok := sc.Next()
		got = append(got, tok.Type)
		if tok.Type == TokEOF {
			break
		}
	}
	want := []TokenType{TokNonterminal, TokArrow, TokTerminal, TokNonterminal, TokEOF}
	if len(got) != len(want) {
		t.Fatalf("token sequence = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScannerRecognizesArrowDigraphAndUnicodeArrow(t *testing.T) {
	for _, input := range []string{"S -> a", "S → a"} {
		sc := NewScanner(strings.NewReader(input), isDigitAlphabet)
		sc.Next() // S
		arrow := sc.Next()
		if arrow.Type != TokArrow {
			t.Errorf("input %q: token = %s, want ARROW", input, arrow.Type)
		}
	}
}

func TestScannerRecognizesEpsilonKeywordAndSymbol(t *testing.T) {
	for _, input := range []string{"S -> ε", "S -> eps"} {
		sc := NewScanner(strings.NewReader(input), isDigitAlphabet)
		sc.Next() // S
		sc.Next() // ->
		eps := sc.Next()
		if eps.Type != TokEpsilon {
			t.Errorf("input %q: token = %s, want EPSILON", input, eps.Type)
		}
	}
}

func TestScannerAlphabetEWinsOverEpsKeyword(t *testing.T) {
	isE := func(r rune) bool { return r == 'e' || r == 'p' || r == 's' }
	sc := NewScanner(strings.NewReader("e"), isE)
	tok := sc.Next()
	if tok.Type != TokTerminal || tok.Rune != 'e' {
		t.Errorf("token = %+v, want a terminal 'e'", tok)
	}
}

func TestScannerPartialEpsKeywordFallsBackToNonterminal(t *testing.T) {
	sc := NewScanner(strings.NewReader("ex"), isDigitAlphabet)
	first := sc.Next()
	if first.Type != TokNonterminal || first.Rune != 'e' {
		t.Fatalf("first token = %+v, want nonterminal 'e'", first)
	}
	second := sc.Next()
	if second.Type != TokNonterminal || second.Rune != 'x' {
		t.Fatalf("second token = %+v, want nonterminal 'x'", second)
	}
}
