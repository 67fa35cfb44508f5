package sample

import (
	"math/rand"
	"strings"

	"github.com/pillmayer-lab/cflang/cfg"
)

// kMaxSize and kTestsPerSize bound the differential fuzz sweep: sizes
// 0..kMaxSize-1, kTestsPerSize trials each.
const (
	kMaxSize      = 15
	kTestsPerSize = 1000
)

// Generator returns a closure that attempts to derive a random string from
// g's start symbol within a step budget of size expansions. size doubles
// as both the target-length hint and the recursion-fuel bound the way
// obfuscate.Obfuscate's increasing size cutoffs use it — a grammar with
// deep or unbounded recursion simply reports ok=false once the budget
// runs out rather than looping forever.
func Generator(g *cfg.CFG, rng *rand.Rand) func(size int) (ok bool, s string) {
	return func(size int) (bool, string) {
		budget := size
		ok, s := expand(g, rng, g.Start, &budget)
		return ok, s
	}
}

func expand(g *cfg.CFG, rng *rand.Rand, nt rune, budget *int) (bool, string) {
	if *budget <= 0 {
		return false, ""
	}
	*budget--
	prods := g.ProductionsFor(nt)
	if len(prods) == 0 {
		return false, ""
	}
	p := prods[rng.Intn(len(prods))]
	var b strings.Builder
	for _, s := range p.RHS {
		if s.IsTerminal() {
			b.WriteRune(s.Rune)
			continue
		}
		ok, sub := expand(g, rng, s.Rune, budget)
		if !ok {
			return false, ""
		}
		b.WriteString(sub)
	}
	return true, b.String()
}

// Matcher returns a closure deciding whether s ∈ L(g), using a memoised
// top-down derivability check: canDerive(A, i, len) with a visiting-set
// cycle guard, so that left-recursive productions (A -> A x) terminate —
// re-entering a call already in progress can only correspond to an
// infinite (hence non-existent) derivation, so it is treated as false.
func Matcher(g *cfg.CFG) func(s string) bool {
	return func(s string) bool {
		runes := []rune(s)
		m := &matcher{g: g, s: runes, memo: map[matchKey]bool{}, visiting: map[matchKey]bool{}}
		return m.canDerive(g.Start, 0, len(runes))
	}
}

type matchKey struct {
	nt  rune
	i   int
	len int
}

type matcher struct {
	g        *cfg.CFG
	s        []rune
	memo     map[matchKey]bool
	visiting map[matchKey]bool
}

func (m *matcher) canDerive(nt rune, i, length int) bool {
	key := matchKey{nt, i, length}
	if v, ok := m.memo[key]; ok {
		return v
	}
	if m.visiting[key] {
		return false
	}
	m.visiting[key] = true
	result := false
	for _, p := range m.g.ProductionsFor(nt) {
		if m.canDeriveSeq(p.RHS, i, length) {
			result = true
			break
		}
	}
	delete(m.visiting, key)
	m.memo[key] = result
	return result
}

func (m *matcher) canDeriveSeq(symbols []cfg.Symbol, i, length int) bool {
	if len(symbols) == 0 {
		return length == 0
	}
	head := symbols[0]
	if head.IsTerminal() {
		if length < 1 || i >= len(m.s) || m.s[i] != head.Rune {
			return false
		}
		return m.canDeriveSeq(symbols[1:], i+1, length-1)
	}
	for l1 := 0; l1 <= length; l1++ {
		if m.canDerive(head.Rune, i, l1) && m.canDeriveSeq(symbols[1:], i+l1, length-l1) {
			return true
		}
	}
	return false
}

// SeemEquivalent runs a Monte-Carlo differential test between a and b,
// sampling increasing sizes up to kMaxSize and alternating which grammar
// supplies each trial's candidate string. It returns false with the
// mismatching witness string on the first disagreement found.
func SeemEquivalent(a, b *cfg.CFG, rng *rand.Rand) (ok bool, witness string) {
	genA := Generator(a, rng)
	genB := Generator(b, rng)
	matchA := Matcher(a)
	matchB := Matcher(b)

	for size := 0; size < kMaxSize; size++ {
		for i := 0; i < kTestsPerSize; i++ {
			var okGen bool
			var s string
			if i%2 == 0 {
				okGen, s = genA(size)
			} else {
				okGen, s = genB(size)
			}
			if !okGen {
				continue
			}
			if matchA(s) != matchB(s) {
				return false, s
			}
		}
	}
	return true, ""
}
