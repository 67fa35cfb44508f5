package obfuscate

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"

	"github.com/pillmayer-lab/cflang/cfg"
	"github.com/pillmayer-lab/cflang/cfg/automaton"
	"github.com/pillmayer-lab/cflang/cfg/cfgjson"
	"github.com/pillmayer-lab/cflang/cfg/sample"
	"github.com/pillmayer-lab/cflang/cfg/xform"
	"github.com/pillmayer-lab/cflang/cflang"
)

func tracer() tracing.Trace {
	return tracing.Select("cflang.obfuscate")
}

// kNumStrings is the number of distinct sample strings the pipeline
// collects before building the "everything but these" DFA.
const kNumStrings = 10

// maxSizeAttempts bounds the size-escalation loop that collects samples;
// without a bound a pathologically small finite language could never
// reach kNumStrings distinct strings and the pipeline would spin forever.
const maxSizeAttempts = 1000

// Obfuscate runs the full pipeline on g and returns a grammar for the same
// language, unrecognisable at a glance. rng must be supplied by the
// caller for reproducibility — concurrent callers each get their own
// *rand.Rand rather than sharing a package-global one.
func Obfuscate(g *cfg.CFG, rng *rand.Rand) (*cfg.CFG, error) {
	samples, err := sampleDistinct(g, rng)
	if err != nil {
		return nil, err
	}
	pterm.Info.Printfln("obfuscate: sampled %d/%d strings", len(samples), kNumStrings)
	tracer().Debugf("obfuscate: samples=%v", samples)

	dfa := automaton.ExactSetComplement(g.Alphabet.Runes(), samples)

	allButSingleton := xform.Intersect(g, dfa)
	if err := cfg.Validate(allButSingleton); err != nil {
		return nil, err
	}

	withSingletons := xform.Union(allButSingleton, xform.Singleton(samples, g.Alphabet))
	if err := cfg.Validate(withSingletons); err != nil {
		return nil, err
	}

	cnf := xform.ToCNF(withSingletons)
	if err := cfg.Validate(cnf); err != nil {
		return nil, err
	}

	renamed := xform.SillyRename(cnf)
	if err := cfg.Validate(renamed); err != nil {
		return nil, err
	}
	pterm.Info.Printfln("obfuscate: base NTs=%d, final NTs=%d", len(g.Nonterminals), len(renamed.Nonterminals))

	ok, witness := sample.SeemEquivalent(g, renamed, rng)
	if !ok {
		pterm.Warning.Printfln("obfuscate: fuzz mismatch on witness %q", witness)
		return nil, cflang.NewError(cflang.FuzzMismatch, "obfuscated grammar disagrees with original on %q", witness)
	}

	return renamed, nil
}

// sampleDistinct collects kNumStrings distinct sample strings from g,
// escalating the generator's size budget starting at 5.
func sampleDistinct(g *cfg.CFG, rng *rand.Rand) ([]string, error) {
	gen := sample.Generator(g, rng)
	seen := map[string]bool{}
	var out []string
	size := 5
	attempts := 0
	for len(out) < kNumStrings {
		if attempts >= maxSizeAttempts {
			return nil, cflang.NewError(cflang.SamplingExhaustion,
				"could not collect %d distinct sample strings within %d attempts", kNumStrings, maxSizeAttempts)
		}
		attempts++
		ok, s := gen(size)
		if !ok {
			size++
			continue
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
		size++
	}
	return out, nil
}

// WriteResult writes {"alphabet": "<runes>", "cfg": <CFG JSON>} to w.
func WriteResult(w io.Writer, alphabet cfg.Alphabet, g *cfg.CFG) error {
	cfgJSON, err := cfgjson.Encode(g)
	if err != nil {
		return cflang.NewError(cflang.IOError, "encoding obfuscated grammar: %v", err)
	}
	_, err = fmt.Fprintf(w, `{"alphabet":%q,"cfg":%s}`, string(alphabet.Runes()), cfgJSON)
	if err != nil {
		return cflang.NewError(cflang.IOError, "writing obfuscation result: %v", err)
	}
	return nil
}
