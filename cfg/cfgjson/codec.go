package cfgjson

import (
	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
	"github.com/pillmayer-lab/cflang/cflang"
	"github.com/pillmayer-lab/cflang/cfg"
)

// symbolJSON mirrors {"type": "T"|"NT", "data": "<rune>"}.
type symbolJSON struct {
	Type string
	Data string
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (s symbolJSON) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	w.RawString(`"type":`)
	w.String(s.Type)
	w.RawString(`,"data":`)
	w.String(s.Data)
	w.RawByte('}')
}

// UnmarshalEasyJSON implements easyjson.Unmarshaler.
func (s *symbolJSON) UnmarshalEasyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "type":
			s.Type = l.String()
		case "data":
			s.Data = l.String()
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

// ruleJSON mirrors {"name": "<rune>", "production": [symbolJSON...]}.
type ruleJSON struct {
	Name       string
	Production []symbolJSON
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (r ruleJSON) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	w.RawString(`"name":`)
	w.String(r.Name)
	w.RawString(`,"production":[`)
	for i, s := range r.Production {
		if i > 0 {
			w.RawByte(',')
		}
		s.MarshalEasyJSON(w)
	}
	w.RawString(`]}`)
}

// UnmarshalEasyJSON implements easyjson.Unmarshaler.
func (r *ruleJSON) UnmarshalEasyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "name":
			r.Name = l.String()
		case "production":
			if l.IsNull() {
				l.Skip()
			} else {
				l.Delim('[')
				for !l.IsDelim(']') {
					var s symbolJSON
					s.UnmarshalEasyJSON(l)
					r.Production = append(r.Production, s)
					l.WantComma()
				}
				l.Delim(']')
			}
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

// document mirrors {"start": "<rune>", "rules": [ruleJSON...]}.
type document struct {
	Start string
	Rules []ruleJSON
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (d document) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	w.RawString(`"start":`)
	w.String(d.Start)
	w.RawString(`,"rules":[`)
	for i, r := range d.Rules {
		if i > 0 {
			w.RawByte(',')
		}
		r.MarshalEasyJSON(w)
	}
	w.RawString(`]}`)
}

// UnmarshalEasyJSON implements easyjson.Unmarshaler.
func (d *document) UnmarshalEasyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "start":
			d.Start = l.String()
		case "rules":
			if l.IsNull() {
				l.Skip()
			} else {
				l.Delim('[')
				for !l.IsDelim(']') {
					var r ruleJSON
					r.UnmarshalEasyJSON(l)
					d.Rules = append(d.Rules, r)
					l.WantComma()
				}
				l.Delim(']')
			}
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// Encode renders g in the CFG JSON form.
func Encode(g *cfg.CFG) ([]byte, error) {
	doc := document{Start: string(g.Start)}
	for _, p := range g.Productions {
		rj := ruleJSON{Name: string(p.LHS)}
		for _, s := range p.RHS {
			t := "NT"
			if s.IsTerminal() {
				t = "T"
			}
			rj.Production = append(rj.Production, symbolJSON{Type: t, Data: string(s.Rune)})
		}
		doc.Rules = append(doc.Rules, rj)
	}
	return easyjson.Marshal(doc)
}

// Decode parses the CFG JSON form against alphabet, building a *cfg.CFG.
// Nonterminals are registered as they are encountered, both as a rule's
// LHS and as "NT"-tagged RHS symbols; a symbol tagged "T" that falls
// outside alphabet is reported as an AlphabetViolation rather than
// silently accepted, since the JSON form carries no alphabet of its own.
func Decode(data []byte, alphabet cfg.Alphabet) (*cfg.CFG, error) {
	var doc document
	if err := easyjson.Unmarshal(data, &doc); err != nil {
		return nil, cflang.NewError(cflang.ParseError, "invalid CFG JSON: %v", err)
	}
	if doc.Start == "" || len(doc.Rules) == 0 {
		return nil, cflang.NewError(cflang.ParseError, "CFG JSON missing start symbol or rules")
	}
	start := firstRune(doc.Start)
	g := cfg.NewCFG(alphabet, start)
	for _, rj := range doc.Rules {
		lhs := firstRune(rj.Name)
		g.AddNonterminal(lhs)
	}
	for _, rj := range doc.Rules {
		lhs := firstRune(rj.Name)
		p := cfg.Production{LHS: lhs}
		for _, sj := range rj.Production {
			r := firstRune(sj.Data)
			switch sj.Type {
			case "T":
				if !alphabet.Contains(r) {
					return nil, cflang.NewError(cflang.AlphabetViolation,
						"terminal %q in rule %q is outside the alphabet", string(r), rj.Name)
				}
				p.RHS = append(p.RHS, cfg.NewTerminal(r))
			case "NT":
				g.AddNonterminal(r)
				p.RHS = append(p.RHS, cfg.NewNonterminal(r))
			default:
				return nil, cflang.NewError(cflang.ParseError, "unknown symbol type %q", sj.Type)
			}
		}
		g.AddProduction(p)
	}
	return g, nil
}

var _ easyjson.Marshaler = document{}
var _ easyjson.Unmarshaler = (*document)(nil)
