package lr

import (
	"encoding/hex"
	"sort"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	godsutils "github.com/emirpasic/gods/utils"
	"github.com/pterm/pterm"

	"github.com/pillmayer-lab/cflang/lr/iteratable"
	"github.com/pillmayer-lab/cflang/lr/sparse"
)

// Command kinds an ACTION table cell may hold.
const (
	ShiftAction  = -1
	AcceptAction = -2
	ReduceAction = -3
)

// CFSMState is one state (configurating set) of the characteristic finite
// state machine: an ID, its LR(0) item set, and whether it contains the
// halt item.
type CFSMState struct {
	ID     uint
	Items  *iteratable.Set
	Accept bool
	hash   string
}

// cfsmEdge is one labelled transition of the CFSM.
type cfsmEdge struct {
	From  *CFSMState
	To    *CFSMState
	Label string
}

func stateComparator(a, b interface{}) int {
	return godsutils.IntComparator(int(a.(*CFSMState).ID), int(b.(*CFSMState).ID))
}

// CFSM is the characteristic finite state machine built from a grammar's
// canonical LR(0) configurating sets. States are held in a treeset (kept
// ordered by ID for deterministic export/printing) and edges in an
// arraylist.
type CFSM struct {
	g         *Grammar
	states    *treeset.Set
	edges     *arraylist.List
	s0        *CFSMState
	nextID    uint
	hashIndex map[string][]*CFSMState
}

func newCFSM(g *Grammar) *CFSM {
	return &CFSM{
		g:         g,
		states:    treeset.NewWith(stateComparator),
		edges:     arraylist.New(),
		hashIndex: map[string][]*CFSMState{},
	}
}

// S0 returns the CFSM's start state.
func (cf *CFSM) S0() *CFSMState { return cf.s0 }

// States returns every state, ordered by ID.
func (cf *CFSM) States() []*CFSMState {
	vals := cf.states.Values()
	out := make([]*CFSMState, len(vals))
	for i, v := range vals {
		out[i] = v.(*CFSMState)
	}
	return out
}

func itemSetHash(items *iteratable.Set) string {
	keys := make([]string, 0, items.Size())
	for _, e := range items.Values() {
		keys = append(keys, e.Key())
	}
	sort.Strings(keys)
	return hex.EncodeToString(structhash.Md5(keys, 1))
}

// findStateByItems looks up an existing state with exactly this item set,
// using the structural hash as a fast pre-check before falling back to a
// full Equals scan to guard against hash collisions.
func (cf *CFSM) findStateByItems(items *iteratable.Set) *CFSMState {
	h := itemSetHash(items)
	for _, s := range cf.hashIndex[h] {
		if s.Items.Equals(items) {
			return s
		}
	}
	return nil
}

func (cf *CFSM) addState(items *iteratable.Set) *CFSMState {
	accept := false
	for _, e := range items.Values() {
		if e.(Item).IsHaltItem() {
			accept = true
			break
		}
	}
	s := &CFSMState{ID: cf.nextID, Items: items, Accept: accept, hash: itemSetHash(items)}
	cf.nextID++
	cf.states.Add(s)
	cf.hashIndex[s.hash] = append(cf.hashIndex[s.hash], s)
	return s
}

func (cf *CFSM) gotoOf(from *CFSMState, sym string) (*CFSMState, bool) {
	for _, e := range cf.edges.Values() {
		edge := e.(*cfsmEdge)
		if edge.From == from && edge.Label == sym {
			return edge.To, true
		}
	}
	return nil, false
}

// buildCFSM constructs the canonical collection of LR(0) configurating
// sets via a breadth-first worklist: states are numbered in discovery
// order, and item sets are deduplicated by full set equality (accelerated
// here by the structhash pre-check).
func (cf *CFSM) buildCFSM() {
	seed := iteratable.NewSet(itemFromProduction(cf.g.StartProduction()))
	start := closure(cf.g, seed)
	tracer().Debugf("lr: closure of start item set has %d items", start.Size())
	s0 := cf.addState(start)
	cf.s0 = s0

	worklist := []*CFSMState{s0}
	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		succs := successorsOf(cf.g, cur.Items)
		for _, sym := range shiftSymbols(succs) {
			itemSet := succs[sym]
			target := cf.findStateByItems(itemSet)
			if target == nil {
				target = cf.addState(itemSet)
				worklist = append(worklist, target)
				tracer().Debugf("lr: goto(state %d, %q) discovers new state %d", cur.ID, sym, target.ID)
			} else {
				tracer().Debugf("lr: goto(state %d, %q) merges into existing state %d", cur.ID, sym, target.ID)
			}
			cf.edges.Add(&cfsmEdge{From: cur, To: target, Label: sym})
		}
	}
	tracer().Debugf("lr: CFSM built with %d states", cf.states.Size())
}

// Table is a symbol-indexed sparse table (GOTO or ACTION), backed by a
// sparse.IntMatrix. Rows are CFSM state IDs; columns are grammar symbol
// names, resolved through a name->index registry since sparse matrices
// only address integer columns.
type Table struct {
	m      *sparse.IntMatrix
	colIdx map[string]int
	cols   []string
}

func newTable(numStates int, symbols []string) *Table {
	cols := append([]string(nil), symbols...)
	sort.Strings(cols)
	idx := make(map[string]int, len(cols))
	for i, s := range cols {
		idx[s] = i
	}
	return &Table{
		m:      sparse.NewIntMatrix(numStates, len(cols), sparse.DefaultNullValue),
		colIdx: idx,
		cols:   cols,
	}
}

// SetGoto records that state `from` transitions to state `to` on nonterminal sym.
func (t *Table) SetGoto(from uint, sym string, to uint) {
	if col, ok := t.colIdx[sym]; ok {
		t.m.Set(int(from), col, int32(to))
	}
}

// Columns returns every symbol this table has a column for, in sorted order.
func (t *Table) Columns() []string { return append([]string(nil), t.cols...) }

// Goto returns the GOTO-table entry for (state, nonterminal), if any.
func (t *Table) Goto(from uint, sym string) (uint, bool) {
	col, ok := t.colIdx[sym]
	if !ok {
		return 0, false
	}
	v := t.m.Value(int(from), col)
	if v == t.m.NullValue() {
		return 0, false
	}
	return uint(v), true
}

// setAction records an ACTION-table cell as a (kind, target) pair.
func (t *Table) setAction(state uint, sym string, kind, target int) {
	col, ok := t.colIdx[sym]
	if !ok {
		return
	}
	t.m.Set(int(state), col, int32(kind))
	t.m.Add(int(state), col, int32(target))
}

// Action returns the ACTION-table entry for (state, symbol): a command
// kind (ShiftAction/ReduceAction/AcceptAction) and its target (a state ID
// for shift, a global production index for reduce, unused for accept).
func (t *Table) Action(state uint, sym string) (kind, target int, ok bool) {
	col, has := t.colIdx[sym]
	if !has {
		return 0, 0, false
	}
	a, b := t.m.Values(int(state), col)
	if a == t.m.NullValue() {
		return 0, 0, false
	}
	return int(a), int(b), true
}

// TableGenerator drives the whole pipeline: grammar analysis -> CFSM ->
// GOTO/ACTION tables.
type TableGenerator struct {
	g                       *Grammar
	ga                      *LRAnalysis
	dfa                     *CFSM
	gotoTable               *Table
	actionTable             *Table
	HasConflicts            bool // any conflict at all, shift/reduce included
	HasReduceReduceConflict bool
	prods                   []Production // global production index, matches Grammar.AllProductions() order
}

// NewTableGenerator creates a generator for an already-analysed grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	return &TableGenerator{g: ga.Grammar(), ga: ga, prods: ga.Grammar().AllProductions()}
}

// CFSM returns the characteristic finite state machine (building it first if needed).
func (tg *TableGenerator) CFSM() *CFSM {
	if tg.dfa == nil {
		tg.dfa = newCFSM(tg.g)
		tg.dfa.buildCFSM()
	}
	return tg.dfa
}

// GotoTable returns the GOTO table, building tables first if needed.
func (tg *TableGenerator) GotoTable() *Table {
	tg.CreateTables()
	return tg.gotoTable
}

// ActionTable returns the priority-resolved ACTION table, building tables
// first if needed.
func (tg *TableGenerator) ActionTable() *Table {
	tg.CreateTables()
	return tg.actionTable
}

// Productions returns every production in the grammar's global index
// order, i.e. the ordering ACTION-table reduce targets are indices into.
func (tg *TableGenerator) Productions() []Production { return tg.prods }

// AcceptingStates returns every CFSM state containing the halt item.
func (tg *TableGenerator) AcceptingStates() []*CFSMState {
	var out []*CFSMState
	for _, s := range tg.CFSM().States() {
		if s.Accept {
			out = append(out, s)
		}
	}
	return out
}

func (tg *TableGenerator) prodIndex(p Production) int {
	for i, q := range tg.prods {
		if q.Nonterminal == p.Nonterminal && q.Index == p.Index {
			return i
		}
	}
	return -1
}

func (tg *TableGenerator) priorityOf(p Production) int {
	priorities := tg.g.Priorities()
	for _, sym := range p.Items {
		if !tg.g.IsNonterminal(sym) {
			for i, pr := range priorities {
				if pr == sym {
					return i
				}
			}
		}
	}
	return len(priorities)
}

// CreateTables builds the GOTO and ACTION tables if not already built.
func (tg *TableGenerator) CreateTables() {
	if tg.gotoTable != nil && tg.actionTable != nil {
		return
	}
	cf := tg.CFSM()

	nonterminals := map[string]bool{}
	terminals := map[string]bool{}
	terminals["$"] = true
	for _, nt := range tg.g.Nonterminals() {
		nonterminals[nt] = true
		for _, r := range tg.g.Rules(nt) {
			for _, sym := range r.Terms {
				if !tg.g.IsNonterminal(sym) {
					terminals[sym] = true
				}
			}
		}
	}

	gotoCols := make([]string, 0, len(nonterminals))
	for nt := range nonterminals {
		gotoCols = append(gotoCols, nt)
	}
	actionCols := make([]string, 0, len(terminals))
	for t := range terminals {
		actionCols = append(actionCols, t)
	}

	numStates := len(cf.States())
	tg.gotoTable = newTable(numStates, gotoCols)
	tg.actionTable = newTable(numStates, actionCols)

	for _, e := range cf.edges.Values() {
		edge := e.(*cfsmEdge)
		if tg.g.IsNonterminal(edge.Label) {
			tg.gotoTable.SetGoto(edge.From.ID, edge.Label, edge.To.ID)
		}
	}

	tg.buildActionTable(cf)
}

// buildActionTable fills the ACTION table in three passes: reduce items
// are placed first (first-writer-wins on a reduce/reduce collision, logged
// as a warning, never fatal); halt items next, same discipline; shift
// items last, where a shift OVERWRITES an existing claim unless the
// current owner already has strictly higher precedence (a strictly lower
// priority index) than the incoming shift.
func (tg *TableGenerator) buildActionTable(cf *CFSM) {
	for _, state := range cf.States() {
		owners := map[string]Production{}
		claimed := map[string]bool{}

		items := state.Items.Values()

		// pass 1: reduce items (exclude the halt item, handled separately).
		for _, e := range items {
			it := e.(Item)
			if !it.IsReduceItem() || it.IsHaltItem() {
				continue
			}
			idx := tg.prodIndex(it.Production)
			for _, sym := range tg.ga.Follow(it.Production.Nonterminal) {
				if claimed[sym] {
					if owners[sym].Nonterminal != it.Production.Nonterminal || owners[sym].Index != it.Production.Index {
						tg.HasConflicts = true
						tg.HasReduceReduceConflict = true
						pterm.Warning.Printfln("reduce/reduce conflict in state %d on %q", state.ID, sym)
					}
					continue
				}
				tg.actionTable.setAction(state.ID, sym, ReduceAction, idx)
				owners[sym] = it.Production
				claimed[sym] = true
			}
		}

		// pass 2: the halt item, on end-of-input only.
		for _, e := range items {
			it := e.(Item)
			if !it.IsHaltItem() {
				continue
			}
			if claimed["$"] {
				tg.HasConflicts = true
				tg.HasReduceReduceConflict = true
				pterm.Warning.Printfln("reduce/reduce conflict in state %d on \"$\"", state.ID)
				continue
			}
			tg.actionTable.setAction(state.ID, "$", AcceptAction, 0)
			owners["$"] = it.Production
			claimed["$"] = true
		}

		// pass 3: shift items, which may overwrite passes 1/2 per the
		// priority-comparison rule above.
		for _, e := range items {
			it := e.(Item)
			sym, ok := it.SymbolAtDot()
			if !ok || tg.g.IsNonterminal(sym) {
				continue
			}
			target, ok := cf.gotoOf(state, sym)
			if !ok {
				continue
			}
			command := int(target.ID)
			existingKind, existingTarget, existingSet := -1, -1, false
			if claimed[sym] {
				if kind, tgt, ok := tg.actionTable.Action(state.ID, sym); ok {
					existingKind = kind
					existingTarget = tgt
					existingSet = true
				}
			}
			// existingTarget is a state ID only when the current owner is
			// itself a shift; for a reduce owner it's a production index,
			// so the "already agrees" shortcut must not fire across kinds
			// even if the two numbers happen to coincide.
			overwrite := !claimed[sym] ||
				(existingSet && existingKind == ShiftAction && existingTarget == command) ||
				tg.priorityOf(owners[sym]) >= tg.priorityOf(it.Production)
			if !overwrite {
				tg.HasConflicts = true
				pterm.Warning.Printfln("shift/reduce conflict in state %d on %q", state.ID, sym)
				continue
			}
			tg.actionTable.setAction(state.ID, sym, ShiftAction, command)
			owners[sym] = it.Production
			claimed[sym] = true
		}
	}
}
