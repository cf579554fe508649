package grammar

// firstSets holds the memoized FIRST sets for every symbol in a grammar,
// computed by the fixed-point loop in First. Grounded on the teacher's
// tooling/ll1/first.go ComputeFirstSets, rewritten for flat RHS sequences:
// where the teacher recurses over a ProductionRule combinator tree
// (SynSequence/SynAlternative/SynOptional/...), a flat RHS is exactly "the
// sequence case" of that recursion, so the descent collapses to a single
// loop over RHS positions.
type firstSets struct {
	sets     map[Symbol]map[Symbol]bool
	nullable map[Symbol]bool
}

// FirstSet is the public, read-only view of FIRST(X) for one symbol.
type FirstSet map[Symbol]bool

// Contains reports whether t is in the FIRST set.
func (fs FirstSet) Contains(t Symbol) bool { return fs[t] }

// First returns FIRST(sym), computing and memoizing the whole grammar's
// FIRST table on first call. Safe for concurrent use: the table is built
// at most once, guarded by a sync.Once, regardless of how many goroutines
// call First concurrently.
func (g *Grammar) First(sym Symbol) FirstSet {
	g.firstOnce.Do(func() {
		g.firstTable = computeFirstSets(g)
	})
	return FirstSet(g.firstTable.sets[sym])
}

// IsNullable reports whether sym can derive the empty string.
func (g *Grammar) IsNullable(sym Symbol) bool {
	g.firstOnce.Do(func() {
		g.firstTable = computeFirstSets(g)
	})
	return g.firstTable.nullable[sym]
}

// FirstOfSequence computes FIRST over a symbol sequence the way a
// right-hand side is consumed: FIRST(X1) unioned in, and if X1 is
// nullable, continue with X2, and so on; if every Xi is nullable the whole
// sequence is nullable too. This is the "first(symbols...)" generalization
// spec.md requires. The result itself is not memoized: each call rebuilds
// it from the already memoized per-symbol sets.
func (g *Grammar) FirstOfSequence(seq []Symbol) (FirstSet, bool) {
	result := make(FirstSet)
	nullable := true
	for _, sym := range seq {
		for t := range g.First(sym) {
			result[t] = true
		}
		if !g.IsNullable(sym) {
			nullable = false
			break
		}
	}
	return result, nullable
}

func computeFirstSets(g *Grammar) *firstSets {
	fs := &firstSets{
		sets:     make(map[Symbol]map[Symbol]bool),
		nullable: make(map[Symbol]bool),
	}

	for _, t := range collectTerminals(g) {
		fs.sets[t] = map[Symbol]bool{t: true}
	}

	changed := true
	for changed {
		changed = false
		for _, p := range g.productions {
			if fs.sets[p.LHS] == nil {
				fs.sets[p.LHS] = make(map[Symbol]bool)
			}
			oldSize := len(fs.sets[p.LHS])
			oldNullable := fs.nullable[p.LHS]

			if len(p.RHS) == 0 {
				fs.nullable[p.LHS] = true
			} else {
				nullable := true
				for _, sym := range p.RHS {
					for t := range fs.sets[sym] {
						fs.sets[p.LHS][t] = true
					}
					if !fs.nullable[sym] {
						nullable = false
						break
					}
				}
				if nullable {
					fs.nullable[p.LHS] = true
				}
			}

			if len(fs.sets[p.LHS]) != oldSize || fs.nullable[p.LHS] != oldNullable {
				changed = true
			}
		}
	}

	return fs
}

// collectTerminals returns every RHS symbol that is never a production's
// LHS anywhere in the grammar, plus the EOF sentinel.
func collectTerminals(g *Grammar) []Symbol {
	lhs := make(map[Symbol]bool)
	for _, p := range g.productions {
		lhs[p.LHS] = true
	}
	seen := map[Symbol]bool{EOF: true}
	terminals := []Symbol{EOF}
	for _, p := range g.productions {
		for _, sym := range p.RHS {
			if lhs[sym] || seen[sym] {
				continue
			}
			seen[sym] = true
			terminals = append(terminals, sym)
		}
	}
	return terminals
}
