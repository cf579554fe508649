// Package nfa implements nondeterministic finite automata assembled by
// Thompson's construction from character classes, and driven one character
// at a time rather than pre-determinized into a DFA. Feeding one character
// at a time, instead of compiling straight to a DFA the way a batch
// compiler would, is what lets a progressive lexer observe match state
// mid-stream and interleave several rules' automata over asynchronous
// input.
package nfa

import "github.com/shadowCow/ptk/charclass"

// State is an index into an NFA's private state arena. States are never
// shared across distinct NFA values; Clone always produces disjoint
// identities.
type State int

type transition struct {
	class charclass.Class
	to    State
}

type stateNode struct {
	transitions []transition
	epsilon     map[State]bool
}

// NFA is a nondeterministic finite automaton with exactly one start state
// and exactly one accept state. Every construction primitive below
// (NewFromClass, Concat, Union, Kleene, Exponent) preserves this
// single-start/single-accept shape, so composite NFAs can themselves be
// recombined by the same primitives.
type NFA struct {
	states []*stateNode
	start  State
	accept State
}

func newEmpty() *NFA {
	n := &NFA{}
	n.start = n.addState()
	n.accept = n.addState()
	return n
}

func (n *NFA) addState() State {
	id := State(len(n.states))
	n.states = append(n.states, &stateNode{epsilon: make(map[State]bool)})
	return id
}

func (n *NFA) addTransition(from State, class charclass.Class, to State) {
	n.states[from].transitions = append(n.states[from].transitions, transition{class: class, to: to})
}

func (n *NFA) addEpsilon(from, to State) {
	n.states[from].epsilon[to] = true
}

// StartState returns the NFA's start state.
func (n *NFA) StartState() State { return n.start }

// Accept returns the NFA's accept state.
func (n *NFA) Accept() State { return n.accept }

// NumStates returns how many states are in the NFA's arena, for
// diagnostics.
func (n *NFA) NumStates() int { return len(n.states) }

// NewFromClass builds the minimal NFA that matches exactly one character
// belonging to cls.
func NewFromClass(cls charclass.Class) *NFA {
	n := newEmpty()
	n.addTransition(n.start, cls, n.accept)
	return n
}

// emptyMatch builds the NFA that matches only the empty string.
func emptyMatch() *NFA {
	n := newEmpty()
	n.addEpsilon(n.start, n.accept)
	return n
}

// Clone deep-copies an NFA, preserving its state numbering but sharing no
// backing storage with the original — mutating a clone's transitions never
// affects the source NFA. Per-lexer-instance simulation always starts from
// a Clone of a shared, read-only rule template.
func (n *NFA) Clone() *NFA {
	clone := &NFA{states: make([]*stateNode, len(n.states)), start: n.start, accept: n.accept}
	for id, s := range n.states {
		ns := &stateNode{epsilon: make(map[State]bool, len(s.epsilon))}
		ns.transitions = append(ns.transitions, s.transitions...)
		for to := range s.epsilon {
			ns.epsilon[to] = true
		}
		clone.states[id] = ns
	}
	return clone
}

// merge appends a Clone of other's states onto n's own arena, offsetting
// every state id so the two NFAs' states never collide, and returns other's
// start/accept states renumbered into n's arena.
func (n *NFA) merge(other *NFA) (start, accept State) {
	offset := State(len(n.states))
	for _, s := range other.states {
		ns := &stateNode{epsilon: make(map[State]bool, len(s.epsilon))}
		for _, t := range s.transitions {
			ns.transitions = append(ns.transitions, transition{class: t.class, to: t.to + offset})
		}
		for to := range s.epsilon {
			ns.epsilon[to+offset] = true
		}
		n.states = append(n.states, ns)
	}
	return other.start + offset, other.accept + offset
}

// Concat builds the NFA matching a immediately followed by b.
func Concat(a, b *NFA) *NFA {
	result := a.Clone()
	bStart, bAccept := result.merge(b)
	result.addEpsilon(result.accept, bStart)
	result.accept = bAccept
	return result
}

// Union builds the NFA matching either a or b.
func Union(a, b *NFA) *NFA {
	result := newEmpty()
	aStart, aAccept := result.merge(a)
	bStart, bAccept := result.merge(b)
	result.addEpsilon(result.start, aStart)
	result.addEpsilon(result.start, bStart)
	result.addEpsilon(aAccept, result.accept)
	result.addEpsilon(bAccept, result.accept)
	return result
}

// Kleene builds the NFA matching zero or more repetitions of a (the "*"
// metacharacter).
func Kleene(a *NFA) *NFA {
	result := newEmpty()
	aStart, aAccept := result.merge(a)
	result.addEpsilon(result.start, aStart)
	result.addEpsilon(aAccept, result.accept)
	result.addEpsilon(result.start, result.accept)
	result.addEpsilon(aAccept, aStart)
	return result
}

// optionalCopy builds the NFA matching zero or one repetitions of a (the
// "?" building block Exponent uses internally for the {min,max} form).
func optionalCopy(a *NFA) *NFA {
	result := newEmpty()
	aStart, aAccept := result.merge(a)
	result.addEpsilon(result.start, aStart)
	result.addEpsilon(aAccept, result.accept)
	result.addEpsilon(result.start, result.accept)
	return result
}

// Exponent builds the NFA matching between min and max repetitions of a.
// max == nil means unbounded, giving "*" (min 0) and "+" (min 1); the
// regex grammar's postfix production never spells an unbounded repeat any
// other way, but the primitive itself places no restriction on min. A
// non-nil max gives the closed forms "{n}" (min == *max) and "{n,m}".
func Exponent(a *NFA, min int, max *int) *NFA {
	if max == nil {
		if min == 0 {
			return Kleene(a)
		}
		result := a.Clone()
		for i := 1; i < min; i++ {
			result = Concat(result, a)
		}
		return Concat(result, Kleene(a))
	}

	result := emptyMatch()
	for i := 0; i < min; i++ {
		result = Concat(result, a)
	}
	for i := min; i < *max; i++ {
		result = Concat(result, optionalCopy(a))
	}
	return result
}

// Sim is a live simulation of an NFA over a stream of runes fed one at a
// time. Sim holds its own current-state set, so many Sims can drive the
// same read-only NFA template concurrently.
type Sim struct {
	nfa     *NFA
	current map[State]bool
}

// Start begins a new simulation at the NFA's start state (closed over
// epsilon transitions).
func (n *NFA) Start() *Sim {
	s := &Sim{nfa: n, current: map[State]bool{n.start: true}}
	s.current = epsilonClosure(n, s.current)
	return s
}

// Feed advances the simulation by one character, moving every live state
// across any transition whose class contains r, then closing the result
// over epsilon transitions. Once no states remain live, IsDeadEnd reports
// true and further Feed calls are no-ops.
func (s *Sim) Feed(r rune) {
	if len(s.current) == 0 {
		return
	}
	next := make(map[State]bool)
	for st := range s.current {
		for _, t := range s.nfa.states[st].transitions {
			if t.class.Contains(r) {
				next[t.to] = true
			}
		}
	}
	s.current = epsilonClosure(s.nfa, next)
}

// IsAccepting reports whether the simulation's current state set includes
// the NFA's accept state.
func (s *Sim) IsAccepting() bool {
	return s.current[s.nfa.accept]
}

// IsDeadEnd reports whether the simulation has no live states left, i.e.
// no input could ever make it accept again. This is this package's
// DeadState signal; it never needs to be surfaced as a distinct error type
// because IsDeadEnd already gives callers everything they need to act on
// it.
func (s *Sim) IsDeadEnd() bool {
	return len(s.current) == 0
}

// epsilonClosure computes the set of all states reachable from states by
// following zero or more epsilon transitions.
func epsilonClosure(n *NFA, states map[State]bool) map[State]bool {
	closure := make(map[State]bool, len(states))
	stack := make([]State, 0, len(states))
	for st := range states {
		closure[st] = true
		stack = append(stack, st)
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for to := range n.states[cur].epsilon {
			if !closure[to] {
				closure[to] = true
				stack = append(stack, to)
			}
		}
	}
	return closure
}
