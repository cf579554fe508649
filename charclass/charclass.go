// Package charclass models the character classes a regex pattern is built
// from: single-rune literals, the wildcard "any character" class, and
// classes whose membership test is delegated to a host regular expression
// engine (bracket expressions such as "[a-z0-9_]" and backslash shorthand
// such as "\d", "\s", "\w").
package charclass

import (
	"fmt"
	"sync"

	"github.com/dlclark/regexp2"
)

// Class decides whether a single rune belongs to it. Implementations are
// immutable after construction so they can be shared freely between NFA
// templates.
type Class interface {
	Contains(r rune) bool
	Equal(other Class) bool
	String() string
}

// Literal matches exactly one specific rune.
type Literal rune

// Contains reports whether r is the rune this Literal represents.
func (l Literal) Contains(r rune) bool { return rune(l) == r }

// Equal reports whether other is a Literal for the same rune.
func (l Literal) Equal(other Class) bool {
	o, ok := other.(Literal)
	return ok && o == l
}

func (l Literal) String() string { return fmt.Sprintf("%q", rune(l)) }

// Any matches every rune except '\n'; it backs the "." metacharacter.
type Any struct{}

// Contains reports true for every rune except newline.
func (Any) Contains(r rune) bool { return r != '\n' }

// Equal reports whether other is also Any.
func (Any) Equal(other Class) bool { _, ok := other.(Any); return ok }

func (Any) String() string { return "." }

// Delegated forwards membership testing to a compiled host regular
// expression fragment. Instances are interned by source text: building two
// Delegated classes from identical source returns the same *Delegated, so
// Equal can compare by pointer identity rather than re-parsing source on
// every comparison.
type Delegated struct {
	source string
	re     *regexp2.Regexp
}

var (
	internMu    sync.Mutex
	internTable = make(map[string]*Delegated)
)

// NewDelegated compiles source — a host-regex fragment matching exactly one
// character, such as "[a-z]" or "\\d" — and interns the result process-wide.
// Repeated calls with identical source return the same *Delegated instance.
func NewDelegated(source string) (*Delegated, error) {
	internMu.Lock()
	defer internMu.Unlock()

	if existing, ok := internTable[source]; ok {
		return existing, nil
	}

	re, err := regexp2.Compile("^(?:"+source+")$", regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("charclass: compiling delegated class %q: %w", source, err)
	}

	d := &Delegated{source: source, re: re}
	internTable[source] = d
	return d, nil
}

// Contains reports whether the host regex matches r as a whole single-rune
// string.
func (d *Delegated) Contains(r rune) bool {
	ok, err := d.re.MatchString(string(r))
	return err == nil && ok
}

// Equal compares by identity: two Delegated values are equal only when they
// are the same interned instance.
func (d *Delegated) Equal(other Class) bool {
	o, ok := other.(*Delegated)
	return ok && o == d
}

func (d *Delegated) String() string { return d.source }
