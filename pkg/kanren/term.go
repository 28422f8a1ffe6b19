package kanren

import (
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"
)

// Term is any value in the kanren universe: an Atom, a Var, or a Seq.
// All three satisfy this interface; callers type-switch on the concrete
// type when they need to inspect structure.
type Term interface {
	// String returns a human-readable representation.
	String() string

	// IsVar reports whether this term is a logic variable. It does not
	// walk the term against a Store; an already-bound Var still reports
	// true here, since binding is a property of the Store, not the term.
	IsVar() bool
}

// varCounter hands out process-unique Var identities.
var varCounter int64

// Var is a logic variable. Identity is by id, never by name; name exists
// only so Deref/String output and query snapshots are readable.
type Var struct {
	id   int64
	name string
}

// Fresh creates a new logic variable with an optional display name. The
// returned Var is always unbound until a Store binds it.
func Fresh(name string) *Var {
	id := atomic.AddInt64(&varCounter, 1)
	return &Var{id: id, name: name}
}

func (v *Var) String() string {
	if v.name != "" {
		return fmt.Sprintf("_%s%d", v.name, v.id)
	}
	return fmt.Sprintf("_G%d", v.id)
}

// IsVar always returns true for a Var.
func (v *Var) IsVar() bool { return true }

// Equal reports whether two Vars are the same variable (identity by id,
// never by name or by current binding).
func (v *Var) Equal(other *Var) bool {
	return other != nil && v.id == other.id
}

// Name returns the Var's display name, which may be empty.
func (v *Var) Name() string { return v.name }

// Atom wraps an opaque host value: an integer, string, boolean, or any
// other value that supports structural equality.
type Atom struct {
	value any
}

// NewAtom wraps value as an Atom. A is the short alias used throughout the
// standard library and tests.
func NewAtom(value any) *Atom { return &Atom{value: value} }

// A is shorthand for NewAtom.
func A(value any) *Atom { return NewAtom(value) }

// Value returns the underlying host value.
func (a *Atom) Value() any { return a.value }

func (a *Atom) String() string {
	if s, ok := a.value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", a.value)
}

// IsVar always returns false for an Atom.
func (a *Atom) IsVar() bool { return false }

// equal reports structural equality between two atoms. Comparable values
// use ==; everything else falls back to reflect.DeepEqual.
func (a *Atom) equal(other *Atom) bool {
	av, bv := a.value, other.value
	if av == nil || bv == nil {
		return av == nil && bv == nil
	}
	if reflect.TypeOf(av) != reflect.TypeOf(bv) {
		return false
	}
	if reflect.TypeOf(av).Comparable() {
		return av == bv
	}
	return reflect.DeepEqual(av, bv)
}

// Seq is a finite ordered sequence of terms. It is the sole compound type
// in the term model and suffices to encode both lists and tuples.
type Seq struct {
	elems []Term
}

// NewSeq builds a Seq from the given terms.
func NewSeq(elems ...Term) *Seq {
	cp := make([]Term, len(elems))
	copy(cp, elems)
	return &Seq{elems: cp}
}

// L builds a Seq from raw values, wrapping anything that isn't already a
// Term via A. Example: L(1, 2, 3) is the three-element sequence (1 2 3).
func L(values ...any) *Seq {
	terms := make([]Term, len(values))
	for i, v := range values {
		if t, ok := v.(Term); ok {
			terms[i] = t
		} else {
			terms[i] = A(v)
		}
	}
	return NewSeq(terms...)
}

// Elems returns the Seq's elements. The slice is owned by the Seq; callers
// must not mutate it.
func (s *Seq) Elems() []Term { return s.elems }

// Len returns the number of elements in the Seq.
func (s *Seq) Len() int { return len(s.elems) }

// IsVar always returns false for a Seq.
func (s *Seq) IsVar() bool { return false }

func (s *Seq) String() string {
	parts := make([]string, len(s.elems))
	for i, e := range s.elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}
