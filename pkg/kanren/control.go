package kanren

// NotUnifiable succeeds iff a and b do not unify. It probes by attempting
// the unification against a throwaway mark and immediately rolling back
// regardless of outcome, so it never leaves a binding behind — the result
// is a yes/no fact about the current store, not a commitment to either
// term's shape. This is the engine's only negation-flavored built-in;
// there is no general negation-as-failure operator over arbitrary goals.
func NotUnifiable(a, b Term) Goal {
	return func(st *Store) Stream {
		mark := st.Mark()
		ok := Unify(a, b, st)
		st.Rollback(mark)
		if ok {
			return Failure(st)
		}
		return Success(st)
	}
}

// Different is an alias for NotUnifiable under the name used by the
// predicate library this engine's standard library is modeled on.
func Different(a, b Term) Goal {
	return NotUnifiable(a, b)
}

// snapshotTerm deep-copies a walked term into one built from fresh Seqs
// (Atoms are immutable and shared as-is), detaching it from st: a Var that's still unbound becomes
// a fresh Var of its own (so two collected solutions never alias each
// other's open variables), and anything bound is copied down to its
// leaves. FindAll needs this because the terms it collects must survive
// every later rollback the search performs after recording them.
func snapshotTerm(t Term, st *Store) Term {
	switch x := st.Walk(t).(type) {
	case *Var:
		return Fresh(x.Name())
	case *Atom:
		return x
	case *Seq:
		elems := make([]Term, x.Len())
		for i, e := range x.Elems() {
			elems[i] = snapshotTerm(e, st)
		}
		return NewSeq(elems...)
	default:
		return x
	}
}

// FindAll relates results to the Seq of every value template takes across
// every solution of g, in order, collected eagerly: unlike every other
// goal in this package, FindAll fully exhausts g's search before
// yielding, since the result it produces is itself a single term that
// depends on the complete solution set. It always succeeds exactly once,
// binding results to an empty Seq if g has no solutions.
func FindAll(template Term, g Goal, results Term) Goal {
	return func(st *Store) Stream {
		var collected []Term
		s := g(st)
		for s.Next() {
			collected = append(collected, snapshotTerm(template, st))
		}
		s.Close()
		return Eq(results, NewSeq(collected...))(st)
	}
}
