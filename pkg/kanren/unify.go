package kanren

// Unify walks both a and b against st and attempts to make them equal,
// binding variables as needed and appending every binding it makes to
// st's trail. It returns false on the first mismatch; the caller (a
// Stream) is responsible for rolling back to a mark taken before the call,
// since Unify itself does not undo partial bindings on failure.
//
// Binding a variable to another variable never needs an occurs check: the
// target is always an unbound representative, so aliasing cannot create a
// cycle. Binding a variable to a Seq does need one, since the Seq may
// already (transitively) contain that variable.
func Unify(a, b Term, st *Store) bool {
	wa := st.Walk(a)
	wb := st.Walk(b)

	va, aIsVar := wa.(*Var)
	vb, bIsVar := wb.(*Var)

	if aIsVar && bIsVar {
		if va.id == vb.id {
			return true
		}
		st.Bind(va, vb)
		return true
	}

	if aIsVar {
		if seq, ok := wb.(*Seq); ok && occursIn(va, seq, st) {
			return false
		}
		st.Bind(va, wb)
		return true
	}

	if bIsVar {
		if seq, ok := wa.(*Seq); ok && occursIn(vb, seq, st) {
			return false
		}
		st.Bind(vb, wa)
		return true
	}

	switch at := wa.(type) {
	case *Atom:
		bt, ok := wb.(*Atom)
		return ok && at.equal(bt)
	case *Seq:
		bt, ok := wb.(*Seq)
		if !ok || len(at.elems) != len(bt.elems) {
			return false
		}
		for i := range at.elems {
			if !Unify(at.elems[i], bt.elems[i], st) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// occursIn reports whether v appears anywhere inside t, walking as it
// descends. It is only ever invoked when binding a variable to a compound
// term, per the occurs policy described on Unify.
func occursIn(v *Var, t Term, st *Store) bool {
	wt := st.Walk(t)
	switch x := wt.(type) {
	case *Var:
		return x.id == v.id
	case *Seq:
		for _, e := range x.elems {
			if occursIn(v, e, st) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
