package kanren

// choiceStream is the shared shape behind every built-in that tries a
// sequence of candidate bindings one at a time, backtracking into the next
// candidate on redo: Member walks a fixed slice of elements; Between walks
// an open-ended range of integers. Next asks the source for the next
// candidate via advance, unifies it against target, and rolls back before
// asking for another if the caller backtracks past a yield.
type choiceStream struct {
	st      *Store
	target  Term
	mark    int
	started bool
	advance func() (Term, bool)
}

func (c *choiceStream) Next() bool {
	if !c.started {
		c.mark = c.st.Mark()
		c.started = true
	} else {
		c.st.Rollback(c.mark)
	}
	for {
		cand, ok := c.advance()
		if !ok {
			return false
		}
		if Unify(c.target, cand, c.st) {
			return true
		}
		c.st.Rollback(c.mark)
	}
}

func (c *choiceStream) Close() {
	if c.started {
		c.st.Rollback(c.mark)
	}
	c.started = true
	c.advance = func() (Term, bool) { return nil, false }
}

// Member succeeds once for each element of xs that unifies with x, trying
// elements in order and backtracking through the rest on redo. Xs is
// walked when the Stream runs rather than required to already be a *Seq,
// so it composes with And like every other predicate here: a list bound
// earlier in a conjunction (e.g. And(Eq(listVar, L(1,2,3)), Member(x,
// listVar))) works the same as a literal passed directly.
func Member(x, xs Term) Goal {
	return func(st *Store) Stream {
		wxs := st.Walk(xs)
		sxs, ok := wxs.(*Seq)
		if !ok {
			if _, isVar := wxs.(*Var); isVar {
				return doneStream{}
			}
			raiseTypeError("member", "expected a sequence, got %s", wxs)
		}
		i := 0
		return &choiceStream{
			st:     st,
			target: x,
			advance: func() (Term, bool) {
				if i >= sxs.Len() {
					return nil, false
				}
				e := sxs.Elems()[i]
				i++
				return e, true
			},
		}
	}
}

// Length relates a sequence to its element count. In the L-bound
// direction the length is read off structurally; in the N-bound,
// L-free direction it generates a fresh Seq of N fresh variables and
// unifies it with xs, per pyunify.predicates.length's second mode.
func Length(xs Term, n Term) Goal {
	return func(st *Store) Stream {
		wxs := st.Walk(xs)
		if seq, ok := wxs.(*Seq); ok {
			return Eq(n, A(seq.Len()))(st)
		}
		if _, isVar := wxs.(*Var); !isVar {
			raiseTypeError("length", "expected a sequence, got %s", wxs)
		}

		wn := st.Walk(n)
		count, ok := asInt(wn)
		if !ok {
			if _, isVar := wn.(*Var); isVar {
				return doneStream{} // mode error: neither xs nor n is bound
			}
			raiseTypeError("length", "expected an integer length, got %s", wn)
		}
		if count < 0 {
			return doneStream{}
		}
		elems := make([]Term, count)
		for i := range elems {
			elems[i] = Fresh("")
		}
		return Eq(xs, NewSeq(elems...))(st)
	}
}

// Append relates three sequences such that xs ++ ys == zs. It supports the
// two directions a flat Seq can realize: xs and ys bound (concatenate and
// unify against zs), or zs bound (enumerate every way to split zs into a
// prefix/suffix pair and unify each against xs/ys in turn). Because Seq is
// a flat, closed sequence rather than an open cons list, there is no way
// to represent a partially-known "some elements plus an unbound tail", so
// unlike a classic Prolog append/3 this cannot enumerate infinitely many
// xs/ys pairs when neither list nor its length is otherwise bounded.
func Append(xs, ys, zs Term) Goal {
	return func(st *Store) Stream {
		wxs := st.Walk(xs)
		wys := st.Walk(ys)
		wzs := st.Walk(zs)

		if sxs, ok := wxs.(*Seq); ok {
			if _, stillVar := wys.(*Var); !stillVar {
				if sys, ok2 := wys.(*Seq); ok2 {
					combined := make([]Term, 0, sxs.Len()+sys.Len())
					combined = append(combined, sxs.Elems()...)
					combined = append(combined, sys.Elems()...)
					return Eq(zs, NewSeq(combined...))(st)
				}
			}
		}

		szs, ok := wzs.(*Seq)
		if !ok {
			return doneStream{} // mode error: not enough is bound to proceed
		}

		i := 0
		return &appendSplitStream{st: st, xs: xs, ys: ys, zs: szs, i: i}
	}
}

// appendSplitStream enumerates splits of a bound zs, i from 0 to len(zs),
// unifying xs with zs[:i] and ys with zs[i:] at each step.
type appendSplitStream struct {
	st      *Store
	xs, ys  Term
	zs      *Seq
	i       int
	mark    int
	started bool
}

func (a *appendSplitStream) Next() bool {
	if !a.started {
		a.mark = a.st.Mark()
		a.started = true
	} else {
		a.st.Rollback(a.mark)
	}
	for a.i <= a.zs.Len() {
		prefix := NewSeq(a.zs.Elems()[:a.i]...)
		suffix := NewSeq(a.zs.Elems()[a.i:]...)
		a.i++
		if Unify(a.xs, prefix, a.st) && Unify(a.ys, suffix, a.st) {
			return true
		}
		a.st.Rollback(a.mark)
	}
	return false
}

func (a *appendSplitStream) Close() {
	if a.started {
		a.st.Rollback(a.mark)
	}
	a.started = true
	a.i = a.zs.Len() + 1
}

// Reverse relates xs to its element-reversed Seq. Like Length, this reads
// a bound Seq structurally rather than searching.
func Reverse(xs, ys Term) Goal {
	return func(st *Store) Stream {
		wxs := st.Walk(xs)
		sxs, ok := wxs.(*Seq)
		if !ok {
			if _, isVar := wxs.(*Var); isVar {
				return doneStream{}
			}
			raiseTypeError("reverse", "expected a sequence, got %s", wxs)
		}
		elems := sxs.Elems()
		rev := make([]Term, len(elems))
		for i, e := range elems {
			rev[len(elems)-1-i] = e
		}
		return Eq(ys, NewSeq(rev...))(st)
	}
}

// Last relates x to the final element of xs. Xs must be a bound, non-empty
// Seq.
func Last(xs Term, x Term) Goal {
	return func(st *Store) Stream {
		wxs := st.Walk(xs)
		sxs, ok := wxs.(*Seq)
		if !ok {
			if _, isVar := wxs.(*Var); isVar {
				return doneStream{}
			}
			raiseTypeError("last", "expected a sequence, got %s", wxs)
		}
		if sxs.Len() == 0 {
			return doneStream{}
		}
		return Eq(x, sxs.Elems()[sxs.Len()-1])(st)
	}
}

// Nth relates a zero-based index n and a sequence xs to the element x at
// that position. N must be bound to a non-negative int; xs must be a
// bound Seq. Out-of-range n is a logical failure, not a type error.
func Nth(n Term, xs Term, x Term) Goal {
	return func(st *Store) Stream {
		wn := st.Walk(n)
		wxs := st.Walk(xs)

		idx, ok := asInt(wn)
		if !ok {
			if _, isVar := wn.(*Var); isVar {
				return doneStream{}
			}
			raiseTypeError("nth", "expected an integer index, got %s", wn)
		}
		sxs, ok := wxs.(*Seq)
		if !ok {
			if _, isVar := wxs.(*Var); isVar {
				return doneStream{}
			}
			raiseTypeError("nth", "expected a sequence, got %s", wxs)
		}
		if idx < 0 || idx >= sxs.Len() {
			return doneStream{}
		}
		return Eq(x, sxs.Elems()[idx])(st)
	}
}
