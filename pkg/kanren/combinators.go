package kanren

// And forms the Cartesian product of goals in left-to-right order: for
// each solution of goals[0], it enumerates every solution of And of the
// rest, backtracking into goals[0] once those are exhausted. With zero
// goals it is Success; with one, it is that goal unchanged.
func And(goals ...Goal) Goal {
	switch len(goals) {
	case 0:
		return Success
	case 1:
		return goals[0]
	}
	rest := And(goals[1:]...)
	first := goals[0]
	return func(st *Store) Stream {
		return &andStream{st: st, g1: first, g2: rest}
	}
}

// andPhase tracks where an andStream is in its depth-first walk: whether
// it needs to pull g1 for its next solution, has one and needs to pull g2
// against it, or is done.
type andPhase int

const (
	andNeedG1 andPhase = iota
	andNeedG2
	andDone
)

// andStream is a binary conjunction. An N-ary And folds into nested
// andStreams, so closing the outermost one recursively closes the
// innermost live sub-stream first, exactly as the combinator contract
// requires.
type andStream struct {
	st     *Store
	g1, g2 Goal
	s1, s2 Stream
	phase  andPhase
}

func (a *andStream) Next() bool {
	for {
		switch a.phase {
		case andNeedG1:
			if a.s1 == nil {
				a.s1 = a.g1(a.st)
			}
			if !a.s1.Next() {
				// g1's own Next already restored its bindings on exhaustion.
				a.phase = andDone
				return false
			}
			a.s2 = a.g2(a.st)
			a.phase = andNeedG2
		case andNeedG2:
			if a.s2.Next() {
				return true
			}
			// s2 exhausted and already restored back to right after g1's
			// last yield; go ask g1 for its next solution.
			a.phase = andNeedG1
		case andDone:
			return false
		}
	}
}

func (a *andStream) Close() {
	switch a.phase {
	case andNeedG2:
		a.s2.Close()
		a.s1.Close()
	case andNeedG1:
		if a.s1 != nil {
			a.s1.Close()
		}
	}
	a.phase = andDone
}

// Or yields every solution of goals[0], then every solution of goals[1],
// and so on. Each goal is constructed only when control reaches it; with
// zero goals Or is Failure.
func Or(goals ...Goal) Goal {
	if len(goals) == 0 {
		return Failure
	}
	return func(st *Store) Stream {
		return &orStream{st: st, goals: goals}
	}
}

type orStream struct {
	st    *Store
	goals []Goal
	idx   int
	cur   Stream
}

func (o *orStream) Next() bool {
	for {
		if o.cur == nil {
			if o.idx >= len(o.goals) {
				return false
			}
			o.cur = o.goals[o.idx](o.st)
			o.idx++
		}
		if o.cur.Next() {
			return true
		}
		// cur's own Next already restored the store to where it was when
		// this branch was constructed, which is the shared baseline every
		// branch starts from.
		o.cur = nil
	}
}

func (o *orStream) Close() {
	if o.cur != nil {
		o.cur.Close()
	}
	o.idx = len(o.goals)
	o.cur = nil
}

// Once truncates g's stream to at most its first solution. Unlike some
// Prolog "once"/cut implementations that deliberately leave the winning
// bindings in place, Once here still restores the store on Close like any
// other Stream — committing to a solution is a search-control decision,
// not a license to break the store-restoration guarantee.
func Once(g Goal) Goal {
	return func(st *Store) Stream {
		return &onceWrapStream{inner: g(st)}
	}
}

type onceWrapStream struct {
	inner   Stream
	yielded bool
	done    bool
}

func (o *onceWrapStream) Next() bool {
	if o.done {
		return false
	}
	if o.yielded {
		o.inner.Close()
		o.done = true
		return false
	}
	if o.inner.Next() {
		o.yielded = true
		return true
	}
	o.done = true
	return false
}

func (o *onceWrapStream) Close() {
	if !o.done {
		o.inner.Close()
		o.done = true
	}
}
