package kanren

// Stream is a pull-based, resumable producer of solutions. Each Next call
// either yields (the Store currently reflects one solution) or signals
// exhaustion — and exhaustion implies the Store has already been restored
// to the state it was in when the Stream was created. Close declares that
// the consumer will not pull further; it must restore the Store to its
// creation-time state and is idempotent.
//
// Implementations hold whatever state they need to resume a suspended
// search between Next calls (an index, a nested sub-Stream, a mark) —
// there is no coroutine or goroutine underneath; Next is just a state
// machine transition.
type Stream interface {
	// Next attempts to find the next solution. It returns true if one was
	// found (Yielded), false if the stream is exhausted (Done).
	Next() bool

	// Close ends the stream early, restoring the Store to its
	// creation-time state. Calling Close more than once, or after
	// exhaustion, is a no-op.
	Close()
}

// Goal constructs a Stream against the given Store. Goals are plain Go
// functions, so passing one to And/Or already satisfies the "deferred
// construction" requirement for later conjuncts/disjuncts: the function
// body — and anything it allocates, such as fresh variables — only runs
// when the combinator actually invokes it, by which point earlier goals
// may have already bound things it depends on.
type Goal func(st *Store) Stream

// doneStream is an already-exhausted Stream. It never binds anything, so
// Close has nothing to restore.
type doneStream struct{}

func (doneStream) Next() bool { return false }
func (doneStream) Close()     {}

// onceStream yields exactly once without binding anything.
type onceStream struct {
	yielded bool
}

func (o *onceStream) Next() bool {
	if o.yielded {
		return false
	}
	o.yielded = true
	return true
}

func (o *onceStream) Close() {}

// Failure is a Goal with no solutions.
var Failure Goal = func(st *Store) Stream { return doneStream{} }

// Success is a Goal that yields once, unconditionally, without binding
// anything.
var Success Goal = func(st *Store) Stream { return &onceStream{} }

// unifyStream realizes Eq(a, b): a single-solution stream that unifies on
// the first Next, then rolls back on the second Next or on Close.
type unifyStream struct {
	st    *Store
	a, b  Term
	mark  int
	state unifyState
}

type unifyState int

const (
	unifyNotStarted unifyState = iota
	unifyYielded
	unifyDone
)

func (u *unifyStream) Next() bool {
	switch u.state {
	case unifyNotStarted:
		u.mark = u.st.Mark()
		if Unify(u.a, u.b, u.st) {
			u.state = unifyYielded
			return true
		}
		u.st.Rollback(u.mark)
		u.state = unifyDone
		return false
	case unifyYielded:
		u.st.Rollback(u.mark)
		u.state = unifyDone
		return false
	default:
		return false
	}
}

func (u *unifyStream) Close() {
	if u.state == unifyYielded {
		u.st.Rollback(u.mark)
	}
	u.state = unifyDone
}

// Eq constrains two terms to be equal. This is the fundamental goal in the
// engine: most built-in predicates bind their result through Eq, while the
// enumerating ones (Member, Between, and Append's split mode) call Unify
// from their own Streams.
func Eq(a, b Term) Goal {
	return func(st *Store) Stream {
		return &unifyStream{st: st, a: a, b: b}
	}
}
