package kanren

import "math"

// numVal is an internal numeric value that remembers whether it originated
// from a Go int, so that arithmetic over two ints produces an int result
// when the result is whole (plus(2, 3, Z) binds Z to 5, not 5.0) while a
// fractional result, or any operand that is a float, gives a float result.
type numVal struct {
	f     float64
	isInt bool
}

func (n numVal) term() *Atom {
	if n.isInt && n.f == math.Trunc(n.f) {
		return A(int(n.f))
	}
	return A(n.f)
}

// asNum extracts a numVal from a walked term, or reports false if t is not
// a numeric Atom.
func asNum(t Term) (numVal, bool) {
	a, ok := t.(*Atom)
	if !ok {
		return numVal{}, false
	}
	switch v := a.Value().(type) {
	case int:
		return numVal{f: float64(v), isInt: true}, true
	case int64:
		return numVal{f: float64(v), isInt: true}, true
	case float64:
		return numVal{f: v, isInt: false}, true
	default:
		return numVal{}, false
	}
}

// asInt extracts a plain int from a walked term, used by predicates (Nth,
// Between) that require an integer rather than any number.
func asInt(t Term) (int, bool) {
	a, ok := t.(*Atom)
	if !ok {
		return 0, false
	}
	switch v := a.Value().(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}

// arithArg walks t and classifies it: a bound number, an unbound Var (mode
// error — caller should fail silently), or anything else (type error).
func arithArg(op string, t Term, st *Store) (numVal, *Var) {
	w := st.Walk(t)
	if v, isVar := w.(*Var); isVar {
		return numVal{}, v
	}
	n, ok := asNum(w)
	if !ok {
		raiseTypeError(op, "expected a number, got %s", w)
	}
	return n, nil
}

// arith3 backs Plus/Minus/Times: it requires at least two of x, y, z to be
// bound numbers and derives the third, unifying the result into the still
// unbound slot. forward computes z from (x, y); solveX recovers x from
// (y, z); solveY recovers y from (x, z) — kept as three separate functions
// rather than one combine/inverse pair because Minus and Times are not
// symmetric, so "solve the left operand" and "solve the right operand"
// are genuinely different formulas. If all three are already bound this
// just checks the relation holds; if fewer than two are bound, it's a
// mode error and the goal fails silently.
func arith3(op string, x, y, z Term, forward, solveX, solveY func(a, b float64) float64) Goal {
	return func(st *Store) Stream {
		xn, xVar := arithArg(op, x, st)
		yn, yVar := arithArg(op, y, st)
		zn, zVar := arithArg(op, z, st)

		bound := 0
		if xVar == nil {
			bound++
		}
		if yVar == nil {
			bound++
		}
		if zVar == nil {
			bound++
		}
		if bound < 2 {
			return doneStream{}
		}

		switch {
		case xVar == nil && yVar == nil:
			want := numVal{f: forward(xn.f, yn.f), isInt: xn.isInt && yn.isInt}
			return Eq(z, want.term())(st)
		case yVar == nil && zVar == nil:
			want := numVal{f: solveX(yn.f, zn.f), isInt: yn.isInt && zn.isInt}
			return Eq(x, want.term())(st)
		default: // xVar == nil && zVar == nil
			want := numVal{f: solveY(xn.f, zn.f), isInt: xn.isInt && zn.isInt}
			return Eq(y, want.term())(st)
		}
	}
}

// Plus relates x + y == z, running forward or in either inverse direction
// depending on which two of the three are bound.
func Plus(x, y, z Term) Goal {
	return arith3("plus", x, y, z,
		func(a, b float64) float64 { return a + b }, // z = x + y
		func(y, z float64) float64 { return z - y }, // x = z - y
		func(x, z float64) float64 { return z - x }, // y = z - x
	)
}

// Minus relates x - y == z.
func Minus(x, y, z Term) Goal {
	return arith3("minus", x, y, z,
		func(a, b float64) float64 { return a - b }, // z = x - y
		func(y, z float64) float64 { return z + y }, // x = z + y
		func(x, z float64) float64 { return x - z }, // y = x - z
	)
}

// Times relates x * y == z.
func Times(x, y, z Term) Goal {
	return arith3("times", x, y, z,
		func(a, b float64) float64 { return a * b }, // z = x * y
		func(y, z float64) float64 { // x = z / y
			if y == 0 {
				raiseTypeError("times", "cannot divide by zero solving for the missing factor")
			}
			return z / y
		},
		func(x, z float64) float64 { // y = z / x
			if x == 0 {
				raiseTypeError("times", "cannot divide by zero solving for the missing factor")
			}
			return z / x
		},
	)
}

// Succ relates x to x+1. It is expressed directly in terms of Plus, adding
// no new arithmetic of its own.
func Succ(x, y Term) Goal {
	return Plus(x, A(1), y)
}

// Between lazily enumerates every integer in [lo, hi] inclusive, unifying
// each against x in turn. Lo and hi must both be bound ints; the
// enumeration only ever materializes one candidate at a time, so
// between(1, 1000000, X) run as RunOne returns immediately rather than
// building a million-element range up front.
func Between(lo, hi, x Term) Goal {
	return func(st *Store) Stream {
		wlo := st.Walk(lo)
		whi := st.Walk(hi)
		loN, ok := asInt(wlo)
		if !ok {
			raiseTypeError("between", "expected an integer lower bound, got %s", wlo)
		}
		hiN, ok := asInt(whi)
		if !ok {
			raiseTypeError("between", "expected an integer upper bound, got %s", whi)
		}
		next := loN
		return &choiceStream{
			st:     st,
			target: x,
			advance: func() (Term, bool) {
				if next > hiN {
					return nil, false
				}
				v := next
				next++
				return A(v), true
			},
		}
	}
}

// cmp3 backs Gt/Lt/Gte/Lte: both operands must already be bound numbers —
// comparison has no useful inverse direction, so an unbound operand is a
// mode error (silent failure), while a non-numeric bound operand is a
// fatal type error.
func cmp3(op string, x, y Term, ok func(a, b float64) bool) Goal {
	return func(st *Store) Stream {
		xn, xVar := arithArg(op, x, st)
		yn, yVar := arithArg(op, y, st)
		if xVar != nil || yVar != nil {
			return doneStream{}
		}
		if ok(xn.f, yn.f) {
			return Success(st)
		}
		return Failure(st)
	}
}

// Gt succeeds if x > y.
func Gt(x, y Term) Goal { return cmp3("gt", x, y, func(a, b float64) bool { return a > b }) }

// Lt succeeds if x < y.
func Lt(x, y Term) Goal { return cmp3("lt", x, y, func(a, b float64) bool { return a < b }) }

// Gte succeeds if x >= y.
func Gte(x, y Term) Goal { return cmp3("gte", x, y, func(a, b float64) bool { return a >= b }) }

// Lte succeeds if x <= y.
func Lte(x, y Term) Goal { return cmp3("lte", x, y, func(a, b float64) bool { return a <= b }) }
