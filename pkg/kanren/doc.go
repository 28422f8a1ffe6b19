// Package kanren provides a small Prolog-style logic-programming core:
// term unification over logic variables, a trail-based binding store with
// O(k) rollback, and a pull-based solution stream abstraction with AND/OR
// combinators that realize depth-first search with automatic backtracking.
//
// # Design
//
// Unlike copy-on-write substitution engines, kanren mutates a single Store
// per query and undoes bindings by replaying a trail backwards. This trades
// per-bind allocation for O(k) rollback, matching the LIFO structure of
// depth-first search exactly (see Store).
//
// There is no internal concurrency: a Stream is pulled synchronously by its
// consumer, and suspension happens only at the boundary between two Next
// calls. Composing Streams (And, Or) is plain recursive Go, not goroutines
// or channels.
//
// # Example
//
//	d := kanren.NewDriver()
//	x := kanren.Fresh("x")
//	snap, ok, err := d.RunOne(kanren.Eq(x, kanren.A(42)), kanren.Bind("x", x))
//	// err == nil, ok == true, snap.Get("x") == (42, true)
package kanren
