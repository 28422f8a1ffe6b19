package kanren

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Binding names a query variable for snapshot reporting. Bindings are
// supplied as an ordered slice, not a map, so that Snapshot preserves the
// order the caller asked for.
type Binding struct {
	Name string
	Var  *Var
}

// Bind is shorthand for constructing a Binding.
func Bind(name string, v *Var) Binding {
	return Binding{Name: name, Var: v}
}

// Unbound is the sentinel snapshot value for a query variable that is
// still unbound at the moment of the snapshot.
type Unbound struct {
	Name string
}

func (u Unbound) String() string {
	if u.Name != "" {
		return "?" + u.Name
	}
	return "?"
}

// Snapshot is an immutable, order-preserving mapping from query name to
// the dereferenced value of that query's variable at one yielded solution.
// Values are one of: a host atomic value (whatever was passed to A), a
// nested []any mirroring a Seq, or an Unbound sentinel.
type Snapshot struct {
	names  []string
	values map[string]any
}

// Get returns the value bound to name, and whether name was present.
func (s Snapshot) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Names returns the query names in the order they were given to Run.
func (s Snapshot) Names() []string { return s.names }

func (s Snapshot) String() string {
	out := "{"
	for i, n := range s.names {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s:%v", n, s.values[n])
	}
	return out + "}"
}

// reify walks t fully and converts it into the plain-value shape a
// Snapshot exposes: Atom values pass through as-is, Seq becomes []any,
// and an unbound Var becomes an Unbound sentinel.
func reify(t Term, st *Store) any {
	switch x := st.Walk(t).(type) {
	case *Atom:
		return x.Value()
	case *Seq:
		out := make([]any, x.Len())
		for i, e := range x.Elems() {
			out[i] = reify(e, st)
		}
		return out
	case *Var:
		return Unbound{Name: x.Name()}
	default:
		return nil
	}
}

// Driver runs queries against fresh, per-query Stores. A single Driver
// value may run many queries over its lifetime, but — per the engine's
// reentrancy contract — never two at once against the same Store; Run
// always allocates a new Store, so concurrent calls on one Driver are
// safe, just never share state.
type Driver struct {
	logger      *slog.Logger
	debugChecks bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger overrides the structured logger used for per-query tracing.
// The default Driver logs to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithDebugChecks enables a trail-balance check: after a Stream is closed or exhausted,
// the driver verifies the trail length matches what it was when the
// Stream was created, catching host predicates that bind without
// recording a matching rollback path. This has a per-pull overhead, so it
// is opt-in rather than always-on.
func WithDebugChecks() Option {
	return func(d *Driver) { d.debugChecks = true }
}

// NewDriver constructs a Driver with the given options applied.
func NewDriver(opts ...Option) *Driver {
	d := &Driver{logger: slog.Default()}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Cursor is a single active query: a Store, the Stream searching it, and
// the Bindings to project into a Snapshot on each yield. Per the driver
// contract, exactly one Cursor is ever live per query; Cursor is not safe
// to share across goroutines.
type Cursor struct {
	driver   *Driver
	store    *Store
	stream   Stream
	bindings []Binding
	queryID  uuid.UUID
	done     bool
}

// Run begins a query: it builds a fresh Store and returns a Cursor the
// caller pulls solutions from via Next. g is first evaluated against the
// Store on the first Next, so a QueryError raised while g sets up its
// search is returned from Next like one raised mid-search. Exactly one
// query scope is active per Cursor.
func (d *Driver) Run(g Goal, bindings ...Binding) *Cursor {
	st := NewStore()
	id := uuid.New()
	d.logger.Debug("query start", slog.String("query_id", id.String()))

	// A one-branch Or calls g only when it is first pulled.
	stream := Or(g)(st)
	if d.debugChecks {
		stream = newCheckedStream(st, stream, d.logger, id)
	}

	return &Cursor{driver: d, store: st, stream: stream, bindings: bindings, queryID: id}
}

// Next pulls the next solution, recovering a fatal *QueryError raised by
// a built-in predicate, closing the stream (restoring the store) before
// returning it. On ordinary exhaustion it returns (Snapshot{}, false, nil)
// and the store is already empty.
func (c *Cursor) Next() (snap Snapshot, ok bool, err error) {
	if c.done {
		return Snapshot{}, false, nil
	}

	defer func() {
		if r := recover(); r != nil {
			qerr, isQueryErr := r.(*QueryError)
			if !isQueryErr {
				panic(r) // not ours to handle
			}
			c.stream.Close()
			c.done = true
			c.driver.logger.Debug("query error", slog.String("query_id", c.queryID.String()), slog.String("error", qerr.Error()))
			snap, ok, err = Snapshot{}, false, qerr
		}
	}()

	if !c.stream.Next() {
		c.done = true
		c.driver.logger.Debug("query exhausted", slog.String("query_id", c.queryID.String()))
		return Snapshot{}, false, nil
	}

	names := make([]string, len(c.bindings))
	values := make(map[string]any, len(c.bindings))
	for i, b := range c.bindings {
		names[i] = b.Name
		values[b.Name] = reify(b.Var, c.store)
	}
	return Snapshot{names: names, values: values}, true, nil
}

// Close ends the query early. It is idempotent: calling it after
// exhaustion, a QueryError, or a prior Close does nothing.
func (c *Cursor) Close() {
	if c.done {
		return
	}
	c.stream.Close()
	c.done = true
	c.driver.logger.Debug("query closed", slog.String("query_id", c.queryID.String()))
}

// RunOne runs g and returns its first solution, if any, closing the query
// afterward either way so the store is always restored.
func (d *Driver) RunOne(g Goal, bindings ...Binding) (Snapshot, bool, error) {
	c := d.Run(g, bindings...)
	snap, ok, err := c.Next()
	c.Close()
	return snap, ok, err
}

// RunAll runs g to exhaustion and materializes every solution in order.
func (d *Driver) RunAll(g Goal, bindings ...Binding) ([]Snapshot, error) {
	c := d.Run(g, bindings...)
	var out []Snapshot
	for {
		snap, ok, err := c.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, snap)
	}
}

// defaultDriver backs the package-level Run/RunOne/RunAll convenience
// functions, for callers that don't need logging/debug-check overrides.
var defaultDriver = NewDriver()

// Run is defaultDriver.Run.
func Run(g Goal, bindings ...Binding) *Cursor { return defaultDriver.Run(g, bindings...) }

// RunOne is defaultDriver.RunOne.
func RunOne(g Goal, bindings ...Binding) (Snapshot, bool, error) {
	return defaultDriver.RunOne(g, bindings...)
}

// RunAll is defaultDriver.RunAll.
func RunAll(g Goal, bindings ...Binding) ([]Snapshot, error) {
	return defaultDriver.RunAll(g, bindings...)
}

// checkedStream wraps a Stream with the trail-balance verification that
// WithDebugChecks enables. It never changes search behavior, only panics
// with ErrContractViolation if a host predicate leaves the trail longer
// than it found it.
type checkedStream struct {
	st         *Store
	inner      Stream
	createMark int
	logger     *slog.Logger
	queryID    uuid.UUID
	closed     bool
}

func newCheckedStream(st *Store, inner Stream, logger *slog.Logger, id uuid.UUID) *checkedStream {
	return &checkedStream{st: st, inner: inner, createMark: st.Mark(), logger: logger, queryID: id}
}

func (c *checkedStream) Next() bool {
	yielded := c.inner.Next()
	if !yielded {
		c.verify("exhaustion")
	}
	return yielded
}

func (c *checkedStream) Close() {
	if c.closed {
		return
	}
	c.inner.Close()
	c.closed = true
	c.verify("close")
}

func (c *checkedStream) verify(cause string) {
	if c.st.Mark() != c.createMark {
		c.logger.Error("stream contract violation",
			slog.String("query_id", c.queryID.String()),
			slog.String("cause", cause),
			slog.Int("trail_length", c.st.Mark()),
			slog.Int("expected", c.createMark),
		)
		panic(fmt.Errorf("%w: trail length %d after %s, expected %d", ErrContractViolation, c.st.Mark(), cause, c.createMark))
	}
}
