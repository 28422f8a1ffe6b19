package kanren

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOneYieldsFirstSolution(t *testing.T) {
	x := Fresh("x")
	snap, ok, err := RunOne(Or(Eq(x, A(1)), Eq(x, A(2))), Bind("x", x))
	require.NoError(t, err)
	require.True(t, ok)
	v, present := snap.Get("x")
	require.True(t, present)
	assert.Equal(t, 1, v)
}

func TestRunOneOnFailureReportsNoSolution(t *testing.T) {
	x := Fresh("x")
	_, ok, err := RunOne(Failure, Bind("x", x))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRunAllCollectsEverySolutionInOrder(t *testing.T) {
	x := Fresh("x")
	snaps, err := RunAll(Or(Eq(x, A(1)), Eq(x, A(2)), Eq(x, A(3))), Bind("x", x))
	require.NoError(t, err)
	require.Len(t, snaps, 3)

	var got []any
	for _, s := range snaps {
		v, _ := s.Get("x")
		got = append(got, v)
	}
	assert.Equal(t, []any{1, 2, 3}, got)
}

func TestCursorCloseIsIdempotentAndRestoresStore(t *testing.T) {
	d := NewDriver()
	x := Fresh("x")
	c := d.Run(Or(Eq(x, A(1)), Eq(x, A(2))), Bind("x", x))

	_, ok, err := c.Next()
	require.NoError(t, err)
	require.True(t, ok)

	c.Close()
	c.Close() // must not panic or double-restore
	assert.False(t, c.store.IsBound(x), "Close rolls back the solution's binding")

	_, ok, err = c.Next()
	require.NoError(t, err)
	assert.False(t, ok, "a closed cursor yields nothing further")
}

func TestSnapshotReifiesNestedSeq(t *testing.T) {
	xs := Fresh("xs")
	snap, ok, err := RunOne(Eq(xs, L(1, L(2, 3), 4)), Bind("xs", xs))
	require.NoError(t, err)
	require.True(t, ok)

	got, _ := snap.Get("xs")
	assert.Equal(t, []any{1, []any{2, 3}, 4}, got)
}

func TestSnapshotReportsUnboundVarAsSentinel(t *testing.T) {
	x := Fresh("x")
	snap, ok, err := RunOne(Success, Bind("x", x))
	require.NoError(t, err)
	require.True(t, ok)

	got, _ := snap.Get("x")
	assert.Equal(t, Unbound{Name: "x"}, got)
}

func TestQueryErrorClosesStreamAndRestoresStore(t *testing.T) {
	d := NewDriver()
	x, z := Fresh("x"), Fresh("z")
	c := d.Run(And(Eq(x, A(1)), Plus(A("nope"), A(3), z)), Bind("x", x))

	_, ok, err := c.Next()
	assert.False(t, ok)
	require.Error(t, err)

	var qerr *QueryError
	require.ErrorAs(t, err, &qerr)
	assert.False(t, c.store.IsBound(x), "the error unwinds through And, closing it and restoring every binding made so far")
}

func TestWithDebugChecksPassesOnAWellBehavedQuery(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	d := NewDriver(WithLogger(logger), WithDebugChecks())

	x := Fresh("x")
	snap, ok, err := d.RunOne(Eq(x, A(1)), Bind("x", x))
	require.NoError(t, err)
	require.True(t, ok)
	v, _ := snap.Get("x")
	assert.Equal(t, 1, v)
}
