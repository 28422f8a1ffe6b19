package kanren

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlusForward(t *testing.T) {
	z := Fresh("z")
	snap, ok, err := RunOne(Plus(A(2), A(3), z), Bind("z", z))
	require.NoError(t, err)
	require.True(t, ok)
	v, _ := snap.Get("z")
	assert.Equal(t, 5, v, "plus(2,3,Z) should bind Z to the int 5, not a float")
}

func TestPlusSolvesEitherOperand(t *testing.T) {
	t.Run("solve y given x and z", func(t *testing.T) {
		y := Fresh("y")
		snap, ok, err := RunOne(Plus(A(2), y, A(5)), Bind("y", y))
		require.NoError(t, err)
		require.True(t, ok)
		v, _ := snap.Get("y")
		assert.Equal(t, 3, v)
	})

	t.Run("solve x given y and z", func(t *testing.T) {
		x := Fresh("x")
		snap, ok, err := RunOne(Plus(x, A(3), A(5)), Bind("x", x))
		require.NoError(t, err)
		require.True(t, ok)
		v, _ := snap.Get("x")
		assert.Equal(t, 2, v)
	})
}

func TestPlusModeErrorFailsSilently(t *testing.T) {
	x, y, z := Fresh("x"), Fresh("y"), Fresh("z")
	_, ok, err := RunOne(Plus(x, y, z), Bind("z", z))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPlusTypeErrorAborts(t *testing.T) {
	z := Fresh("z")
	_, _, err := RunOne(Plus(A("nope"), A(3), z), Bind("z", z))
	require.Error(t, err)
	var qerr *QueryError
	assert.ErrorAs(t, err, &qerr)
}

func TestMinus(t *testing.T) {
	z := Fresh("z")
	snap, ok, err := RunOne(Minus(A(10), A(4), z), Bind("z", z))
	require.NoError(t, err)
	require.True(t, ok)
	v, _ := snap.Get("z")
	assert.Equal(t, 6, v)
}

func TestTimesForwardAndInverse(t *testing.T) {
	t.Run("forward", func(t *testing.T) {
		z := Fresh("z")
		snap, _, err := RunOne(Times(A(6), A(7), z), Bind("z", z))
		require.NoError(t, err)
		v, _ := snap.Get("z")
		assert.Equal(t, 42, v)
	})

	t.Run("solve missing factor", func(t *testing.T) {
		y := Fresh("y")
		snap, ok, err := RunOne(Times(A(6), y, A(42)), Bind("y", y))
		require.NoError(t, err)
		require.True(t, ok)
		v, _ := snap.Get("y")
		assert.Equal(t, 7, v)
	})
}

func TestSucc(t *testing.T) {
	y := Fresh("y")
	snap, ok, err := RunOne(Succ(A(9), y), Bind("y", y))
	require.NoError(t, err)
	require.True(t, ok)
	v, _ := snap.Get("y")
	assert.Equal(t, 10, v)
}

func TestBetweenIsLazy(t *testing.T) {
	x := Fresh("x")
	// If Between materialized the whole range eagerly this would be slow
	// enough to notice; RunOne only ever pulls the first candidate.
	snap, ok, err := RunOne(Between(A(1), A(1000000), x), Bind("x", x))
	require.NoError(t, err)
	require.True(t, ok)
	v, _ := snap.Get("x")
	assert.Equal(t, 1, v)
}

func TestBetweenEnumeratesInclusive(t *testing.T) {
	x := Fresh("x")
	snaps, err := RunAll(Between(A(3), A(5), x), Bind("x", x))
	require.NoError(t, err)
	var got []any
	for _, s := range snaps {
		v, _ := s.Get("x")
		got = append(got, v)
	}
	assert.Equal(t, []any{3, 4, 5}, got)
}

func TestComparisons(t *testing.T) {
	t.Run("gt succeeds", func(t *testing.T) {
		_, ok, err := RunOne(Gt(A(5), A(3)))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("gt fails", func(t *testing.T) {
		_, ok, err := RunOne(Gt(A(3), A(5)))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unbound operand is a silent mode failure", func(t *testing.T) {
		x := Fresh("x")
		_, ok, err := RunOne(Gt(x, A(5)))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("non-numeric operand is a fatal type error", func(t *testing.T) {
		_, _, err := RunOne(Gte(A("x"), A(5)))
		require.Error(t, err)
	})
}
