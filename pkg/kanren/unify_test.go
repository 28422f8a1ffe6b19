package kanren

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifyAtoms(t *testing.T) {
	st := NewStore()

	assert.True(t, Unify(A(1), A(1), st))
	assert.False(t, Unify(A(1), A(2), st))
	assert.False(t, Unify(A(1), A("1"), st), "different host types never unify even with equal formatting")
}

func TestUnifyVars(t *testing.T) {
	t.Run("var with atom binds the var", func(t *testing.T) {
		st := NewStore()
		x := Fresh("x")
		require.True(t, Unify(x, A(42), st))
		assert.Equal(t, A(42), st.Walk(x))
	})

	t.Run("var with var aliases rather than self-binding", func(t *testing.T) {
		st := NewStore()
		x := Fresh("x")
		y := Fresh("y")
		require.True(t, Unify(x, y, st))
		require.True(t, Unify(y, A(9), st))
		assert.Equal(t, A(9), st.Walk(x))
	})

	t.Run("a var unifies with itself trivially", func(t *testing.T) {
		st := NewStore()
		x := Fresh("x")
		assert.True(t, Unify(x, x, st))
		assert.False(t, st.IsBound(x))
	})
}

func TestUnifySeq(t *testing.T) {
	st := NewStore()
	x := Fresh("x")
	y := Fresh("y")

	ok := Unify(L(x, 2, y), L(1, 2, 3), st)
	require.True(t, ok)
	assert.Equal(t, A(1), st.Walk(x))
	assert.Equal(t, A(3), st.Walk(y))

	assert.False(t, Unify(L(1, 2), L(1, 2, 3), st), "different lengths never unify")
}

func TestUnifyOccursCheck(t *testing.T) {
	st := NewStore()
	x := Fresh("x")

	assert.False(t, Unify(x, L(x), st), "a var must not unify with a structure containing itself")
	assert.False(t, st.IsBound(x))
}

func TestUnifyLeavesPartialBindingsOnFailure(t *testing.T) {
	// Unify itself does not roll back; callers are responsible. This test
	// documents that contract directly against the function, separate
	// from the Stream layer that does roll back.
	st := NewStore()
	x := Fresh("x")

	ok := Unify(L(x, 2), L(1, 3), st)
	require.False(t, ok)
	assert.True(t, st.IsBound(x), "x was bound before the second element mismatch was discovered")
}
