package equal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

type node struct {
	Name string
	Next *node
}

func TestDeepPrimitives(t *testing.T) {
	require.True(t, Deep(1, 1))
	require.False(t, Deep(1, 2))
	require.False(t, Deep(1, int64(1)), "different types never compare equal")
	require.True(t, Deep("a", "a"))
	require.True(t, Deep(nil, nil))
	require.False(t, Deep(nil, 0))
}

func TestDeepNaN(t *testing.T) {
	require.True(t, Deep(math.NaN(), math.NaN()))
	require.True(t, Deep(float32(math.NaN()), float32(math.NaN())))
	require.True(t, Deep(complex(math.NaN(), 1), complex(math.NaN(), 1)))
	require.False(t, Deep(math.NaN(), 1.0))
}

func TestDeepStructurallyIdenticalSequences(t *testing.T) {
	a := []any{1, "two", []int{3, 4}, map[string]int{"five": 5}}
	b := []any{1, "two", []int{3, 4}, map[string]int{"five": 5}}
	require.True(t, Deep(a, b))
	require.True(t, Deps(a, b))

	b[2] = []int{3, 5}
	require.False(t, Deep(a, b))
	require.False(t, Deps(a, b))
}

func TestDeepCyclicSelf(t *testing.T) {
	n := &node{Name: "loop"}
	n.Next = n
	require.True(t, Deep(n, n))

	s := []any{nil}
	s[0] = s
	require.True(t, Deep(s, s))
}

func TestDeepCyclicDistinct(t *testing.T) {
	a := &node{Name: "x"}
	a.Next = a
	b := &node{Name: "x"}
	b.Next = b
	require.True(t, Deep(a, b))

	c := &node{Name: "y"}
	c.Next = c
	require.False(t, Deep(a, c))
}

func TestDepsHoles(t *testing.T) {
	require.True(t, Deps([]any{nil, 1}, []any{nil, 1}))
	require.False(t, Deps([]any{nil, 1}, []any{0, 1}))
	require.False(t, Deps([]any{1}, []any{1, 2}))
	require.True(t, Deps(nil, []any{}))
}

func TestDeepMaps(t *testing.T) {
	require.True(t, Deep(map[string]any{"a": 1}, map[string]any{"a": 1}))
	require.False(t, Deep(map[string]any{"a": 1}, map[string]any{"b": 1}))
	require.True(t, Deep(map[string]int(nil), map[string]int{}))
}

func TestDeepFuncIdentity(t *testing.T) {
	f := func() {}
	require.True(t, Deep(f, f))

	var nilFn func()
	require.False(t, Deep(f, nilFn))
}

func TestDeepPointersComparePointees(t *testing.T) {
	x, y := 3, 3
	require.True(t, Deep(&x, &y))
	y = 4
	require.False(t, Deep(&x, &y))
}
