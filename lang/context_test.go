// Copyright © 2024 The Sonnet authors

package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextLookup(t *testing.T) {
	root := NewContext(StandardRuntime())
	outer := root.ExtendOne("x", ResolvedThunk(Number(1)))
	inner := outer.Extend(map[string]*Thunk{
		"x": ResolvedThunk(Number(2)),
		"y": ResolvedThunk(Number(3)),
	})

	th, ok := inner.Binding("x")
	require.True(t, ok)
	v, err := th.Force()
	require.NoError(t, err)
	assert.Equal(t, float64(2), v.Num, "innermost binding wins")

	th, ok = outer.Binding("x")
	require.True(t, ok)
	v, err = th.Force()
	require.NoError(t, err)
	assert.Equal(t, float64(1), v.Num, "outer frame is unaffected")

	_, ok = outer.Binding("y")
	assert.False(t, ok)

	_, ok = inner.Binding("z")
	assert.False(t, ok)
}

func TestContextSharesRuntime(t *testing.T) {
	rt := StandardRuntime()
	root := NewContext(rt)
	child := root.ExtendOne("x", ResolvedThunk(Null()))
	assert.Same(t, rt, child.Runtime())
	assert.Equal(t, 1, child.depth())
}
