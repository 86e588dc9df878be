// Copyright © 2024 The Sonnet authors

package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThunkMemoizes(t *testing.T) {
	calls := 0
	th := NewThunk(func() (*Value, error) {
		calls++
		return Number(42), nil
	})
	assert.False(t, th.Computed())

	v, err := th.Force()
	require.NoError(t, err)
	assert.Equal(t, float64(42), v.Num)
	assert.True(t, th.Computed())

	v2, err := th.Force()
	require.NoError(t, err)
	assert.Same(t, v, v2)
	assert.Equal(t, 1, calls, "compute must run exactly once")
}

func TestThunkErrorDoesNotCache(t *testing.T) {
	calls := 0
	th := NewThunk(func() (*Value, error) {
		calls++
		if calls == 1 {
			return nil, Errorf("transient failure")
		}
		return Bool(true), nil
	})

	_, err := th.Force()
	require.Error(t, err)
	assert.False(t, th.Computed(), "failure leaves the thunk pending")

	v, err := th.Force()
	require.NoError(t, err)
	assert.True(t, v.Bool)
	assert.Equal(t, 2, calls)
}

func TestThunkSelfReference(t *testing.T) {
	var th *Thunk
	th = NewThunk(func() (*Value, error) {
		return th.Force()
	})
	_, err := th.Force()
	require.Error(t, err)
	assert.Equal(t, CondRecursion, AsError(err).Condition)

	// The recursion failure must not poison the thunk permanently.
	assert.False(t, th.Computed())
}

func TestResolvedThunk(t *testing.T) {
	v := String("done")
	th := ResolvedThunk(v)
	assert.True(t, th.Computed())
	got, err := th.Force()
	require.NoError(t, err)
	assert.Same(t, v, got)
}
