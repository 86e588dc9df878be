// Copyright © 2024 The Sonnet authors

package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveEquals(t *testing.T) {
	eq, err := PrimitiveEquals(Number(1), Number(1))
	require.NoError(t, err)
	assert.True(t, eq)

	// Tolerance is machine epsilon, not approximate equality.
	eq, err = PrimitiveEquals(Number(1), Number(1+machineEpsilon))
	require.NoError(t, err)
	assert.True(t, eq)
	eq, err = PrimitiveEquals(Number(1), Number(1.0001))
	require.NoError(t, err)
	assert.False(t, eq)

	eq, err = PrimitiveEquals(String("a"), String("a"))
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = PrimitiveEquals(Null(), Null())
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = PrimitiveEquals(Bool(true), Number(1))
	require.NoError(t, err)
	assert.False(t, eq, "mismatched types compare unequal, not as an error")
}

func TestPrimitiveEqualsRejectsCompositePairs(t *testing.T) {
	arr := Arr(NewEagerArray(nil))
	obj := Obj(NewObjectBuilder().Build())
	fn := Fun(Intrinsic("length"))

	_, err := PrimitiveEquals(arr, arr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got array")

	_, err = PrimitiveEquals(obj, obj)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got object")

	_, err = PrimitiveEquals(fn, fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "equality of functions")
}

func TestPrimitiveEqualsMixedKindsUnequal(t *testing.T) {
	// A composite paired with a primitive is a type mismatch, not an
	// error.  Only same-kind composite pairs are rejected.
	arr := Arr(NewEagerArray(nil))
	obj := Obj(NewObjectBuilder().Build())
	fn := Fun(Intrinsic("length"))

	for _, pair := range [][2]*Value{
		{Number(1), obj},
		{arr, Number(1)},
		{arr, obj},
		{fn, Number(1)},
		{String("f"), fn},
		{fn, arr},
	} {
		eq, err := PrimitiveEquals(pair[0], pair[1])
		require.NoError(t, err)
		assert.False(t, eq)
	}
}

func TestEqualsDeep(t *testing.T) {
	mk := func() *Value {
		return Obj(NewObjectBuilder().
			SetValue("xs", Arr(NewEagerArray([]*Value{Number(1), Number(2)}))).
			SetValue("name", String("n")).
			Build())
	}

	eq, err := Equals(mk(), mk())
	require.NoError(t, err)
	assert.True(t, eq, "equality is structural, not identity")

	other := Obj(NewObjectBuilder().
		SetValue("xs", Arr(NewEagerArray([]*Value{Number(1), Number(3)}))).
		SetValue("name", String("n")).
		Build())
	eq, err = Equals(mk(), other)
	require.NoError(t, err)
	assert.False(t, eq)
}

func TestEqualsHiddenFieldsIgnored(t *testing.T) {
	a := Obj(NewObjectBuilder().
		SetValue("x", Number(1)).
		Set("h", true, ResolvedThunk(Number(10))).
		Build())
	b := Obj(NewObjectBuilder().
		SetValue("x", Number(1)).
		Set("h", true, ResolvedThunk(Number(20))).
		Build())

	eq, err := Equals(a, b)
	require.NoError(t, err)
	assert.True(t, eq, "hidden fields do not participate in equality")
}

func TestEqualsLengthShortCircuit(t *testing.T) {
	forced := false
	long := Arr(NewLazyArray([]*Thunk{
		NewThunk(func() (*Value, error) {
			forced = true
			return Number(1), nil
		}),
		ResolvedThunk(Number(2)),
	}))
	short := Arr(NewEagerArray([]*Value{Number(1)}))

	eq, err := Equals(long, short)
	require.NoError(t, err)
	assert.False(t, eq)
	assert.False(t, forced, "length mismatch must not force elements")
}

func TestEqualsFunctionsError(t *testing.T) {
	fn := Fun(Intrinsic("length"))
	_, err := Equals(fn, fn)
	require.Error(t, err)

	_, err = Equals(fn, Number(1))
	require.Error(t, err, "functions are rejected even against other types")
}
