// Copyright © 2024 The Sonnet authors

package lang

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJSONScalars(t *testing.T) {
	tests := []struct {
		value *Value
		want  string
	}{
		{Null(), "null"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Number(0), "0"},
		{Number(-3), "-3"},
		{Number(1.25), "1.25"},
		{Number(1e100), "1e+100"},
		{String(""), `""`},
		{String("hello"), `"hello"`},
		{String("tab\tnewline\nquote\""), `"tab\tnewline\nquote\""`},
		{String("control\x01"), `"control\u0001"`},
		{String("sep\u2028and\u2029"), `"sep\u2028and\u2029"`},
	}
	for _, test := range tests {
		out, err := test.value.ToJSON(0)
		require.NoError(t, err)
		assert.Equal(t, test.want, out)
	}
}

func TestToJSONContainers(t *testing.T) {
	arr := Arr(NewEagerArray([]*Value{Number(1), String("x")}))
	out, err := arr.ToJSON(0)
	require.NoError(t, err)
	assert.Equal(t, `[1,"x"]`, out)

	out, err = arr.ToJSON(2)
	require.NoError(t, err)
	assert.Equal(t, "[\n  1,\n  \"x\"\n]", out)

	empty := Arr(NewEagerArray(nil))
	out, err = empty.ToJSON(0)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
	out, err = empty.ToJSON(2)
	require.NoError(t, err)
	assert.Equal(t, "[ ]", out)

	obj := Obj(NewObjectBuilder().Build())
	out, err = obj.ToJSON(0)
	require.NoError(t, err)
	assert.Equal(t, "{}", out)
	out, err = obj.ToJSON(2)
	require.NoError(t, err)
	assert.Equal(t, "{ }", out)
}

func TestToJSONNested(t *testing.T) {
	v := Obj(NewObjectBuilder().
		SetValue("items", Arr(NewEagerArray([]*Value{
			Obj(NewObjectBuilder().SetValue("id", Number(1)).Build()),
		}))).
		Build())

	out, err := v.ToJSON(4)
	require.NoError(t, err)

	// The output must itself be valid JSON.
	var decoded interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, map[string]interface{}{
		"items": []interface{}{map[string]interface{}{"id": float64(1)}},
	}, decoded)
}

func TestToJSONRejectsFunctions(t *testing.T) {
	fn := Fun(Intrinsic("length"))
	_, err := fn.ToJSON(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not manifestable")
}
