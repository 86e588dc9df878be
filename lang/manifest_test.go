// Copyright © 2024 The Sonnet authors

package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleObject() *Value {
	return Obj(NewObjectBuilder().
		SetValue("name", String("web")).
		SetValue("replicas", Number(3)).
		SetValue("ready", Bool(true)).
		Set("internal", true, ResolvedThunk(String("hidden"))).
		Build())
}

func TestManifestJSON(t *testing.T) {
	out, err := sampleObject().Manifest(JSONFormat(0))
	require.NoError(t, err)
	assert.Equal(t, `{"name":"web","ready":true,"replicas":3}`, out)

	out, err = sampleObject().Manifest(JSONFormat(2))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"web\",\n  \"ready\": true,\n  \"replicas\": 3\n}", out)
}

func TestManifestToString(t *testing.T) {
	tests := []struct {
		value *Value
		want  string
	}{
		{Null(), "null"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{String("plain text"), "plain text"},
		{Number(1.5), "1.5"},
		{Arr(NewEagerArray([]*Value{Number(1), String("a")})), `[1,"a"]`},
	}
	for _, test := range tests {
		out, err := test.value.Manifest(ToStringFormat())
		require.NoError(t, err)
		assert.Equal(t, test.want, out)
	}
}

func TestManifestString(t *testing.T) {
	out, err := String("verbatim\n").Manifest(StringFormat())
	require.NoError(t, err)
	assert.Equal(t, "verbatim\n", out)

	_, err = Number(1).Manifest(StringFormat())
	require.Error(t, err)
	assert.Equal(t, CondStringNotString, AsError(err).Condition)
}

func TestManifestYAMLStream(t *testing.T) {
	arr := Arr(NewEagerArray([]*Value{Number(1), Number(2)}))
	out, err := arr.Manifest(YAMLStreamFormat(JSONFormat(0)))
	require.NoError(t, err)
	assert.Equal(t, "---\n1\n---\n2\n...", out)

	empty := Arr(NewEagerArray(nil))
	out, err = empty.Manifest(YAMLStreamFormat(JSONFormat(0)))
	require.NoError(t, err)
	assert.Equal(t, "", out, "empty stream has no framing")
}

func TestManifestYAMLStreamNotArray(t *testing.T) {
	_, err := Number(1).Manifest(YAMLStreamFormat(JSONFormat(0)))
	require.Error(t, err)
	assert.Equal(t, CondStreamNotArray, AsError(err).Condition)
}

func TestManifestYAMLStreamValidatesBeforeForcing(t *testing.T) {
	forced := false
	arr := Arr(NewLazyArray([]*Thunk{
		NewThunk(func() (*Value, error) {
			forced = true
			return Number(1), nil
		}),
	}))

	_, err := arr.Manifest(YAMLStreamFormat(YAMLStreamFormat(JSONFormat(0))))
	require.Error(t, err)
	assert.Equal(t, CondStreamRecursed, AsError(err).Condition)
	assert.False(t, forced, "nesting errors must precede element forcing")

	_, err = arr.Manifest(YAMLStreamFormat(StringFormat()))
	require.Error(t, err)
	assert.Equal(t, CondStreamString, AsError(err).Condition)
	assert.False(t, forced)
}

func TestManifestMulti(t *testing.T) {
	docs, err := sampleObject().ManifestMulti(JSONFormat(0))
	require.NoError(t, err)
	require.Len(t, docs, 3, "hidden fields are not manifested")
	assert.Equal(t, FieldDoc{Name: "name", Body: `"web"`}, docs[0])
	assert.Equal(t, FieldDoc{Name: "ready", Body: "true"}, docs[1])
	assert.Equal(t, FieldDoc{Name: "replicas", Body: "3"}, docs[2])

	_, err = Number(1).ManifestMulti(JSONFormat(0))
	require.Error(t, err)
	assert.Equal(t, CondMultiNotObject, AsError(err).Condition)
}

func TestManifestStream(t *testing.T) {
	arr := Arr(NewEagerArray([]*Value{String("a"), Number(2)}))
	docs, err := arr.ManifestStream(JSONFormat(0))
	require.NoError(t, err)
	assert.Equal(t, []string{`"a"`, "2"}, docs)

	_, err = String("x").ManifestStream(JSONFormat(0))
	require.Error(t, err)
	assert.Equal(t, CondStreamNotArray, AsError(err).Condition)
}
