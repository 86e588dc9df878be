// Copyright © 2024 The Sonnet authors

package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// parseYAML round-trips renderer output through a real YAML parser.
func parseYAML(t *testing.T, doc string) interface{} {
	t.Helper()
	var decoded interface{}
	require.NoError(t, yaml.Unmarshal([]byte(doc), &decoded), "output must be valid YAML:\n%s", doc)
	return decoded
}

func TestToYAMLScalars(t *testing.T) {
	tests := []struct {
		value *Value
		want  string
	}{
		{Null(), "null"},
		{Bool(true), "true"},
		{Number(2.5), "2.5"},
		{String("needs: quoting"), `"needs: quoting"`},
		{Arr(NewEagerArray(nil)), "[]"},
		{Obj(NewObjectBuilder().Build()), "{}"},
	}
	for _, test := range tests {
		out, err := test.value.ToYAML(0)
		require.NoError(t, err)
		assert.Equal(t, test.want, out)
	}
}

func TestToYAMLBlockStructure(t *testing.T) {
	v := Obj(NewObjectBuilder().
		SetValue("name", String("web")).
		SetValue("ports", Arr(NewEagerArray([]*Value{Number(80), Number(443)}))).
		Build())

	out, err := v.ToYAML(2)
	require.NoError(t, err)
	assert.Equal(t, "\"name\": \"web\"\n\"ports\":\n  - 80\n  - 443", out)

	decoded := parseYAML(t, out)
	assert.Equal(t, map[string]interface{}{
		"name":  "web",
		"ports": []interface{}{80, 443},
	}, decoded)
}

func TestToYAMLNestedObjects(t *testing.T) {
	v := Arr(NewEagerArray([]*Value{
		Obj(NewObjectBuilder().
			SetValue("id", Number(1)).
			SetValue("tags", Arr(NewEagerArray([]*Value{String("a")}))).
			Build()),
		Number(2),
	}))

	out, err := v.ToYAML(2)
	require.NoError(t, err)
	decoded := parseYAML(t, out)
	assert.Equal(t, []interface{}{
		map[string]interface{}{"id": 1, "tags": []interface{}{"a"}},
		2,
	}, decoded)
}

func TestToYAMLHiddenFieldsExcluded(t *testing.T) {
	v := Obj(NewObjectBuilder().
		SetValue("visible", Number(1)).
		Set("hidden", true, ResolvedThunk(Number(2))).
		Build())

	out, err := v.ToYAML(0)
	require.NoError(t, err)
	decoded := parseYAML(t, out)
	assert.Equal(t, map[string]interface{}{"visible": 1}, decoded)
}
