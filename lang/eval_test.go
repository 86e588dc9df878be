// Copyright © 2024 The Sonnet authors

package lang

import (
	"testing"

	"github.com/sonnetlang/sonnet/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEval(t *testing.T, expr ast.Expr) *Value {
	t.Helper()
	v, err := Evaluate(NewContext(StandardRuntime()), expr)
	require.NoError(t, err)
	return v
}

func TestEvalLiterals(t *testing.T) {
	assert.Equal(t, VNull, testEval(t, ast.Null()).Type)
	assert.True(t, testEval(t, ast.Bool(true)).Bool)
	assert.Equal(t, "s", testEval(t, ast.Str("s")).Str)
	assert.Equal(t, 1.5, testEval(t, ast.Num(1.5)).Num)
}

func TestEvalUnboundVariable(t *testing.T) {
	_, err := Evaluate(NewContext(StandardRuntime()), ast.Ident("nope"))
	require.Error(t, err)
	assert.Equal(t, CondUnboundVariable, AsError(err).Condition)
}

func TestEvalLocalRecursiveBindings(t *testing.T) {
	// local fact = function(n) if n == 0 then 1 else n * fact(n - 1); fact(5)
	factBody := &ast.Cond{
		Cond: &ast.Binary{Op: ast.OpEq, Left: ast.Ident("n"), Right: ast.Num(0)},
		Then: ast.Num(1),
		Else: &ast.Binary{
			Op:   ast.OpMul,
			Left: ast.Ident("n"),
			Right: &ast.Apply{
				Target: ast.Ident("fact"),
				Args: ast.PositionalArgs(&ast.Binary{
					Op: ast.OpSub, Left: ast.Ident("n"), Right: ast.Num(1),
				}),
			},
		},
	}
	prog := &ast.Local{
		Binds: []ast.LocalBind{{Name: "fact", Value: &ast.Function{
			Name: "fact", Params: ast.RequiredParams("n"), Body: factBody,
		}}},
		Body: &ast.Apply{Target: ast.Ident("fact"), Args: ast.PositionalArgs(ast.Num(5))},
	}
	assert.Equal(t, float64(120), testEval(t, prog).Num)
}

func TestEvalLocalSelfReference(t *testing.T) {
	// local x = x; x
	prog := &ast.Local{
		Binds: []ast.LocalBind{{Name: "x", Value: ast.Ident("x")}},
		Body:  ast.Ident("x"),
	}
	_, err := Evaluate(NewContext(StandardRuntime()), prog)
	require.Error(t, err)
	assert.Equal(t, CondRecursion, AsError(err).Condition)
}

func TestEvalLazyContainers(t *testing.T) {
	// Literal containers never evaluate their members up front.
	bomb := &ast.ErrorExpr{Expr: ast.Str("boom")}

	arr := testEval(t, &ast.ArrayLit{Elements: []ast.Expr{bomb, ast.Num(1)}})
	v, ok, err := arr.Arr.Get(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, float64(1), v.Num)
	_, _, err = arr.Arr.Get(0)
	require.Error(t, err)

	obj := testEval(t, &ast.ObjectLit{Fields: []ast.ObjectField{
		{Name: "bad", Value: bomb},
		{Name: "good", Value: ast.Num(2)},
	}})
	v, ok, err = obj.Obj.Get("good")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, float64(2), v.Num)
	_, _, err = obj.Obj.Get("bad")
	require.Error(t, err)
}

func TestEvalShortCircuit(t *testing.T) {
	bomb := &ast.ErrorExpr{Expr: ast.Str("boom")}

	v := testEval(t, &ast.Binary{Op: ast.OpAnd, Left: ast.Bool(false), Right: bomb})
	assert.False(t, v.Bool)
	v = testEval(t, &ast.Binary{Op: ast.OpOr, Left: ast.Bool(true), Right: bomb})
	assert.True(t, v.Bool)

	_, err := Evaluate(NewContext(StandardRuntime()),
		&ast.Binary{Op: ast.OpAnd, Left: ast.Bool(true), Right: bomb})
	require.Error(t, err)
}

func TestEvalArithmetic(t *testing.T) {
	tests := []struct {
		op   ast.BinaryOp
		l, r float64
		want float64
	}{
		{ast.OpAdd, 2, 3, 5},
		{ast.OpSub, 2, 3, -1},
		{ast.OpMul, 2, 3, 6},
		{ast.OpDiv, 6, 3, 2},
	}
	for _, test := range tests {
		v := testEval(t, &ast.Binary{Op: test.op, Left: ast.Num(test.l), Right: ast.Num(test.r)})
		assert.Equal(t, test.want, v.Num, "op %s", test.op)
	}

	_, err := Evaluate(NewContext(StandardRuntime()),
		&ast.Binary{Op: ast.OpDiv, Left: ast.Num(1), Right: ast.Num(0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")
}

func TestEvalOverflow(t *testing.T) {
	huge := ast.Num(1e308)
	_, err := Evaluate(NewContext(StandardRuntime()),
		&ast.Binary{Op: ast.OpMul, Left: huge, Right: huge})
	require.Error(t, err)
	assert.Equal(t, CondOverflow, AsError(err).Condition)
}

func TestEvalStringConcat(t *testing.T) {
	v := testEval(t, &ast.Binary{Op: ast.OpAdd, Left: ast.Str("n="), Right: ast.Num(3)})
	assert.Equal(t, "n=3", v.Str)
}

func TestEvalArrayConcatStaysLazy(t *testing.T) {
	bomb := &ast.ErrorExpr{Expr: ast.Str("boom")}
	v := testEval(t, &ast.Binary{
		Op:    ast.OpAdd,
		Left:  &ast.ArrayLit{Elements: []ast.Expr{bomb}},
		Right: &ast.ArrayLit{Elements: []ast.Expr{ast.Num(1)}},
	})
	require.Equal(t, VArray, v.Type)
	assert.Equal(t, 2, v.Arr.Len())
	got, ok, err := v.Arr.Get(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, float64(1), got.Num)
}

func TestEvalComparisons(t *testing.T) {
	v := testEval(t, &ast.Binary{Op: ast.OpLt, Left: ast.Num(1), Right: ast.Num(2)})
	assert.True(t, v.Bool)
	v = testEval(t, &ast.Binary{Op: ast.OpGte, Left: ast.Str("b"), Right: ast.Str("a")})
	assert.True(t, v.Bool)

	_, err := Evaluate(NewContext(StandardRuntime()),
		&ast.Binary{Op: ast.OpLt, Left: ast.Num(1), Right: ast.Str("a")})
	require.Error(t, err)
	assert.Equal(t, CondTypeMismatch, AsError(err).Condition)
}

func TestEvalEqualityOperators(t *testing.T) {
	v := testEval(t, &ast.Binary{
		Op:    ast.OpEq,
		Left:  &ast.ArrayLit{Elements: []ast.Expr{ast.Num(1)}},
		Right: &ast.ArrayLit{Elements: []ast.Expr{ast.Num(1)}},
	})
	assert.True(t, v.Bool)

	v = testEval(t, &ast.Binary{Op: ast.OpNeq, Left: ast.Num(1), Right: ast.Num(2)})
	assert.True(t, v.Bool)
}

func TestEvalIndex(t *testing.T) {
	arr := &ast.ArrayLit{Elements: []ast.Expr{ast.Str("a"), ast.Str("b")}}
	v := testEval(t, &ast.Index{Target: arr, Key: ast.Num(1)})
	assert.Equal(t, "b", v.Str)

	_, err := Evaluate(NewContext(StandardRuntime()),
		&ast.Index{Target: arr, Key: ast.Num(5)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of bounds")

	_, err = Evaluate(NewContext(StandardRuntime()),
		&ast.Index{Target: arr, Key: ast.Num(0.5)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "integer")

	obj := &ast.ObjectLit{Fields: []ast.ObjectField{{Name: "k", Value: ast.Num(7)}}}
	v = testEval(t, &ast.Index{Target: obj, Key: ast.Str("k")})
	assert.Equal(t, float64(7), v.Num)

	_, err = Evaluate(NewContext(StandardRuntime()),
		&ast.Index{Target: obj, Key: ast.Str("nope")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field does not exist")

	v = testEval(t, &ast.Index{Target: ast.Str("héllo"), Key: ast.Num(1)})
	assert.Equal(t, "é", v.Str, "string indexing is by rune")
}

func TestEvalCondElseDefaultsNull(t *testing.T) {
	v := testEval(t, &ast.Cond{Cond: ast.Bool(false), Then: ast.Num(1)})
	assert.Equal(t, VNull, v.Type)
}

func TestEvalErrorExpr(t *testing.T) {
	_, err := Evaluate(NewContext(StandardRuntime()),
		&ast.ErrorExpr{Expr: ast.Str("user message")})
	require.Error(t, err)
	assert.Equal(t, "user message", AsError(err).Message)
}

func TestEvalStackOverflow(t *testing.T) {
	// local loop = function() loop(); loop()
	prog := &ast.Local{
		Binds: []ast.LocalBind{{Name: "loop", Value: &ast.Function{
			Name: "loop",
			Body: &ast.Apply{Target: ast.Ident("loop")},
		}}},
		Body: &ast.Apply{Target: ast.Ident("loop")},
	}
	_, err := Evaluate(NewContext(StandardRuntime()), prog)
	require.Error(t, err)
	lerr := AsError(err)
	assert.Equal(t, CondStackOverflow, lerr.Condition)
	require.NotNil(t, lerr.Trace)
	assert.Equal(t, DefaultMaxStackHeight, len(lerr.Trace.Frames))
}

func TestEvalErrorCarriesTrace(t *testing.T) {
	loc := ast.At("test.sonnet", 3, 1)
	fail := &ast.Function{Name: "fail", Body: &ast.ErrorExpr{Expr: ast.Str("inner")}}
	apply := &ast.Apply{Target: ast.Ident("fail")}
	apply.SetLoc(loc)
	prog := &ast.Local{
		Binds: []ast.LocalBind{{Name: "fail", Value: fail}},
		Body:  apply,
	}
	_, err := Evaluate(NewContext(StandardRuntime()), prog)
	require.Error(t, err)
	lerr := AsError(err)
	require.NotNil(t, lerr.Trace)
	require.NotEmpty(t, lerr.Trace.Frames)
	assert.Equal(t, "fail", lerr.Trace.Frames[0].Name)
}
