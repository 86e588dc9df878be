// Copyright © 2024 The Sonnet authors

package lang

import "github.com/sonnetlang/sonnet/ast"

// Evaluate computes the value of expr in the scope described by ctx.
// Evaluation is lazy: array literals, object literals, local bindings, and
// function arguments all produce thunks that run on first use.
func Evaluate(ctx *Context, expr ast.Expr) (*Value, error) {
	switch node := expr.(type) {
	case *ast.LiteralNull:
		return Null(), nil
	case *ast.LiteralBool:
		return Bool(node.Value), nil
	case *ast.LiteralString:
		return String(node.Value), nil
	case *ast.LiteralNumber:
		v, err := NumberChecked(node.Value)
		if err != nil {
			return nil, evalError(ctx, err, node.Loc())
		}
		return v, nil
	case *ast.Var:
		return evalVar(ctx, node)
	case *ast.ArrayLit:
		return evalArrayLit(ctx, node)
	case *ast.ObjectLit:
		return evalObjectLit(ctx, node)
	case *ast.Local:
		return evalLocal(ctx, node)
	case *ast.Function:
		return Fun(Closure(node.Name, ctx, node.Params, node.Body)), nil
	case *ast.Apply:
		return evalApply(ctx, node)
	case *ast.Index:
		return evalIndex(ctx, node)
	case *ast.Unary:
		return evalUnary(ctx, node)
	case *ast.Binary:
		return evalBinary(ctx, node)
	case *ast.Cond:
		return evalCond(ctx, node)
	case *ast.ErrorExpr:
		return evalErrorExpr(ctx, node)
	default:
		panic("unhandled expression node")
	}
}

// evalError attaches the stack trace and failing location to err.
func evalError(ctx *Context, err error, loc *ast.Location) error {
	return ctx.Runtime().Stack.associate(AsError(err), loc)
}

func evalVar(ctx *Context, node *ast.Var) (*Value, error) {
	t, ok := ctx.Binding(node.Name)
	if !ok {
		err := ErrorConditionf(CondUnboundVariable, "unbound variable: %s", node.Name)
		return nil, evalError(ctx, err, node.Loc())
	}
	v, err := t.Force()
	if err != nil {
		return nil, evalError(ctx, err, node.Loc())
	}
	return v, nil
}

func evalArrayLit(ctx *Context, node *ast.ArrayLit) (*Value, error) {
	items := make([]*Thunk, len(node.Elements))
	for i, elem := range node.Elements {
		elem := elem
		items[i] = NewThunk(func() (*Value, error) {
			return Evaluate(ctx, elem)
		})
	}
	return Arr(NewLazyArray(items)), nil
}

func evalObjectLit(ctx *Context, node *ast.ObjectLit) (*Value, error) {
	b := NewObjectBuilder()
	for _, f := range node.Fields {
		expr := f.Value
		b.Set(f.Name, f.Hidden, NewThunk(func() (*Value, error) {
			return Evaluate(ctx, expr)
		}))
	}
	return Obj(b.Build()), nil
}

// evalLocal extends the scope with the bindings and evaluates the body.  The
// binding thunks close over the extended context itself so bindings may
// reference each other recursively; the two-phase initialization is safe
// because no thunk runs before Extend returns.
func evalLocal(ctx *Context, node *ast.Local) (*Value, error) {
	bindings := make(map[string]*Thunk, len(node.Binds))
	var inner *Context
	for _, bind := range node.Binds {
		expr := bind.Value
		bindings[bind.Name] = NewThunk(func() (*Value, error) {
			return Evaluate(inner, expr)
		})
	}
	inner = ctx.Extend(bindings)
	return Evaluate(inner, node.Body)
}

func evalApply(ctx *Context, node *ast.Apply) (*Value, error) {
	fv, err := Evaluate(ctx, node.Target)
	if err != nil {
		return nil, err
	}
	fn, err := fv.AsFunction("function call")
	if err != nil {
		return nil, evalError(ctx, err, node.Loc())
	}
	rt := ctx.Runtime()
	if err := rt.Stack.Push(node.Loc(), fn.DisplayName()); err != nil {
		return nil, err
	}
	var stop func()
	if rt.Profiler != nil && rt.Profiler.IsEnabled() {
		stop = rt.Profiler.Start(fn)
	}
	v, err := fv.Call(ctx, node.Loc(), node.Args, node.TailStrict)
	if stop != nil {
		stop()
	}
	if err != nil {
		aerr := evalError(ctx, err, node.Loc())
		rt.Stack.Pop()
		return nil, aerr
	}
	rt.Stack.Pop()
	return v, nil
}

func evalIndex(ctx *Context, node *ast.Index) (*Value, error) {
	target, err := Evaluate(ctx, node.Target)
	if err != nil {
		return nil, err
	}
	key, err := Evaluate(ctx, node.Key)
	if err != nil {
		return nil, err
	}
	v, err := indexValue(target, key)
	if err != nil {
		return nil, evalError(ctx, err, node.Loc())
	}
	return v, nil
}

func indexValue(target, key *Value) (*Value, error) {
	switch target.Type {
	case VArray:
		i, err := indexInt(key, "array index")
		if err != nil {
			return nil, err
		}
		v, ok, err := target.Arr.Get(i)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, Errorf("array index out of bounds: %d not in [0, %d)", i, target.Arr.Len())
		}
		return v, nil
	case VObject:
		name, err := key.AsString("object index")
		if err != nil {
			return nil, err
		}
		v, ok, err := target.Obj.Get(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, Errorf("field does not exist: %s", name)
		}
		return v, nil
	case VString:
		i, err := indexInt(key, "string index")
		if err != nil {
			return nil, err
		}
		runes := []rune(target.Str)
		if i < 0 || i >= len(runes) {
			return nil, Errorf("string index out of bounds: %d not in [0, %d)", i, len(runes))
		}
		return String(string(runes[i])), nil
	default:
		return nil, TypeMismatchError("index", target.Type, VArray, VObject, VString)
	}
}

func indexInt(key *Value, context string) (int, error) {
	x, err := key.AsNumber(context)
	if err != nil {
		return 0, err
	}
	i := int(x)
	if float64(i) != x {
		return 0, Errorf("%s must be an integer, got %s", context, formatNumber(x))
	}
	return i, nil
}

func evalUnary(ctx *Context, node *ast.Unary) (*Value, error) {
	v, err := Evaluate(ctx, node.Expr)
	if err != nil {
		return nil, err
	}
	switch node.Op {
	case ast.OpNot:
		b, err := v.AsBool("operator !")
		if err != nil {
			return nil, evalError(ctx, err, node.Loc())
		}
		return Bool(!b), nil
	case ast.OpNeg:
		x, err := v.AsNumber("operator -")
		if err != nil {
			return nil, evalError(ctx, err, node.Loc())
		}
		return Number(-x), nil
	default:
		panic("invalid unary operator")
	}
}

func evalBinary(ctx *Context, node *ast.Binary) (*Value, error) {
	// && and || short circuit: the right operand is not evaluated unless
	// needed.
	switch node.Op {
	case ast.OpAnd, ast.OpOr:
		return evalShortCircuit(ctx, node)
	}
	lhs, err := Evaluate(ctx, node.Left)
	if err != nil {
		return nil, err
	}
	rhs, err := Evaluate(ctx, node.Right)
	if err != nil {
		return nil, err
	}
	v, err := binaryOp(node.Op, lhs, rhs)
	if err != nil {
		return nil, evalError(ctx, err, node.Loc())
	}
	return v, nil
}

func evalShortCircuit(ctx *Context, node *ast.Binary) (*Value, error) {
	lhs, err := Evaluate(ctx, node.Left)
	if err != nil {
		return nil, err
	}
	label := "operator " + node.Op.String()
	l, err := lhs.AsBool(label)
	if err != nil {
		return nil, evalError(ctx, err, node.Loc())
	}
	if node.Op == ast.OpAnd && !l {
		return Bool(false), nil
	}
	if node.Op == ast.OpOr && l {
		return Bool(true), nil
	}
	rhs, err := Evaluate(ctx, node.Right)
	if err != nil {
		return nil, err
	}
	r, err := rhs.AsBool(label)
	if err != nil {
		return nil, evalError(ctx, err, node.Loc())
	}
	return Bool(r), nil
}

func binaryOp(op ast.BinaryOp, lhs, rhs *Value) (*Value, error) {
	switch op {
	case ast.OpEq:
		eq, err := Equals(lhs, rhs)
		if err != nil {
			return nil, err
		}
		return Bool(eq), nil
	case ast.OpNeq:
		eq, err := Equals(lhs, rhs)
		if err != nil {
			return nil, err
		}
		return Bool(!eq), nil
	case ast.OpAdd:
		return binaryAdd(lhs, rhs)
	case ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		return binaryCompare(op, lhs, rhs)
	}
	// The remaining operators are numeric.
	label := "operator " + op.String()
	l, err := lhs.AsNumber(label)
	if err != nil {
		return nil, err
	}
	r, err := rhs.AsNumber(label)
	if err != nil {
		return nil, err
	}
	switch op {
	case ast.OpSub:
		return NumberChecked(l - r)
	case ast.OpMul:
		return NumberChecked(l * r)
	case ast.OpDiv:
		if r == 0 {
			return nil, Errorf("division by zero")
		}
		return NumberChecked(l / r)
	default:
		panic("invalid binary operator")
	}
}

// binaryAdd is overloaded on numbers, strings, and arrays.  String
// concatenation coerces the non-string operand through DisplayString.
func binaryAdd(lhs, rhs *Value) (*Value, error) {
	switch {
	case lhs.Type == VNumber && rhs.Type == VNumber:
		return NumberChecked(lhs.Num + rhs.Num)
	case lhs.Type == VString || rhs.Type == VString:
		l, err := lhs.DisplayString()
		if err != nil {
			return nil, err
		}
		r, err := rhs.DisplayString()
		if err != nil {
			return nil, err
		}
		return String(l + r), nil
	case lhs.Type == VArray && rhs.Type == VArray:
		return Arr(arrayConcat(lhs.Arr, rhs.Arr)), nil
	default:
		return nil, TypeMismatchError("operator +", rhs.Type, lhs.Type)
	}
}

// arrayConcat joins two arrays without forcing either side.  The result is
// lazy whenever at least one operand is.
func arrayConcat(a, b *Array) *Array {
	if a.lazy == nil && b.lazy == nil {
		out := make([]*Value, 0, len(a.eager)+len(b.eager))
		out = append(out, a.eager...)
		out = append(out, b.eager...)
		return NewEagerArray(out)
	}
	out := make([]*Thunk, 0, a.Len()+b.Len())
	for i := 0; i < a.Len(); i++ {
		t, _ := a.GetThunk(i)
		out = append(out, t)
	}
	for i := 0; i < b.Len(); i++ {
		t, _ := b.GetThunk(i)
		out = append(out, t)
	}
	return NewLazyArray(out)
}

func binaryCompare(op ast.BinaryOp, lhs, rhs *Value) (*Value, error) {
	label := "operator " + op.String()
	var cmp int
	switch {
	case lhs.Type == VNumber && rhs.Type == VNumber:
		switch {
		case lhs.Num < rhs.Num:
			cmp = -1
		case lhs.Num > rhs.Num:
			cmp = 1
		}
	case lhs.Type == VString && rhs.Type == VString:
		switch {
		case lhs.Str < rhs.Str:
			cmp = -1
		case lhs.Str > rhs.Str:
			cmp = 1
		}
	default:
		return nil, TypeMismatchError(label, rhs.Type, lhs.Type)
	}
	switch op {
	case ast.OpLt:
		return Bool(cmp < 0), nil
	case ast.OpLte:
		return Bool(cmp <= 0), nil
	case ast.OpGt:
		return Bool(cmp > 0), nil
	default:
		return Bool(cmp >= 0), nil
	}
}

func evalCond(ctx *Context, node *ast.Cond) (*Value, error) {
	cond, err := Evaluate(ctx, node.Cond)
	if err != nil {
		return nil, err
	}
	b, err := cond.AsBool("if condition")
	if err != nil {
		return nil, evalError(ctx, err, node.Loc())
	}
	if b {
		return Evaluate(ctx, node.Then)
	}
	if node.Else == nil {
		return Null(), nil
	}
	return Evaluate(ctx, node.Else)
}

func evalErrorExpr(ctx *Context, node *ast.ErrorExpr) (*Value, error) {
	v, err := Evaluate(ctx, node.Expr)
	if err != nil {
		return nil, err
	}
	msg, err := v.DisplayString()
	if err != nil {
		return nil, err
	}
	return nil, evalError(ctx, Errorf("%s", msg), node.Loc())
}
