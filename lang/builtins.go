// Copyright © 2024 The Sonnet authors

package lang

import (
	"unicode/utf8"

	"github.com/sonnetlang/sonnet/ast"
)

// Builtin is one entry in the runtime's intrinsic dispatch table.  Arguments
// are bound against Params tail-strictly and handed to Eval fully forced in
// declaration order.
type Builtin struct {
	Name   string
	Params ast.Params
	Eval   func(ctx *Context, args []*Value) (*Value, error)
}

// CallBuiltin applies the named intrinsic to syntax arguments.  The binding
// policy is the same as any function call; intrinsics are always
// tail-strict because they cannot observe unforced thunks.
func CallBuiltin(ctx *Context, loc *ast.Location, name string, args ast.Args) (*Value, error) {
	b := ctx.Runtime().Builtin(name)
	if b == nil {
		return nil, Errorf("unknown builtin function: std.%s", name)
	}
	fctx, err := BindArgs(ctx, nil, b.Params, args, true)
	if err != nil {
		return nil, err
	}
	forced := make([]*Value, len(b.Params))
	for i, p := range b.Params {
		t, ok := fctx.Binding(p.Name)
		if !ok {
			panic("bound parameter missing from call context: " + p.Name)
		}
		forced[i], err = t.Force()
		if err != nil {
			return nil, err
		}
	}
	out, err := b.Eval(ctx, forced)
	if err != nil {
		return nil, AsError(err)
	}
	return out, nil
}

// DefaultBuiltins returns the standard intrinsic set installed by
// StandardRuntime.
func DefaultBuiltins() []*Builtin {
	return []*Builtin{
		{
			Name:   "length",
			Params: ast.RequiredParams("x"),
			Eval:   builtinLength,
		},
		{
			Name:   "type",
			Params: ast.RequiredParams("x"),
			Eval: func(_ *Context, args []*Value) (*Value, error) {
				return String(args[0].Type.String()), nil
			},
		},
		{
			Name:   "toString",
			Params: ast.RequiredParams("a"),
			Eval: func(_ *Context, args []*Value) (*Value, error) {
				s, err := args[0].DisplayString()
				if err != nil {
					return nil, err
				}
				return String(s), nil
			},
		},
		{
			Name:   "primitiveEquals",
			Params: ast.RequiredParams("a", "b"),
			Eval: func(_ *Context, args []*Value) (*Value, error) {
				eq, err := PrimitiveEquals(args[0], args[1])
				if err != nil {
					return nil, err
				}
				return Bool(eq), nil
			},
		},
		{
			Name:   "equals",
			Params: ast.RequiredParams("a", "b"),
			Eval: func(_ *Context, args []*Value) (*Value, error) {
				eq, err := Equals(args[0], args[1])
				if err != nil {
					return nil, err
				}
				return Bool(eq), nil
			},
		},
		{
			Name:   "manifestJson",
			Params: ast.RequiredParams("value"),
			Eval: func(_ *Context, args []*Value) (*Value, error) {
				s, err := args[0].ToJSON(4)
				if err != nil {
					return nil, err
				}
				return String(s), nil
			},
		},
		{
			Name:   "makeArray",
			Params: ast.RequiredParams("sz", "func"),
			Eval:   builtinMakeArray,
		},
		{
			Name:   "reverse",
			Params: ast.RequiredParams("arr"),
			Eval: func(_ *Context, args []*Value) (*Value, error) {
				arr, err := args[0].AsArray("std.reverse")
				if err != nil {
					return nil, err
				}
				return Arr(arr.Reversed()), nil
			},
		},
		{
			Name:   "native",
			Params: ast.RequiredParams("name"),
			Eval: func(ctx *Context, args []*Value) (*Value, error) {
				name, err := args[0].AsString("std.native")
				if err != nil {
					return nil, err
				}
				cb := ctx.Runtime().Native(name)
				if cb == nil {
					return nil, Errorf("no native extension registered: %s", name)
				}
				return Fun(NativeExt(name, cb)), nil
			},
		},
	}
}

func builtinLength(_ *Context, args []*Value) (*Value, error) {
	switch x := args[0]; x.Type {
	case VString:
		return Number(float64(utf8.RuneCountInString(x.Str))), nil
	case VArray:
		return Number(float64(x.Arr.Len())), nil
	case VObject:
		return Number(float64(len(x.Obj.VisibleFields()))), nil
	case VFunction:
		return Number(float64(len(x.Fun.Params))), nil
	default:
		return nil, Errorf("std.length operates on string, array, object, or function, got %s", x.Type)
	}
}

// builtinMakeArray builds a lazy array of sz elements where element i is
// func(i).  Elements are not forced until accessed.
func builtinMakeArray(ctx *Context, args []*Value) (*Value, error) {
	sz, err := args[0].AsNumber("std.makeArray")
	if err != nil {
		return nil, err
	}
	n := int(sz)
	if float64(n) != sz || n < 0 {
		return nil, Errorf("std.makeArray size must be a non-negative integer, got %s", formatNumber(sz))
	}
	fn := args[1]
	if err := fn.AssertType("std.makeArray", VFunction); err != nil {
		return nil, err
	}
	items := make([]*Thunk, n)
	for i := range items {
		idx := Number(float64(i))
		items[i] = NewThunk(func() (*Value, error) {
			return fn.CallValues(ctx, []*Value{idx})
		})
	}
	return Arr(NewLazyArray(items)), nil
}
