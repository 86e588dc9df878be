// Copyright © 2024 The Sonnet authors

package lang

import (
	"sort"

	"github.com/sonnetlang/sonnet/ast"
)

// FunKind selects the variant of a function value.  The union is closed: no
// other variant is ever added at runtime.
type FunKind uint8

// FunKind values.
const (
	// FunClosure is a function defined in sonnet: a captured lexical
	// context, a parameter list, and a body expression.
	FunClosure FunKind = iota
	// FunIntrinsic is a standard-library function dispatched through the
	// runtime's builtin table by name.
	FunIntrinsic
	// FunNative is a host-supplied callback with its own declared
	// parameter list.
	FunNative
)

// FunData describes one function value.  Which fields are meaningful
// depends on Kind: closures use Ctx/Params/Body, intrinsics only Name,
// natives Name/Native.
type FunData struct {
	Kind   FunKind
	Name   string
	Ctx    *Context
	Params ast.Params
	Body   ast.Expr
	Native *NativeCallback
}

// Closure returns a function value for a sonnet function literal.  The name
// is diagnostic only and may be empty; ctx is the lexical scope at the
// definition site.
func Closure(name string, ctx *Context, params ast.Params, body ast.Expr) *FunData {
	return &FunData{Kind: FunClosure, Name: name, Ctx: ctx, Params: params, Body: body}
}

// Intrinsic returns a function value dispatching to the named builtin.
func Intrinsic(name string) *FunData {
	return &FunData{Kind: FunIntrinsic, Name: name}
}

// NativeExt returns a function value invoking the host callback cb.
func NativeExt(name string, cb *NativeCallback) *FunData {
	return &FunData{Kind: FunNative, Name: name, Native: cb}
}

// DisplayName returns the qualified diagnostic name for the function.
func (f *FunData) DisplayName() string {
	switch f.Kind {
	case FunIntrinsic:
		return "std." + f.Name
	case FunNative:
		return "native." + f.Name
	default:
		if f.Name == "" {
			return "anonymous"
		}
		return f.Name
	}
}

// equal reports function equality: descriptor identity for closures and
// name equality for intrinsics and natives.  Function bodies are never
// compared.  Language-level equality rejects functions before reaching
// here; equal backs only host-side assertions.
func (f *FunData) equal(other *FunData) bool {
	if f.Kind != other.Kind {
		return false
	}
	switch f.Kind {
	case FunClosure:
		return f == other
	default:
		return f.Name == other.Name
	}
}

// argSource supplies call arguments to the shared binding policy.  The
// three call shapes (syntax arguments, a host value map, a raw value list)
// differ only in how an argument is named and how its thunk is built.
type argSource interface {
	// len returns the number of supplied arguments.
	len() int
	// name returns the explicit name of argument i, or "" when positional.
	name(i int) string
	// thunk builds the binding for argument i.  callCtx is the caller's
	// context; tailStrict forces the value immediately.
	thunk(i int, callCtx *Context, tailStrict bool) (*Thunk, error)
}

// exprArgs adapts AST call arguments.
type exprArgs struct {
	args ast.Args
}

func (a exprArgs) len() int          { return len(a.args) }
func (a exprArgs) name(i int) string { return a.args[i].Name }

func (a exprArgs) thunk(i int, callCtx *Context, tailStrict bool) (*Thunk, error) {
	expr := a.args[i].Value
	if tailStrict {
		v, err := Evaluate(callCtx, expr)
		if err != nil {
			return nil, err
		}
		return ResolvedThunk(v), nil
	}
	return NewThunk(func() (*Value, error) {
		return Evaluate(callCtx, expr)
	}), nil
}

// mapArgs adapts a host-supplied name→value mapping.  Names are visited in
// sorted order so binding errors are deterministic.
type mapArgs struct {
	names []string
	vals  map[string]*Value
}

func newMapArgs(args map[string]*Value) mapArgs {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)
	return mapArgs{names: names, vals: args}
}

func (a mapArgs) len() int          { return len(a.names) }
func (a mapArgs) name(i int) string { return a.names[i] }

func (a mapArgs) thunk(i int, _ *Context, _ bool) (*Thunk, error) {
	return ResolvedThunk(a.vals[a.names[i]]), nil
}

// valueArgs adapts a raw ordered value list.
type valueArgs struct {
	vals []*Value
}

func (a valueArgs) len() int        { return len(a.vals) }
func (a valueArgs) name(int) string { return "" }

func (a valueArgs) thunk(i int, _ *Context, _ bool) (*Thunk, error) {
	return ResolvedThunk(a.vals[i]), nil
}

// bindCall is the single binding policy shared by all call shapes.  It
// places each supplied argument into a parameter slot, fills the remaining
// slots from declared defaults, and returns a context for the callee body:
// an extension of bodyCtx (the callee's captured context) when one exists,
// otherwise of callCtx.
//
// Defaults evaluate in defaultCtx.  The syntax and map binders pass the
// callee's captured context so defaults see the definition-site scope; the
// raw-positional binder passes the caller's context and forces eagerly.
func bindCall(callCtx, bodyCtx *Context, params ast.Params, src argSource, tailStrict bool, defaultCtx *Context, eagerDefaults bool) (*Context, error) {
	placed := make([]int, len(params)) // 1-based index into src; 0 is empty
	for i := 0; i < src.len(); i++ {
		idx := i
		if name := src.name(i); name != "" {
			idx = params.Index(name)
			if idx < 0 {
				return nil, ErrorConditionf(CondUnknownParameter, "function has no parameter %s", name)
			}
		}
		if idx >= len(params) {
			return nil, ErrorConditionf(CondTooManyArgs, "function has %d parameters", len(params))
		}
		if placed[idx] != 0 {
			return nil, ErrorConditionf(CondBoundTwice, "parameter %s bound a second time", params[idx].Name)
		}
		placed[idx] = i + 1
	}

	bindings := make(map[string]*Thunk, len(params))
	for pi := range params {
		p := params[pi]
		var t *Thunk
		switch {
		case placed[pi] != 0:
			var err error
			t, err = src.thunk(placed[pi]-1, callCtx, tailStrict)
			if err != nil {
				return nil, err
			}
		case p.Default != nil:
			defExpr := p.Default
			ctx := defaultCtx
			if tailStrict || eagerDefaults {
				v, err := Evaluate(ctx, defExpr)
				if err != nil {
					return nil, err
				}
				t = ResolvedThunk(v)
			} else {
				t = NewThunk(func() (*Value, error) {
					return Evaluate(ctx, defExpr)
				})
			}
		default:
			return nil, ErrorConditionf(CondParamNotBound, "parameter %s not bound in call", p.Name)
		}
		bindings[p.Name] = t
	}

	base := bodyCtx
	if base == nil {
		base = callCtx
	}
	return base.Extend(bindings), nil
}

// BindArgs builds the context for a function body from syntax call
// arguments.  Positional arguments bind by index; named arguments resolve
// to a parameter slot by name.  Unfilled parameters take their declared
// defaults evaluated in the callee's captured context, never the caller's.
// With tailStrict set every bound value (arguments and defaults) is forced
// before BindArgs returns.
func BindArgs(callCtx, bodyCtx *Context, params ast.Params, args ast.Args, tailStrict bool) (*Context, error) {
	defaultCtx := bodyCtx
	if defaultCtx == nil {
		defaultCtx = callCtx
	}
	return bindCall(callCtx, bodyCtx, params, exprArgs{args}, tailStrict, defaultCtx, false)
}

// BindArgMap binds a host-supplied name→value mapping with the same policy
// and error kinds as BindArgs.
func BindArgMap(callCtx, bodyCtx *Context, params ast.Params, args map[string]*Value, tailStrict bool) (*Context, error) {
	defaultCtx := bodyCtx
	if defaultCtx == nil {
		defaultCtx = callCtx
	}
	return bindCall(callCtx, bodyCtx, params, newMapArgs(args), tailStrict, defaultCtx, false)
}

// BindArgValues binds a raw ordered list of already-evaluated values.  This
// binder serves trusted internal call sites where laziness is unnecessary:
// defaults are evaluated eagerly in the caller's context.
func BindArgValues(callCtx, bodyCtx *Context, params ast.Params, args []*Value) (*Context, error) {
	return bindCall(callCtx, bodyCtx, params, valueArgs{args}, true, callCtx, true)
}

// Call applies the function value v to syntax arguments, dispatching on the
// function variant.  Closures bind via BindArgs against their captured
// context and evaluate the body in the resulting frame.  Intrinsics
// dispatch to the runtime builtin table with the raw arguments.  Native
// extensions bind tail-strictly against their declared parameters, force
// every binding into a plain list in parameter order, and invoke the host
// callback.
func (v *Value) Call(ctx *Context, loc *ast.Location, args ast.Args, tailStrict bool) (*Value, error) {
	fn, err := v.AsFunction("function call")
	if err != nil {
		return nil, err
	}
	switch fn.Kind {
	case FunClosure:
		fctx, err := BindArgs(ctx, fn.Ctx, fn.Params, args, tailStrict)
		if err != nil {
			return nil, err
		}
		return Evaluate(fctx, fn.Body)
	case FunIntrinsic:
		return CallBuiltin(ctx, loc, fn.Name, args)
	case FunNative:
		fctx, err := BindArgs(ctx, nil, fn.Native.Params, args, true)
		if err != nil {
			return nil, err
		}
		forced := make([]*Value, len(fn.Native.Params))
		for i, p := range fn.Native.Params {
			t, ok := fctx.Binding(p.Name)
			if !ok {
				panic("bound parameter missing from call context: " + p.Name)
			}
			forced[i], err = t.Force()
			if err != nil {
				return nil, err
			}
		}
		out, err := fn.Native.Func(forced)
		if err != nil {
			return nil, AsError(err)
		}
		return out, nil
	default:
		panic("invalid function kind")
	}
}

// CallMap applies an interpreted closure to a host-supplied name→value
// mapping.  Intrinsics and natives are dispatched through their own layers
// and do not support map application.
func (v *Value) CallMap(ctx *Context, args map[string]*Value, tailStrict bool) (*Value, error) {
	fn, err := v.AsFunction("function call")
	if err != nil {
		return nil, err
	}
	if fn.Kind != FunClosure {
		return nil, Errorf("map application is not supported for %s", fn.DisplayName())
	}
	fctx, err := BindArgMap(ctx, fn.Ctx, fn.Params, args, tailStrict)
	if err != nil {
		return nil, err
	}
	return Evaluate(fctx, fn.Body)
}

// CallValues applies an interpreted closure to a raw ordered value list.
// Intrinsics and natives are dispatched through their own layers and do not
// support raw-value application.
func (v *Value) CallValues(ctx *Context, args []*Value) (*Value, error) {
	fn, err := v.AsFunction("function call")
	if err != nil {
		return nil, err
	}
	if fn.Kind != FunClosure {
		return nil, Errorf("value application is not supported for %s", fn.DisplayName())
	}
	fctx, err := BindArgValues(ctx, fn.Ctx, fn.Params, args)
	if err != nil {
		return nil, err
	}
	return Evaluate(fctx, fn.Body)
}
