// Copyright © 2024 The Sonnet authors

package lang

import "github.com/sonnetlang/sonnet/ast"

// NativeCallback is a host function exposed to evaluated code.  The callback
// receives fully forced values in declared parameter order; laziness stops
// at the host boundary.
type NativeCallback struct {
	Params ast.Params
	Func   func(args []*Value) (*Value, error)
}

// NewNativeCallback builds a callback taking the named required parameters.
func NewNativeCallback(fn func(args []*Value) (*Value, error), params ...string) *NativeCallback {
	return &NativeCallback{
		Params: ast.RequiredParams(params...),
		Func:   fn,
	}
}
