// Copyright © 2024 The Sonnet authors

package lang

import (
	"io"
	"os"
)

// Runtime is the object underlying a tree of Context values.  It holds the
// state shared by every frame of one evaluation: the call stack, the builtin
// dispatch table, registered native extensions, the optional profiler, and
// the stream used for debugging output.
type Runtime struct {
	Stack    *CallStack
	Stderr   io.Writer
	Profiler Profiler

	builtins map[string]*Builtin
	natives  map[string]*NativeCallback
}

// DefaultMaxStackHeight bounds evaluation depth for runtimes that do not
// configure their own limit.  Runaway recursion surfaces as a
// stack-overflow condition rather than exhausting the Go stack.
const DefaultMaxStackHeight = 512

// StandardRuntime returns a new Runtime with the default builtin table, a
// height-limited call stack, and Stderr set to os.Stderr.
func StandardRuntime() *Runtime {
	rt := &Runtime{
		Stack:    &CallStack{MaxHeight: DefaultMaxStackHeight},
		Stderr:   os.Stderr,
		builtins: make(map[string]*Builtin),
		natives:  make(map[string]*NativeCallback),
	}
	rt.AddBuiltins(DefaultBuiltins()...)
	return rt
}

// AddBuiltins registers fns in the runtime's intrinsic dispatch table.
// AddBuiltins panics when a name is registered twice because the table is
// assembled during initialization, before any evaluation runs.
func (rt *Runtime) AddBuiltins(fns ...*Builtin) {
	for _, fn := range fns {
		if _, ok := rt.builtins[fn.Name]; ok {
			panic("builtin already defined: " + fn.Name)
		}
		rt.builtins[fn.Name] = fn
	}
}

// Builtin returns the named intrinsic or nil.
func (rt *Runtime) Builtin(name string) *Builtin {
	return rt.builtins[name]
}

// RegisterNative exposes a host callback to evaluated code under the given
// name.  Registering the same name twice panics, matching AddBuiltins.
func (rt *Runtime) RegisterNative(name string, cb *NativeCallback) {
	if _, ok := rt.natives[name]; ok {
		panic("native extension already defined: " + name)
	}
	rt.natives[name] = cb
}

// Native returns the named registered native callback or nil.
func (rt *Runtime) Native(name string) *NativeCallback {
	return rt.natives[name]
}

func (rt *Runtime) getStderr() io.Writer {
	if rt.Stderr != nil {
		return rt.Stderr
	}
	return os.Stderr
}
