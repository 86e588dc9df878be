// Copyright © 2024 The Sonnet authors

package lang

// Context is an environment frame: an immutable chain of name→thunk binding
// scopes, newest frame first.  Contexts serve both variable lookup during
// evaluation and closure capture.  A frame is never mutated after it is
// built; Extend produces a child frame that shares the parent by reference.
type Context struct {
	parent *Context
	scope  map[string]*Thunk
	rt     *Runtime
}

// NewContext returns an empty root context backed by rt.  When rt is nil a
// StandardRuntime is created.
func NewContext(rt *Runtime) *Context {
	if rt == nil {
		rt = StandardRuntime()
	}
	return &Context{rt: rt}
}

// Runtime returns the shared runtime for the context tree.
func (c *Context) Runtime() *Runtime {
	return c.rt
}

// Extend returns a new context whose innermost frame holds the given
// bindings and whose parent is c.  The bindings map is used as backing
// storage and must not be mutated by the caller afterwards, except for the
// two-phase self-referential initialization performed by Local evaluation
// before any lookup can occur.
func (c *Context) Extend(bindings map[string]*Thunk) *Context {
	return &Context{
		parent: c,
		scope:  bindings,
		rt:     c.rt,
	}
}

// ExtendOne is a convenience for extending with a single binding.
func (c *Context) ExtendOne(name string, t *Thunk) *Context {
	return c.Extend(map[string]*Thunk{name: t})
}

// Binding resolves name by walking the frame chain outward.  The innermost
// binding wins.
func (c *Context) Binding(name string) (*Thunk, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if t, ok := ctx.scope[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// depth reports the number of frames in the chain.  Used only by tests and
// diagnostics.
func (c *Context) depth() int {
	n := 0
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if ctx.scope != nil {
			n++
		}
	}
	return n
}
