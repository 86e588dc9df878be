// Copyright © 2024 The Sonnet authors

package lang

// thunkState tracks a thunk's one-way pending→computed transition.  The
// intermediate forcing state is the re-entrancy sentinel: evaluation is
// single threaded, so observing forcing during Force means the thunk's own
// computation looped back into itself.
type thunkState uint8

const (
	thunkPending thunkState = iota
	thunkForcing
	thunkComputed
)

// Thunk is a deferred computation with a memoized result.  It is the unit of
// laziness: function arguments, array elements, and object fields all bind
// thunks.  A thunk may be aliased by any number of bindings; the first
// successful Force computes the value once for all of them.
//
// Thunk equality is pointer identity.  It is never consulted by language
// level equality, only by diagnostics.
type Thunk struct {
	compute func() (*Value, error)
	val     *Value
	state   thunkState
}

// NewThunk returns a pending thunk that will run fn on first Force.
func NewThunk(fn func() (*Value, error)) *Thunk {
	return &Thunk{compute: fn}
}

// ResolvedThunk returns an already-computed thunk holding v.  It avoids
// double indirection when a value is known eagerly (tail-strict calls,
// host-supplied arguments).
func ResolvedThunk(v *Value) *Thunk {
	return &Thunk{val: v, state: thunkComputed}
}

// Force evaluates the thunk.  The first successful call runs the stored
// computation and caches the result; subsequent calls return the cached
// value without recomputation.  A failed computation leaves the thunk
// pending — there is no negative caching.
//
// A computation that re-enters Force on its own thunk (a self-referential
// binding such as local x = x) fails with the recursion condition instead
// of exhausting the Go stack.
func (t *Thunk) Force() (*Value, error) {
	switch t.state {
	case thunkComputed:
		return t.val, nil
	case thunkForcing:
		return nil, ErrorConditionf(CondRecursion, "self-referential value requires its own evaluation")
	}
	t.state = thunkForcing
	v, err := t.compute()
	if err != nil {
		t.state = thunkPending
		return nil, err
	}
	t.val = v
	t.state = thunkComputed
	t.compute = nil
	return v, nil
}

// Computed reports whether the thunk holds a cached value.  A pending or
// currently-forcing thunk reports false.
func (t *Thunk) Computed() bool {
	return t.state == thunkComputed
}
