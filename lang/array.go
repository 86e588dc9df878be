// Copyright © 2024 The Sonnet authors

package lang

// Array is a dual-mode sequence: either a sequence of thunks (deferred per
// element) or a sequence of fully evaluated values.  Both representations
// serve the same read operations; the representation is chosen at
// construction time and no operation converts between them silently.
type Array struct {
	lazy  []*Thunk
	eager []*Value

	// evaluated memoizes Evaluated() for the lazy representation.
	evaluated []*Value
}

// NewLazyArray returns an array deferring each element behind a thunk.
// Array literals use this representation to preserve laziness.
func NewLazyArray(items []*Thunk) *Array {
	return &Array{lazy: items}
}

// NewEagerArray returns an array of already-evaluated values.  Eager
// transforms use this representation to avoid pointless indirection.
func NewEagerArray(items []*Value) *Array {
	return &Array{eager: items}
}

// Len returns the number of elements without forcing any of them.
func (a *Array) Len() int {
	if a.lazy != nil {
		return len(a.lazy)
	}
	return len(a.eager)
}

// Get returns the element at index i, forcing it if deferred.  The boolean
// is false when i is out of range.
func (a *Array) Get(i int) (*Value, bool, error) {
	if i < 0 || i >= a.Len() {
		return nil, false, nil
	}
	if a.lazy != nil {
		v, err := a.lazy[i].Force()
		if err != nil {
			return nil, true, err
		}
		return v, true, nil
	}
	return a.eager[i], true, nil
}

// GetThunk returns the element at index i without forcing it.  Eager
// elements come back wrapped in resolved thunks.
func (a *Array) GetThunk(i int) (*Thunk, bool) {
	if i < 0 || i >= a.Len() {
		return nil, false
	}
	if a.lazy != nil {
		return a.lazy[i], true
	}
	return ResolvedThunk(a.eager[i]), true
}

// Evaluated forces every element and returns the values in order.  For the
// lazy representation the forced slice is memoized; the eager
// representation is returned as is.  Callers must not mutate the result.
func (a *Array) Evaluated() ([]*Value, error) {
	if a.eager != nil {
		return a.eager, nil
	}
	if a.evaluated != nil {
		return a.evaluated, nil
	}
	out := make([]*Value, len(a.lazy))
	for i, t := range a.lazy {
		v, err := t.Force()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	a.evaluated = out
	return out, nil
}

// Iter returns a restartable forward iterator.  Elements are forced lazily
// as the iterator advances.
func (a *Array) Iter() *ArrayIter {
	return &ArrayIter{arr: a, next: 0, step: 1}
}

// IterReversed returns a restartable reverse iterator.
func (a *Array) IterReversed() *ArrayIter {
	return &ArrayIter{arr: a, next: a.Len() - 1, step: -1}
}

// Reversed returns a new array with the elements in reverse order.  The
// representation kind is preserved and shared element cells are aliased,
// not copied.
func (a *Array) Reversed() *Array {
	if a.lazy != nil {
		out := make([]*Thunk, len(a.lazy))
		for i, t := range a.lazy {
			out[len(out)-1-i] = t
		}
		return NewLazyArray(out)
	}
	out := make([]*Value, len(a.eager))
	for i, v := range a.eager {
		out[len(out)-1-i] = v
	}
	return NewEagerArray(out)
}

// ArrayIter iterates over the elements of an Array, forcing each element on
// demand.  The zero value is not valid; use Array.Iter or
// Array.IterReversed.
type ArrayIter struct {
	arr  *Array
	next int
	step int
}

// Next returns the next element.  The boolean is false when the iterator is
// exhausted.  A forcing error stops iteration for this call only; the
// iterator is restartable by constructing it again.
func (it *ArrayIter) Next() (*Value, bool, error) {
	if it.next < 0 || it.next >= it.arr.Len() {
		return nil, false, nil
	}
	v, _, err := it.arr.Get(it.next)
	it.next += it.step
	if err != nil {
		return nil, true, err
	}
	return v, true, nil
}
