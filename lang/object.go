// Copyright © 2024 The Sonnet authors

package lang

import "sort"

// objectField is a single object field: a visibility flag and the thunk
// computing the field value.
type objectField struct {
	hidden bool
	value  *Thunk
}

// Object is the sonnet object value: a set of named fields, each deferred
// behind a thunk, with per-field visibility.  Hidden fields participate in
// lookup but are excluded from manifestation and equality, which consult
// only VisibleFields.
type Object struct {
	fields map[string]objectField

	// visible caches the sorted visible field name set.
	visible []string
}

// NewObject returns an object holding the given fields.  The map is used as
// backing storage and must not be mutated by the caller afterwards.
func NewObject(fields map[string]objectField) *Object {
	return &Object{fields: fields}
}

// ObjectBuilder assembles an object field by field.  Field sets are fixed
// once Build is called; sonnet objects are immutable values.
type ObjectBuilder struct {
	fields map[string]objectField
}

// NewObjectBuilder returns an empty builder.
func NewObjectBuilder() *ObjectBuilder {
	return &ObjectBuilder{fields: make(map[string]objectField)}
}

// Set adds or replaces the named field.
func (b *ObjectBuilder) Set(name string, hidden bool, value *Thunk) *ObjectBuilder {
	b.fields[name] = objectField{hidden: hidden, value: value}
	return b
}

// SetValue adds an already-evaluated visible field.
func (b *ObjectBuilder) SetValue(name string, value *Value) *ObjectBuilder {
	return b.Set(name, false, ResolvedThunk(value))
}

// Build returns the assembled object.  The builder must not be reused.
func (b *ObjectBuilder) Build() *Object {
	return NewObject(b.fields)
}

// VisibleFields returns the visible field names as a sorted set.  The
// returned slice is shared; callers must not mutate it.
func (o *Object) VisibleFields() []string {
	if o.visible != nil {
		return o.visible
	}
	names := make([]string, 0, len(o.fields))
	for name, f := range o.fields {
		if !f.hidden {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	o.visible = names
	return names
}

// HasField reports whether the object has the named field, hidden or not.
func (o *Object) HasField(name string) bool {
	_, ok := o.fields[name]
	return ok
}

// Get resolves the named field and evaluates it.  The boolean is false when
// no such field exists.  Repeated gets share the field's thunk, so the
// field body runs at most once.
func (o *Object) Get(name string) (*Value, bool, error) {
	f, ok := o.fields[name]
	if !ok {
		return nil, false, nil
	}
	v, err := f.value.Force()
	if err != nil {
		return nil, true, err
	}
	return v, true, nil
}

// Len returns the total field count including hidden fields.
func (o *Object) Len() int {
	return len(o.fields)
}
