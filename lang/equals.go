// Copyright © 2024 The Sonnet authors

package lang

import "math"

// machineEpsilon is the difference between 1.0 and the next representable
// float64.  Number comparison tolerates error up to this bound.
const machineEpsilon = 0x1p-52

// PrimitiveEquals compares two primitive values.  Values of different types
// compare unequal, including a compound value paired with a primitive.
// Numbers compare with machine-epsilon tolerance.  A pair of arrays or a
// pair of objects is rejected (deep comparison is Equals); a pair of
// functions has no equality at all.
func PrimitiveEquals(a, b *Value) (bool, error) {
	if a.Type == b.Type {
		switch a.Type {
		case VArray:
			return false, Errorf("primitiveEquals operates on primitive types, got array")
		case VObject:
			return false, Errorf("primitiveEquals operates on primitive types, got object")
		case VFunction:
			return false, Errorf("cannot test equality of functions")
		}
	}
	if a.Type != b.Type {
		return false, nil
	}
	switch a.Type {
	case VNull:
		return true, nil
	case VBool:
		return a.Bool == b.Bool, nil
	case VString:
		return a.Str == b.Str, nil
	case VNumber:
		return math.Abs(a.Num-b.Num) <= machineEpsilon, nil
	default:
		panic("invalid primitive type")
	}
}

// Equals compares two values structurally.  Arrays compare element by
// element and objects compare over their visible field sets.  There is no
// pointer-identity shortcut: a value always compares structurally, even
// against itself.  Function comparison is an error.
func Equals(a, b *Value) (bool, error) {
	if a.Type == VFunction || b.Type == VFunction {
		return false, Errorf("cannot test equality of functions")
	}
	if a.Type != b.Type {
		return false, nil
	}
	switch a.Type {
	case VArray:
		return arrayEquals(a.Arr, b.Arr)
	case VObject:
		return objectEquals(a.Obj, b.Obj)
	default:
		return PrimitiveEquals(a, b)
	}
}

func arrayEquals(a, b *Array) (bool, error) {
	if a.Len() != b.Len() {
		return false, nil
	}
	ia, ib := a.Iter(), b.Iter()
	for {
		va, ok, err := ia.Next()
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
		vb, _, err := ib.Next()
		if err != nil {
			return false, err
		}
		eq, err := Equals(va, vb)
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
}

func objectEquals(a, b *Object) (bool, error) {
	fa, fb := a.VisibleFields(), b.VisibleFields()
	if len(fa) != len(fb) {
		return false, nil
	}
	// Both sets are sorted, so a positional walk compares them.
	for i, name := range fa {
		if fb[i] != name {
			return false, nil
		}
	}
	for _, name := range fa {
		va, _, err := a.Get(name)
		if err != nil {
			return false, err
		}
		vb, _, err := b.Get(name)
		if err != nil {
			return false, err
		}
		eq, err := Equals(va, vb)
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}
