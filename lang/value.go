// Copyright © 2024 The Sonnet authors

// Package lang implements the sonnet runtime core: the value representation,
// lazy thunks and environment frames, the call-binding protocol, and the
// manifestation pipeline that turns evaluated values into textual output.
package lang

import "math"

// VType is the type of a Value.
type VType uint

// Possible VType values.
const (
	// VInvalid (0) is not a valid sonnet type.
	VInvalid VType = iota
	// VBool values store a bool in the Value.Bool field.
	VBool
	// VNull is the null value.  It stores nothing.
	VNull
	// VString values store a string in the Value.Str field.
	VString
	// VNumber values store a finite float64 in the Value.Num field.  The
	// NumberChecked constructor is the only path that may observe a
	// non-finite float and it rejects them.
	VNumber
	// VArray values store an *Array in the Value.Arr field.
	VArray
	// VObject values store an *Object in the Value.Obj field.
	VObject
	// VFunction values store a *FunData in the Value.Fun field.
	VFunction
	// VTypeMax is numerically greater than all valid VType values.
	VTypeMax
)

var vtypeStrings = []string{
	VInvalid:  "INVALID",
	VBool:     "boolean",
	VNull:     "null",
	VString:   "string",
	VNumber:   "number",
	VArray:    "array",
	VObject:   "object",
	VFunction: "function",
}

func (t VType) String() string {
	if t >= VType(len(vtypeStrings)) {
		return vtypeStrings[VInvalid]
	}
	return vtypeStrings[t]
}

// Value is a sonnet runtime value.  Exactly one of the storage fields is
// meaningful, selected by Type.
type Value struct {
	// Type is the runtime type tag for the value.
	Type VType

	// Bool is used by VBool values.
	Bool bool

	// Str is used by VString values.
	Str string

	// Num is used by VNumber values and is always finite.
	Num float64

	// Arr is used by VArray values.
	Arr *Array

	// Obj is used by VObject values.
	Obj *Object

	// Fun is used by VFunction values.
	Fun *FunData
}

// Singleton Values for null, true, and false.  These are shared immutable
// values returned by Null() and Bool().  Callers must not mutate them.
var (
	singletonNull  = &Value{Type: VNull}
	singletonTrue  = &Value{Type: VBool, Bool: true}
	singletonFalse = &Value{Type: VBool, Bool: false}
)

// Null returns the null value.
//
// The returned value is a shared singleton — callers must not mutate it.
func Null() *Value {
	return singletonNull
}

// Bool returns a Value with truthiness identical to b.
//
// The returned value is a shared singleton — callers must not mutate it.
func Bool(b bool) *Value {
	if b {
		return singletonTrue
	}
	return singletonFalse
}

// String returns a Value representing the string s.
func String(s string) *Value {
	return &Value{Type: VString, Str: s}
}

// Number returns a Value representing the number x.  Number trusts its
// caller to supply a finite float; untrusted computations must go through
// NumberChecked.
func Number(x float64) *Value {
	return &Value{Type: VNumber, Num: x}
}

// NumberChecked returns a Value representing the number x after checking for
// numeric overflow.  Numbers are float64, so the check is finiteness.
func NumberChecked(x float64) (*Value, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil, ErrorConditionf(CondOverflow, "numeric overflow")
	}
	return Number(x), nil
}

// Arr returns a Value wrapping the array a.
func Arr(a *Array) *Value {
	return &Value{Type: VArray, Arr: a}
}

// Obj returns a Value wrapping the object o.
func Obj(o *Object) *Value {
	return &Value{Type: VObject, Obj: o}
}

// Fun returns a Value wrapping the function f.
func Fun(f *FunData) *Value {
	return &Value{Type: VFunction, Fun: f}
}

// AssertType returns a type-mismatch error unless v has the wanted type.
// The context label names the operation performing the check.
func (v *Value) AssertType(context string, want VType) error {
	if v.Type != want {
		return TypeMismatchError(context, v.Type, want)
	}
	return nil
}

// AsBool narrows v to a bool, failing with a type-mismatch error when v is
// not a boolean.
func (v *Value) AsBool(context string) (bool, error) {
	if err := v.AssertType(context, VBool); err != nil {
		return false, err
	}
	return v.Bool, nil
}

// AsString narrows v to a string, failing with a type-mismatch error when v
// is not a string.
func (v *Value) AsString(context string) (string, error) {
	if err := v.AssertType(context, VString); err != nil {
		return "", err
	}
	return v.Str, nil
}

// AsNumber narrows v to a float64, failing with a type-mismatch error when v
// is not a number.
func (v *Value) AsNumber(context string) (float64, error) {
	if err := v.AssertType(context, VNumber); err != nil {
		return 0, err
	}
	return v.Num, nil
}

// AsArray narrows v to an *Array, failing with a type-mismatch error when v
// is not an array.
func (v *Value) AsArray(context string) (*Array, error) {
	if err := v.AssertType(context, VArray); err != nil {
		return nil, err
	}
	return v.Arr, nil
}

// AsObject narrows v to an *Object, failing with a type-mismatch error when
// v is not an object.
func (v *Value) AsObject(context string) (*Object, error) {
	if err := v.AssertType(context, VObject); err != nil {
		return nil, err
	}
	return v.Obj, nil
}

// AsFunction narrows v to a *FunData, failing with a type-mismatch error
// when v is not a function.
func (v *Value) AsFunction(context string) (*FunData, error) {
	if err := v.AssertType(context, VFunction); err != nil {
		return nil, err
	}
	return v.Fun, nil
}

// DisplayString renders v the way string interpolation and error messages
// do: booleans and null render as literal words, strings render verbatim
// without quoting, and every other type renders as minified JSON.
func (v *Value) DisplayString() (string, error) {
	switch v.Type {
	case VBool:
		if v.Bool {
			return "true", nil
		}
		return "false", nil
	case VNull:
		return "null", nil
	case VString:
		return v.Str, nil
	default:
		return v.ToJSON(0)
	}
}
