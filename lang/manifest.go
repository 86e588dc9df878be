// Copyright © 2024 The Sonnet authors

package lang

import "strings"

// FormatKind selects a manifestation output format.
type FormatKind uint8

// FormatKind values.
const (
	// FormatJSON renders structural JSON; Indent 0 minifies.
	FormatJSON FormatKind = iota
	// FormatYAML renders structural block YAML; Indent 0 minifies to flow
	// scalars with a two-space default block step.
	FormatYAML
	// FormatYAMLStream renders an array as a ---separated document stream,
	// each document manifested under Inner.
	FormatYAMLStream
	// FormatToString renders booleans and null as literal words, strings
	// verbatim, and everything else as minified JSON.
	FormatToString
	// FormatString requires the value to already be a string and passes it
	// through unchanged.
	FormatString
)

// Format is a recursive manifestation descriptor.  Inner is meaningful only
// for FormatYAMLStream.  The nesting constraint (a stream's inner format
// must not be a stream or a string) is enforced at manifestation time, not
// at construction time.
type Format struct {
	Kind   FormatKind
	Indent int
	Inner  *Format
}

// JSONFormat returns a JSON format with the given indent width.  Indent 0
// means minified output.
func JSONFormat(indent int) *Format {
	return &Format{Kind: FormatJSON, Indent: indent}
}

// YAMLFormat returns a YAML format with the given indent width.
func YAMLFormat(indent int) *Format {
	return &Format{Kind: FormatYAML, Indent: indent}
}

// YAMLStreamFormat returns a YAML document-stream format manifesting each
// array element under inner.
func YAMLStreamFormat(inner *Format) *Format {
	return &Format{Kind: FormatYAMLStream, Inner: inner}
}

// ToStringFormat returns the ToString format.
func ToStringFormat() *Format {
	return &Format{Kind: FormatToString}
}

// StringFormat returns the String format.
func StringFormat() *Format {
	return &Format{Kind: FormatString}
}

// FieldDoc is one manifested object field: the field name and the rendered
// field value.
type FieldDoc struct {
	Name string
	Body string
}

// Manifest serializes v under the requested format.
func (v *Value) Manifest(format *Format) (string, error) {
	switch format.Kind {
	case FormatJSON:
		return v.ToJSON(format.Indent)
	case FormatYAML:
		return v.ToYAML(format.Indent)
	case FormatToString:
		return v.DisplayString()
	case FormatString:
		if v.Type != VString {
			return "", ErrorConditionf(CondStringNotString, "string manifest output is not a string: %s", v.Type)
		}
		return v.Str, nil
	case FormatYAMLStream:
		return v.manifestYAMLStream(format.Inner)
	default:
		panic("invalid manifest format")
	}
}

func (v *Value) manifestYAMLStream(inner *Format) (string, error) {
	// The nested format is validated before any element is touched so that
	// a bad descriptor never forces array elements.
	switch inner.Kind {
	case FormatYAMLStream:
		return "", ErrorConditionf(CondStreamRecursed, "stream manifest output cannot be recursed")
	case FormatString:
		return "", ErrorConditionf(CondStreamString, "stream manifest cannot nest string output")
	}
	arr, err := v.AsArrayStream()
	if err != nil {
		return "", err
	}
	if arr.Len() == 0 {
		return "", nil
	}
	var buf strings.Builder
	it := arr.Iter()
	for {
		elem, ok, err := it.Next()
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		doc, err := elem.Manifest(inner)
		if err != nil {
			return "", err
		}
		buf.WriteString("---\n")
		buf.WriteString(doc)
		buf.WriteByte('\n')
	}
	buf.WriteString("...")
	return buf.String(), nil
}

// AsArrayStream narrows v to an array under the stream-manifest error
// convention.
func (v *Value) AsArrayStream() (*Array, error) {
	if v.Type != VArray {
		return nil, ErrorConditionf(CondStreamNotArray, "stream manifest output is not an array: %s", v.Type)
	}
	return v.Arr, nil
}

// ManifestMulti manifests an object as an ordered sequence of (field name,
// manifested value) pairs over the object's visible fields, each rendered
// under the requested non-stream format.
func (v *Value) ManifestMulti(format *Format) ([]FieldDoc, error) {
	if v.Type != VObject {
		return nil, ErrorConditionf(CondMultiNotObject, "multi manifest output is not an object: %s", v.Type)
	}
	fields := v.Obj.VisibleFields()
	out := make([]FieldDoc, 0, len(fields))
	for _, name := range fields {
		fv, ok, err := v.Obj.Get(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			panic("visible field missing from object: " + name)
		}
		body, err := fv.Manifest(format)
		if err != nil {
			return nil, err
		}
		out = append(out, FieldDoc{Name: name, Body: body})
	}
	return out, nil
}

// ManifestStream manifests an array as a sequence of per-element rendered
// strings.
func (v *Value) ManifestStream(format *Format) ([]string, error) {
	arr, err := v.AsArrayStream()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, arr.Len())
	it := arr.Iter()
	for {
		elem, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		doc, err := elem.Manifest(format)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}
