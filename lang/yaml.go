// Copyright © 2024 The Sonnet authors

package lang

import "strings"

// ToYAML manifests v as a block-style YAML document.  Indent is the number
// of spaces per nesting level; values less than one fall back to two.
// Strings and field names are always double quoted so the output is valid
// YAML regardless of content.
func (v *Value) ToYAML(indent int) (string, error) {
	if indent < 1 {
		indent = 2
	}
	enc := &yamlEncoder{step: strings.Repeat(" ", indent)}
	if yamlScalar(v) {
		s, err := enc.scalar(v)
		if err != nil {
			return "", err
		}
		return s, nil
	}
	if err := enc.encodeBlock(v, 0); err != nil {
		return "", err
	}
	return strings.TrimRight(enc.buf.String(), "\n"), nil
}

type yamlEncoder struct {
	buf  strings.Builder
	step string
}

// yamlScalar reports whether v renders on a single line: every non-container
// type, plus empty containers which render in flow style.
func yamlScalar(v *Value) bool {
	switch v.Type {
	case VArray:
		return v.Arr.Len() == 0
	case VObject:
		return len(v.Obj.VisibleFields()) == 0
	default:
		return true
	}
}

func (enc *yamlEncoder) scalar(v *Value) (string, error) {
	switch v.Type {
	case VNull:
		return "null", nil
	case VBool:
		if v.Bool {
			return "true", nil
		}
		return "false", nil
	case VNumber:
		return formatNumber(v.Num), nil
	case VString:
		return quoteJSONString(v.Str), nil
	case VArray:
		return "[]", nil
	case VObject:
		return "{}", nil
	default:
		return "", Errorf("type is not manifestable as YAML: %s", v.Type)
	}
}

func (enc *yamlEncoder) indent(depth int) {
	for i := 0; i < depth; i++ {
		enc.buf.WriteString(enc.step)
	}
}

func (enc *yamlEncoder) encodeBlock(v *Value, depth int) error {
	switch v.Type {
	case VArray:
		return enc.encodeSeq(v.Arr, depth)
	case VObject:
		return enc.encodeMap(v.Obj, depth)
	default:
		panic("block encoding of a scalar")
	}
}

func (enc *yamlEncoder) encodeSeq(arr *Array, depth int) error {
	it := arr.Iter()
	for {
		elem, ok, err := it.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		enc.indent(depth)
		enc.buf.WriteByte('-')
		if yamlScalar(elem) {
			s, err := enc.scalar(elem)
			if err != nil {
				return err
			}
			enc.buf.WriteByte(' ')
			enc.buf.WriteString(s)
			enc.buf.WriteByte('\n')
			continue
		}
		enc.buf.WriteByte('\n')
		if err := enc.encodeBlock(elem, depth+1); err != nil {
			return err
		}
	}
}

func (enc *yamlEncoder) encodeMap(obj *Object, depth int) error {
	for _, name := range obj.VisibleFields() {
		fv, ok, err := obj.Get(name)
		if err != nil {
			return err
		}
		if !ok {
			panic("visible field missing from object: " + name)
		}
		enc.indent(depth)
		enc.buf.WriteString(quoteJSONString(name))
		enc.buf.WriteByte(':')
		if yamlScalar(fv) {
			s, err := enc.scalar(fv)
			if err != nil {
				return err
			}
			enc.buf.WriteByte(' ')
			enc.buf.WriteString(s)
			enc.buf.WriteByte('\n')
			continue
		}
		enc.buf.WriteByte('\n')
		if err := enc.encodeBlock(fv, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// quoteJSONString renders s as a JSON string literal, which is also a valid
// YAML double-quoted scalar.
func quoteJSONString(s string) string {
	enc := &jsonEncoder{}
	_ = enc.encodeString(s)
	return enc.buf.String()
}
