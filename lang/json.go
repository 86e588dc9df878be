// Copyright © 2024 The Sonnet authors

package lang

import (
	"bytes"
	"math"
	"strconv"
	"unicode/utf8"
)

func init() {
	jsonEncoderFuncs[VBool] = (*jsonEncoder).encodeBool
	jsonEncoderFuncs[VNull] = (*jsonEncoder).encodeNull
	jsonEncoderFuncs[VString] = (*jsonEncoder).encodeVString
	jsonEncoderFuncs[VNumber] = (*jsonEncoder).encodeNumber
	jsonEncoderFuncs[VArray] = (*jsonEncoder).encodeArray
	jsonEncoderFuncs[VObject] = (*jsonEncoder).encodeObject
}

var jsonEncoderFuncs [VTypeMax]func(enc *jsonEncoder, v *Value, depth int) error

// ToJSON manifests v as JSON.  Indent 0 produces minified output; a
// positive indent pretty-prints with that many spaces per nesting level.
func (v *Value) ToJSON(indent int) (string, error) {
	enc := &jsonEncoder{}
	if indent > 0 {
		enc.padding = bytes.Repeat([]byte{' '}, indent)
	}
	if err := enc.encode(v, 0); err != nil {
		return "", err
	}
	return enc.buf.String(), nil
}

type jsonEncoder struct {
	buf     bytes.Buffer
	padding []byte
}

func (enc *jsonEncoder) pretty() bool {
	return len(enc.padding) > 0
}

func (enc *jsonEncoder) newline(depth int) {
	enc.buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		enc.buf.Write(enc.padding)
	}
}

func (enc *jsonEncoder) encode(v *Value, depth int) error {
	if fn := jsonEncoderFuncs[v.Type]; fn != nil {
		return fn(enc, v, depth)
	}
	return Errorf("type is not manifestable as JSON: %s", v.Type)
}

func (enc *jsonEncoder) encodeNull(_ *Value, _ int) error {
	enc.buf.WriteString("null")
	return nil
}

func (enc *jsonEncoder) encodeBool(v *Value, _ int) error {
	if v.Bool {
		enc.buf.WriteString("true")
	} else {
		enc.buf.WriteString("false")
	}
	return nil
}

func (enc *jsonEncoder) encodeVString(v *Value, _ int) error {
	return enc.encodeString(v.Str)
}

func (enc *jsonEncoder) encodeNumber(v *Value, _ int) error {
	enc.buf.WriteString(formatNumber(v.Num))
	return nil
}

// formatNumber renders a finite float the way sonnet output expects:
// integral values print without a fraction or exponent.
func formatNumber(x float64) string {
	if x == math.Trunc(x) && math.Abs(x) < 1e17 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func (enc *jsonEncoder) encodeArray(v *Value, depth int) error {
	arr := v.Arr
	if arr.Len() == 0 {
		if enc.pretty() {
			enc.buf.WriteString("[ ]")
		} else {
			enc.buf.WriteString("[]")
		}
		return nil
	}
	enc.buf.WriteByte('[')
	it := arr.Iter()
	first := true
	for {
		elem, ok, err := it.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if !first {
			enc.buf.WriteByte(',')
		}
		first = false
		if enc.pretty() {
			enc.newline(depth + 1)
		}
		if err := enc.encode(elem, depth+1); err != nil {
			return err
		}
	}
	if enc.pretty() {
		enc.newline(depth)
	}
	enc.buf.WriteByte(']')
	return nil
}

func (enc *jsonEncoder) encodeObject(v *Value, depth int) error {
	obj := v.Obj
	fields := obj.VisibleFields()
	if len(fields) == 0 {
		if enc.pretty() {
			enc.buf.WriteString("{ }")
		} else {
			enc.buf.WriteString("{}")
		}
		return nil
	}
	enc.buf.WriteByte('{')
	for i, name := range fields {
		if i > 0 {
			enc.buf.WriteByte(',')
		}
		if enc.pretty() {
			enc.newline(depth + 1)
		}
		if err := enc.encodeString(name); err != nil {
			return err
		}
		enc.buf.WriteByte(':')
		if enc.pretty() {
			enc.buf.WriteByte(' ')
		}
		fv, ok, err := obj.Get(name)
		if err != nil {
			return err
		}
		if !ok {
			panic("visible field missing from object: " + name)
		}
		if err := enc.encode(fv, depth+1); err != nil {
			return err
		}
	}
	if enc.pretty() {
		enc.newline(depth)
	}
	enc.buf.WriteByte('}')
	return nil
}

// NOTE:  encodeString adapted from the json package.
// https://cs.opensource.google/go/go/+/refs/tags/go1.16.4:src/encoding/json/encode.go;l=1029
func (enc *jsonEncoder) encodeString(s string) error {
	const hex = "0123456789abcdef"
	enc.buf.WriteByte('"')
	start := 0
	for i := 0; i < len(s); {
		if b := s[i]; b < utf8.RuneSelf {
			if jsonSafeSet[b] {
				i++
				continue
			}
			if start < i {
				enc.buf.WriteString(s[start:i])
			}
			enc.buf.WriteByte('\\')
			switch b {
			case '\\', '"':
				enc.buf.WriteByte(b)
			case '\n':
				enc.buf.WriteByte('n')
			case '\r':
				enc.buf.WriteByte('r')
			case '\t':
				enc.buf.WriteByte('t')
			default:
				// This encodes bytes < 0x20 except for \t, \n and \r.
				enc.buf.WriteString(`u00`)
				enc.buf.WriteByte(hex[b>>4])
				enc.buf.WriteByte(hex[b&0xF])
			}
			i++
			start = i
			continue
		}
		c, size := utf8.DecodeRuneInString(s[i:])
		if c == utf8.RuneError && size == 1 {
			if start < i {
				enc.buf.WriteString(s[start:i])
			}
			enc.buf.WriteString(`�`)
			i += size
			start = i
			continue
		}
		// U+2028 and U+2029 are valid in JSON strings but break JSONP, so
		// they are escaped unconditionally.
		if c == '\u2028' || c == '\u2029' {
			if start < i {
				enc.buf.WriteString(s[start:i])
			}
			enc.buf.WriteString(`\u202`)
			enc.buf.WriteByte(hex[c&0xF])
			i += size
			start = i
			continue
		}
		i += size
	}
	if start < len(s) {
		enc.buf.WriteString(s[start:])
	}
	enc.buf.WriteByte('"')
	return nil
}

// NOTE:  jsonSafeSet is from the json package.  It holds true if the ASCII
// character with the given array position can appear inside a JSON string
// without further escaping.
var jsonSafeSet = [utf8.RuneSelf]bool{}

func init() {
	for b := 0; b < utf8.RuneSelf; b++ {
		jsonSafeSet[b] = b >= 0x20 && b != '"' && b != '\\'
	}
}
