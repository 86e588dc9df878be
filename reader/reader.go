// Copyright © 2024 The Sonnet authors

/*
Package reader parses JSON documents into runtime values.

	value   := <object> | <array> | <string> | <number> | 'true' | 'false' | 'null'
	object  := '{' (<pair> (',' <pair>)*)? '}'
	pair    := <string> ':' <value>
	array   := '[' (<value> (',' <value>)*)? ']'
	number  := /[+-]?[0-9]+(.[0-9]+)?([eE][+-]?[0-9]+)?/
*/
package reader

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	parsec "github.com/prataprc/goparsec"
	"github.com/sonnetlang/sonnet/lang"
)

// ReadJSON parses a single JSON document from r.  The name labels the input
// in errors.
func ReadJSON(name string, r io.Reader) (*lang.Value, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	v, _, err := ParseJSON(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

// ParseJSON parses a single JSON value from text.  The number of bytes read
// is returned along with any error that was encountered in parsing.
func ParseJSON(text []byte) (*lang.Value, int, error) {
	s := parsec.NewScanner(text)
	s = s.TrackLineno()
	parser := newParsecParser()
	root, s := parser(s)
	if root == nil {
		return nil, s.GetCursor(), fmt.Errorf("%d: no value found in input", s.Lineno())
	}
	v, err := getValue(root)
	if err != nil {
		return nil, s.GetCursor(), err
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		b, _ := s.Match(`.{1,16}`)
		if len(b) > 15 {
			b = append(b[:15:15], []byte("...")...)
		}
		return nil, s.GetCursor(), fmt.Errorf("%d: unexpected source text possibly starting: %s", s.Lineno(), b)
	}
	return v, s.GetCursor(), nil
}

func newParsecParser() parsec.Parser {
	openBrace := parsec.Atom("{", "OPENBRACE")
	closeBrace := parsec.Atom("}", "CLOSEBRACE")
	openBracket := parsec.Atom("[", "OPENBRACKET")
	closeBracket := parsec.Atom("]", "CLOSEBRACKET")
	comma := parsec.Atom(",", "COMMA")
	colon := parsec.Atom(":", "COLON")
	vnull := parsec.Atom("null", "NULL")
	vtrue := parsec.Atom("true", "TRUE")
	vfalse := parsec.Atom("false", "FALSE")
	number := parsec.Token(`[+-]?[0-9]+([.][0-9]+)?([eE][+-]?[0-9]+)?`, "NUMBER")
	str := parsec.String()

	var value parsec.Parser // forward declaration allows for recursive parsing
	elements := parsec.Kleene(nil, &value, comma)
	array := parsec.And(arrayNode, openBracket, elements, closeBracket)
	pair := parsec.And(pairNode, str, colon, &value)
	members := parsec.Kleene(nil, pair, comma)
	object := parsec.And(objectNode, openBrace, members, closeBrace)
	value = parsec.OrdChoice(valueNode, str, number, vnull, vtrue, vfalse, array, object)
	return value
}

// badNode carries a construction error up through the parsec node tree.
type badNode struct {
	err error
}

// member is a parsed object field.
type member struct {
	name  string
	value *lang.Value
}

// getValue unwraps a parsec node into the runtime value it denotes.
func getValue(node parsec.ParsecNode) (*lang.Value, error) {
	switch n := node.(type) {
	case *lang.Value:
		return n, nil
	case badNode:
		return nil, n.err
	case []parsec.ParsecNode:
		if len(n) == 1 {
			return getValue(n[0])
		}
		return nil, fmt.Errorf("unexpected parse tree shape")
	case string:
		s, err := unquoteString(n)
		if err != nil {
			return nil, err
		}
		return lang.String(s), nil
	case *parsec.Terminal:
		switch n.Name {
		case "NULL":
			return lang.Null(), nil
		case "TRUE":
			return lang.Bool(true), nil
		case "FALSE":
			return lang.Bool(false), nil
		case "NUMBER":
			x, err := strconv.ParseFloat(n.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("bad number: %v (%s)", err, n.Value)
			}
			v, lerr := lang.NumberChecked(x)
			if lerr != nil {
				return nil, lerr
			}
			return v, nil
		}
		return nil, fmt.Errorf("unexpected token: %s", n.Value)
	default:
		return nil, fmt.Errorf("unexpected parse node: %T", node)
	}
}

func valueNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	if len(nodes) != 1 {
		return badNode{err: fmt.Errorf("unexpected parse tree shape")}
	}
	v, err := getValue(nodes[0])
	if err != nil {
		return badNode{err: err}
	}
	return v
}

func arrayNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	if len(nodes) != 3 {
		return badNode{err: fmt.Errorf("unexpected array parse")}
	}
	elems, ok := nodes[1].([]parsec.ParsecNode)
	if !ok {
		return badNode{err: fmt.Errorf("unexpected array parse")}
	}
	items := make([]*lang.Value, len(elems))
	for i, elem := range elems {
		v, err := getValue(elem)
		if err != nil {
			return badNode{err: err}
		}
		items[i] = v
	}
	return lang.Arr(lang.NewEagerArray(items))
}

func pairNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	if len(nodes) != 3 {
		return badNode{err: fmt.Errorf("unexpected object field parse")}
	}
	quoted, ok := nodes[0].(string)
	if !ok {
		return badNode{err: fmt.Errorf("object field name is not a string")}
	}
	name, err := unquoteString(quoted)
	if err != nil {
		return badNode{err: err}
	}
	v, err := getValue(nodes[2])
	if err != nil {
		return badNode{err: err}
	}
	return member{name: name, value: v}
}

func objectNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	if len(nodes) != 3 {
		return badNode{err: fmt.Errorf("unexpected object parse")}
	}
	pairs, ok := nodes[1].([]parsec.ParsecNode)
	if !ok {
		return badNode{err: fmt.Errorf("unexpected object parse")}
	}
	b := lang.NewObjectBuilder()
	for _, p := range pairs {
		if bad, ok := p.(badNode); ok {
			return bad
		}
		m, ok := p.(member)
		if !ok {
			return badNode{err: fmt.Errorf("unexpected object field parse: %T", p)}
		}
		b.SetValue(m.name, m.value)
	}
	return lang.Obj(b.Build())
}

// unquoteString decodes a JSON string literal, escapes included.
func unquoteString(quoted string) (string, error) {
	var s string
	if err := json.Unmarshal([]byte(quoted), &s); err != nil {
		return "", fmt.Errorf("bad string literal: %v", err)
	}
	return s, nil
}
