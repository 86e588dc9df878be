// Copyright © 2024 The Sonnet authors

// Package ast defines the syntax-tree values consumed by the sonnet runtime:
// expression nodes, parameter and argument descriptors, and source locations.
// The runtime never inspects how these values were produced; a parser, a
// host program, or a test may construct them directly.
package ast

import "fmt"

// Location is a position in sonnet source code.  A nil Location denotes a
// value that did not originate in source code (builtins, host values).
type Location struct {
	File string
	Line int
	Col  int
}

func (l *Location) String() string {
	if l == nil {
		return "<native code>"
	}
	if l.Col > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
	}
	if l.Line > 0 {
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return l.File
}

// NativeLoc returns a Location for values constructed by the host rather
// than parsed from source.
func NativeLoc() *Location {
	return nil
}

// Param is a single function parameter.  Default is nil when the parameter
// has no default expression.
type Param struct {
	Name    string
	Default Expr
}

// Params is an ordered function parameter list.
type Params []Param

// Index returns the position of the named parameter or -1 when the name is
// not a parameter.
func (ps Params) Index(name string) int {
	for i := range ps {
		if ps[i].Name == name {
			return i
		}
	}
	return -1
}

// Names returns the parameter names in declaration order.
func (ps Params) Names() []string {
	names := make([]string, len(ps))
	for i := range ps {
		names[i] = ps[i].Name
	}
	return names
}

// RequiredParams builds a parameter list with no defaults.
func RequiredParams(names ...string) Params {
	ps := make(Params, len(names))
	for i, name := range names {
		ps[i] = Param{Name: name}
	}
	return ps
}

// Arg is a single call-site argument.  Name is empty for positional
// arguments.
type Arg struct {
	Name  string
	Value Expr
}

// Args is an ordered call-site argument list.
type Args []Arg

// PositionalArgs builds an argument list of unnamed arguments.
func PositionalArgs(exprs ...Expr) Args {
	args := make(Args, len(exprs))
	for i, e := range exprs {
		args[i] = Arg{Value: e}
	}
	return args
}

// Expr is an evaluable expression node.
type Expr interface {
	// Loc reports where the expression appeared in source, or nil.
	Loc() *Location
	exprNode()
}

type exprBase struct {
	Location *Location
}

func (e exprBase) Loc() *Location { return e.Location }
func (exprBase) exprNode()        {}

// SetLoc attaches a source location to the node.  Parsers and hosts call it
// after constructing a node; evaluation never mutates locations.
func (e *exprBase) SetLoc(loc *Location) { e.Location = loc }

// LiteralNull is the literal null.
type LiteralNull struct{ exprBase }

// LiteralBool is a literal true or false.
type LiteralBool struct {
	exprBase
	Value bool
}

// LiteralString is a literal string.
type LiteralString struct {
	exprBase
	Value string
}

// LiteralNumber is a literal number.  The parser is expected to reject
// non-finite literals; the runtime re-checks when values are computed.
type LiteralNumber struct {
	exprBase
	Value float64
}

// Var references a bound name.
type Var struct {
	exprBase
	Name string
}

// ArrayLit is an array literal.  Elements are evaluated lazily.
type ArrayLit struct {
	exprBase
	Elements []Expr
}

// ObjectField is a single field in an object literal.
type ObjectField struct {
	Name   string
	Hidden bool
	Value  Expr
}

// ObjectLit is an object literal.  Field values are evaluated lazily.
type ObjectLit struct {
	exprBase
	Fields []ObjectField
}

// LocalBind is one binding in a Local expression.
type LocalBind struct {
	Name  string
	Value Expr
}

// Local binds names in a new scope and evaluates Body within it.  Bindings
// may reference each other (and themselves) lazily.
type Local struct {
	exprBase
	Binds []LocalBind
	Body  Expr
}

// Function is a function literal capturing the enclosing scope.
type Function struct {
	exprBase
	Name   string
	Params Params
	Body   Expr
}

// Apply calls the target expression with the given arguments.  TailStrict
// forces all bound values before the body executes.
type Apply struct {
	exprBase
	Target     Expr
	Args       Args
	TailStrict bool
}

// Index selects an element from an array, object, or string.
type Index struct {
	exprBase
	Target Expr
	Key    Expr
}

// UnaryOp enumerates the unary operators.
type UnaryOp uint

// Unary operators.
const (
	OpNot UnaryOp = iota
	OpNeg
)

// Unary applies a unary operator.
type Unary struct {
	exprBase
	Op   UnaryOp
	Expr Expr
}

// BinaryOp enumerates the binary operators.
type BinaryOp uint

// Binary operators.
const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
)

var binaryOpStrings = []string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpEq:  "==",
	OpNeq: "!=",
	OpLt:  "<",
	OpLte: "<=",
	OpGt:  ">",
	OpGte: ">=",
	OpAnd: "&&",
	OpOr:  "||",
}

func (op BinaryOp) String() string {
	if int(op) >= len(binaryOpStrings) {
		return "invalid-op"
	}
	return binaryOpStrings[op]
}

// Binary applies a binary operator.  && and || short circuit.
type Binary struct {
	exprBase
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// Cond is if/then/else.  A nil Else evaluates to null.
type Cond struct {
	exprBase
	Cond Expr
	Then Expr
	Else Expr
}

// ErrorExpr raises a runtime error with the message produced by Expr.
type ErrorExpr struct {
	exprBase
	Expr Expr
}

// At attaches a source location to any of the node constructors below.
func At(file string, line, col int) *Location {
	return &Location{File: file, Line: line, Col: col}
}

// Convenience constructors used heavily by tests and host programs.

// Null returns a null literal node.
func Null() *LiteralNull { return &LiteralNull{} }

// Bool returns a boolean literal node.
func Bool(v bool) *LiteralBool { return &LiteralBool{Value: v} }

// Str returns a string literal node.
func Str(s string) *LiteralString { return &LiteralString{Value: s} }

// Num returns a number literal node.
func Num(x float64) *LiteralNumber { return &LiteralNumber{Value: x} }

// Ident returns a variable reference node.
func Ident(name string) *Var { return &Var{Name: name} }
