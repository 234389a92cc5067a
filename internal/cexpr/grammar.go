package cexpr

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The grammar covers integer constant expressions as they appear in enum
// initializers and #if conditions: literals, identifiers, defined(),
// function-like macro calls, and the C unary and binary operators with their
// usual precedence. The conditional operator is not supported.

type Expression struct {
	Or *LogicalOr `parser:"@@"`
}

type LogicalOr struct {
	Left  *LogicalAnd   `parser:"@@"`
	Right []*LogicalAnd `parser:"( '||' @@ )*"`
}

type LogicalAnd struct {
	Left  *BitOr   `parser:"@@"`
	Right []*BitOr `parser:"( '&&' @@ )*"`
}

type BitOr struct {
	Left  *BitXor   `parser:"@@"`
	Right []*BitXor `parser:"( '|' @@ )*"`
}

type BitXor struct {
	Left  *BitAnd   `parser:"@@"`
	Right []*BitAnd `parser:"( '^' @@ )*"`
}

type BitAnd struct {
	Left  *Equality   `parser:"@@"`
	Right []*Equality `parser:"( '&' @@ )*"`
}

type Equality struct {
	Left *Relational   `parser:"@@"`
	Ops  []*EqualityOp `parser:"@@*"`
}

type EqualityOp struct {
	Op    string      `parser:"@( '==' | '!=' )"`
	Right *Relational `parser:"@@"`
}

type Relational struct {
	Left *Shift          `parser:"@@"`
	Ops  []*RelationalOp `parser:"@@*"`
}

type RelationalOp struct {
	Op    string `parser:"@( '<=' | '>=' | '<' | '>' )"`
	Right *Shift `parser:"@@"`
}

type Shift struct {
	Left *Additive  `parser:"@@"`
	Ops  []*ShiftOp `parser:"@@*"`
}

type ShiftOp struct {
	Op    string    `parser:"@( '<<' | '>>' )"`
	Right *Additive `parser:"@@"`
}

type Additive struct {
	Left *Multiplicative `parser:"@@"`
	Ops  []*AddOp        `parser:"@@*"`
}

type AddOp struct {
	Op    string          `parser:"@( '+' | '-' )"`
	Right *Multiplicative `parser:"@@"`
}

type Multiplicative struct {
	Left *Unary   `parser:"@@"`
	Ops  []*MulOp `parser:"@@*"`
}

type MulOp struct {
	Op    string `parser:"@( '*' | '/' | '%' )"`
	Right *Unary `parser:"@@"`
}

type Unary struct {
	Op      string   `parser:"  ( @( '-' | '+' | '~' | '!' )"`
	Operand *Unary   `parser:"    @@ )"`
	Primary *Primary `parser:"| @@"`
}

type Primary struct {
	Defined *Defined    `parser:"  @@"`
	Number  *string     `parser:"| @Int"`
	Call    *Call       `parser:"| @@"`
	Ident   *string     `parser:"| @Ident"`
	Sub     *Expression `parser:"| '(' @@ ')'"`
}

// Defined is the preprocessor operator, with or without parentheses.
type Defined struct {
	Name string `parser:"'defined' ( '(' @Ident ')' | @Ident )"`
}

type Call struct {
	Name string        `parser:"@Ident '('"`
	Args []*Expression `parser:"( @@ ( ',' @@ )* )? ')'"`
}

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `0[xX][0-9a-fA-F]+[uUlL]*|[0-9]+[uUlL]*`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Op", Pattern: `<<|>>|&&|\|\||==|!=|<=|>=`},
	{Name: "Punct", Pattern: `[-+*/%&|^~!(),<>]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+|\\\n`},
})

var exprParser = participle.MustBuild[Expression](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)
