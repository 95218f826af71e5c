package symbols

import (
	"github.com/thiremani/pasgen/token"
	"github.com/thiremani/pasgen/types"
)

type ConstKind int

const (
	IntLit ConstKind = iota
	FloatLit
	StringLit
	BoolLit
	Operator
	LParen
	RParen
)

// Constant is a literal operand or an operator/parenthesis marker of an
// expression. Constants are never stored in a Table.
type Constant struct {
	header
	Const ConstKind
	Op    token.TokenType // operator kind, literal kind for literals
	Text  string
}

func (c *Constant) Kind() Kind { return ConstantKind }

func (c *Constant) String() string { return c.Text }

// IsLiteral reports whether c is an operand rather than an operator or parenthesis.
func (c *Constant) IsLiteral() bool {
	return c.Const <= BoolLit
}

func (c *Constant) IsOperator() bool { return c.Const == Operator }

// IsUnary reports whether c is an operator that binds to the single value after it.
func (c *Constant) IsUnary() bool {
	return c.Const == Operator && c.Op == token.NOT
}

// Type is the value type of a literal; operators and parentheses are Void.
func (c *Constant) Type() types.ValueType {
	switch c.Const {
	case IntLit:
		return types.Integer
	case FloatLit:
		return types.Float
	case StringLit:
		return types.String
	case BoolLit:
		return types.Boolean
	}
	return types.Void
}

var constKinds = map[token.TokenType]ConstKind{
	token.INT:    IntLit,
	token.FLOAT:  FloatLit,
	token.STRING: StringLit,
	token.TRUE:   BoolLit,
	token.FALSE:  BoolLit,
	token.LPAREN: LParen,
	token.RPAREN: RParen,
}

// NewConstant classifies tok as an expression constant at the given level.
// It reports false for identifiers, keywords and punctuation that cannot
// appear inside an expression.
func NewConstant(tok token.Token, level int) (*Constant, bool) {
	ck, ok := constKinds[tok.Type]
	if !ok {
		if tok.Type == token.ASSIGN || !tok.IsOperator() || tok.Type == token.COMMA ||
			tok.Type == token.SEMICOLON || tok.Type == token.COLON || tok.Type == token.PERIOD {
			return nil, false
		}
		ck = Operator
	}
	text := tok.Literal
	if text == "" {
		text = tok.Type.String()
	}
	scope := Global
	if level > 0 {
		scope = Local
	}
	return &Constant{
		header: header{id: NoID, name: text, scope: scope, level: level},
		Const:  ck,
		Op:     tok.Type,
		Text:   text,
	}, true
}
