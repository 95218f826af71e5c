package compiler

import (
	"github.com/thiremani/pasgen/symbols"
	"github.com/thiremani/pasgen/token"
	"github.com/thiremani/pasgen/types"
)

// IO is a read/readln or write/writeln statement.
type IO struct {
	unit
	Write   bool
	Newline bool
	targets []*symbols.Data
	parts   [][]symbols.Symbol // postfix of each written expression
}

func NewRead() *IO {
	return &IO{unit: newUnit(IOUnit)}
}

// NewWrite builds a write statement; newline selects writeln. A WRITELN
// token caught later sets it as well.
func NewWrite(newline bool) *IO {
	return &IO{unit: newUnit(IOUnit), Write: true, Newline: newline}
}

func (o *IO) catch(tok token.Token) {
	switch tok.Type {
	case token.WRITELN:
		o.Newline = true
		return
	case token.WRITE, token.READ, token.READLN:
		return
	}
	o.keep(tok)
}

func (o *IO) preprocess(c *Compiler) {
	level := c.levelOf(&o.unit)
	if o.Write {
		for _, part := range splitArgs(stripParens(o.tokens)) {
			infix := c.resolveExpr(&o.unit, part, level)
			o.resolved = append(o.resolved, infix...)
			o.parts = append(o.parts, Postfix(infix))
		}
		return
	}

	for _, tok := range o.tokens {
		switch {
		case tok.Type == token.LPAREN, tok.Type == token.RPAREN, tok.Type == token.COMMA:
		case tok.Type == token.IDENT:
			if d, ok := c.resolveData(&o.unit, tok, level); ok {
				o.targets = append(o.targets, d)
				o.resolved = append(o.resolved, d)
			}
		case tok.IsLiteral(), tok.IsOperator():
			c.errorf(&o.unit, tok, "cannot read into constant %s", tok)
		default:
			c.errorf(&o.unit, tok, "unexpected %s in read", tok)
		}
	}
}

func (o *IO) validate(c *Compiler) bool {
	if !o.valid {
		return false
	}
	for _, part := range o.parts {
		c.evalExpr(&o.unit, part, false)
	}
	for _, d := range o.targets {
		if d.Type == types.Void {
			c.errorf(&o.unit, findToken(&o.unit, d.Name()), "cannot read into %s of type %s", d.Name(), d.Type)
		}
	}
	return o.valid
}

func (o *IO) generatePre(c *Compiler) {
	for _, part := range o.parts {
		c.evalExpr(&o.unit, part, true)
		c.emit("WRTS")
	}
	for _, d := range o.targets {
		c.emit("%s %s", readOp(d.Type), operand(d))
	}
}

func (o *IO) generatePost(c *Compiler) {
	if o.Write && o.Newline {
		c.emit("WRTLNS")
	}
}

func readOp(vt types.ValueType) string {
	switch vt {
	case types.Float:
		return "RDF"
	case types.String:
		return "RDS"
	}
	return "RD"
}
