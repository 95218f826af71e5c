package compiler

import (
	"github.com/thiremani/pasgen/symbols"
	"github.com/thiremani/pasgen/token"
)

type Activity int

const (
	Definition Activity = iota // a routine body
	Call                       // a call site
)

func (a Activity) String() string {
	if a == Call {
		return "call"
	}
	return "definition"
}

// Activation is the entry and exit code of a routine, or one call to it.
type Activation struct {
	unit
	Activity Activity
	Callable *symbols.Callable
	locals   []*symbols.Data
	args     []argument
}

type argument struct {
	param   symbols.Param
	at      token.Token
	ref     *symbols.Data // by-reference argument
	postfix []symbols.Symbol
}

// NewDefinition wraps the body of the routine named by the first
// identifier it catches.
func NewDefinition() *Activation {
	return &Activation{unit: newUnit(ActivationUnit), Activity: Definition}
}

// NewCall is a call statement: the routine name followed by an optional
// parenthesized argument list.
func NewCall() *Activation {
	return &Activation{unit: newUnit(ActivationUnit), Activity: Call}
}

func (a *Activation) catch(tok token.Token) {
	switch tok.Type {
	case token.PROCEDURE, token.FUNCTION:
		return
	}
	if a.Activity == Definition && (len(a.tokens) > 0 || tok.Type != token.IDENT) {
		return
	}
	a.keep(tok)
}

func (a *Activation) preprocess(c *Compiler) {
	if len(a.tokens) == 0 || a.tokens[0].Type != token.IDENT {
		c.errorf(&a.unit, a.pos(), "%s without a routine name", a.Activity)
		return
	}
	name := a.tokens[0]
	callable, err := c.Symbols.ResolveCallable(name.Literal, c.levelOf(&a.unit))
	if err != nil {
		if a.Activity == Call {
			c.errorf(&a.unit, name, "caller %s not declared", name.Literal)
		} else {
			c.unresolved(&a.unit, name, "routine", err)
		}
		return
	}
	a.Callable = callable
	a.resolved = append(a.resolved, callable)

	if a.Activity == Definition {
		a.locals = c.Symbols.Locals(callable)
		return
	}
	a.preprocessArgs(c, a.tokens[1:])
}

func (a *Activation) preprocessArgs(c *Compiler, toks []token.Token) {
	name := a.Callable.Name()
	parts := splitArgs(stripParens(toks))
	if len(parts) != len(a.Callable.Params) {
		c.errorf(&a.unit, a.pos(), "%s expects %d arguments, got %d", name, len(a.Callable.Params), len(parts))
		return
	}
	level := c.levelOf(&a.unit)
	for i, part := range parts {
		arg := argument{param: a.Callable.Params[i]}
		if len(part) == 0 {
			c.errorf(&a.unit, a.pos(), "argument %d of %s is empty", i+1, name)
			continue
		}
		arg.at = part[0]
		if arg.param.Mode == symbols.ByReference {
			if len(part) != 1 || part[0].Type != token.IDENT {
				c.errorf(&a.unit, part[0], "argument %d of %s must be a variable", i+1, name)
				continue
			}
			if d, ok := c.resolveData(&a.unit, part[0], level); ok {
				arg.ref = d
				a.resolved = append(a.resolved, d)
			}
		} else {
			infix := c.resolveExpr(&a.unit, part, level)
			a.resolved = append(a.resolved, infix...)
			arg.postfix = Postfix(infix)
		}
		a.args = append(a.args, arg)
	}
}

func (a *Activation) validate(c *Compiler) bool {
	if !a.valid || a.Activity == Definition {
		return a.valid
	}
	for _, arg := range a.args {
		if arg.ref != nil {
			if arg.ref.Type != arg.param.Type {
				c.errorf(&a.unit, arg.at, "type mismatch: cannot pass %s %s as var %s", arg.ref.Type, arg.ref.Name(), arg.param.Type)
			}
			continue
		}
		vt := c.evalExpr(&a.unit, arg.postfix, false)
		c.makeCast(&a.unit, vt, arg.param.Type, false, "")
	}
	return a.valid
}

func (a *Activation) generatePre(c *Compiler) {
	entry := c.entryLabel(a.Callable)
	if a.Activity == Definition {
		c.emitLabel(entry)
		for _, d := range a.locals {
			c.emit("PUSH %s", zeroLiteral(d.Type))
		}
		return
	}

	for _, arg := range a.args {
		if arg.ref != nil {
			c.emit("PUSH %s", reference(arg.ref))
			continue
		}
		vt := c.evalExpr(&a.unit, arg.postfix, true)
		c.makeCast(&a.unit, vt, arg.param.Type, true, "")
	}
	c.emit("CALL %s", entry)
	if n := len(a.args); n > 0 {
		c.emit("SUB SP #%d SP", n)
	}
}

func (a *Activation) generatePost(c *Compiler) {
	if a.Activity == Call {
		return
	}
	if n := len(a.locals); n > 0 {
		c.emit("SUB SP #%d SP", n)
	}
	c.emit("RET")
}

// reference is the operand that pushes the address of d. A var argument
// already holds one, so it is passed on as is.
func reference(d *symbols.Data) string {
	if d.Indirect() {
		return d.Addr.String()
	}
	return "&" + d.Addr.String()
}

// Locals are the frame slots a definition pushes on entry.
func (a *Activation) Locals() []*symbols.Data {
	return a.locals
}
