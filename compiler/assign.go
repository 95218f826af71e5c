package compiler

import (
	"github.com/thiremani/pasgen/symbols"
	"github.com/thiremani/pasgen/token"
	"github.com/thiremani/pasgen/types"
)

// Assignment evaluates an expression and, unless it is expression-only,
// pops the result into a target variable.
type Assignment struct {
	unit
	ExprOnly bool
	Target   *symbols.Data
	postfix  []symbols.Symbol
	result   types.ValueType
}

// NewAssignment is `target := expr`.
func NewAssignment() *Assignment {
	return &Assignment{unit: newUnit(AssignmentUnit)}
}

// NewExpression evaluates an expression and leaves the value on the stack.
func NewExpression() *Assignment {
	return &Assignment{unit: newUnit(AssignmentUnit), ExprOnly: true}
}

func (a *Assignment) catch(tok token.Token) {
	if tok.Type == token.ASSIGN {
		return
	}
	a.keep(tok)
}

func (a *Assignment) preprocess(c *Compiler) {
	level := c.levelOf(&a.unit)
	expr := a.tokens
	if !a.ExprOnly {
		if len(expr) == 0 {
			c.errorf(&a.unit, a.pos(), "assignment has no target")
			return
		}
		target := expr[0]
		expr = expr[1:]
		if target.Type != token.IDENT {
			c.errorf(&a.unit, target, "cannot assign to %s", target)
			return
		}
		if d, ok := c.resolveData(&a.unit, target, level); ok {
			a.Target = d
			a.resolved = append(a.resolved, d)
		}
	}
	infix := c.resolveExpr(&a.unit, expr, level)
	a.resolved = append(a.resolved, infix...)
	a.postfix = Postfix(infix)
}

func (a *Assignment) validate(c *Compiler) bool {
	if !a.valid {
		return false
	}
	vt := c.evalExpr(&a.unit, a.postfix, false)
	if a.Target != nil {
		c.makeCast(&a.unit, vt, a.Target.Type, false, a.Target.Name())
	}
	return a.valid
}

func (a *Assignment) generatePre(c *Compiler) {
	a.result = c.evalExpr(&a.unit, a.postfix, true)
}

func (a *Assignment) generatePost(c *Compiler) {
	if a.Target == nil {
		return
	}
	c.makeCast(&a.unit, a.result, a.Target.Type, true, a.Target.Name())
	c.emit("POP %s", operand(a.Target))
}

// Postfix is the expression in evaluation order, after preprocess.
func (a *Assignment) Postfix() []symbols.Symbol {
	return a.postfix
}
