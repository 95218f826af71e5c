package compiler

import (
	"github.com/thiremani/pasgen/symbols"
	"github.com/thiremani/pasgen/token"
)

// Conditional is the then-part (If) or the else-part of an if statement.
// The parser links the two with Compiler.LinkElse once it sees `else`;
// from then on the If jumps into the Else on a false condition and both
// parts leave through the Else's exit label.
type Conditional struct {
	unit
	IsElse bool
	Else   UnitID // linked else-part of an If, NoUnit when absent

	cond    []symbols.Symbol
	partner *Conditional
	linked  bool // an Else that has been given its If

	bodyLabel string
	exitLabel string
	elseLabel string
}

func NewIf() *Conditional {
	return &Conditional{unit: newUnit(ConditionalUnit), Else: NoUnit}
}

func NewElse() *Conditional {
	return &Conditional{unit: newUnit(ConditionalUnit), IsElse: true, Else: NoUnit}
}

func (cd *Conditional) catch(tok token.Token) {
	switch tok.Type {
	case token.IF, token.THEN, token.ELSE:
		return
	}
	cd.keep(tok)
}

func (cd *Conditional) preprocess(c *Compiler) {
	if cd.IsElse {
		return
	}
	cd.cond = Postfix(c.resolveExpr(&cd.unit, cd.tokens, c.levelOf(&cd.unit)))
	cd.resolved = append(cd.resolved, cd.cond...)
	cd.bodyLabel = c.NewLabel()
	cd.exitLabel = c.NewLabel()
	if cd.Else == NoUnit {
		return
	}
	el := c.blocks[cd.Else].(*Conditional)
	el.elseLabel = cd.exitLabel
	el.exitLabel = c.NewLabel()
	cd.partner = el
}

func (cd *Conditional) validate(c *Compiler) bool {
	if !cd.valid {
		return false
	}
	if cd.IsElse {
		if !cd.linked {
			c.errorf(&cd.unit, cd.pos(), "else without matching if")
		}
		return cd.valid
	}
	checkCondition(c, &cd.unit, cd.cond)
	return cd.valid
}

func (cd *Conditional) generatePre(c *Compiler) {
	if cd.IsElse {
		return
	}
	c.evalExpr(&cd.unit, cd.cond, true)
	c.branch(cd.bodyLabel, cd.FalseTarget())
	c.emitLabel(cd.bodyLabel)
}

func (cd *Conditional) generatePost(c *Compiler) {
	switch {
	case cd.IsElse:
		c.emit("BR %s", cd.exitLabel)
		c.emitLabel(cd.exitLabel)
	case cd.partner == nil:
		c.emitLabel(cd.exitLabel)
	default:
		c.emit("BR %s", cd.partner.exitLabel)
		c.emitLabel(cd.partner.elseLabel)
	}
}

func (cd *Conditional) BodyLabel() string { return cd.bodyLabel }
func (cd *Conditional) ExitLabel() string { return cd.exitLabel }

// ElseLabel is where an Else's code starts; empty for an If.
func (cd *Conditional) ElseLabel() string { return cd.elseLabel }

// FalseTarget is where an If jumps when its condition is false.
func (cd *Conditional) FalseTarget() string {
	if cd.partner != nil {
		return cd.partner.elseLabel
	}
	return cd.exitLabel
}

// JoinLabel is the label both branches of the statement end at.
func (cd *Conditional) JoinLabel() string {
	if cd.partner != nil {
		return cd.partner.exitLabel
	}
	return cd.exitLabel
}
