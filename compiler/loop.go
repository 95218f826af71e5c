package compiler

import (
	"github.com/thiremani/pasgen/symbols"
	"github.com/thiremani/pasgen/token"
	"github.com/thiremani/pasgen/types"
)

type LoopKind int

const (
	WhileLoop LoopKind = iota
	RepeatLoop
	ForLoop
)

func (k LoopKind) String() string {
	switch k {
	case WhileLoop:
		return "while"
	case RepeatLoop:
		return "repeat"
	}
	return "for"
}

// Loop is a while, repeat-until or counted for loop around its children.
type Loop struct {
	unit
	Form LoopKind
	Down bool // for ... downto

	Control *symbols.Data // for control variable
	cond    []symbols.Symbol

	condLabel string
	bodyLabel string
	exitLabel string

	// helper units of a for loop
	init *Assignment
	test *Assignment
	step *Assignment
}

func NewWhile() *Loop {
	return &Loop{unit: newUnit(LoopUnit), Form: WhileLoop}
}

func NewRepeat() *Loop {
	return &Loop{unit: newUnit(LoopUnit), Form: RepeatLoop}
}

func NewFor() *Loop {
	return &Loop{unit: newUnit(LoopUnit), Form: ForLoop}
}

func (l *Loop) catch(tok token.Token) {
	switch tok.Type {
	case token.WHILE, token.DO, token.REPEAT, token.UNTIL, token.FOR:
		return
	case token.DOWNTO:
		l.Down = true
	}
	l.keep(tok)
}

func (l *Loop) preprocess(c *Compiler) {
	if l.Form == ForLoop {
		l.preprocessFor(c)
		return
	}
	l.cond = Postfix(c.resolveExpr(&l.unit, l.tokens, c.levelOf(&l.unit)))
	l.resolved = append(l.resolved, l.cond...)
	if l.Form == WhileLoop {
		l.condLabel = c.NewLabel()
	}
	l.bodyLabel = c.NewLabel()
	l.exitLabel = c.NewLabel()
}

// preprocessFor splits `v := init to bound` and builds the helper units:
//
//	v := init
//	not ( v - 1 = ( bound ) )    downto tests v + 1
//	v := v + 1                   downto steps v - 1
func (l *Loop) preprocessFor(c *Compiler) {
	toks := l.tokens
	split := -1
	for i, tok := range toks {
		if tok.Type == token.TO || tok.Type == token.DOWNTO {
			split = i
			break
		}
	}
	if len(toks) < 2 || toks[0].Type != token.IDENT || toks[1].Type != token.ASSIGN ||
		split < 3 || split == len(toks)-1 {
		c.errorf(&l.unit, l.pos(), "malformed for loop")
		return
	}

	v := toks[0]
	d, ok := c.resolveData(&l.unit, v, c.levelOf(&l.unit))
	if !ok {
		return
	}
	if d.Type != types.Integer {
		c.errorf(&l.unit, v, "for control variable %s must be integer, got %s", v.Literal, d.Type)
		return
	}
	l.Control = d
	l.resolved = append(l.resolved, d)

	at := func(tt token.TokenType, lit string) token.Token {
		return token.Token{Type: tt, Literal: lit, Line: v.Line, Column: v.Column}
	}
	one := at(token.INT, "1")
	inc, stop := at(token.ADD, "+"), at(token.SUB, "-")
	if l.Down {
		inc, stop = stop, inc
	}

	l.init = c.transient(NewAssignment(), &l.unit, toks[:split]).(*Assignment)

	test := []token.Token{at(token.NOT, "not"), at(token.LPAREN, "("), v, stop, one, at(token.EQL, "="), at(token.LPAREN, "(")}
	test = append(test, toks[split+1:]...)
	test = append(test, at(token.RPAREN, ")"), at(token.RPAREN, ")"))
	l.test = c.transient(NewExpression(), &l.unit, test).(*Assignment)

	l.step = c.transient(NewAssignment(), &l.unit, []token.Token{v, at(token.ASSIGN, ":="), v, inc, one}).(*Assignment)

	l.condLabel = c.NewLabel()
	l.bodyLabel = c.NewLabel()
	l.exitLabel = c.NewLabel()
}

func (l *Loop) validate(c *Compiler) bool {
	if !l.valid {
		return false
	}
	if l.Form != ForLoop {
		checkCondition(c, &l.unit, l.cond)
		return l.valid
	}
	if l.init.validate(c) && l.test.valid {
		checkCondition(c, &l.test.unit, l.test.postfix)
		if l.test.valid {
			l.step.validate(c)
		}
	}
	return l.adopt(l.init) && l.adopt(l.test) && l.adopt(l.step)
}

// checkCondition type checks a loop or branch condition, reporting
// against u.
func checkCondition(c *Compiler, u *unit, postfix []symbols.Symbol) {
	vt := c.evalExpr(u, postfix, false)
	if u.valid && vt != types.Boolean {
		c.errorf(u, u.pos(), "condition must be boolean, got %s", vt)
	}
}

func (l *Loop) generatePre(c *Compiler) {
	switch l.Form {
	case WhileLoop:
		c.emitLabel(l.condLabel)
		c.evalExpr(&l.unit, l.cond, true)
		c.branch(l.bodyLabel, l.exitLabel)
		c.emitLabel(l.bodyLabel)
	case RepeatLoop:
		c.emitLabel(l.bodyLabel)
	case ForLoop:
		c.generate(l.init)
		c.emitLabel(l.condLabel)
		c.generate(l.test)
		c.branch(l.bodyLabel, l.exitLabel)
		c.emitLabel(l.bodyLabel)
	}
}

func (l *Loop) generatePost(c *Compiler) {
	switch l.Form {
	case WhileLoop:
		c.emit("BR %s", l.condLabel)
	case RepeatLoop:
		c.evalExpr(&l.unit, l.cond, true)
		c.branch(l.exitLabel, l.bodyLabel)
	case ForLoop:
		c.generate(l.step)
		c.emit("BR %s", l.condLabel)
	}
	c.emitLabel(l.exitLabel)
}

// branch consumes the boolean on the stack, jumping to yes when it is true
// and to no otherwise.
func (c *Compiler) branch(yes, no string) {
	c.emit("BRTS %s", yes)
	c.emit("BR %s", no)
}

func (l *Loop) CondLabel() string { return l.condLabel }
func (l *Loop) BodyLabel() string { return l.bodyLabel }
func (l *Loop) ExitLabel() string { return l.exitLabel }

// Init, Test and Step are the helper units of a for loop, nil otherwise.
func (l *Loop) Init() *Assignment { return l.init }
func (l *Loop) Test() *Assignment { return l.test }
func (l *Loop) Step() *Assignment { return l.step }
