package compiler

import (
	"errors"
	"strings"

	"github.com/thiremani/pasgen/symbols"
	"github.com/thiremani/pasgen/token"
	"github.com/thiremani/pasgen/types"
)

// Postfix reorders an infix expression into operand-before-operator form.
//
// It is a shunting yard with one extension for unary operators: `not` is
// pushed without comparing precedence and is popped as soon as the value
// it applies to is complete, i.e. right after the next operand or after
// the ')' closing the next parenthesized group.
func Postfix(infix []symbols.Symbol) []symbols.Symbol {
	out := make([]symbols.Symbol, 0, len(infix))
	var ops []*symbols.Constant

	pop := func() *symbols.Constant {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		return top
	}
	popUnary := func() {
		if len(ops) > 0 && ops[len(ops)-1].IsUnary() {
			out = append(out, pop())
		}
	}

	for _, s := range infix {
		k, isConst := s.(*symbols.Constant)
		switch {
		case !isConst || k.IsLiteral():
			out = append(out, s)
			popUnary()
		case k.IsUnary(), k.Const == symbols.LParen:
			ops = append(ops, k)
		case k.Const == symbols.RParen:
			for len(ops) > 0 && ops[len(ops)-1].Const != symbols.LParen {
				out = append(out, pop())
			}
			if len(ops) > 0 {
				pop()
			}
			popUnary()
		default:
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Const == symbols.LParen || Precedence(top.Op) < Precedence(k.Op) {
					break
				}
				out = append(out, pop())
			}
			ops = append(ops, k)
		}
	}
	for len(ops) > 0 {
		if top := pop(); top.Const != symbols.LParen {
			out = append(out, top)
		}
	}
	return out
}

// resolveExpr maps expression tokens to symbols: identifiers to Data
// visible at level, everything else to constants.
func (c *Compiler) resolveExpr(u *unit, toks []token.Token, level int) []symbols.Symbol {
	syms := make([]symbols.Symbol, 0, len(toks))
	for _, tok := range toks {
		if tok.Type == token.IDENT {
			d, ok := c.resolveData(u, tok, level)
			if ok {
				syms = append(syms, d)
			}
			continue
		}
		k, ok := symbols.NewConstant(tok, level)
		if !ok {
			c.errorf(u, tok, "unexpected %s in expression", tok)
			continue
		}
		syms = append(syms, k)
	}
	return syms
}

func (c *Compiler) resolveData(u *unit, tok token.Token, level int) (*symbols.Data, bool) {
	d, err := c.Symbols.ResolveData(tok.Literal, level)
	if err != nil {
		c.unresolved(u, tok, "identifier", err)
		return nil, false
	}
	return d, true
}

func (c *Compiler) unresolved(u *unit, tok token.Token, what string, err error) {
	if errors.Is(err, symbols.ErrRedefined) {
		c.errorf(u, tok, "%s %s redefined", what, tok.Literal)
		return
	}
	c.errorf(u, tok, "%s %s not found", what, tok.Literal)
}

// evalExpr walks a postfix expression and returns its result type. With
// emit set it writes the instructions; otherwise it only type checks,
// reporting errors against u. Validation uses the dry run, so a unit that
// passed validate never fails while emitting.
func (c *Compiler) evalExpr(u *unit, postfix []symbols.Symbol, emit bool) types.ValueType {
	g := exprGen{c: c, u: u, emit: emit}
	if len(postfix) == 0 {
		c.errorf(u, u.pos(), "empty expression")
		return types.Void
	}
	for _, s := range postfix {
		switch v := s.(type) {
		case *symbols.Data:
			g.operand(v.Type, "PUSH "+operand(v), v.Name())
		case *symbols.Constant:
			if v.IsLiteral() {
				g.operand(v.Type(), "PUSH #"+literalText(v), v.Text)
				continue
			}
			g.line(Opcode(v.Op, g.running))
			if isRelational(v.Op) {
				g.running = types.Boolean
			}
		}
	}
	return g.running
}

// exprGen carries the running type of the value on top of the stack.
type exprGen struct {
	c       *Compiler
	u       *unit
	emit    bool
	seeded  bool
	running types.ValueType
}

func (g *exprGen) line(s string) {
	if g.emit {
		g.c.emit("%s", s)
	}
}

// operand pushes a value of type vt. Integer/float mixes widen to float:
// the running value is cast before the push, or the pushed value right
// after it.
func (g *exprGen) operand(vt types.ValueType, push, name string) {
	if !g.seeded {
		g.seeded = true
		g.running = vt
		g.line(push)
		return
	}
	switch {
	case g.running == types.Integer && vt == types.Float:
		g.running = g.cast(types.Integer, types.Float, name)
		g.line(push)
	case g.running == types.Float && vt == types.Integer:
		g.line(push)
		g.running = g.cast(types.Integer, types.Float, name)
	default:
		g.running = g.cast(g.running, vt, name)
		g.line(push)
	}
}

func (g *exprGen) cast(from, to types.ValueType, name string) types.ValueType {
	return g.c.makeCast(g.u, from, to, g.emit, name)
}

// makeCast converts the value on top of the stack from v1 to v2 and
// returns the resulting type.
//
// Integer and float convert into each other. String and void never mix
// with another type. A boolean paired with a non-boolean passes unchanged
// and without error.
func (c *Compiler) makeCast(u *unit, v1, v2 types.ValueType, emit bool, name string) types.ValueType {
	switch {
	case v1 == v2:
		return v2
	case v1 == types.Integer && v2 == types.Float:
		if emit {
			c.emit("CASTSF")
		}
		return v2
	case v1 == types.Float && v2 == types.Integer:
		if emit {
			c.emit("CASTSI")
		}
		return v2
	case v1.Opaque() || v2.Opaque():
		tok := u.pos()
		if name != "" {
			tok = findToken(u, name)
		}
		c.errorf(u, tok, "type mismatch: cannot use %s as %s", v1, v2)
		return types.Void
	}
	return v2
}

// findToken returns the first token of u spelled name, u.pos() if none.
func findToken(u *unit, name string) token.Token {
	for _, tok := range u.tokens {
		if tok.Literal == name {
			return tok
		}
	}
	return u.pos()
}

// literalText renders a literal operand of PUSH #.
func literalText(k *symbols.Constant) string {
	switch k.Const {
	case symbols.BoolLit:
		if strings.EqualFold(k.Text, "true") {
			return "1"
		}
		return "0"
	case symbols.StringLit:
		return quote(k.Text)
	}
	return k.Text
}

// quote turns a Pascal string literal ('it''s') into the double-quoted
// form of the instruction stream ("it's").
func quote(lit string) string {
	s := lit
	if len(s) >= 2 && (s[0] == '\'' && s[len(s)-1] == '\'' || s[0] == '"' && s[len(s)-1] == '"') {
		delim := s[:1]
		s = strings.ReplaceAll(s[1:len(s)-1], delim+delim, delim)
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// operand is the address operand of d: its slot, or through its slot
// (@off(Dn)) when the slot holds the address of a var argument.
func operand(d *symbols.Data) string {
	if d.Indirect() {
		return "@" + d.Addr.String()
	}
	return d.Addr.String()
}

// zeroLiteral is the initial value pushed for a fresh slot of type vt.
func zeroLiteral(vt types.ValueType) string {
	switch vt {
	case types.String:
		return `#""`
	case types.Float:
		return "#0.0"
	}
	return "#0"
}

// stripParens drops one pair of parentheses enclosing all of toks.
func stripParens(toks []token.Token) []token.Token {
	if len(toks) < 2 || toks[0].Type != token.LPAREN || toks[len(toks)-1].Type != token.RPAREN {
		return toks
	}
	depth := 0
	for i, tok := range toks {
		switch tok.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 && i != len(toks)-1 {
				return toks
			}
		}
	}
	return toks[1 : len(toks)-1]
}

// splitArgs splits toks on commas outside parentheses.
func splitArgs(toks []token.Token) [][]token.Token {
	if len(toks) == 0 {
		return nil
	}
	var parts [][]token.Token
	depth, start := 0, 0
	for i, tok := range toks {
		switch tok.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.COMMA:
			if depth == 0 {
				parts = append(parts, toks[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, toks[start:])
}
