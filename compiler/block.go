package compiler

import (
	"fmt"

	"github.com/thiremani/pasgen/symbols"
	"github.com/thiremani/pasgen/token"
)

// UnitID addresses a unit in the Compiler's arena.
type UnitID int

// NoUnit is the parent of the program unit and the id of transient units.
const NoUnit UnitID = -1

type UnitKind int

const (
	ProgramUnit UnitKind = iota
	AssignmentUnit
	IOUnit
	LoopUnit
	ConditionalUnit
	JumpUnit
	ActivationUnit
)

var unitKindNames = [...]string{
	ProgramUnit:     "program",
	AssignmentUnit:  "assignment",
	IOUnit:          "io",
	LoopUnit:        "loop",
	ConditionalUnit: "conditional",
	JumpUnit:        "jump",
	ActivationUnit:  "activation",
}

func (k UnitKind) String() string {
	if k < 0 || int(k) >= len(unitKindNames) {
		return fmt.Sprintf("unit(%d)", int(k))
	}
	return unitKindNames[k]
}

// Block is one code-generation unit. The Compiler drives every unit
// through catch (while the parser has it open), then preprocess, validate,
// generatePre, its children and generatePost.
type Block interface {
	base() *unit
	catch(tok token.Token)
	preprocess(c *Compiler)
	validate(c *Compiler) bool
	generatePre(c *Compiler)
	generatePost(c *Compiler)
}

// unit is the state every Block shares.
type unit struct {
	kind         UnitKind
	id           UnitID
	parent       UnitID
	children     []UnitID
	tokens       []token.Token    // collected while open
	resolved     []symbols.Symbol // tokens mapped to symbols by preprocess
	valid        bool
	preprocessed bool
	generated    bool
	diag         *token.CompileError // first diagnostic
}

func newUnit(kind UnitKind) unit {
	return unit{kind: kind, id: NoUnit, parent: NoUnit, valid: true}
}

func (u *unit) base() *unit { return u }

func (u *unit) ID() UnitID { return u.id }

func (u *unit) Kind() UnitKind { return u.kind }

func (u *unit) Parent() UnitID { return u.parent }

func (u *unit) Children() []UnitID { return u.children }

func (u *unit) Valid() bool { return u.valid }

func (u *unit) Tokens() []token.Token { return u.tokens }

func (u *unit) Resolved() []symbols.Symbol { return u.resolved }

// keep appends tok unless it is statement punctuation or a block keyword,
// which no unit carries.
func (u *unit) keep(tok token.Token) {
	switch tok.Type {
	case token.BEGIN, token.END, token.SEMICOLON, token.PERIOD:
		return
	}
	u.tokens = append(u.tokens, tok)
}

// pos is the token diagnostics about the whole unit point at.
func (u *unit) pos() token.Token {
	if len(u.tokens) > 0 {
		return u.tokens[0]
	}
	return token.Token{}
}

// transient prepares b as a helper unit that belongs to parent without
// being part of the tree. Its tokens are fed and it is preprocessed
// immediately.
func (c *Compiler) transient(b Block, parent *unit, toks []token.Token) Block {
	u := b.base()
	u.parent = parent.id
	u.valid = true
	for _, tok := range toks {
		b.catch(tok)
	}
	u.preprocessed = true
	b.preprocess(c)
	return b
}

// generate emits a validated unit that is not part of the tree.
func (c *Compiler) generate(b Block) {
	b.generatePre(c)
	b.generatePost(c)
}

// adopt marks u invalid when the helper unit h is, keeping h's diagnostic.
func (u *unit) adopt(h Block) bool {
	hu := h.base()
	if hu.valid {
		return true
	}
	u.valid = false
	if u.diag == nil {
		u.diag = hu.diag
	}
	return false
}
