package compiler

import (
	"errors"
	"fmt"

	"github.com/thiremani/pasgen/output"
	"github.com/thiremani/pasgen/symbols"
	"github.com/thiremani/pasgen/token"
)

var (
	ErrInvalidUnit      = errors.New("invalid unit")
	ErrAlreadyGenerated = errors.New("program already generated")
	ErrCloseRoot        = errors.New("cannot close the program unit")
	ErrNotConditional   = errors.New("unit is not a conditional")
	ErrAlreadyLinked    = errors.New("else already linked")
)

// Compiler owns the unit tree of one program. The parser feeds it tokens
// and opens/closes units; GenerateAll then walks the tree once and writes
// the stack-machine program to the output sink.
type Compiler struct {
	Symbols *symbols.Table
	Errors  []*token.CompileError

	blocks   []Block
	open     []UnitID // open-unit stack, the program unit at the base
	labels   int
	entries  map[symbols.ID]string // entry label per callable
	out      output.Sink
	writeErr error
	done     bool
}

func NewCompiler(table *symbols.Table, out output.Sink) *Compiler {
	c := &Compiler{
		Symbols: table,
		Errors:  []*token.CompileError{},
		entries: make(map[symbols.ID]string),
		out:     out,
	}
	root := c.attach(NewProgram(), NoUnit)
	c.open = []UnitID{root}
	return c
}

func (c *Compiler) attach(b Block, parent UnitID) UnitID {
	u := b.base()
	u.id = UnitID(len(c.blocks))
	u.parent = parent
	u.valid = true
	c.blocks = append(c.blocks, b)
	if parent != NoUnit {
		p := c.blocks[parent].base()
		p.children = append(p.children, u.id)
	}
	return u.id
}

// Program returns the root unit.
func (c *Compiler) Program() *Program {
	return c.blocks[0].(*Program)
}

// Block returns the unit with the given id, nil when out of range.
func (c *Compiler) Block(id UnitID) Block {
	if id < 0 || int(id) >= len(c.blocks) {
		return nil
	}
	return c.blocks[id]
}

// Current is the innermost open unit.
func (c *Compiler) Current() UnitID {
	return c.open[len(c.open)-1]
}

// FeedToken hands tok to the innermost open unit.
func (c *Compiler) FeedToken(tok token.Token) {
	c.blocks[c.Current()].catch(tok)
}

// AppendBlock adds b as the last child of the current unit and opens it.
func (c *Compiler) AppendBlock(b Block) UnitID {
	id := c.attach(b, c.Current())
	c.open = append(c.open, id)
	T().Debugf("open %s unit %d under %d", b.base().kind, id, b.base().parent)
	return id
}

// CloseBlock closes the current unit. The program unit is never closed.
func (c *Compiler) CloseBlock() error {
	if len(c.open) == 1 {
		return ErrCloseRoot
	}
	c.open = c.open[:len(c.open)-1]
	return nil
}

// LinkElse pairs an if unit with the else unit that follows it.
func (c *Compiler) LinkElse(ifID, elseID UnitID) error {
	ifc, ok := c.Block(ifID).(*Conditional)
	if !ok || ifc.IsElse {
		return fmt.Errorf("link else: unit %d: %w", ifID, ErrNotConditional)
	}
	elc, ok := c.Block(elseID).(*Conditional)
	if !ok || !elc.IsElse {
		return fmt.Errorf("link else: unit %d: %w", elseID, ErrNotConditional)
	}
	if ifc.Else != NoUnit || elc.linked {
		return fmt.Errorf("link else %d to if %d: %w", elseID, ifID, ErrAlreadyLinked)
	}
	ifc.Else = elseID
	elc.linked = true
	return nil
}

// NewLabel returns a branch target never handed out before by c.
func (c *Compiler) NewLabel() string {
	c.labels++
	return fmt.Sprintf("L%d", c.labels)
}

// entryLabel is the label a callable's code starts at. Calls and the
// definition may ask in any order.
func (c *Compiler) entryLabel(callable *symbols.Callable) string {
	if l, ok := c.entries[callable.ID()]; ok {
		return l
	}
	l := c.NewLabel()
	c.entries[callable.ID()] = l
	return l
}

// levelOf counts the activation units above u: the nesting level code in
// u runs at.
func (c *Compiler) levelOf(u *unit) int {
	n := 0
	for p := u.parent; p != NoUnit; p = c.blocks[p].base().parent {
		if c.blocks[p].base().kind == ActivationUnit {
			n++
		}
	}
	return n
}

// Level is the nesting level of the unit with the given id.
func (c *Compiler) Level(id UnitID) int {
	return c.levelOf(c.blocks[id].base())
}

func (c *Compiler) emit(format string, args ...any) {
	if c.writeErr != nil {
		return
	}
	if err := c.out.WriteLine(fmt.Sprintf(format, args...)); err != nil {
		c.writeErr = err
	}
}

func (c *Compiler) emitLabel(label string) {
	c.emit("%s:", label)
}

// errorf records a diagnostic against u and marks it invalid.
func (c *Compiler) errorf(u *unit, tok token.Token, format string, args ...any) {
	ce := &token.CompileError{Token: tok, Msg: fmt.Sprintf(format, args...)}
	u.valid = false
	if u.diag == nil {
		u.diag = ce
	}
	c.Errors = append(c.Errors, ce)
	T().Errorf("%s", ce)
}

// GenerateAll preprocesses, validates and generates every unit, depth
// first. The first invalid unit stops the walk and closes the output;
// lines already written stay. A program is generated at most once.
func (c *Compiler) GenerateAll() error {
	if c.done {
		return ErrAlreadyGenerated
	}
	c.done = true

	T().Infof("generating %d units", len(c.blocks))
	if err := c.walk(0); err != nil {
		if cerr := c.out.Close(); cerr != nil {
			T().Errorf("close output: %v", cerr)
		}
		T().Errorf("generation aborted: %v", err)
		return err
	}
	T().Infof("generated program %s", c.Program().Name)
	return nil
}

func (c *Compiler) walk(id UnitID) error {
	b := c.blocks[id]
	u := b.base()
	if u.generated {
		return nil
	}

	if !u.preprocessed {
		u.preprocessed = true
		b.preprocess(c)
	}
	if !u.valid || !b.validate(c) {
		return c.invalid(u)
	}
	u.generated = true

	T().Debugf("generate %s unit %d", u.kind, id)
	b.generatePre(c)
	if c.writeErr != nil {
		return c.writeErr
	}
	for _, child := range u.children {
		if err := c.walk(child); err != nil {
			return err
		}
	}
	b.generatePost(c)

	if !u.valid {
		return c.invalid(u)
	}
	return c.writeErr
}

func (c *Compiler) invalid(u *unit) error {
	if u.diag != nil {
		return fmt.Errorf("%w: %s unit %d: %s", ErrInvalidUnit, u.kind, u.id, u.diag)
	}
	return fmt.Errorf("%w: %s unit %d", ErrInvalidUnit, u.kind, u.id)
}
