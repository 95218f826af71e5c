package compiler

import (
	"fmt"

	"github.com/thiremani/pasgen/symbols"
	"github.com/thiremani/pasgen/token"
)

// Program is the root unit. It owns the output stream and the global
// frame.
type Program struct {
	unit
	Name    string
	globals []*symbols.Data
}

func NewProgram() *Program {
	return &Program{unit: newUnit(ProgramUnit)}
}

// catch keeps the program identifier; everything else reaching the root
// belongs to declarations the table already recorded.
func (p *Program) catch(tok token.Token) {
	if p.Name == "" && tok.Type == token.IDENT {
		p.Name = tok.Literal
		p.tokens = append(p.tokens, tok)
	}
}

func (p *Program) preprocess(c *Compiler) {
	p.globals = symbols.FilterData(c.Symbols.Globals())
	for _, d := range p.globals {
		p.resolved = append(p.resolved, d)
	}
}

func (p *Program) validate(c *Compiler) bool {
	if p.Name == "" {
		c.errorf(&p.unit, p.pos(), "program has no name")
	}
	return p.valid
}

func (p *Program) generatePre(c *Compiler) {
	if err := c.out.Open(p.Name); err != nil {
		c.writeErr = fmt.Errorf("open output for %s: %w", p.Name, err)
		return
	}
	c.emit("MOV SP D0")
	for _, d := range p.globals {
		c.emit("PUSH %s", zeroLiteral(d.Type))
	}
}

func (p *Program) generatePost(c *Compiler) {
	c.emit("HLT")
	if err := c.out.Close(); err != nil && c.writeErr == nil {
		c.writeErr = fmt.Errorf("close output for %s: %w", p.Name, err)
	}
}

// Globals returns the level-0 variables the program frame holds, known
// after generation started.
func (p *Program) Globals() []*symbols.Data {
	return p.globals
}
