package compiler

import "github.com/thiremani/pasgen/token"

// Jump branches over its children. Routine bodies are wrapped in one so
// straight-line execution never falls into code reached only by CALL.
type Jump struct {
	unit
	skip string
}

func NewJump() *Jump {
	return &Jump{unit: newUnit(JumpUnit)}
}

func (j *Jump) catch(token.Token) {}

func (j *Jump) preprocess(c *Compiler) {
	if len(j.children) > 0 {
		j.skip = c.NewLabel()
	}
}

func (j *Jump) validate(*Compiler) bool { return j.valid }

func (j *Jump) generatePre(c *Compiler) {
	if j.skip != "" {
		c.emit("BR %s", j.skip)
	}
}

func (j *Jump) generatePost(c *Compiler) {
	if j.skip != "" {
		c.emitLabel(j.skip)
	}
}

// SkipLabel is the label after the children, empty when there are none.
func (j *Jump) SkipLabel() string { return j.skip }
