package symbols

import (
	"fmt"

	"github.com/thiremani/pasgen/types"
)

// ID addresses a symbol in a Table's arena.
type ID int

// NoID marks an absent owner or parent (the global list).
const NoID ID = -1

type Kind int

const (
	DataKind Kind = iota
	CallableKind
	ConstantKind
)

func (k Kind) String() string {
	switch k {
	case DataKind:
		return "data"
	case CallableKind:
		return "callable"
	case ConstantKind:
		return "constant"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

type ScopeKind int

const (
	Global ScopeKind = iota
	Local
)

func (s ScopeKind) String() string {
	if s == Global {
		return "global"
	}
	return "local"
}

// Symbol is the identity every symbol variant shares. Symbols are
// immutable once the table has handed them out.
type Symbol interface {
	ID() ID
	Name() string
	Kind() Kind
	Scope() ScopeKind
	Level() int
	String() string
}

type header struct {
	id    ID
	name  string
	scope ScopeKind
	level int
}

func (h *header) ID() ID { return h.id }
func (h *header) Name() string { return h.name }
func (h *header) Scope() ScopeKind { return h.scope }
func (h *header) Level() int { return h.level }

// Address locates a Data symbol: slot Offset in the frame of nesting Level.
type Address struct {
	Offset int
	Level  int
}

func (a Address) String() string {
	return fmt.Sprintf("%d(D%d)", a.Offset, a.Level)
}

type PassMode int

const (
	ByValue PassMode = iota
	ByReference
)

func (m PassMode) String() string {
	if m == ByReference {
		return "reference"
	}
	return "value"
}

// Data is a variable or, with Arg set, a routine parameter.
type Data struct {
	header
	Type  types.ValueType
	Addr  Address
	Owner ID // owning callable, NoID for globals
	Arg   bool
	Mode  PassMode
}

func (d *Data) Kind() Kind { return DataKind }

// Indirect reports whether d's slot holds the address of the variable
// rather than its value: a by-reference argument.
func (d *Data) Indirect() bool {
	return d.Arg && d.Mode == ByReference
}

func (d *Data) String() string {
	return fmt.Sprintf("%s %s @%s", d.name, d.Type, d.Addr)
}

// Param describes a parameter before the callable's scope is entered.
type Param struct {
	Name string
	Type types.ValueType
	Mode PassMode
}

// Callable is a procedure (Return == types.Void) or a function.
type Callable struct {
	header
	Return   types.ValueType
	Params   []Param
	Args     []ID // argument Data, declared on scope entry
	Children []ID
	Parent   ID // enclosing callable, NoID for the global list
	opened   bool
}

func (c *Callable) Kind() Kind { return CallableKind }

func (c *Callable) IsProcedure() bool { return c.Return == types.Void }

func (c *Callable) String() string {
	kw := "function"
	if c.IsProcedure() {
		kw = "procedure"
	}
	return fmt.Sprintf("%s %s/%d", kw, c.name, len(c.Params))
}
