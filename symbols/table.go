package symbols

import (
	"errors"
	"fmt"

	"github.com/thiremani/pasgen/types"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrRedefined = errors.New("redefined")
)

// Table is an ordered, depth-nested registry of declared symbols. All
// symbols live in one arena; the global list and every callable's child
// list hold IDs into it.
//
// Frame offsets restart at 0 inside every callable scope and the
// enclosing count is restored on exit, so after a matched
// EnterScope/ExitScope pair Level and Offset are what they were before.
type Table struct {
	arena   []Symbol
	globals []ID
	entered []ID  // callables whose scope is open, innermost last
	saved   []int // frame offsets of the enclosing scopes
	level   int
	offset  int
	cursor  ID // last declared symbol
}

func NewTable() *Table {
	return &Table{cursor: NoID}
}

// Level is the current nesting depth, 0 at global scope.
func (t *Table) Level() int { return t.level }

// Offset is the next free slot in the current frame.
func (t *Table) Offset() int { return t.offset }

// Len is the number of declared symbols.
func (t *Table) Len() int { return len(t.arena) }

// Get returns the symbol with the given id, nil when id is out of range.
func (t *Table) Get(id ID) Symbol {
	if id < 0 || int(id) >= len(t.arena) {
		return nil
	}
	return t.arena[id]
}

// Globals returns the symbols declared at level 0, in declaration order.
func (t *Table) Globals() []Symbol {
	return t.list(t.globals)
}

// Children returns the symbols declared in c's body, in declaration order.
func (t *Table) Children(c *Callable) []Symbol {
	return t.list(c.Children)
}

func (t *Table) list(ids []ID) []Symbol {
	syms := make([]Symbol, 0, len(ids))
	for _, id := range ids {
		syms = append(syms, t.arena[id])
	}
	return syms
}

func (t *Table) owner() ID {
	if len(t.entered) == 0 {
		return NoID
	}
	return t.entered[len(t.entered)-1]
}

func (t *Table) newHeader(name string) header {
	h := header{id: ID(len(t.arena)), name: name, scope: Local, level: t.level}
	if t.level == 0 {
		h.scope = Global
	}
	return h
}

// insert appends s to the arena and to the current insertion target.
func (t *Table) insert(s Symbol) {
	t.arena = append(t.arena, s)
	if o := t.owner(); o != NoID {
		c := t.arena[o].(*Callable)
		c.Children = append(c.Children, s.ID())
	} else {
		t.globals = append(t.globals, s.ID())
	}
	t.cursor = s.ID()
}

// CreateData declares a variable at the current scope and gives it the
// next slot of the current frame.
func (t *Table) CreateData(name string, vt types.ValueType) *Data {
	d := &Data{
		header: t.newHeader(name),
		Type:   vt,
		Addr:   Address{Offset: t.offset, Level: t.level},
		Owner:  t.owner(),
	}
	t.offset++
	t.insert(d)
	return d
}

// CreateCallable declares a procedure or function. Its scope is entered
// separately with EnterScope.
func (t *Table) CreateCallable(name string, ret types.ValueType, params ...Param) *Callable {
	c := &Callable{
		header: t.newHeader(name),
		Return: ret,
		Params: append([]Param(nil), params...),
		Parent: t.owner(),
	}
	t.insert(c)
	return c
}

// EnterScope opens the scope of the most recently declared symbol when it
// is a callable whose scope was never opened. Its parameters are declared
// as the first slots of the new frame. It reports whether a scope was
// entered.
func (t *Table) EnterScope() bool {
	c, ok := t.Get(t.cursor).(*Callable)
	if !ok || c.opened {
		return false
	}
	c.opened = true
	t.saved = append(t.saved, t.offset)
	t.offset = 0
	t.level++
	t.entered = append(t.entered, c.ID())

	for _, p := range c.Params {
		d := t.CreateData(p.Name, p.Type)
		d.Arg = true
		d.Mode = p.Mode
		c.Args = append(c.Args, d.ID())
	}
	t.cursor = c.ID()
	return true
}

// ExitScope closes the innermost open scope and restores the enclosing
// frame offset. It reports false when no scope is open.
func (t *Table) ExitScope() bool {
	if len(t.entered) == 0 {
		return false
	}
	closed := t.entered[len(t.entered)-1]
	t.entered = t.entered[:len(t.entered)-1]
	t.offset = t.saved[len(t.saved)-1]
	t.saved = t.saved[:len(t.saved)-1]
	t.level--
	t.cursor = closed
	return true
}

// frame is a position inside one symbol list during Find.
type frame struct {
	ids []ID
	pos int
}

// Find returns every symbol called name, at any depth, in depth-first
// declaration order. The walk keeps its own stack instead of recursing
// into callables.
func (t *Table) Find(name string) []Symbol {
	var found []Symbol
	stack := []frame{{ids: t.globals}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.pos >= len(top.ids) {
			stack = stack[:len(stack)-1]
			continue
		}
		s := t.arena[top.ids[top.pos]]
		top.pos++
		if s.Name() == name {
			found = append(found, s)
		}
		if c, ok := s.(*Callable); ok && len(c.Children) > 0 {
			stack = append(stack, frame{ids: c.Children})
		}
	}
	return found
}

// DataInScopeAt returns the Data symbols called name declared at exactly level.
func (t *Table) DataInScopeAt(name string, level int) []*Data {
	return FilterLevel(FilterData(t.Find(name)), level)
}

// ResolveData maps an identifier used at level to one Data symbol: a
// unique match at level wins, otherwise a unique global match. Anything
// else is ErrRedefined when some tier was ambiguous and ErrNotFound
// otherwise.
func (t *Table) ResolveData(name string, level int) (*Data, error) {
	return resolve(FilterData(t.Find(name)), level)
}

// ResolveCallable applies the ResolveData policy to callables.
func (t *Table) ResolveCallable(name string, level int) (*Callable, error) {
	return resolve(FilterCallable(t.Find(name)), level)
}

func resolve[S Symbol](candidates []S, level int) (S, error) {
	local := FilterLevel(candidates, level)
	if len(local) == 1 {
		return local[0], nil
	}
	global := FilterLevel(candidates, 0)
	if len(global) == 1 {
		return global[0], nil
	}
	var zero S
	if len(local) > 1 || len(global) > 1 {
		return zero, ErrRedefined
	}
	return zero, ErrNotFound
}

// Locals returns the non-argument Data declared directly in c's body.
func (t *Table) Locals(c *Callable) []*Data {
	var locals []*Data
	for _, d := range FilterData(t.Children(c)) {
		if !d.Arg {
			locals = append(locals, d)
		}
	}
	return locals
}

// Arguments returns c's argument Data in parameter order.
func (t *Table) Arguments(c *Callable) []*Data {
	args := make([]*Data, 0, len(c.Args))
	for _, id := range c.Args {
		args = append(args, t.arena[id].(*Data))
	}
	return args
}

// Owner returns the callable that declared d, nil for globals.
func (t *Table) Owner(d *Data) *Callable {
	if d.Owner == NoID {
		return nil
	}
	return t.arena[d.Owner].(*Callable)
}

func (t *Table) String() string {
	return fmt.Sprintf("symbols(%d, level %d, offset %d)", len(t.arena), t.level, t.offset)
}
