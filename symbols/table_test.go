package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiremani/pasgen/token"
	"github.com/thiremani/pasgen/types"
)

// declareNested builds:
//
//	var x: integer; y: real
//	procedure f(a: integer; var b: real)
//	  var x: boolean
//	  procedure g
//	    var z: string
//	var w: integer
func declareNested(t *testing.T) *Table {
	t.Helper()
	tb := NewTable()
	tb.CreateData("x", types.Integer)
	tb.CreateData("y", types.Float)
	tb.CreateCallable("f", types.Void,
		Param{Name: "a", Type: types.Integer},
		Param{Name: "b", Type: types.Float, Mode: ByReference})
	require.True(t, tb.EnterScope())
	tb.CreateData("x", types.Boolean)
	tb.CreateCallable("g", types.Void)
	require.True(t, tb.EnterScope())
	tb.CreateData("z", types.String)
	require.True(t, tb.ExitScope())
	require.True(t, tb.ExitScope())
	tb.CreateData("w", types.Integer)
	return tb
}

func TestCreateDataAddresses(t *testing.T) {
	tb := NewTable()
	a := tb.CreateData("a", types.Integer)
	b := tb.CreateData("b", types.String)

	assert.Equal(t, Address{Offset: 0, Level: 0}, a.Addr)
	assert.Equal(t, Address{Offset: 1, Level: 0}, b.Addr)
	assert.Equal(t, Global, a.Scope())
	assert.Equal(t, NoID, a.Owner)
	assert.Equal(t, 2, tb.Offset())
	assert.Equal(t, "1(D0)", b.Addr.String())
}

func TestEnterScopeRequiresCallable(t *testing.T) {
	tb := NewTable()
	assert.False(t, tb.EnterScope(), "empty table has no callable to enter")

	tb.CreateData("v", types.Integer)
	assert.False(t, tb.EnterScope(), "cursor is a Data symbol")
	assert.Equal(t, 0, tb.Level())
	assert.False(t, tb.ExitScope(), "no scope open")
}

func TestScopeEntryDeclaresArguments(t *testing.T) {
	tb := NewTable()
	tb.CreateData("g", types.Integer)
	f := tb.CreateCallable("f", types.Integer,
		Param{Name: "a", Type: types.Integer},
		Param{Name: "b", Type: types.Float, Mode: ByReference})
	require.True(t, tb.EnterScope())
	local := tb.CreateData("tmp", types.Integer)

	args := tb.Arguments(f)
	require.Len(t, args, 2)
	assert.Equal(t, Address{Offset: 0, Level: 1}, args[0].Addr)
	assert.Equal(t, ByReference, args[1].Mode)
	assert.True(t, args[1].Arg)
	assert.Equal(t, Address{Offset: 2, Level: 1}, local.Addr)
	assert.Equal(t, Local, local.Scope())
	assert.Equal(t, f, tb.Owner(local))

	locals := tb.Locals(f)
	require.Len(t, locals, 1)
	assert.Equal(t, "tmp", locals[0].Name())
}

func TestScopeRoundTripRestoresState(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		tb := NewTable()
		tb.CreateData("a", types.Integer)
		tb.CreateData("b", types.Integer)
		tb.CreateCallable("p", types.Void, Param{Name: "q", Type: types.Float})
		level, offset := tb.Level(), tb.Offset()

		require.True(t, tb.EnterScope())
		assert.Equal(t, level+1, tb.Level())
		for i := 0; i < n; i++ {
			tb.CreateData("v", types.Integer)
		}
		require.True(t, tb.ExitScope())

		assert.Equal(t, level, tb.Level(), "level after %d locals", n)
		assert.Equal(t, offset, tb.Offset(), "offset after %d locals", n)
	}
}

func TestClosedScopeCannotBeReopened(t *testing.T) {
	tb := NewTable()
	tb.CreateCallable("p", types.Void)
	require.True(t, tb.EnterScope())
	require.True(t, tb.ExitScope())
	assert.False(t, tb.EnterScope())
}

func TestFindAllDepths(t *testing.T) {
	tb := declareNested(t)

	xs := tb.Find("x")
	require.Len(t, xs, 2)
	assert.Equal(t, 0, xs[0].Level())
	assert.Equal(t, 1, xs[1].Level())

	z := tb.Find("z")
	require.Len(t, z, 1)
	assert.Equal(t, 2, z[0].Level())

	assert.Len(t, tb.Find("w"), 1, "siblings after a nested callable are still visited")
	assert.Len(t, tb.Find("g"), 1)
	assert.Empty(t, tb.Find("nope"))
}

func TestFindVisitOrder(t *testing.T) {
	tb := NewTable()
	tb.CreateData("n", types.Integer)
	tb.CreateCallable("p", types.Void)
	tb.EnterScope()
	tb.CreateData("n", types.Integer)
	tb.CreateCallable("q", types.Void)
	tb.EnterScope()
	tb.CreateData("n", types.Integer)
	tb.ExitScope()
	tb.ExitScope()
	tb.CreateCallable("r", types.Void)
	tb.EnterScope()
	tb.CreateData("n", types.Float)
	tb.ExitScope()

	var levels []int
	for _, s := range tb.Find("n") {
		levels = append(levels, s.Level())
	}
	assert.Equal(t, []int{0, 1, 2, 1}, levels)
}

func TestResolveData(t *testing.T) {
	tb := declareNested(t)

	inside, err := tb.ResolveData("x", 1)
	require.NoError(t, err)
	assert.Equal(t, types.Boolean, inside.Type)

	outside, err := tb.ResolveData("x", 0)
	require.NoError(t, err)
	assert.Equal(t, types.Integer, outside.Type)

	global, err := tb.ResolveData("y", 2)
	require.NoError(t, err, "falls back to the global tier")
	assert.Equal(t, 0, global.Level())

	_, err = tb.ResolveData("z", 1)
	assert.ErrorIs(t, err, ErrNotFound, "level 2 symbols are invisible at level 1")

	_, err = tb.ResolveData("missing", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveDataRedefined(t *testing.T) {
	tb := NewTable()
	tb.CreateData("d", types.Integer)
	tb.CreateData("d", types.Float)

	_, err := tb.ResolveData("d", 0)
	assert.ErrorIs(t, err, ErrRedefined)
}

func TestResolveDataLocalAmbiguityFallsBackToGlobal(t *testing.T) {
	tb := NewTable()
	tb.CreateData("d", types.String)
	tb.CreateCallable("p", types.Void)
	tb.EnterScope()
	tb.CreateData("d", types.Integer)
	tb.CreateData("d", types.Float)

	d, err := tb.ResolveData("d", 1)
	require.NoError(t, err)
	assert.Equal(t, types.String, d.Type)
}

func TestResolveCallable(t *testing.T) {
	tb := declareNested(t)

	f, err := tb.ResolveCallable("f", 0)
	require.NoError(t, err)
	assert.Len(t, f.Params, 2)

	g, err := tb.ResolveCallable("g", 1)
	require.NoError(t, err)
	assert.Equal(t, f.ID(), g.Parent)

	_, err = tb.ResolveCallable("x", 0)
	assert.ErrorIs(t, err, ErrNotFound, "data symbols never resolve as callables")
}

func TestFilters(t *testing.T) {
	tb := declareNested(t)
	all := append(tb.Find("x"), tb.Find("f")...)

	assert.Len(t, FilterData(all), 2)
	assert.Len(t, FilterCallable(all), 1)
	assert.Len(t, FilterLevel(all, 1), 1)
	assert.Len(t, tb.DataInScopeAt("x", 1), 1)
	assert.Empty(t, tb.DataInScopeAt("x", 3))
}

func TestNewConstant(t *testing.T) {
	tests := []struct {
		tok     token.Token
		ok      bool
		kind    ConstKind
		vt      types.ValueType
		unary   bool
		literal bool
	}{
		{token.New(token.INT, "4"), true, IntLit, types.Integer, false, true},
		{token.New(token.FLOAT, "2.5"), true, FloatLit, types.Float, false, true},
		{token.New(token.STRING, "'hi'"), true, StringLit, types.String, false, true},
		{token.New(token.TRUE, "true"), true, BoolLit, types.Boolean, false, true},
		{token.New(token.NOT, "not"), true, Operator, types.Void, true, false},
		{token.New(token.LEQ, "<="), true, Operator, types.Void, false, false},
		{token.New(token.LPAREN, "("), true, LParen, types.Void, false, false},
		{token.New(token.IDENT, "x"), false, 0, 0, false, false},
		{token.New(token.ASSIGN, ":="), false, 0, 0, false, false},
		{token.New(token.COMMA, ","), false, 0, 0, false, false},
		{token.New(token.BEGIN, "begin"), false, 0, 0, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.tok.Literal, func(t *testing.T) {
			c, ok := NewConstant(tc.tok, 0)
			require.Equal(t, tc.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tc.kind, c.Const)
			assert.Equal(t, tc.vt, c.Type())
			assert.Equal(t, tc.unary, c.IsUnary())
			assert.Equal(t, tc.literal, c.IsLiteral())
			assert.Equal(t, NoID, c.ID())
		})
	}
}

func TestDump(t *testing.T) {
	tb := declareNested(t)
	out := tb.Listing()

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "procedure")
	assert.Contains(t, out, "arg/reference")
	assert.Contains(t, out, "1(D1)")
	assert.Contains(t, out, "    z", "level 2 symbols are indented twice")
}
