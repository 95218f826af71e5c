package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		word string
		want TokenType
	}{
		{"program", PROGRAM},
		{"Begin", BEGIN},
		{"DOWNTO", DOWNTO},
		{"mod", MOD},
		{"not", NOT},
		{"True", TRUE},
		{"writeln", WRITELN},
		{"counter", IDENT},
		{"integer", IDENT},
	}
	for _, tc := range tests {
		t.Run(tc.word, func(t *testing.T) {
			assert.Equal(t, tc.want, Lookup(tc.word))
		})
	}
}

func TestClassification(t *testing.T) {
	assert.True(t, New(INT, "4").IsLiteral())
	assert.True(t, New(FALSE, "false").IsLiteral())
	assert.False(t, New(IDENT, "x").IsLiteral())

	assert.True(t, New(NEQ, "<>").IsComparison())
	assert.True(t, New(NEQ, "<>").IsOperator())
	assert.True(t, New(MOD, "mod").IsOperator())
	assert.False(t, New(ADD, "+").IsComparison())

	assert.True(t, New(WHILE, "while").IsKeyword())
	assert.False(t, New(NOT, "not").IsKeyword())
}

func TestCompileErrorPosition(t *testing.T) {
	ce := &CompileError{Token: Token{Type: IDENT, Literal: "x", Line: 3, Column: 7}, Msg: "identifier x not found"}
	assert.Equal(t, "3:7: identifier x not found", ce.Error())

	ce = &CompileError{Token: New(IDENT, "x"), Msg: "identifier x not found"}
	assert.Equal(t, "identifier x not found", ce.Error())
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, ":=", ASSIGN.String())
	assert.Equal(t, "<>", NEQ.String())
	assert.Equal(t, "token(999)", TokenType(999).String())
}
