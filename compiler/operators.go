package compiler

import (
	"fmt"

	"github.com/thiremani/pasgen/token"
	"github.com/thiremani/pasgen/types"
)

// opcodes holds the instruction an operator lowers to for integer and
// float operands, and the one used for every other operand type.
type opcodes struct {
	Int   string
	Float string
	Fixed string
}

// defaultOps maps each expression operator to its stack instructions.
// mod and the logical operators have no float form.
var defaultOps = map[token.TokenType]opcodes{
	// --- Arithmetic Operators ---
	token.ADD: {Int: "ADDS", Float: "ADDSF", Fixed: "ADDS"},
	token.SUB: {Int: "SUBS", Float: "SUBSF", Fixed: "SUBS"},
	token.MUL: {Int: "MULS", Float: "MULSF", Fixed: "MULS"},
	token.QUO: {Int: "DIVS", Float: "DIVSF", Fixed: "DIVS"},
	token.MOD: {Int: "MODS", Fixed: "MODS"},

	// --- Logical Operators ---
	token.AND: {Int: "ANDS", Fixed: "ANDS"},
	token.OR:  {Int: "ORS", Fixed: "ORS"},
	token.NOT: {Int: "NOTS", Fixed: "NOTS"},

	// --- Comparison Operators ---
	token.EQL: {Int: "CMPEQS", Float: "CMPEQSF", Fixed: "CMPEQS"},
	token.NEQ: {Int: "CMPNES", Float: "CMPNESF", Fixed: "CMPNES"},
	token.LSS: {Int: "CMPLTS", Float: "CMPLTSF", Fixed: "CMPLTS"},
	token.GTR: {Int: "CMPGTS", Float: "CMPGTSF", Fixed: "CMPGTS"},
	token.LEQ: {Int: "CMPLES", Float: "CMPLESF", Fixed: "CMPLES"},
	token.GEQ: {Int: "CMPGES", Float: "CMPGESF", Fixed: "CMPGES"},
}

// precedences order operators for the postfix conversion; a higher value
// binds tighter. Parentheses only live on the operator stack.
var precedences = map[token.TokenType]int{
	token.NOT: 3,
	token.MUL: 2,
	token.QUO: 2,
	token.MOD: 2,
	token.AND: 2,
	token.ADD: 1,
	token.SUB: 1,
	token.OR:  1,
	token.EQL: 0,
	token.NEQ: 0,
	token.LSS: 0,
	token.GTR: 0,
	token.LEQ: 0,
	token.GEQ: 0,
}

// Precedence returns the binding strength of op.
func Precedence(op token.TokenType) int {
	p, ok := precedences[op]
	if !ok {
		panic(fmt.Sprintf("no precedence for operator %s", op))
	}
	return p
}

// Opcode selects the instruction for op given the type of the value on
// top of the stack.
func Opcode(op token.TokenType, running types.ValueType) string {
	ops, ok := defaultOps[op]
	if !ok {
		panic(fmt.Sprintf("no opcode for operator %s", op))
	}
	switch {
	case running == types.Integer && ops.Int != "":
		return ops.Int
	case running == types.Float && ops.Float != "":
		return ops.Float
	}
	return ops.Fixed
}

func isRelational(op token.TokenType) bool {
	return token.New(op, "").IsComparison()
}
