package token

import (
	"fmt"
	"strconv"
	"strings"
)

type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF
	COMMENT

	literal_beg
	// Identifiers + literals
	IDENT  // a, total, fib
	INT    // 1343456
	FLOAT  // 123.45
	STRING // 'abc'
	TRUE   // true
	FALSE  // false
	literal_end

	operator_beg
	// Operators and delimiters
	ASSIGN // :=

	ADD // +
	SUB // -
	MUL // *
	QUO // /
	MOD // mod

	AND // and
	OR  // or
	NOT // not

	LPAREN    // (
	RPAREN    // )
	COMMA     // ,
	SEMICOLON // ;
	COLON     // :
	PERIOD    // .
	operator_end

	comparison_beg
	EQL // =
	LSS // <
	GTR // >
	NEQ // <>
	LEQ // <=
	GEQ // >=
	comparison_end

	keyword_beg
	PROGRAM
	VAR
	BEGIN
	END
	IF
	THEN
	ELSE
	WHILE
	DO
	REPEAT
	UNTIL
	FOR
	TO
	DOWNTO
	PROCEDURE
	FUNCTION
	READ
	READLN
	WRITE
	WRITELN
	keyword_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",

	EOF:     "EOF",
	COMMENT: "COMMENT",

	IDENT:  "IDENT",
	INT:    "INT",
	FLOAT:  "FLOAT",
	STRING: "STRING",
	TRUE:   "true",
	FALSE:  "false",

	ASSIGN: ":=",

	ADD: "+",
	SUB: "-",
	MUL: "*",
	QUO: "/",
	MOD: "mod",

	AND: "and",
	OR:  "or",
	NOT: "not",

	LPAREN:    "(",
	RPAREN:    ")",
	COMMA:     ",",
	SEMICOLON: ";",
	COLON:     ":",
	PERIOD:    ".",

	EQL: "=",
	LSS: "<",
	GTR: ">",
	NEQ: "<>",
	LEQ: "<=",
	GEQ: ">=",

	PROGRAM:   "program",
	VAR:       "var",
	BEGIN:     "begin",
	END:       "end",
	IF:        "if",
	THEN:      "then",
	ELSE:      "else",
	WHILE:     "while",
	DO:        "do",
	REPEAT:    "repeat",
	UNTIL:     "until",
	FOR:       "for",
	TO:        "to",
	DOWNTO:    "downto",
	PROCEDURE: "procedure",
	FUNCTION:  "function",
	READ:      "read",
	READLN:    "readln",
	WRITE:     "write",
	WRITELN:   "writeln",
}

// words maps every reserved word (keywords and word operators) to its type.
var words map[string]TokenType

func init() {
	words = make(map[string]TokenType)
	for i := keyword_beg + 1; i < keyword_end; i++ {
		words[tokens[i]] = i
	}
	for _, tt := range []TokenType{TRUE, FALSE, MOD, AND, OR, NOT} {
		words[tokens[tt]] = tt
	}
}

// Lookup classifies an identifier-shaped word. Reserved words are
// case-insensitive, everything else is an IDENT.
func Lookup(ident string) TokenType {
	if tt, ok := words[strings.ToLower(ident)]; ok {
		return tt
	}
	return IDENT
}

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// New builds a token without position information.
func New(tt TokenType, literal string) Token {
	return Token{Type: tt, Literal: literal}
}

func (t Token) IsLiteral() bool {
	return literal_beg < t.Type && t.Type < literal_end
}

func (t Token) IsOperator() bool {
	return operator_beg < t.Type && t.Type < operator_end || t.IsComparison()
}

func (t Token) IsComparison() bool {
	return comparison_beg < t.Type && comparison_end > t.Type
}

func (t Token) IsKeyword() bool {
	return keyword_beg < t.Type && t.Type < keyword_end
}

func (t Token) String() string {
	if t.Literal != "" {
		return t.Literal
	}
	return t.Type.String()
}

func (tokenType TokenType) String() string {
	s := ""
	if 0 <= tokenType && tokenType < TokenType(len(tokens)) {
		s = tokens[tokenType]
	}

	if s == "" {
		s = "token(" + strconv.Itoa(int(tokenType)) + ")"
	}

	return s
}

// CompileError is a semantic diagnostic tied to the token that caused it.
type CompileError struct {
	Token Token
	Msg   string
}

func (ce *CompileError) Error() string {
	if ce.Token.Line == 0 {
		return ce.Msg
	}
	return fmt.Sprintf("%d:%d: %s", ce.Token.Line, ce.Token.Column, ce.Msg)
}
