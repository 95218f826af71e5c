package types

// ValueType is the type of a Data symbol, a literal or an expression result.
type ValueType int

const (
	Void ValueType = iota
	Integer
	Float
	String
	Boolean
)

var valueTypeNames = [...]string{
	Void:    "void",
	Integer: "integer",
	Float:   "real",
	String:  "string",
	Boolean: "boolean",
}

func (v ValueType) String() string {
	if v < 0 || int(v) >= len(valueTypeNames) {
		return "?"
	}
	return valueTypeNames[v]
}

// Numeric reports whether v takes part in integer/float coercion.
func (v ValueType) Numeric() bool {
	return v == Integer || v == Float
}

// Opaque reports whether v never converts to or from another type.
func (v ValueType) Opaque() bool {
	return v == String || v == Void
}
