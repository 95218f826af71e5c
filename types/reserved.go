package types

import "strings"

var reservedTypeNames = []string{
	"integer",
	"real",
	"string",
	"boolean",
}

var reservedTypeSet = func() map[string]ValueType {
	m := make(map[string]ValueType, len(reservedTypeNames))
	for _, t := range reservedTypeNames {
		m[t] = lookupName(t)
	}
	return m
}()

func lookupName(name string) ValueType {
	for vt, n := range valueTypeNames {
		if n == name {
			return ValueType(vt)
		}
	}
	return Void
}

// ReservedTypeNames returns a copy of source-level reserved type names.
func ReservedTypeNames() []string {
	return append([]string(nil), reservedTypeNames...)
}

// IsReservedTypeName reports whether name is reserved for built-in types.
func IsReservedTypeName(name string) bool {
	_, ok := reservedTypeSet[strings.ToLower(name)]
	return ok
}

// Lookup maps a source type name (case-insensitive) to its ValueType.
func Lookup(name string) (ValueType, bool) {
	vt, ok := reservedTypeSet[strings.ToLower(name)]
	return vt, ok
}
