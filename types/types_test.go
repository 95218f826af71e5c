package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want ValueType
		ok   bool
	}{
		{"integer", Integer, true},
		{"Real", Float, true},
		{"STRING", String, true},
		{"boolean", Boolean, true},
		{"void", Void, false},
		{"char", Void, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Lookup(tc.name)
			require.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReservedTypeNamesIsCopy(t *testing.T) {
	names := ReservedTypeNames()
	names[0] = "mutated"
	assert.True(t, IsReservedTypeName("integer"))
	assert.False(t, IsReservedTypeName("mutated"))
}

func TestValueTypeClasses(t *testing.T) {
	assert.True(t, Integer.Numeric())
	assert.True(t, Float.Numeric())
	assert.False(t, Boolean.Numeric())
	assert.True(t, String.Opaque())
	assert.True(t, Void.Opaque())
	assert.False(t, Boolean.Opaque())
	assert.Equal(t, "real", Float.String())
	assert.Equal(t, "?", ValueType(42).String())
}
