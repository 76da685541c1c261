package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber_PrefersIntWhenNoDecimalOrExponent(t *testing.T) {
	v, err := ParseNumber("42")
	require.NoError(t, err)
	assert.True(t, v.IsInt())
	assert.Equal(t, int64(42), v.Int64())
}

func TestParseNumber_FloatWhenDecimalPresent(t *testing.T) {
	v, err := ParseNumber("3.5")
	require.NoError(t, err)
	assert.False(t, v.IsInt())
	assert.Equal(t, 3.5, v.Float64())
}

func TestValue_TruthyByKind(t *testing.T) {
	assert.False(t, Int(0).Truthy())
	assert.True(t, Int(1).Truthy())
	assert.False(t, String("").Truthy())
	assert.True(t, String("a").Truthy())
	assert.False(t, Array(nil).Truthy())
	assert.True(t, Array([]Value{Int(1)}).Truthy())
}

func TestValue_EqualIsStructuralAndCrossKindFalse(t *testing.T) {
	assert.True(t, Int(1).Equal(Float(1)))
	assert.True(t, String("a").Equal(String("a")))
	assert.False(t, String("a").Equal(Int(1)))
	assert.True(t, Array([]Value{Int(1), Int(2)}).Equal(Array([]Value{Int(1), Int(2)})))
	assert.False(t, Array([]Value{Int(1)}).Equal(Array([]Value{Int(1), Int(2)})))
}

func TestValue_ArrayHasReferenceSemantics(t *testing.T) {
	backing := []Value{Int(1), Int(2)}
	a := Array(backing)
	b := a
	b.SetElem(0, Int(99))
	assert.Equal(t, int64(99), a.Elems()[0].Int64(), "a and b must share the same backing array")
}

func TestValue_StringRendering(t *testing.T) {
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, "3.0", Float(3.0).String())
	assert.Equal(t, "3.5", Float(3.5).String())
	assert.Equal(t, "hi", String("hi").String())
	assert.Equal(t, "{1, 2}", Array([]Value{Int(1), Int(2)}).String())
}
