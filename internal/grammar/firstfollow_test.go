package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ComputeSets_NullableAndFirst(t *testing.T) {
	assert := assert.New(t)

	spec := `
List : item List
     | EMPTY
`
	g, err := ParseSpec(spec)
	require.NoError(t, err)

	sets := ComputeSets(g)

	assert.True(sets.Nullable["List"])
	assert.True(sets.First["List"].Has("item"))
	assert.False(sets.First["item"].Has("List"))
}

func Test_ComputeSets_Follow(t *testing.T) {
	assert := assert.New(t)

	g := classicExprGrammarForSets(t)
	sets := ComputeSets(g)

	// FOLLOW(T) must include both "plus" (from E -> E plus T) and "times"
	// (from T -> T times F), plus whatever FOLLOW(E) contributes.
	assert.True(sets.Follow["T"].Has("plus"))
	assert.True(sets.Follow["T"].Has("times"))
}

func Test_FirstOfSeq_FallsBackWhenAllNullable(t *testing.T) {
	assert := assert.New(t)

	spec := `
A : b A
  | EMPTY
`
	g, err := ParseSpec(spec)
	require.NoError(t, err)
	sets := ComputeSets(g)

	first := sets.FirstOfSeq([]string{"A"}, EndSym)
	assert.True(first.Has("b"))
	assert.True(first.Has(EndSym))
}

func classicExprGrammarForSets(t *testing.T) *Grammar {
	t.Helper()
	spec := `
E : E plus T
  | T
T : T times F
  | F
F : lparen E rparen
  | id
`
	g, err := ParseSpec(spec)
	require.NoError(t, err)
	return g
}
