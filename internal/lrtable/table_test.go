package lrtable

import (
	"testing"

	"github.com/dekarrin/slang/internal/grammar"
	"github.com/dekarrin/slang/internal/slangerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// classicExprGrammar is the textbook unambiguous expression grammar (purple
// dragon book, used throughout the LR(1) construction examples): no
// precedence declarations are needed because left-recursion already encodes
// the intended associativity and precedence structurally.
func classicExprGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	spec := `
E : E plus T
  | T
T : T times F
  | F
F : lparen E rparen
  | id
`
	g, err := grammar.ParseSpec(spec)
	require.NoError(t, err)
	return g
}

func Test_Build_ClassicExprGrammar_NoConflicts(t *testing.T) {
	g := classicExprGrammar(t)

	table, err := Build(g)
	require.NoError(t, err)
	assert.Greater(t, table.NumStates(), 1)

	// the start state must have a shift on every terminal that can begin an
	// expression.
	for _, term := range []string{"id", "lparen"} {
		act := table.Action(table.Initial, term)
		assert.Equalf(t, ActionShift, act.Type, "expected shift on %q from the initial state", term)
	}
}

func Test_Build_AmbiguousGrammar_WithoutPrecedence_Fails(t *testing.T) {
	spec := `
E : E plus E
  | E times E
  | id
`
	g, err := grammar.ParseSpec(spec)
	require.NoError(t, err)

	_, err = Build(g)
	require.Error(t, err)
	var specErr slangerr.SpecError
	require.ErrorAs(t, err, &specErr)
	assert.NotEmpty(t, specErr.Conflicts)
}

func Test_Build_AmbiguousGrammar_WithPrecedence_Succeeds(t *testing.T) {
	spec := `
%left plus
%left times

E : E plus E
  | E times E
  | id
`
	g, err := grammar.ParseSpec(spec)
	require.NoError(t, err)

	table, err := Build(g)
	require.NoError(t, err)
	assert.Greater(t, table.NumStates(), 1)
}

func Test_Build_RightRecursiveGrammarWithRightAssoc_Succeeds(t *testing.T) {
	spec := `
%right assign

S : id assign S
  | id
`
	g, err := grammar.ParseSpec(spec)
	require.NoError(t, err)

	_, err = Build(g)
	assert.NoError(t, err)
}

func Test_Table_String_RendersWithoutPanicking(t *testing.T) {
	g := classicExprGrammar(t)
	table, err := Build(g)
	require.NoError(t, err)

	out := table.String()
	assert.Contains(t, out, "state")
}
