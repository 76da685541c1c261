package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Grammar_AddRule_SetsStart(t *testing.T) {
	assert := assert.New(t)

	g := New()
	g.AddTerm("a")
	require.NoError(t, g.AddRule("S", Production{"a"}))
	g.AddRule("T", Production{"a"})

	assert.Equal("S", g.Start)
	assert.True(g.IsNonTerminal("S"))
	assert.True(g.IsNonTerminal("T"))
}

func Test_Grammar_Validate_CatchesUndeclaredSymbol(t *testing.T) {
	g := New()
	g.AddTerm("a")
	g.AddRule("S", Production{"a", "b"})

	assert.Error(t, g.Validate())
}

func Test_Grammar_Validate_OK(t *testing.T) {
	g := New()
	g.AddTerm("a")
	g.AddRule("S", Production{"a", "S"})
	g.AddRule("S", Production{})

	assert.NoError(t, g.Validate())
}

func Test_Grammar_Augmented_AddsStartProduction(t *testing.T) {
	assert := assert.New(t)

	g := New()
	g.AddTerm("a")
	g.AddRule("S", Production{"a"})

	aug := g.Augmented()

	assert.Equal(StartSym, aug.Start)
	require.NotNil(t, aug.Rule(StartSym))
	assert.Equal([]Production{{"S", EndSym}}, aug.Rule(StartSym).Productions)
	assert.True(aug.IsTerminal(EndSym))
	// the original grammar is untouched
	assert.Equal("S", g.Start)
}

func Test_Grammar_Copy_IsIndependent(t *testing.T) {
	assert := assert.New(t)

	g := New()
	g.AddTerm("a")
	g.AddRule("S", Production{"a"})
	g.Prec["a"] = 1

	cp := g.Copy()
	cp.AddRule("S", Production{"a", "a"})
	cp.Prec["a"] = 2

	assert.Len(g.Rule("S").Productions, 1)
	assert.Len(cp.Rule("S").Productions, 2)
	assert.Equal(1, g.Prec["a"])
	assert.Equal(2, cp.Prec["a"])
}

func Test_ParseSpec_PrecAndAssoc_FromDirectives(t *testing.T) {
	assert := assert.New(t)

	spec := `
: plus times num

%left plus
%left times

E : E plus E
  | E times E
  | num
`
	g, err := ParseSpec(spec)
	require.NoError(t, err)

	assert.Equal(1, g.Prec["plus"])
	assert.Equal(2, g.Prec["times"])
	assert.Equal(AssocLeft, g.AssocOf["plus"])
	assert.Equal(AssocLeft, g.AssocOf["times"])
}

func Test_ParseSpec_ExplicitPrecAnnotation(t *testing.T) {
	assert := assert.New(t)

	spec := `
%left plus
%right uminus

E : E plus E
  | minus E %prec uminus
  | num
`
	g, err := ParseSpec(spec)
	require.NoError(t, err)

	// production index 1 is "minus E", which should borrow uminus's
	// precedence/associativity rather than falling back to its rightmost
	// terminal minus (which has no declared precedence at all).
	prec, assoc, ok := g.ProdPrecedence("E", 1)
	require.True(t, ok)
	assert.Equal(g.Prec["uminus"], prec)
	assert.Equal(AssocRight, assoc)

	// the production's actual body must have the %prec annotation
	// stripped out of it.
	prod := g.Rule("E").Productions[1]
	assert.Equal(Production{"minus", "E"}, prod)
}

func Test_ParseSpec_KeepAndContractSets(t *testing.T) {
	assert := assert.New(t)

	spec := `
: plus

E : T plus E
  | T
T < num
`
	g, err := ParseSpec(spec)
	require.NoError(t, err)

	assert.True(g.Keep["plus"])
	assert.True(g.Contract["T"])
	assert.False(g.Contract["E"])
}

func Test_ParseSpec_EmptyProduction(t *testing.T) {
	assert := assert.New(t)

	spec := `
List : item List
     | EMPTY
`
	g, err := ParseSpec(spec)
	require.NoError(t, err)

	prods := g.Rule("List").Productions
	require.Len(t, prods, 2)
	assert.Equal(Production{"item", "List"}, prods[0])
	assert.Equal(Production{}, prods[1])
}

func Test_ParseSpec_RejectsContinuationWithoutRule(t *testing.T) {
	_, err := ParseSpec("  | a b\n")
	assert.Error(t, err)
}
