package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/slang/internal/value"
)

func TestEnv_GlobalLookupAndAssign(t *testing.T) {
	e := New()
	e.Global().Bind("x", value.Int(1))

	v, ok := e.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.Int64())

	e.Assign("x", value.Int(2))
	v, ok = e.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, int64(2), v.Int64())
}

func TestEnv_LookupMissingNameFails(t *testing.T) {
	e := New()
	_, ok := e.Lookup("nope")
	assert.False(t, ok)
}

func TestEnv_PushPopScopesShadowing(t *testing.T) {
	e := New()
	e.Global().Bind("x", value.Int(1))

	e.Push()
	e.Top().Bind("x", value.Int(2))
	v, _ := e.Lookup("x")
	assert.Equal(t, int64(2), v.Int64())
	e.Pop()

	v, _ = e.Lookup("x")
	assert.Equal(t, int64(1), v.Int64())
}

func TestEnv_AssignRebindsNearestDefiningFrame(t *testing.T) {
	e := New()
	e.Global().Bind("x", value.Int(1))
	e.Push()
	e.Assign("x", value.Int(5))
	v, _ := e.Lookup("x")
	assert.Equal(t, int64(5), v.Int64())

	e.Pop()
	v, _ = e.Lookup("x")
	assert.Equal(t, int64(5), v.Int64(), "assign should have rebound the global frame's x, not shadowed it")
}

func TestEnv_PushCallHidesCallerFrames(t *testing.T) {
	e := New()
	e.Global().Bind("shared", value.Int(1))
	e.Push()
	e.Top().Bind("local", value.Int(2))

	callFrame := NewFrame()
	callFrame.Bind("param", value.Int(3))
	restore := e.PushCall(callFrame)

	_, ok := e.Lookup("local")
	assert.False(t, ok, "call frame must not see the caller's block-local binding")
	v, ok := e.Lookup("shared")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.Int64())
	v, ok = e.Lookup("param")
	require.True(t, ok)
	assert.Equal(t, int64(3), v.Int64())

	restore()
	_, ok = e.Lookup("local")
	assert.True(t, ok, "restoring after the call must bring the caller's frame back")
}

func TestEnv_DepthTracksPushAndPop(t *testing.T) {
	e := New()
	assert.Equal(t, 1, e.Depth())
	e.Push()
	assert.Equal(t, 2, e.Depth())
	e.Pop()
	assert.Equal(t, 1, e.Depth())
}
