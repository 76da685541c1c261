// Package env implements the environment stack described in spec §3/§4.4,
// redesigned per spec §9 to use LEXICAL scoping rather than the inherited
// predecessor's dynamic scoping: a function value only ever sees the
// global frame plus its own call-local frame, never the caller's
// intervening frames.
//
// Grounded on the original predecessor's interpreter/env.py OrderedDict-
// based global frame (bind/find semantics), adapted in structure to match
// the teacher's style of small, explicit state-holding types rather than a
// generic container.
package env

import "github.com/dekarrin/slang/internal/value"

// Frame is one scope: an insertion-ordered mapping from identifier to
// Value (spec §3: "a mapping from identifier to Value preserving insertion
// order").
type Frame struct {
	order []string
	vals  map[string]value.Value
}

func newFrame() *Frame {
	return &Frame{vals: map[string]value.Value{}}
}

func (f *Frame) has(name string) bool {
	_, ok := f.vals[name]
	return ok
}

func (f *Frame) get(name string) (value.Value, bool) {
	v, ok := f.vals[name]
	return v, ok
}

func (f *Frame) set(name string, v value.Value) {
	if !f.has(name) {
		f.order = append(f.order, name)
	}
	f.vals[name] = v
}

// Names returns the frame's bindings in insertion order, used by the REPL's
// `locals` command.
func (f *Frame) Names() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Env is a stack of Frames, the bottom always the global frame (spec §3:
// "The bottom frame is the global frame (pre-seeded with built-ins)").
//
// Lexical scoping (spec §9): a call pushes a frame that is NOT parented to
// whatever frames happen to be on the stack at the call site. Instead,
// Call pushes the new frame directly atop the global frame, exposing only
// [global, callFrame] to the callee's body regardless of how deep the
// caller's own block nesting was. Blocks (if/while/for/comprehension)
// still push/pop frames onto the live stack the ordinary way, since those
// constructs execute within the current lexical extent, not across a call
// boundary.
type Env struct {
	frames []*Frame
}

// New returns an Env with a single, empty global frame.
func New() *Env {
	return &Env{frames: []*Frame{newFrame()}}
}

// Global returns the bottom (global) frame directly, used to seed
// built-ins and for the REPL's persisted top-level bindings.
func (e *Env) Global() *Frame {
	return e.frames[0]
}

// Push adds a fresh frame atop the stack (spec §4.4: "push/pop frame: must
// be paired").
func (e *Env) Push() {
	e.frames = append(e.frames, newFrame())
}

// Pop removes the top frame. Pop runs even when the frame's owning
// construct exits via Return/Break, per spec §4.4.
func (e *Env) Pop() {
	e.frames = e.frames[:len(e.frames)-1]
}

// PushCall replaces the live frame stack with [global, callFrame] and
// returns a restore function the caller must invoke (typically via defer)
// once the call returns, to put the caller's own frame stack back. This is
// the mechanical form of the spec §9 lexical-scoping redesign: the
// function body never sees any frame the caller had pushed beyond the
// global one.
func (e *Env) PushCall(callFrame *Frame) (restore func()) {
	saved := e.frames
	e.frames = []*Frame{e.frames[0], callFrame}
	return func() {
		e.frames = saved
	}
}

// NewFrame returns an empty Frame ready to be populated with parameter
// bindings and handed to PushCall.
func NewFrame() *Frame {
	return newFrame()
}

// Bind sets name on fr directly (used to seed a call frame with argument
// values before PushCall).
func (fr *Frame) Bind(name string, v value.Value) {
	fr.set(name, v)
}

// Lookup implements spec §4.4's lookup(name): scan frames from innermost to
// outermost, returning the first binding found.
func (e *Env) Lookup(name string) (value.Value, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if v, ok := e.frames[i].get(name); ok {
			return v, true
		}
	}
	return value.Value{}, false
}

// Assign implements spec §4.4's assign(name, v): rebind in place in the
// nearest frame (scanning innermost to outermost) that already defines
// name; if none does, create the binding in the innermost frame.
func (e *Env) Assign(name string, v value.Value) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if e.frames[i].has(name) {
			e.frames[i].set(name, v)
			return
		}
	}
	e.frames[len(e.frames)-1].set(name, v)
}

// Top returns the innermost frame, used by the REPL's `locals` command.
func (e *Env) Top() *Frame {
	return e.frames[len(e.frames)-1]
}

// Depth reports how many frames are currently on the stack.
func (e *Env) Depth() int {
	return len(e.frames)
}
