// Package scripting runs ability scripts in a sandboxed GopherLua VM. The
// Manager implements ability.Hook, so scripted ability attributes can adjust
// engine values without the engine knowing about Lua.
package scripting

import (
	"context"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the opcode budget for one load or hook call when
// the configured limit is zero.
const DefaultInstructionLimit = 100_000

// budget cancels itself once Done has been polled limit times. The VM polls
// Done once per opcode, so the count is an instruction budget.
//
// Invariant: only the goroutine holding Manager.mu runs the VM, so left needs
// no synchronization.
type budget struct {
	context.Context
	cancel context.CancelFunc
	left   int
}

func (b *budget) Done() <-chan struct{} {
	b.left--
	if b.left <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}

// withBudget runs fn with a fresh budget of instLimit opcodes installed on L.
// A non-positive instLimit selects DefaultInstructionLimit.
func withBudget(L *lua.LState, instLimit int, fn func() error) error {
	if instLimit <= 0 {
		instLimit = DefaultInstructionLimit
	}
	base, cancel := context.WithCancel(context.Background())
	defer cancel()
	L.SetContext(&budget{Context: base, cancel: cancel, left: instLimit})
	defer L.RemoveContext()
	return fn()
}

// safeLibs are the standard libraries ability scripts may use. io, os,
// package, debug and channel are never opened.
var safeLibs = []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath}

// loaderGlobals are base-library functions that reach the filesystem or
// load new chunks at runtime.
var loaderGlobals = []string{"dofile", "loadfile", "load", "collectgarbage", "require"}

// NewSandboxedState returns an LState with only safeLibs opened and the
// loaderGlobals cleared. The caller owns the state and must Close it.
func NewSandboxedState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range safeLibs {
		open(L)
	}
	for _, name := range loaderGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}
