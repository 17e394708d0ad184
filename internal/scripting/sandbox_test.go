package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/creature-battle/internal/game/ability"
	"github.com/cory-johannsen/creature-battle/internal/scripting"
)

func TestNewSandboxedState_UnsafeLibsNil(t *testing.T) {
	L := scripting.NewSandboxedState()
	require.NotNil(t, L)
	defer L.Close()
	for _, name := range []string{"os", "io", "debug", "package"} {
		assert.Equal(t, lua.LNil, L.GetGlobal(name), "expected %s to be nil", name)
	}
}

func TestNewSandboxedState_DangerousGlobalsNil(t *testing.T) {
	L := scripting.NewSandboxedState()
	require.NotNil(t, L)
	defer L.Close()
	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		assert.Equal(t, lua.LNil, L.GetGlobal(name), "expected %s to be nil", name)
	}
}

func TestNewSandboxedState_SafeLibsAvailable(t *testing.T) {
	L := scripting.NewSandboxedState()
	require.NotNil(t, L)
	defer L.Close()
	err := L.DoString(`
		local x = math.sqrt(4)
		assert(x == 2.0, "math.sqrt failed")
		local s = string.upper("hello")
		assert(s == "HELLO", "string.upper failed")
		local t = {3, 1, 2}
		table.sort(t)
		assert(t[1] == 1, "table.sort failed")
	`)
	assert.NoError(t, err)
}

func TestManager_LoadString_InstructionLimitExceeded(t *testing.T) {
	mgr := scripting.NewManager(zap.NewNop(), 10)
	defer mgr.Close()
	assert.Error(t, mgr.LoadString("spin", `while true do end`))
}

func TestManager_LoadString_DefaultLimitRunsNormalScripts(t *testing.T) {
	mgr := scripting.NewManager(zap.NewNop(), 0)
	defer mgr.Close()
	assert.NoError(t, mgr.LoadString("sum", `local x = 0 for i = 1, 1000 do x = x + i end`))
}

func TestProperty_InstructionLimitAlwaysErrors(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(1, 50).Draw(t, "limit")
		mgr := scripting.NewManager(zap.NewNop(), limit)
		defer mgr.Close()
		if err := mgr.LoadString("spin", `while true do end`); err == nil {
			t.Fatalf("expected error with limit=%d but got nil", limit)
		}
	})
}

func TestProperty_BudgetIsPerCall(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		calls := rapid.IntRange(1, 20).Draw(t, "calls")
		mgr := scripting.NewManager(zap.NewNop(), 500)
		defer mgr.Close()
		src := `loop = {}
			function loop.on_stat(p, v)
				local n = 0
				for i = 1, 20 do n = n + 1 end
				return v + n
			end`
		if err := mgr.LoadString("loop", src); err != nil {
			t.Fatalf("load: %v", err)
		}
		for i := 0; i < calls; i++ {
			got := mgr.Call("loop", ability.SiteStat, nil, float64(i))
			if got != float64(i+20) {
				t.Fatalf("call %d returned %v", i, got)
			}
		}
	})
}
