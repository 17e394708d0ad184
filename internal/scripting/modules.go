package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/stat"
	"github.com/cory-johannsen/creature-battle/internal/game/status"
)

// RegisterModules registers the engine global into L: enum tables that map
// names to the numbers hook params carry, and engine.log, which is silent
// during simulated hook calls.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine.stat, engine.status, engine.weather and engine.log are defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()

	stats := L.NewTable()
	for s := stat.HP; s <= stat.Eva; s++ {
		stats.RawSetString(s.String(), lua.LNumber(s))
	}
	L.SetField(engine, "stat", stats)

	effects := L.NewTable()
	for e := status.None; e <= status.Faint; e++ {
		effects.RawSetString(e.String(), lua.LNumber(e))
	}
	L.SetField(engine, "status", effects)

	weather := L.NewTable()
	for w := field.WeatherNone; w <= field.StrongWinds; w++ {
		weather.RawSetString(w.String(), lua.LNumber(w))
	}
	L.SetField(engine, "weather", weather)

	L.SetField(engine, "log", L.NewFunction(func(L *lua.LState) int {
		m.callLog.Debug("script", zap.String("msg", L.CheckString(1)))
		return 0
	}))

	L.SetGlobal("engine", engine)
}
