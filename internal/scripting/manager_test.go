package scripting_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/creature-battle/internal/game/ability"
	"github.com/cory-johannsen/creature-battle/internal/scripting"
)

func newTestManager(t testing.TB) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	mgr := scripting.NewManager(zap.New(core), 0)
	t.Cleanup(mgr.Close)
	return mgr, logs
}

func writeTempLua(t testing.TB, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0644))
	}
	return dir
}

func TestManager_LoadDir_CallsHook(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, map[string]string{
		"technician.lua": `
			technician = {}
			function technician.on_damage_boost(p, value)
				return value * 1.5
			end`,
		"notes.txt": `not lua`,
	})
	require.NoError(t, mgr.LoadDir(dir))
	assert.True(t, mgr.Has("technician", ability.SiteDamageBoost))
	assert.False(t, mgr.Has("technician", ability.SiteStat))
	assert.Equal(t, 3.0, mgr.Call("technician", ability.SiteDamageBoost, nil, 2))
}

func TestManager_LoadDir_LexicographicOrder(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, map[string]string{
		"a.lua": `order = "a"`,
		"b.lua": `order = order .. "b"
			chain = {}
			function chain.on_accuracy(p, v)
				if order == "ab" then return 1 end
				return 0
			end`,
	})
	require.NoError(t, mgr.LoadDir(dir))
	assert.Equal(t, 1.0, mgr.Call("chain", ability.SiteAccuracy, nil, 5))
}

func TestManager_LoadDir_Errors(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Error(t, mgr.LoadDir(filepath.Join(t.TempDir(), "missing")))

	dir := writeTempLua(t, map[string]string{"broken.lua": `function (`})
	err := mgr.LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.lua")
}

func TestManager_Call_ReadsParams(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadString("guts.lua", `
		guts = {}
		function guts.on_stat(p, value)
			if p.stat == engine.stat.atk and p.statused == 1 then
				return value * 1.5
			end
			return value
		end`))

	assert.Equal(t, 150.0, mgr.Call("guts", ability.SiteStat, map[string]float64{"stat": 1, "statused": 1}, 100))
	assert.Equal(t, 100.0, mgr.Call("guts", ability.SiteStat, map[string]float64{"stat": 1, "statused": 0}, 100))
	assert.Equal(t, 100.0, mgr.Call("guts", ability.SiteStat, map[string]float64{"stat": 2, "statused": 1}, 100))
}

func TestManager_EngineConstants(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadString("consts", `
		consts = {}
		function consts.on_stat(p, v)
			return engine.stat.spd * 100 + engine.status.burn * 10 + engine.weather.rain
		end`))
	assert.Equal(t, 5*100.0+6*10+2, mgr.Call("consts", ability.SiteStat, nil, 0))
}

func TestManager_Call_MissingScriptOrSite_NoOp(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadString("half", `half = { on_stat = 3 }`))
	assert.Equal(t, 7.0, mgr.Call("no_such_script", ability.SiteStat, nil, 7))
	assert.Equal(t, 7.0, mgr.Call("half", ability.SiteStat, nil, 7), "non-function fields are ignored")
	assert.Equal(t, 7.0, mgr.Call("half", ability.SiteCritStage, nil, 7))
}

func TestManager_Call_RuntimeError_WarnLogNoPanic(t *testing.T) {
	mgr, logs := newTestManager(t)
	require.NoError(t, mgr.LoadString("bad", `
		bad = {}
		function bad.on_accuracy(p, v)
			error("intentional error")
		end`))
	assert.NotPanics(t, func() {
		assert.Equal(t, 90.0, mgr.Call("bad", ability.SiteAccuracy, nil, 90))
	})
	warns := logs.FilterLevelExact(zap.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Equal(t, "bad", warns[0].ContextMap()["script"])
}

func TestManager_Call_InfiniteLoopIsCut(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	mgr := scripting.NewManager(zap.New(core), 100)
	defer mgr.Close()
	require.NoError(t, mgr.LoadString("spin", `
		spin = {}
		function spin.on_stat(p, v) while true do end end
		ok = {}
		function ok.on_stat(p, v) return v + 1 end`))

	assert.Equal(t, 4.0, mgr.Call("spin", ability.SiteStat, nil, 4))
	assert.Equal(t, 1, logs.FilterLevelExact(zap.WarnLevel).Len())
	assert.Equal(t, 5.0, mgr.Call("ok", ability.SiteStat, nil, 4), "VM stays usable after a cut call")
}

func TestManager_Call_NonNumberResultIgnored(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadString("str", `
		str = {}
		function str.on_stat(p, v) return "nope" end`))
	assert.Equal(t, 12.0, mgr.Call("str", ability.SiteStat, nil, 12))
}

func TestManager_EngineLog(t *testing.T) {
	mgr, logs := newTestManager(t)
	require.NoError(t, mgr.LoadString("chatty", `engine.log("hello")`))
	entries := logs.FilterMessage("script").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0].ContextMap()["msg"])
}

func TestManager_Call_SimulatedIsSilent(t *testing.T) {
	mgr, logs := newTestManager(t)
	require.NoError(t, mgr.LoadString("noisy", `
		noisy = {}
		function noisy.on_stat(p, v)
			engine.log("scoring")
			error("boom")
		end
		quiet = {}
		function quiet.on_stat(p, v) engine.log("after") return {} end`))

	assert.Equal(t, 7.0, mgr.Call("noisy", ability.SiteStat, map[string]float64{"simulated": 1}, 7))
	assert.Equal(t, 7.0, mgr.Call("quiet", ability.SiteStat, map[string]float64{"simulated": 1}, 7))
	assert.Zero(t, logs.Len())

	mgr.Call("noisy", ability.SiteStat, map[string]float64{"simulated": 0}, 7)
	assert.Equal(t, 1, logs.FilterMessage("script").Len())
	assert.Equal(t, 1, logs.FilterLevelExact(zap.WarnLevel).Len())

	require.NoError(t, mgr.LoadString("load", `engine.log("loaded")`))
	assert.Equal(t, 2, logs.FilterMessage("script").Len(), "top-level chunks log after a simulated call")
}

func TestManager_ScriptedAbilityAttr(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadString("pressure", `
		pressure = {}
		function pressure.on_damage_boost(p, v) return v * 2 end`))

	a := &ability.Ability{ID: "pressure", Name: "Pressure", Attrs: []ability.Attr{
		{Kind: ability.Scripted, Script: "pressure", Site: ability.SiteDamageBoost},
	}}
	v := 1.0
	a.ApplyDamageBoost(mgr, ability.DamageParams{}, &v)
	assert.Equal(t, 2.0, v)
}

func TestManager_ConcurrentCalls(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadString("inc", `
		inc = {}
		function inc.on_stat(p, v) return v + 1 end`))

	var wg sync.WaitGroup
	results := make([]float64, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = mgr.Call("inc", ability.SiteStat, nil, float64(i))
		}(i)
	}
	wg.Wait()
	for i, r := range results {
		assert.Equal(t, float64(i+1), r)
	}
}

func TestProperty_CallPassesValueThrough(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadString("echo", `
		echo = {}
		function echo.on_received_damage(p, v) return v end`))
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Float64Range(-1e6, 1e6).Draw(t, "value")
		if got := mgr.Call("echo", ability.SiteReceivedDamage, nil, v); got != v {
			t.Fatalf("got %v want %v", got, v)
		}
	})
}
