package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/creature-battle/internal/game/ability"
)

// Manager owns one sandboxed LState holding every loaded ability script and
// dispatches scripted ability attributes to it.
//
// A script is a global table named after the attribute's script id whose
// fields are hook functions named after the call site:
//
//	technician = {}
//	function technician.on_damage_boost(p, value) return value * 1.5 end
//
// Manager is safe for concurrent use; calls are serialized on the single VM.
type Manager struct {
	mu        sync.Mutex
	L         *lua.LState
	instLimit int
	logger    *zap.Logger
	// callLog is what engine.log and the error paths write to during the
	// current call: logger, or a no-op logger for simulated calls.
	callLog *zap.Logger
}

// NewManager creates a Manager with an empty VM.
//
// Precondition: logger must be non-nil; instLimit <= 0 uses DefaultInstructionLimit.
func NewManager(logger *zap.Logger, instLimit int) *Manager {
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	m := &Manager{L: NewSandboxedState(), instLimit: instLimit, logger: logger, callLog: logger}
	m.RegisterModules(m.L)
	return m
}

// LoadDir executes every *.lua file in scriptDir in lexicographic order.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: returns error naming the first file that fails to load.
func (m *Manager) LoadDir(scriptDir string) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("scripting: reading %q: %w", path, err)
		}
		if err := m.LoadString(path, string(src)); err != nil {
			return err
		}
	}
	m.logger.Debug("scripts loaded", zap.String("dir", scriptDir), zap.Int("files", len(luaFiles)))
	return nil
}

// LoadString executes src under the instruction budget. name labels errors.
func (m *Manager) LoadString(name, src string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := withBudget(m.L, m.instLimit, func() error { return m.L.DoString(src) }); err != nil {
		return fmt.Errorf("scripting: loading %q: %w", name, err)
	}
	return nil
}

// Has reports whether script defines a hook for site.
func (m *Manager) Has(script string, site ability.Site) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hook(script, site) != lua.LNil
}

func (m *Manager) hook(script string, site ability.Site) lua.LValue {
	tbl, ok := m.L.GetGlobal(script).(*lua.LTable)
	if !ok {
		return lua.LNil
	}
	fn := tbl.RawGetString(site.String())
	if fn.Type() != lua.LTFunction {
		return lua.LNil
	}
	return fn
}

// Call runs script's hook for site with params as a table and returns the
// new value. A missing hook, a Lua runtime error, or a non-number result
// leaves value unchanged; runtime errors are logged at Warn. When
// params["simulated"] is non-zero nothing is logged, including engine.log.
func (m *Manager) Call(script string, site ability.Site, params map[string]float64, value float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	log := m.logger
	if params["simulated"] != 0 {
		log = zap.NewNop()
	}
	m.callLog = log
	defer func() { m.callLog = m.logger }()

	fn := m.hook(script, site)
	if fn == lua.LNil {
		return value
	}
	p := m.L.NewTable()
	for k, v := range params {
		p.RawSetString(k, lua.LNumber(v))
	}

	var ret lua.LValue = lua.LNil
	err := withBudget(m.L, m.instLimit, func() error {
		if err := m.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, p, lua.LNumber(value)); err != nil {
			return err
		}
		ret = m.L.Get(-1)
		m.L.Pop(1)
		return nil
	})
	if err != nil {
		log.Warn("scripting: Lua runtime error",
			zap.String("script", script),
			zap.Stringer("site", site),
			zap.Error(err),
		)
		return value
	}
	n, ok := ret.(lua.LNumber)
	if !ok {
		log.Debug("scripting: non-number hook result ignored",
			zap.String("script", script),
			zap.Stringer("site", site),
			zap.String("type", ret.Type().String()),
		)
		return value
	}
	return float64(n)
}

// Close releases the VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.L.Close()
}
