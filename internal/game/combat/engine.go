package combat

import (
	"fmt"
	"sync"
)

// Engine manages all live battles, keyed by battle ID.
// All methods are safe for concurrent use; each Battle itself is not.
type Engine struct {
	mu      sync.RWMutex
	battles map[string]*Battle
}

// NewEngine creates an empty Engine.
//
// Postcondition: Returns a non-nil Engine ready for use.
func NewEngine() *Engine {
	return &Engine{battles: make(map[string]*Battle)}
}

// Start tracks b under its ID.
//
// Precondition: b must be non-nil with a non-empty ID.
// Postcondition: Returns an error if a battle with the same ID is already live.
func (e *Engine) Start(b *Battle) error {
	if b == nil || b.ID == "" {
		panic("combat.Engine.Start: battle must be non-nil with an id")
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.battles[b.ID]; exists {
		return fmt.Errorf("combat: battle %q already active", b.ID)
	}
	e.battles[b.ID] = b
	return nil
}

// Get returns the live battle with id.
//
// Postcondition: Returns (battle, true) if found, or (nil, false) otherwise.
func (e *Engine) Get(id string) (*Battle, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	b, ok := e.battles[id]
	return b, ok
}

// End stops tracking the battle with id.
func (e *Engine) End(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.battles, id)
}

// Len returns the number of live battles.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.battles)
}
