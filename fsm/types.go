// Package fsm is a small hierarchical finite state machine driven by ticks and events
package fsm

import (
	"time"

	"github.com/lixenwraith/pie-merge/event"
)

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Machine is the generic hierarchical state machine runtime
// T is the context type passed to actions and guards (e.g., *arena.Session)
type Machine[T any] struct {
	// Graph data, immutable after CompilePaths
	nodes map[StateID]*Node[T]

	initialID StateID

	// Runtime state
	activeID    StateID
	activePath  []StateID // Root -> Leaf
	timeInState time.Duration
	transitions uint64
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Path from Root to this node, used for LCA lookup
	Path []StateID

	OnEnter  []ActionFunc[T]
	OnUpdate []ActionFunc[T]
	OnExit   []ActionFunc[T]

	// Transitions in evaluation priority order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType // EventNone = evaluated every tick
	Guard    GuardFunc[T]    // nil = always true
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T)
