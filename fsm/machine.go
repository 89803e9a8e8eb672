package fsm

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/pie-merge/event"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes: make(map[StateID]*Node[T]),
	}
}

// Init enters initialID, running OnEnter from root to leaf
func (m *Machine[T]) Init(ctx T, initialID StateID) error {
	node, ok := m.nodes[initialID]
	if !ok {
		return errors.Errorf("initial state ID %d not found", initialID)
	}
	if len(node.Path) == 0 {
		return errors.New("paths not compiled")
	}

	m.initialID = initialID
	m.activeID = initialID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		for _, action := range m.nodes[id].OnEnter {
			action(ctx)
		}
	}
	return nil
}

// Update advances time in state, runs OnUpdate and evaluates tick transitions
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeID == StateNone {
		return
	}

	m.timeInState += dt

	for _, action := range m.nodes[m.activeID].OnUpdate {
		action(ctx)
	}

	m.fire(ctx, event.EventNone)
}

// HandleEvent routes an external event, returns true if it caused a transition
func (m *Machine[T]) HandleEvent(ctx T, et event.EventType) bool {
	if m.activeID == StateNone || et == event.EventNone {
		return false
	}
	return m.fire(ctx, et)
}

// fire bubbles from leaf to root and takes the first matching transition
func (m *Machine[T]) fire(ctx T, et event.EventType) bool {
	currID := m.activeID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event != et {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				m.transition(ctx, trans.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// transition exits up to the lowest common ancestor and enters down to target
// A self-transition exits and re-enters the leaf
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: attempted transition to unknown state ID %d", targetID))
	}

	lcaIndex := -1
	currentPath := m.activePath
	targetPath := targetNode.Path
	for i := 0; i < min(len(currentPath), len(targetPath)); i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}
	if targetID == m.activeID {
		lcaIndex = len(targetPath) - 2
	}

	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		for _, action := range m.nodes[currentPath[i]].OnExit {
			action(ctx)
		}
	}

	// Leaf is committed before OnEnter so actions observe the new state
	m.activeID = targetID
	m.timeInState = 0
	m.transitions++
	m.activePath = append(m.activePath[:0], targetPath...)

	for i := lcaIndex + 1; i < len(targetPath); i++ {
		for _, action := range m.nodes[targetPath[i]].OnEnter {
			action(ctx)
		}
	}
}

// Reset exits every active state and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	for i := len(m.activePath) - 1; i >= 0; i-- {
		for _, action := range m.nodes[m.activePath[i]].OnExit {
			action(ctx)
		}
	}
	m.activeID = StateNone
	return m.Init(ctx, m.initialID)
}

// StateID returns the active leaf
func (m *Machine[T]) StateID() StateID {
	return m.activeID
}

// StateName returns the active leaf name
func (m *Machine[T]) StateName() string {
	if node, ok := m.nodes[m.activeID]; ok {
		return node.Name
	}
	return ""
}

// In reports whether id is the active leaf or one of its ancestors
func (m *Machine[T]) In(id StateID) bool {
	for _, p := range m.activePath {
		if p == id {
			return true
		}
	}
	return false
}

// TimeInState returns time spent in the current leaf
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// Transitions returns the number of transitions taken since creation
func (m *Machine[T]) Transitions() uint64 {
	return m.transitions
}
