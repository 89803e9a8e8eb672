package fsm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pie-merge/event"
)

const (
	stateGame StateID = iota + 2
	stateIdle
	stateActive
	stateTerminal
)

type recorder struct {
	log    []string
	breach bool
}

func (r *recorder) add(s string) func(*recorder) {
	return func(*recorder) { r.log = append(r.log, s) }
}

func buildMachine(t *testing.T, r *recorder) *Machine[*recorder] {
	t.Helper()
	m := NewMachine[*recorder]()
	m.AddState(StateRoot, "Root", StateNone)
	game := m.AddState(stateGame, "Game", StateRoot)
	idle := m.AddState(stateIdle, "Idle", stateGame)
	active := m.AddState(stateActive, "Active", stateGame)
	terminal := m.AddState(stateTerminal, "Terminal", stateGame)

	game.OnEnter = append(game.OnEnter, r.add("enter game"))
	idle.OnExit = append(idle.OnExit, r.add("exit idle"))
	active.OnEnter = append(active.OnEnter, r.add("enter active"))
	active.OnExit = append(active.OnExit, r.add("exit active"))
	terminal.OnEnter = append(terminal.OnEnter, r.add("enter terminal"))

	m.AddTransition(stateIdle, Transition[*recorder]{TargetID: stateActive, Event: event.EventStart})
	m.AddTransition(stateActive, Transition[*recorder]{
		TargetID: stateTerminal,
		Guard:    func(r *recorder) bool { return r.breach },
	})
	m.AddTransition(stateTerminal, Transition[*recorder]{TargetID: stateActive, Event: event.EventRestart})

	require.NoError(t, m.CompilePaths())
	require.NoError(t, m.Init(r, stateIdle))
	return m
}

func TestMachineLifecycle(t *testing.T) {
	r := &recorder{}
	m := buildMachine(t, r)
	assert.Equal(t, "Idle", m.StateName())
	assert.True(t, m.In(stateGame))

	assert.False(t, m.HandleEvent(r, event.EventRestart), "no restart from idle")
	assert.True(t, m.HandleEvent(r, event.EventStart))
	assert.Equal(t, stateActive, m.StateID())

	m.Update(r, 16*time.Millisecond)
	assert.Equal(t, stateActive, m.StateID())
	assert.Equal(t, 16*time.Millisecond, m.TimeInState())

	r.breach = true
	m.Update(r, 16*time.Millisecond)
	assert.Equal(t, "Terminal", m.StateName())
	assert.Equal(t, time.Duration(0), m.TimeInState())

	assert.True(t, m.HandleEvent(r, event.EventRestart))
	assert.Equal(t, []string{
		"enter game",
		"exit idle", "enter active",
		"exit active", "enter terminal",
		"enter active",
	}, r.log, "sibling transitions do not re-enter the parent")
	assert.Equal(t, uint64(3), m.Transitions())
}

func TestMachineReset(t *testing.T) {
	r := &recorder{}
	m := buildMachine(t, r)
	m.HandleEvent(r, event.EventStart)
	require.NoError(t, m.Reset(r))
	assert.Equal(t, stateIdle, m.StateID())
}

func TestCompilePathsMissingParent(t *testing.T) {
	m := NewMachine[*recorder]()
	m.AddState(5, "Orphan", 99)
	assert.Error(t, m.CompilePaths())
}
