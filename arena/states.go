package arena

import (
	"github.com/lixenwraith/pie-merge/event"
	"github.com/lixenwraith/pie-merge/fsm"
)

const (
	stateIdle fsm.StateID = iota + 2
	stateActive
	stateTerminal
)

// newMachine builds Idle -> Active -> Terminal, with Terminal -> Active on restart
func newMachine() *fsm.Machine[*Session] {
	m := fsm.NewMachine[*Session]()
	m.AddState(fsm.StateRoot, "Root", fsm.StateNone)
	m.AddState(stateIdle, "Idle", fsm.StateRoot)
	active := m.AddState(stateActive, "Active", fsm.StateRoot)
	terminal := m.AddState(stateTerminal, "Terminal", fsm.StateRoot)

	active.OnEnter = append(active.OnEnter, (*Session).enterActive)
	terminal.OnEnter = append(terminal.OnEnter, (*Session).enterTerminal)

	m.AddTransition(stateIdle, fsm.Transition[*Session]{TargetID: stateActive, Event: event.EventStart})
	m.AddTransition(stateActive, fsm.Transition[*Session]{
		TargetID: stateTerminal,
		Event:    event.EventCeilingBreach,
		Guard:    func(s *Session) bool { return s.breach },
	})
	m.AddTransition(stateTerminal, fsm.Transition[*Session]{TargetID: stateActive, Event: event.EventRestart})
	return m
}

func (s *Session) enterActive() {
	s.reset()
	s.push(event.EventStart, nil)
	s.logger.Info().Uint64("tick", s.tick).Msg("round started")
}
