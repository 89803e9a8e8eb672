// Package input turns terminal events into semantic intents
package input

import "github.com/gdamore/tcell/v2"

// Machine is the input state machine
// Parses tcell.Event into semantic Intent
type Machine struct {
	keyTable *KeyTable

	// buttonDown tracks the primary button so a drop fires on release only
	buttonDown bool
}

// NewMachine creates a new input machine, nil uses the default key table
func NewMachine(kt *KeyTable) *Machine {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	return &Machine{keyTable: kt}
}

// Process parses one event, IntentNone when it carries no action
func (m *Machine) Process(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		return Intent{Type: IntentResize, Width: w, Height: h}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			m.buttonDown = true
			return Intent{}
		}
		if !m.buttonDown {
			return Intent{}
		}
		m.buttonDown = false
		x, y := ev.Position()
		return Intent{Type: IntentDrop, X: x, Y: y}

	case *tcell.EventKey:
		if ev.Key() == tcell.KeyRune {
			return Intent{Type: m.keyTable.Runes[ev.Rune()]}
		}
		return Intent{Type: m.keyTable.SpecialKeys[ev.Key()]}
	}
	return Intent{}
}

// Reset clears pending button state
func (m *Machine) Reset() {
	m.buttonDown = false
}
