package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit        // q, Esc, Ctrl+C
	IntentToggleMute  // m
	IntentTogglePause // p
	IntentToggleStats // d
	IntentResize      // Terminal resize event

	// Session flow
	IntentStart   // Space
	IntentRestart // r

	// Mouse
	IntentDrop // Left button released over the arena
)

// Intent is one parsed user action
type Intent struct {
	Type IntentType
	// X, Y hold the cell for IntentDrop
	X, Y int
	// Width, Height hold the new size for IntentResize
	Width, Height int
}
