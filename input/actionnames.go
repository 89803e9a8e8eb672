package input

import "strings"

// actionRegistry maps canonical action names used in the [keys] config section to intents
var actionRegistry = map[string]IntentType{
	"none":         IntentNone,
	"quit":         IntentQuit,
	"toggle_mute":  IntentToggleMute,
	"toggle_pause": IntentTogglePause,
	"toggle_stats": IntentToggleStats,
	"start":        IntentStart,
	"restart":      IntentRestart,
}

// ActionIntent resolves an action name, case-insensitive
func ActionIntent(name string) (IntentType, bool) {
	it, ok := actionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return it, ok
}

// ActionName returns the canonical name of it
func ActionName(it IntentType) string {
	for name, t := range actionRegistry {
		if t == it && name != "none" {
			return name
		}
	}
	return "none"
}
