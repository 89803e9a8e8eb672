package event

import "strings"

var (
	nameToType = make(map[string]EventType)
	typeToName = make(map[EventType]string)
)

// RegisterType maps a string name to an EventType
func RegisterType(name string, et EventType) {
	nameToType[name] = et
	typeToName[et] = name
}

// GetEventType returns the EventType for a given name, case-insensitive
func GetEventType(name string) (EventType, bool) {
	if strings.EqualFold(name, "Tick") {
		return EventNone, true
	}
	for n, et := range nameToType {
		if strings.EqualFold(n, name) {
			return et, true
		}
	}
	return 0, false
}

// GetEventName returns the string name for an EventType
func GetEventName(et EventType) string {
	if et == EventNone {
		return "Tick"
	}
	return typeToName[et]
}

func (et EventType) String() string {
	if n := GetEventName(et); n != "" {
		return n
	}
	return "EventType(?)"
}

func init() {
	RegisterType("Start", EventStart)
	RegisterType("CeilingBreach", EventCeilingBreach)
	RegisterType("Restart", EventRestart)
	RegisterType("ScoreChanged", EventScoreChanged)
	RegisterType("TierDiscovered", EventTierDiscovered)
	RegisterType("StressChanged", EventStressChanged)
	RegisterType("NextStaged", EventNextStaged)
	RegisterType("GameOverStarted", EventGameOverStarted)
	RegisterType("GameOver", EventGameOver)
	RegisterType("PieceDropped", EventPieceDropped)
	RegisterType("Merged", EventMerged)
}
