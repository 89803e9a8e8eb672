// Package event carries session notifications to the UI collaborator
package event

// EventType represents the type of session event
type EventType int

const (
	// EventNone is never emitted, the state machine uses it for tick transitions
	EventNone EventType = iota

	// EventStart requests Idle -> Active
	// Trigger: UI start button | Consumer: arena FSM | Payload: nil
	EventStart

	// EventCeilingBreach reports the stress threshold was reached
	// Trigger: arena tick | Consumer: arena FSM | Payload: nil
	EventCeilingBreach

	// EventRestart requests a fresh session from Terminal
	// Trigger: play again | Consumer: arena FSM | Payload: nil
	EventRestart

	// EventScoreChanged reports a new score
	// Trigger: merge award | Consumer: UI | Payload: ScorePayload
	EventScoreChanged

	// EventTierDiscovered is the one-time new tier notification
	// Trigger: merge creating an unannounced tier | Consumer: UI | Payload: TierPayload
	EventTierDiscovered

	// EventStressChanged reports the reported stable count moved
	// Trigger: stress recompute | Consumer: UI gauge | Payload: StressPayload
	EventStressChanged

	// EventNextStaged reports the tier loaded into the dropper
	// Trigger: drop cycle, session start | Consumer: UI | Payload: TierPayload
	EventNextStaged

	// EventGameOverStarted marks entry into Terminal
	// Trigger: FSM | Consumer: UI | Payload: GameOverPayload
	EventGameOverStarted

	// EventGameOver reports the final score after the terminal sequence
	// Trigger: last pop | Consumer: UI | Payload: GameOverPayload
	EventGameOver

	// EventPieceDropped reports a spawned piece
	// Trigger: drop cycle | Consumer: UI | Payload: DropPayload
	EventPieceDropped

	// EventMerged reports a completed merge
	// Trigger: merge barrier | Consumer: UI | Payload: MergePayload
	EventMerged
)

// GameEvent is one queued notification
type GameEvent struct {
	Type    EventType
	Payload any
	Tick    uint64
}
