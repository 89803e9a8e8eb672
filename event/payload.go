package event

import "github.com/lixenwraith/pie-merge/core"

type ScorePayload struct {
	Score int64
	Delta int64
}

type TierPayload struct {
	Tier int
	Name string
}

type StressPayload struct {
	Stable   int
	Severity int
}

type GameOverPayload struct {
	FinalScore int64
}

type DropPayload struct {
	Handle core.Handle
	Tier   int
	X      float64
}

type MergePayload struct {
	Tier     int // consumed tier
	Product  core.Handle
	Terminal bool
	Pos      core.Vec2
	Award    int64
}
