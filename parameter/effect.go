package parameter

import "time"

// Merge animation
const (
	MergeShrinkDuration = 150 * time.Millisecond
	MergePopDuration    = 100 * time.Millisecond
	MergePopStartScale  = 0.1
	MergeSpinDegrees    = 360.0
)

// Flash rings
const (
	FlashPoolCapacity     = 10
	FlashBaseDuration     = 200 * time.Millisecond
	FlashBaseScale        = 5.0
	FlashStartAlpha       = 0.8
	FlashLargeMergeTier   = 5
	FlashLargeRings       = 3
	FlashLargeScaleMul    = 1.5
	FlashLargeDurationMul = 1.2
	FlashRingDelay        = 50 * time.Millisecond
)

// Dropper
const (
	DropperGlideDuration = 150 * time.Millisecond
	DropperEntryDuration = 200 * time.Millisecond
)

// Game over sequence
const (
	GameOverTextFade = 500 * time.Millisecond
	GameOverPopDelay = 50 * time.Millisecond
	GameOverPopSpin  = 180.0
	GameOverPopTime  = 200 * time.Millisecond
)

// Announcements
const (
	AnnounceFadeIn  = 300 * time.Millisecond
	AnnounceHold    = 1000 * time.Millisecond
	AnnounceFadeOut = 500 * time.Millisecond
	AnnounceBaseY   = 200.0
	AnnounceStepY   = 10.0
)
