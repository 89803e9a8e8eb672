package core

import (
	"sync"
	"time"
)

// GameClock is a tick-driven pausable clock
// Game time only advances through Advance, so debounce windows measure simulated time
// and freeze while paused
type GameClock struct {
	mu     sync.RWMutex
	epoch  time.Time
	offset time.Duration
	paused bool
}

// NewGameClock creates a clock whose zero is epoch
func NewGameClock(epoch time.Time) *GameClock {
	return &GameClock{epoch: epoch}
}

// Now returns current game time
func (c *GameClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.epoch.Add(c.offset)
}

// Advance moves game time forward by dt unless paused, returns false if paused
func (c *GameClock) Advance(dt time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return false
	}
	c.offset += dt
	return true
}

// Pause stops game time advancement
func (c *GameClock) Pause() {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()
}

// Resume continues game time advancement
func (c *GameClock) Resume() {
	c.mu.Lock()
	c.paused = false
	c.mu.Unlock()
}

// IsPaused returns current pause state
func (c *GameClock) IsPaused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paused
}

// MockTimeProvider provides a controllable time source for testing
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider creates a new mock time provider with the given start time
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: startTime}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Advance advances the current time by the given duration
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
