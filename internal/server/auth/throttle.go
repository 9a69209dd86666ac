package auth

import (
	"sync"
	"time"
)

const (
	loginWindow      = 15 * time.Minute
	lockDuration     = 10 * time.Minute
	maxLoginAttempts = 5
)

type attemptState struct {
	count        int
	firstAttempt time.Time
	lockedUntil  time.Time
}

// Throttle tracks failed sign-in attempts per client key (normally the IP)
// and locks a key out after too many failures inside the window. State is
// per-process.
type Throttle struct {
	mu       sync.Mutex
	attempts map[string]*attemptState
	now      func() time.Time
}

func NewThrottle() *Throttle {
	return &Throttle{
		attempts: make(map[string]*attemptState),
		now:      time.Now,
	}
}

// RetryAfter returns how long the key stays locked, or zero when the key
// may attempt a sign-in.
func (t *Throttle) RetryAfter(key string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.attempts[key]
	if !ok {
		return 0
	}
	now := t.now()
	if now.After(state.lockedUntil) {
		return 0
	}
	return state.lockedUntil.Sub(now)
}

// RecordFailure counts a failed attempt and returns the attempts remaining
// before lockout.
func (t *Throttle) RecordFailure(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	state, ok := t.attempts[key]
	if !ok || now.Sub(state.firstAttempt) > loginWindow {
		state = &attemptState{firstAttempt: now}
		t.attempts[key] = state
	}

	state.count++
	if state.count >= maxLoginAttempts {
		state.lockedUntil = now.Add(lockDuration)
		state.count = maxLoginAttempts
	}

	remaining := maxLoginAttempts - state.count
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// Reset clears the key after a successful sign-in.
func (t *Throttle) Reset(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.attempts, key)
}
