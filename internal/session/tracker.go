// Package session tracks the lifetime of one telemetry session.
//
// A session is one continuous run of telemetry collection for a player,
// bounded by Start and End. Only one session is active at a time.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// clockFunc is a function that returns the current time.
// Default is time.Now; tests inject a controllable clock.
type clockFunc func() time.Time

// Session identifies an active telemetry session.
type Session struct {
	// ID is the random session identifier sent with every payload.
	ID string

	// PlayerID is the caller supplied player/user identifier.
	PlayerID string

	// StartedAt is when the session was started.
	StartedAt time.Time

	// StartingPlaytime is the player's total playtime before this session.
	// Zero when the caller did not supply one.
	StartingPlaytime time.Duration
}

// Tracker owns the current session. It is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	current Session
	active  bool

	clock clockFunc
}

// NewTracker creates a tracker with no active session.
func NewTracker() *Tracker {
	return &Tracker{clock: time.Now}
}

// Start begins a new session for playerID.
// If a session is already active it is returned unchanged with started=false.
func (t *Tracker) Start(playerID string, startingPlaytime time.Duration) (s Session, started bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active {
		return t.current, false
	}

	t.current = Session{
		ID:               uuid.New().String(),
		PlayerID:         playerID,
		StartedAt:        t.clock(),
		StartingPlaytime: startingPlaytime,
	}
	t.active = true

	return t.current, true
}

// End invalidates the active session and returns it with its playtime.
// ok is false when no session was active.
func (t *Tracker) End() (s Session, playtime time.Duration, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return Session{}, 0, false
	}

	s = t.current
	playtime = t.clock().Sub(s.StartedAt)
	if playtime < 0 {
		playtime = 0
	}

	t.current = Session{}
	t.active = false

	return s, playtime, true
}

// Current returns the active session, if any.
func (t *Tracker) Current() (Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current, t.active
}

// Active reports whether a session is in progress.
func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// setClockForTesting replaces the clock function for deterministic tests.
func (t *Tracker) setClockForTesting(clock clockFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clock = clock
}
