// Package ratelimit throttles inbound events per user. Policy: an event
// arriving before the minimum interval has elapsed since the user's last
// admitted event is dropped, not delayed. Dropped events are logged at debug
// level and produce no user-visible effect.
package ratelimit

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultMinInterval matches the original spacing between accepted messages
const DefaultMinInterval = 1500 * time.Millisecond

// Limiter admits at most one event per user per minimum interval
type Limiter struct {
	minInterval time.Duration
	logger      zerolog.Logger

	mu       sync.Mutex
	lastSeen map[int64]time.Time

	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// New creates a limiter with the given minimum interval
func New(minInterval time.Duration, logger zerolog.Logger) *Limiter {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}

	l := &Limiter{
		minInterval: minInterval,
		logger:      logger.With().Str("component", "ratelimit").Logger(),
		lastSeen:    make(map[int64]time.Time),
		stopCleanup: make(chan struct{}),
	}

	go l.cleanupLoop()

	return l
}

// Allow reports whether an event from the user may proceed, and records the
// admission time when it may
func (l *Limiter) Allow(userID int64) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	last, seen := l.lastSeen[userID]
	if seen && now.Sub(last) < l.minInterval {
		l.logger.Debug().Int64("user_id", userID).Msg("Event dropped by rate limit")
		return false
	}

	l.lastSeen[userID] = now
	return true
}

// SetMinInterval changes the interval at runtime; applied on config reload
func (l *Limiter) SetMinInterval(minInterval time.Duration) {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.minInterval = minInterval
}

// cleanupLoop drops entries for users idle far beyond the interval
func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			cutoff := time.Now().Add(-10 * l.minInterval)
			for id, last := range l.lastSeen {
				if last.Before(cutoff) {
					delete(l.lastSeen, id)
				}
			}
			l.mu.Unlock()
		case <-l.stopCleanup:
			return
		}
	}
}

// Stop stops the cleanup goroutine
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopCleanup)
	})
}
