package session

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultMaxIdle is how long a session may sit untouched before cleanup
const DefaultMaxIdle = 30 * 24 * time.Hour

// Cleanup deletes idle sessions on a schedule
type Cleanup struct {
	backing *SQLiteBacking
	store   *Store
	maxIdle time.Duration
	logger  zerolog.Logger
	cron    *cron.Cron
}

// NewCleanup creates a cleanup job over the sqlite backing
func NewCleanup(backing *SQLiteBacking, store *Store, maxIdle time.Duration, logger zerolog.Logger) *Cleanup {
	if maxIdle == 0 {
		maxIdle = DefaultMaxIdle
	}

	return &Cleanup{
		backing: backing,
		store:   store,
		maxIdle: maxIdle,
		logger:  logger.With().Str("component", "session-cleanup").Logger(),
	}
}

// Start schedules the hourly cleanup run
func (c *Cleanup) Start() error {
	if c.cron != nil {
		return fmt.Errorf("cleanup is already running")
	}

	c.cron = cron.New()
	if _, err := c.cron.AddFunc("@hourly", c.Run); err != nil {
		return fmt.Errorf("failed to schedule cleanup: %w", err)
	}
	c.cron.Start()

	c.logger.Info().Dur("max_idle", c.maxIdle).Msg("Session cleanup scheduled")
	return nil
}

// Run performs one cleanup pass
func (c *Cleanup) Run() {
	cutoff := time.Now().Add(-c.maxIdle)

	removed, err := c.backing.DeleteIdle(cutoff)
	if err != nil {
		c.logger.Error().Err(err).Msg("Session cleanup failed")
		return
	}

	if removed > 0 {
		c.logger.Info().Int64("removed", removed).Msg("Idle sessions removed")
	}
}

// Stop stops the scheduler
func (c *Cleanup) Stop() {
	if c.cron != nil {
		c.cron.Stop()
		c.cron = nil
	}
}
