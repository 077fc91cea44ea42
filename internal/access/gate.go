package access

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// ErrNotPrivileged is returned when a non-privileged user tries to change the
// global access flag.
var ErrNotPrivileged = errors.New("user is not privileged")

// Gate admits or rejects inbound events. The owner and admin identifiers are
// always admitted; everyone else is admitted only while the all-users flag is
// on. The flag starts off and is never persisted, so a restart closes the bot
// again.
type Gate struct {
	ownerID int64
	adminID int64
	logger  zerolog.Logger

	mu       sync.RWMutex
	allUsers bool
}

// NewGate creates a gate for the given privileged identifiers
func NewGate(ownerID, adminID int64, logger zerolog.Logger) *Gate {
	return &Gate{
		ownerID: ownerID,
		adminID: adminID,
		logger:  logger.With().Str("component", "access").Logger(),
	}
}

// Admit reports whether the user may interact with the bot
func (g *Gate) Admit(userID int64) bool {
	if g.isPrivileged(userID) {
		return true
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.allUsers {
		g.logger.Info().Int64("user_id", userID).Msg("Access denied")
		return false
	}
	return true
}

// SetAllUsers flips the global access flag. Only the owner or admin may call
// this; anyone else gets ErrNotPrivileged.
func (g *Gate) SetAllUsers(callerID int64, enabled bool) error {
	if !g.isPrivileged(callerID) {
		return ErrNotPrivileged
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.allUsers = enabled
	g.logger.Info().
		Int64("caller_id", callerID).
		Bool("enabled", enabled).
		Msg("All-users access changed")

	return nil
}

// AllUsers reports the current value of the global access flag
func (g *Gate) AllUsers() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.allUsers
}

func (g *Gate) isPrivileged(userID int64) bool {
	return userID == g.ownerID || userID == g.adminID
}
