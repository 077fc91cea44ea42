package session

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Store hands out one session per user identifier, creating defaults on first
// contact and writing through to the backing on Save. Callers are expected to
// serialize work per user (see the queue package); the store's own lock only
// protects the cache map.
type Store struct {
	backing Backing
	logger  zerolog.Logger

	mu    sync.Mutex
	cache map[int64]*Session
}

// NewStore creates a session store over the given backing
func NewStore(backing Backing, logger zerolog.Logger) *Store {
	return &Store{
		backing: backing,
		logger:  logger.With().Str("component", "session-store").Logger(),
		cache:   make(map[int64]*Session),
	}
}

// Get returns the session for a user, loading or creating it as needed
func (st *Store) Get(userID int64) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.cache[userID]; ok {
		return s, nil
	}

	s, found, err := st.backing.Load(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session for user %d: %w", userID, err)
	}

	if !found {
		s = New()
		st.logger.Debug().Int64("user_id", userID).Msg("Session created")
	}

	st.cache[userID] = s
	return s, nil
}

// Save persists the user's current session
func (st *Store) Save(userID int64) error {
	st.mu.Lock()
	s, ok := st.cache[userID]
	st.mu.Unlock()

	if !ok {
		return fmt.Errorf("no session loaded for user %d", userID)
	}

	if err := st.backing.Save(userID, s); err != nil {
		return fmt.Errorf("failed to save session for user %d: %w", userID, err)
	}

	st.logger.Debug().Int64("user_id", userID).Msg("Session saved")
	return nil
}

// Evict drops a user's session from the cache without touching the backing
func (st *Store) Evict(userID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.cache, userID)
}

// Close closes the backing
func (st *Store) Close() error {
	return st.backing.Close()
}
