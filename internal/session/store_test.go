package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBacking(t *testing.T) *SQLiteBacking {
	t.Helper()
	backing, err := NewSQLiteBacking(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { backing.Close() })
	return backing
}

func TestSQLiteBacking_RoundTrip(t *testing.T) {
	backing := newTestBacking(t)

	s := New()
	s.SetModel(ModelClaudeSonnet)
	s.Append(RoleUser, "hello")
	s.Append(RoleAssistant, "hi")
	s.MessageCount = 1
	s.VoiceReply = true
	s.SystemRole = "You always respond as a pirate."
	s.ImageQuality = QualityHD
	s.ImageSize = SizePortrait

	require.NoError(t, backing.Save(42, s))

	loaded, found, err := backing.Load(42)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, s.Model, loaded.Model)
	assert.Equal(t, s.ModelDisplayName, loaded.ModelDisplayName)
	assert.Equal(t, s.ModelChatPrefix, loaded.ModelChatPrefix)
	assert.Equal(t, s.History, loaded.History)
	assert.Equal(t, s.MessageCount, loaded.MessageCount)
	assert.Equal(t, s.MaxContextChars, loaded.MaxContextChars)
	assert.Equal(t, s.VoiceReply, loaded.VoiceReply)
	assert.Equal(t, s.SystemRole, loaded.SystemRole)
	assert.Equal(t, s.ImageQuality, loaded.ImageQuality)
	assert.Equal(t, s.ImageSize, loaded.ImageSize)
}

func TestSQLiteBacking_LoadAbsent(t *testing.T) {
	backing := newTestBacking(t)

	_, found, err := backing.Load(7)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSQLiteBacking_DeleteIdle(t *testing.T) {
	backing := newTestBacking(t)

	require.NoError(t, backing.Save(1, New()))
	require.NoError(t, backing.Save(2, New()))

	// Cutoff in the past removes nothing.
	removed, err := backing.DeleteIdle(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, removed)

	// Cutoff in the future removes both.
	removed, err = backing.DeleteIdle(time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)
}

func TestStore_CreatesDefaultOnFirstContact(t *testing.T) {
	store := NewStore(newTestBacking(t), zerolog.Nop())

	s, err := store.Get(99)
	require.NoError(t, err)
	assert.Equal(t, ModelGPT4oMini, s.Model)

	// Same pointer on repeat lookups.
	again, err := store.Get(99)
	require.NoError(t, err)
	assert.Same(t, s, again)
}

func TestStore_SaveAndReloadAfterEvict(t *testing.T) {
	backing := newTestBacking(t)
	store := NewStore(backing, zerolog.Nop())

	s, err := store.Get(5)
	require.NoError(t, err)
	s.Append(RoleUser, "remember me")
	require.NoError(t, store.Save(5))

	store.Evict(5)

	reloaded, err := store.Get(5)
	require.NoError(t, err)
	require.Len(t, reloaded.History, 1)
	assert.Equal(t, "remember me", reloaded.History[0].Content)
}

func TestStore_SaveWithoutLoadFails(t *testing.T) {
	store := NewStore(newTestBacking(t), zerolog.Nop())
	assert.Error(t, store.Save(123))
}
