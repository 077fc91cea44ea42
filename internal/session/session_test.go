package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	s := New()

	assert.Equal(t, ModelGPT4oMini, s.Model)
	assert.Equal(t, "4o mini", s.ModelDisplayName)
	assert.Equal(t, "4o mini:\n\n", s.ModelChatPrefix)
	assert.Equal(t, 128000, s.MaxContextChars)
	assert.False(t, s.VoiceReply)
	assert.Empty(t, s.SystemRole)
	assert.Equal(t, QualityStandard, s.ImageQuality)
	assert.Equal(t, SizeSquare, s.ImageSize)
	assert.Zero(t, s.MessageCount)
}

func TestSetModel_KeepsDerivedFieldsConsistent(t *testing.T) {
	s := New()

	for m, info := range models {
		s.SetModel(m)
		assert.Equal(t, m, s.Model)
		assert.Equal(t, info.displayName, s.ModelDisplayName)
		assert.Equal(t, info.chatPrefix, s.ModelChatPrefix)
		assert.Equal(t, info.maxContextChars, s.MaxContextChars)
	}
}

func TestReset_RestoresStartDefaults(t *testing.T) {
	s := New()
	s.SetModel(ModelDallE3)
	s.Append(RoleUser, "hello")
	s.MessageCount = 5
	s.VoiceReply = true
	s.SystemRole = "You always respond as a pirate."
	s.ImageQuality = QualityHD
	s.ImageSize = SizeWide

	s.Reset()

	assert.Equal(t, ModelGPT4oMini, s.Model)
	assert.Empty(t, s.History)
	assert.Zero(t, s.MessageCount)
	assert.False(t, s.VoiceReply)
	assert.Empty(t, s.SystemRole)
	assert.Equal(t, QualityStandard, s.ImageQuality)
	assert.Equal(t, SizeSquare, s.ImageSize)
}

func TestModelProperties(t *testing.T) {
	assert.True(t, ModelDallE3.IsImage())
	assert.False(t, ModelGPT4o.IsImage())

	assert.Equal(t, ProviderAnthropic, ModelClaudeSonnet.Provider())
	assert.Equal(t, ProviderOpenAI, ModelGPT4oMini.Provider())

	assert.True(t, ModelGPT4o.AcceptsSystemRole())
	assert.False(t, ModelO1Mini.AcceptsSystemRole())

	assert.True(t, Model("gpt-4o").Valid())
	assert.False(t, Model("gpt-9").Valid())
}
