package inference

import (
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beseda/internal/session"
)

func TestChatProviderFor_RoutesByProvider(t *testing.T) {
	r := NewRouter("openai-key", "anthropic-key", zerolog.Nop())

	p, err := r.chatProviderFor(session.ModelGPT4o)
	require.NoError(t, err)
	assert.Same(t, r.openai, p)

	p, err = r.chatProviderFor(session.ModelClaudeSonnet)
	require.NoError(t, err)
	assert.Same(t, r.anthropic, p)
}

func TestChatProviderFor_ClaudeWithoutKeyFails(t *testing.T) {
	r := NewRouter("openai-key", "", zerolog.Nop())

	_, err := r.chatProviderFor(session.ModelClaudeSonnet)
	assert.Error(t, err)
}

func TestTTSVoice_IsNova(t *testing.T) {
	assert.Equal(t, "nova", string(ttsVoice))
}

func TestToOpenAIMessages_SystemFirst(t *testing.T) {
	msgs := toOpenAIMessages("be brief", []session.Message{
		{Role: session.RoleUser, Content: "hi"},
		{Role: session.RoleAssistant, Content: "hello"},
	})

	require.Len(t, msgs, 3)
	require.NotNil(t, msgs[0].OfSystem)
	require.NotNil(t, msgs[1].OfUser)
	require.NotNil(t, msgs[2].OfAssistant)
}

func TestToOpenAIMessages_NoSystem(t *testing.T) {
	msgs := toOpenAIMessages("", []session.Message{
		{Role: session.RoleUser, Content: "hi"},
	})

	require.Len(t, msgs, 1)
	require.NotNil(t, msgs[0].OfUser)
}

func TestToAnthropicMessages_RolesPreserved(t *testing.T) {
	msgs := toAnthropicMessages([]session.Message{
		{Role: session.RoleUser, Content: "hi"},
		{Role: session.RoleAssistant, Content: "hello"},
		{Role: session.RoleUser, Content: "more"},
	})

	require.Len(t, msgs, 3)
	assert.Equal(t, anthropic.MessageParamRoleUser, msgs[0].Role)
	assert.Equal(t, anthropic.MessageParamRoleAssistant, msgs[1].Role)
	assert.Equal(t, anthropic.MessageParamRoleUser, msgs[2].Role)
}
