package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beseda/internal/menu"
	"beseda/internal/session"
)

func TestContextDump_RolesAndBlankLineSeparators(t *testing.T) {
	history := []session.Message{
		{Role: session.RoleUser, Content: "first question"},
		{Role: session.RoleAssistant, Content: "first answer"},
		{Role: session.RoleUser, Content: "second question"},
	}

	dump := contextDump(history)

	assert.Equal(t,
		"user:\nfirst question\n\nassistant:\nfirst answer\n\nuser:\nsecond question",
		dump)
}

func TestContextDump_Empty(t *testing.T) {
	assert.Equal(t, "", contextDump(nil))
}

func TestKeyboardFor_ConvertsRowsAndCallbackData(t *testing.T) {
	view := menu.View{
		Text: "whatever",
		Keyboard: [][]menu.Button{
			{{Label: "Model Selection", Action: menu.ActionModelChoice}},
			{{Label: "Back to Menu", Action: menu.ActionBackMenu}},
		},
	}

	kb := keyboardFor(view)
	require.NotNil(t, kb)
	require.Len(t, kb.InlineKeyboard, 2)

	btn := kb.InlineKeyboard[0][0]
	assert.Equal(t, "Model Selection", btn.Text)
	require.NotNil(t, btn.CallbackData)
	assert.Equal(t, string(menu.ActionModelChoice), *btn.CallbackData)
}

func TestKeyboardFor_NoButtonsYieldsNil(t *testing.T) {
	assert.Nil(t, keyboardFor(menu.View{Text: "plain"}))
}

func TestPhotoDataURL_Prefix(t *testing.T) {
	url := photoDataURL([]byte{0xff, 0xd8})
	assert.Contains(t, url, "data:image/jpeg;base64,")
}
