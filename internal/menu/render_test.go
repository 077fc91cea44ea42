package menu

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beseda/internal/session"
)

func TestRender_EveryScreenHasARenderer(t *testing.T) {
	s := session.New()

	screens := []Screen{
		ScreenRoot, ScreenModelSelect, ScreenImageSettings, ScreenContextActions,
		ScreenVoiceSettings, ScreenRoleActions, ScreenAwaitingRoleInput, ScreenInfo,
	}

	for _, screen := range screens {
		view := Render(screen, 42, s)
		assert.NotEmpty(t, view.Text, "screen %s", screen)
	}
}

func TestRender_RootShowsSummary(t *testing.T) {
	s := session.New()
	s.MessageCount = 7
	s.SystemRole = "pirate"

	view := Render(ScreenRoot, 1, s)

	assert.Contains(t, view.Text, "<b>7</b>")
	assert.Contains(t, view.Text, "4o mini")
	assert.Contains(t, view.Text, "Set")
	require.Len(t, view.Keyboard, 6)
	assert.Equal(t, ActionModelChoice, view.Keyboard[0][0].Action)
}

func TestRender_ImageSettingsReflectSession(t *testing.T) {
	s := session.New()
	s.ImageQuality = session.QualityHD
	s.ImageSize = session.SizeWide

	view := Render(ScreenImageSettings, 1, s)

	assert.Equal(t, "hd : 1792x1024", view.Text)
}

func TestRender_InfoContainsUserID(t *testing.T) {
	s := session.New()

	view := Render(ScreenInfo, 123456, s)

	assert.Contains(t, view.Text, strconv.Itoa(123456))
	assert.Empty(t, view.Keyboard, "info screen replaces the keyboard")
}

func TestRender_AwaitingRoleInputHasNoKeyboard(t *testing.T) {
	view := Render(ScreenAwaitingRoleInput, 1, session.New())

	assert.Equal(t, RoleInputPrompt, view.Text)
	assert.Empty(t, view.Keyboard)
}

func TestRender_VoiceSettings(t *testing.T) {
	s := session.New()

	assert.Contains(t, Render(ScreenVoiceSettings, 1, s).Text, "off")

	s.VoiceReply = true
	assert.Contains(t, Render(ScreenVoiceSettings, 1, s).Text, "on")
}

func TestRender_UnknownScreenFallsBackToRoot(t *testing.T) {
	s := session.New()

	view := Render(Screen("bogus"), 1, s)

	assert.Equal(t, Render(ScreenRoot, 1, s).Text, view.Text)
}
