package menu

import (
	"fmt"
	"time"

	"beseda/internal/session"
)

// Button is one inline-keyboard entry
type Button struct {
	Label  string
	Action Action
}

// View is the full-replacement rendering of one screen: the message text
// (HTML) plus the keyboard rows that go with it. Each transition supersedes
// the previous rendering of the triggering message.
type View struct {
	Text     string
	Keyboard [][]Button
}

// RoleInputPrompt is shown when the bot starts waiting for a role value
const RoleInputPrompt = "<b>Enter the system role value, either as text or voice, " +
	"for example it could be like this - </b><i>You always respond as a pirate.</i>"

type renderFunc func(userID int64, s *session.Session) View

// renderers maps each screen to its renderer. Plain lookup, no dispatch.
var renderers = map[Screen]renderFunc{
	ScreenRoot:              renderRoot,
	ScreenModelSelect:       renderModelSelect,
	ScreenImageSettings:     renderImageSettings,
	ScreenContextActions:    renderContextActions,
	ScreenVoiceSettings:     renderVoiceSettings,
	ScreenRoleActions:       renderRoleActions,
	ScreenAwaitingRoleInput: renderAwaitingRoleInput,
	ScreenInfo:              renderInfo,
}

// Render produces the view for a screen from session state alone
func Render(screen Screen, userID int64, s *session.Session) View {
	render, ok := renderers[screen]
	if !ok {
		render = renderRoot
	}
	return render(userID, s)
}

func renderRoot(_ int64, s *session.Session) View {
	return View{
		Text: summary(s),
		Keyboard: [][]Button{
			{{Label: "Model Selection", Action: ActionModelChoice}},
			{{Label: "Image Settings", Action: ActionPicSetup}},
			{{Label: "Context Actions", Action: ActionContextWork}},
			{{Label: "Voice Responses", Action: ActionVoiceWork}},
			{{Label: "System Role", Action: ActionRoleWork}},
			{{Label: "Information", Action: ActionInfo}},
		},
	}
}

func renderModelSelect(_ int64, s *session.Session) View {
	return View{
		Text: fmt.Sprintf("<i>Model:</i> %s", s.ModelDisplayName),
		Keyboard: [][]Button{
			{{Label: "4o mini", Action: ActionSetGPT4oMini}},
			{{Label: "4o", Action: ActionSetGPT4o}},
			{{Label: "o1 mini", Action: ActionSetO1Mini}},
			{{Label: "o1", Action: ActionSetO1Preview}},
			{{Label: "Claude Sonnet", Action: ActionSetClaudeSonnet}},
			{{Label: "DALL·E 3", Action: ActionSetDallE3}},
			{{Label: "Back to Menu", Action: ActionBackMenu}},
		},
	}
}

func renderImageSettings(_ int64, s *session.Session) View {
	return View{
		Text: fmt.Sprintf("%s : %s", s.ImageQuality, s.ImageSize),
		Keyboard: [][]Button{
			{{Label: "SD", Action: ActionSetQualitySD}},
			{{Label: "HD", Action: ActionSetQualityHD}},
			{{Label: "1024x1024", Action: ActionSetSizeSquare}},
			{{Label: "1024x1792", Action: ActionSetSizePortrait}},
			{{Label: "1792x1024", Action: ActionSetSizeWide}},
			{{Label: "Back to Menu", Action: ActionBackMenu}},
		},
	}
}

func renderContextActions(_ int64, s *session.Session) View {
	return View{
		Text: fmt.Sprintf("<i>Messages:</i> %d", s.MessageCount),
		Keyboard: [][]Button{
			{{Label: "Display Context", Action: ActionShowContext}},
			{{Label: "Clear Context", Action: ActionClearContext}},
			{{Label: "Back to Menu", Action: ActionBackMenu}},
		},
	}
}

func renderVoiceSettings(_ int64, s *session.Session) View {
	return View{
		Text: fmt.Sprintf("<i>Audio:</i> %s", onOff(s.VoiceReply)),
		Keyboard: [][]Button{
			{{Label: "Enable Audio Response", Action: ActionVoiceOn}},
			{{Label: "Disable Audio Response", Action: ActionVoiceOff}},
			{{Label: "Back to Menu", Action: ActionBackMenu}},
		},
	}
}

func renderRoleActions(_ int64, s *session.Session) View {
	return View{
		Text: fmt.Sprintf("<i>Role:</i> %s", roleOrUndefined(s)),
		Keyboard: [][]Button{
			{{Label: "Assign System's Role", Action: ActionAssignRole}},
			{{Label: "Remove System's Role", Action: ActionRemoveRole}},
			{{Label: "Back to Menu", Action: ActionBackMenu}},
		},
	}
}

func renderAwaitingRoleInput(_ int64, _ *session.Session) View {
	return View{Text: RoleInputPrompt}
}

func renderInfo(userID int64, s *session.Session) View {
	text := fmt.Sprintf(
		"<i>Date:</i> <b>%s</b>\n"+
			"<i>User ID:</i> <b>%d</b>\n"+
			"<i>Model:</i> <b>%s</b>\n"+
			"<i>Image</i>\n"+
			"<i>Quality:</i> <b>%s</b>\n"+
			"<i>Size:</i> <b>%s</b>\n"+
			"<i>Messages:</i> <b>%d</b>\n"+
			"<i>Audio:</i> <b>%s</b>\n"+
			"<i>Role:</i> <b>%s</b>",
		time.Now().Format("02.01.2006 15:04:05"),
		userID,
		s.ModelDisplayName,
		s.ImageQuality,
		s.ImageSize,
		s.MessageCount,
		onOff(s.VoiceReply),
		roleOrUndefined(s),
	)
	return View{Text: text}
}

// summary renders the root-screen settings overview
func summary(s *session.Session) string {
	role := "Absent"
	if s.SystemRole != "" {
		role = "Set"
	}

	return fmt.Sprintf(
		"<i>Messages:</i> <b>%d</b>\n"+
			"<i>Model:</i> <b>%s</b>\n"+
			"<i>Audio:</i> <b>%s</b>\n"+
			"<i>Role:</i> <b>%s</b>\n"+
			"<i>Picture</i>\n"+
			"<i>Quality:</i> <b>%s</b>\n"+
			"<i>Size:</i> <b>%s</b>",
		s.MessageCount,
		s.ModelDisplayName,
		enabledDisabled(s.VoiceReply),
		role,
		s.ImageQuality,
		s.ImageSize,
	)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func enabledDisabled(v bool) string {
	if v {
		return "Enabled"
	}
	return "Disabled"
}

func roleOrUndefined(s *session.Session) string {
	if s.SystemRole == "" {
		return "Undefined"
	}
	return s.SystemRole
}
