// Package menu tracks per-user navigation state and renders menu screens.
// Navigation state is transient: it lives only in memory and resets to the
// root screen on restart, unlike the durable session record.
package menu

import "sync"

// Screen identifies one menu screen
type Screen string

const (
	ScreenRoot              Screen = "root"
	ScreenModelSelect       Screen = "model_select"
	ScreenImageSettings     Screen = "image_settings"
	ScreenContextActions    Screen = "context_actions"
	ScreenVoiceSettings     Screen = "voice_settings"
	ScreenRoleActions       Screen = "role_actions"
	ScreenAwaitingRoleInput Screen = "awaiting_role_input"
	ScreenInfo              Screen = "info"
)

// Action is a named menu trigger; values double as Telegram callback data
type Action string

const (
	ActionModelChoice Action = "model_choice"
	ActionPicSetup    Action = "pic_setup"
	ActionContextWork Action = "context_work"
	ActionVoiceWork   Action = "voice_answer_work"
	ActionRoleWork    Action = "system_value_work"
	ActionInfo        Action = "info"
	ActionBackMenu    Action = "back_menu"

	ActionSetGPT4oMini    Action = "gpt_4o_mini"
	ActionSetGPT4o        Action = "gpt_4_o"
	ActionSetO1Mini       Action = "gpt_o1_mini"
	ActionSetO1Preview    Action = "gpt_o1_preview"
	ActionSetClaudeSonnet Action = "claude_sonnet"
	ActionSetDallE3       Action = "dall_e_3"

	ActionSetQualitySD    Action = "set_sd"
	ActionSetQualityHD    Action = "set_hd"
	ActionSetSizeSquare   Action = "set_1024x1024"
	ActionSetSizePortrait Action = "set_1024x1792"
	ActionSetSizeWide     Action = "set_1792x1024"

	ActionShowContext  Action = "context"
	ActionClearContext Action = "clear"

	ActionVoiceOn  Action = "voice_answer_add"
	ActionVoiceOff Action = "voice_answer_del"

	ActionAssignRole Action = "change_value"
	ActionRemoveRole Action = "delete_value"
)

// transitions maps an action to the screen the user lands on. Every action
// leads to exactly one screen regardless of where it was pressed, which keeps
// (state, action) pairs deterministic even when a user taps a stale keyboard.
var transitions = map[Action]Screen{
	ActionModelChoice: ScreenModelSelect,
	ActionPicSetup:    ScreenImageSettings,
	ActionContextWork: ScreenContextActions,
	ActionVoiceWork:   ScreenVoiceSettings,
	ActionRoleWork:    ScreenRoleActions,
	ActionInfo:        ScreenInfo,
	ActionBackMenu:    ScreenRoot,

	ActionSetGPT4oMini:    ScreenModelSelect,
	ActionSetGPT4o:        ScreenModelSelect,
	ActionSetO1Mini:       ScreenModelSelect,
	ActionSetO1Preview:    ScreenModelSelect,
	ActionSetClaudeSonnet: ScreenModelSelect,
	ActionSetDallE3:       ScreenModelSelect,

	ActionSetQualitySD:    ScreenImageSettings,
	ActionSetQualityHD:    ScreenImageSettings,
	ActionSetSizeSquare:   ScreenImageSettings,
	ActionSetSizePortrait: ScreenImageSettings,
	ActionSetSizeWide:     ScreenImageSettings,

	ActionShowContext:  ScreenContextActions,
	ActionClearContext: ScreenContextActions,

	ActionVoiceOn:  ScreenVoiceSettings,
	ActionVoiceOff: ScreenVoiceSettings,

	ActionAssignRole: ScreenAwaitingRoleInput,
	ActionRemoveRole: ScreenRoleActions,
}

// Target returns the screen an action leads to, and whether the action is known
func Target(action Action) (Screen, bool) {
	screen, ok := transitions[action]
	return screen, ok
}

// Machine tracks each user's current screen
type Machine struct {
	mu     sync.Mutex
	states map[int64]Screen
}

// NewMachine creates an empty menu state machine
func NewMachine() *Machine {
	return &Machine{
		states: make(map[int64]Screen),
	}
}

// Current returns the user's screen, defaulting to the root
func (m *Machine) Current(userID int64) Screen {
	m.mu.Lock()
	defer m.mu.Unlock()

	if screen, ok := m.states[userID]; ok {
		return screen
	}
	return ScreenRoot
}

// Enter moves the user to a screen. Moving anywhere other than
// AwaitingRoleInput implicitly clears a pending awaiting-role marker, since
// the marker is the screen itself.
func (m *Machine) Enter(userID int64, screen Screen) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[userID] = screen
}

// Reset returns the user to the root screen
func (m *Machine) Reset(userID int64) {
	m.Enter(userID, ScreenRoot)
}

// AwaitingRoleInput reports whether the user's next free-form message should
// be consumed as the system role rather than routed to the conversation
func (m *Machine) AwaitingRoleInput(userID int64) bool {
	return m.Current(userID) == ScreenAwaitingRoleInput
}
