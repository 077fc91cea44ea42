package session

import "time"

// Image generation settings
const (
	QualityStandard = "standard"
	QualityHD       = "hd"

	SizeSquare   = "1024x1024"
	SizePortrait = "1024x1792"
	SizeWide     = "1792x1024"
)

// Message is one conversation turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Roles used in History and at call time
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Session is the per-user durable record of model choice, history and
// settings. ModelDisplayName and ModelChatPrefix are derived from Model and
// must only change through SetModel. SystemRole is never stored in History;
// it is synthesized as a transient system entry at call time.
type Session struct {
	Model            Model     `json:"model"`
	ModelDisplayName string    `json:"model_display_name"`
	ModelChatPrefix  string    `json:"model_chat_prefix"`
	History          []Message `json:"history"`
	MessageCount     int       `json:"message_count"`
	MaxContextChars  int       `json:"max_context_chars"`
	VoiceReply       bool      `json:"voice_reply"`
	SystemRole       string    `json:"system_role"`
	ImageQuality     string    `json:"image_quality"`
	ImageSize        string    `json:"image_size"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// New creates a session with default settings
func New() *Session {
	s := &Session{}
	s.Reset()
	return s
}

// Reset restores the session to its /start defaults
func (s *Session) Reset() {
	s.SetModel(ModelGPT4oMini)
	s.History = nil
	s.MessageCount = 0
	s.VoiceReply = false
	s.SystemRole = ""
	s.ImageQuality = QualityStandard
	s.ImageSize = SizeSquare
}

// SetModel changes the model and recomputes every derived field in one step
func (s *Session) SetModel(m Model) {
	info := models[m]
	s.Model = m
	s.ModelDisplayName = info.displayName
	s.ModelChatPrefix = info.chatPrefix
	s.MaxContextChars = info.maxContextChars
}
