package menu

import "beseda/internal/session"

// ApplySetting mutates the session according to a settings action and reports
// whether anything actually changed. Applying a setting that already holds
// returns false, so callers can re-render the screen without a persistence
// write.
func ApplySetting(s *session.Session, action Action) bool {
	switch action {
	case ActionSetGPT4oMini:
		return setModel(s, session.ModelGPT4oMini)
	case ActionSetGPT4o:
		return setModel(s, session.ModelGPT4o)
	case ActionSetO1Mini:
		return setModel(s, session.ModelO1Mini)
	case ActionSetO1Preview:
		return setModel(s, session.ModelO1Preview)
	case ActionSetClaudeSonnet:
		return setModel(s, session.ModelClaudeSonnet)
	case ActionSetDallE3:
		return setModel(s, session.ModelDallE3)

	case ActionSetQualitySD:
		return setQuality(s, session.QualityStandard)
	case ActionSetQualityHD:
		return setQuality(s, session.QualityHD)
	case ActionSetSizeSquare:
		return setSize(s, session.SizeSquare)
	case ActionSetSizePortrait:
		return setSize(s, session.SizePortrait)
	case ActionSetSizeWide:
		return setSize(s, session.SizeWide)

	case ActionVoiceOn:
		return setVoice(s, true)
	case ActionVoiceOff:
		return setVoice(s, false)

	case ActionRemoveRole:
		if s.SystemRole == "" {
			return false
		}
		s.SystemRole = ""
		return true

	case ActionClearContext:
		if len(s.History) == 0 && s.MessageCount == 0 {
			return false
		}
		s.Clear()
		return true
	}

	return false
}

// IsSetting reports whether an action mutates session settings
func IsSetting(action Action) bool {
	switch action {
	case ActionSetGPT4oMini, ActionSetGPT4o, ActionSetO1Mini, ActionSetO1Preview,
		ActionSetClaudeSonnet, ActionSetDallE3,
		ActionSetQualitySD, ActionSetQualityHD,
		ActionSetSizeSquare, ActionSetSizePortrait, ActionSetSizeWide,
		ActionVoiceOn, ActionVoiceOff,
		ActionRemoveRole, ActionClearContext:
		return true
	}
	return false
}

func setModel(s *session.Session, m session.Model) bool {
	if s.Model == m {
		return false
	}
	s.SetModel(m)
	return true
}

func setQuality(s *session.Session, quality string) bool {
	if s.ImageQuality == quality {
		return false
	}
	s.ImageQuality = quality
	return true
}

func setSize(s *session.Session, size string) bool {
	if s.ImageSize == size {
		return false
	}
	s.ImageSize = size
	return true
}

func setVoice(s *session.Session, enabled bool) bool {
	if s.VoiceReply == enabled {
		return false
	}
	s.VoiceReply = enabled
	return true
}
