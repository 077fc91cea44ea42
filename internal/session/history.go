package session

import "unicode/utf8"

// Append adds a turn to the conversation history. Growth is unbounded here;
// the budget is enforced at extraction time, not on append.
func (s *Session) Append(role, content string) {
	s.History = append(s.History, Message{Role: role, Content: content})
}

// Extract returns the most recent suffix of History whose total content
// length fits budgetChars, in chronological order. The walk runs newest to
// oldest; if the oldest admitted entry straddles the remaining budget its
// content is cut to exactly fill the remainder rather than dropped whole.
// History itself is never mutated.
func (s *Session) Extract(budgetChars int) []Message {
	var out []Message
	total := 0

	for i := len(s.History) - 1; i >= 0; i-- {
		remaining := budgetChars - total
		if remaining <= 0 {
			break
		}

		msg := s.History[i]
		if len(msg.Content) > remaining {
			// Budgets are bytes; never cut through a multi-byte rune.
			cut := remaining
			for cut > 0 && !utf8.RuneStart(msg.Content[cut]) {
				cut--
			}
			out = append(out, Message{Role: msg.Role, Content: msg.Content[:cut]})
			break
		}

		out = append(out, msg)
		total += len(msg.Content)
	}

	// Reverse back into chronological order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out
}

// Clear empties the history and resets the exchange counter. This is the only
// operation that discards stored turns.
func (s *Session) Clear() {
	s.History = nil
	s.MessageCount = 0
}
