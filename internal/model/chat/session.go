package chat

import "time"

// PendingTurn is a submitted user message whose reply is still being composed.
type PendingTurn struct {
	MessageID string    `json:"messageId"`
	Text      string    `json:"text"`
	DueAt     time.Time `json:"dueAt"`
}

// Snapshot is the read-only view of a session handed to presentation code.
type Snapshot struct {
	SessionID string       `json:"sessionId"`
	Messages  []Message    `json:"messages"`
	Composing bool         `json:"composing"`
	Pending   *PendingTurn `json:"pending,omitempty"`
}

// Last returns the newest message, if any.
func (s Snapshot) Last() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}
