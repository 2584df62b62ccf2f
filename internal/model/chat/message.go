package chat

import (
	"time"

	"github.com/neurox-app/mindcare/backend/internal/analysis/support"
)

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one immutable entry of a conversation log.
type Message struct {
	ID        string           `json:"id"`
	Text      string           `json:"text"`
	Sender    Sender           `json:"sender"`
	Timestamp time.Time        `json:"timestamp"`
	Category  support.Category `json:"category,omitempty"`
}
