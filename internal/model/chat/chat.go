package chat

import "time"

// Chat is the server-side record of a conversation.
type Chat struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Summary   string    `json:"summary,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
