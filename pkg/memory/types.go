package memory

import (
	"encoding/json"
	"fmt"
)

// Chat identifies a conversation held on the memory server. Timestamps are
// kept as the server's own string encoding and never parsed locally.
type Chat struct {
	ID        string `json:"id"`
	SessionID string `json:"sessionId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// MessageRole is the closed set of senders a message may carry.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Valid reports whether the role is one of the known senders.
func (r MessageRole) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// UnmarshalJSON rejects roles outside the known set so an invalid role never
// survives a decode.
func (r *MessageRole) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	role := MessageRole(s)
	if !role.Valid() {
		return fmt.Errorf("unknown message role %q", s)
	}
	*r = role
	return nil
}

// ChatMessage is one turn within a chat. IsSync is owned by the server; this
// client only transports it.
type ChatMessage struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
	IsSync  bool        `json:"isSync"`
}
