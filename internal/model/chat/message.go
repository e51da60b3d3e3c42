package chat

// Message is one stored turn of a chat. IsSync marks whether the turn has
// been reconciled with an external store; the server persists it as given.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	IsSync  bool   `json:"isSync"`
}
