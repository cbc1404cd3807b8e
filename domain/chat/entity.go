package chat

// ChatMessage is the wire-level message payload. It is relayed verbatim
// between clients and never stored.
type ChatMessage struct {
	MessageID string `json:"messageId"`
	Room      string `json:"room"`
	Author    string `json:"author"`
	Message   string `json:"message"`
	Time      string `json:"time"`
}

// PresenceEntry is one row of a room's online roster, derived from the
// live connection set on every membership change.
type PresenceEntry struct {
	Username     string `json:"username"`
	ConnectionID string `json:"connectionId"`
}
