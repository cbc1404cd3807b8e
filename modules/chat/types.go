package chat

import (
	"errors"

	domain "github.com/example/chat-gateway/domain/chat"
)

// Inbound event types.
const (
	EventJoinRoom       = "join_room"
	EventSendMessage    = "send_message"
	EventTyping         = "typing"
	EventStopTyping     = "stop_typing"
	EventMessageRead    = "message_read"
	EventReactMessage   = "react_message"
	EventPrivateMessage = "private_message"
)

// Outbound event types.
const (
	EventStatus                = "status"
	EventOnlineUsers           = "online_users"
	EventUserJoined            = "user_joined"
	EventUserLeft              = "user_left"
	EventReceiveMessage        = "receive_message"
	EventReceivePrivateMessage = "receive_private_message"
	EventUserTyping            = "user_typing"
	EventUserStopTyping        = "user_stop_typing"
	EventUpdateReadReceipts    = "update_read_receipts"
	EventUpdateReactions       = "update_reactions"
)

// StatusUnauthorized is the status payload value sent before an
// unauthorized connection is closed.
const StatusUnauthorized = "unauthorized"

// Validation errors. Events missing required fields are dropped without
// affecting the connection.
var (
	ErrMissingRoom      = errors.New("room is required")
	ErrMissingAuthor    = errors.New("author is required")
	ErrMissingMessage   = errors.New("message is required")
	ErrMissingMessageID = errors.New("messageId is required")
	ErrMissingReader    = errors.New("reader is required")
	ErrMissingEmoji     = errors.New("emoji is required")
	ErrMissingReactor   = errors.New("reactor is required")
	ErrMissingTarget    = errors.New("toSocketId is required")
)

// JoinPayload is the payload for join_room.
type JoinPayload struct {
	Room   string `json:"room"`
	Author string `json:"author"`
}

// Validate checks required fields.
func (p JoinPayload) Validate() error {
	if p.Room == "" {
		return ErrMissingRoom
	}
	if p.Author == "" {
		return ErrMissingAuthor
	}
	return nil
}

// TypingPayload is the payload for typing and stop_typing.
type TypingPayload struct {
	Room   string `json:"room"`
	Author string `json:"author"`
}

// Validate checks required fields.
func (p TypingPayload) Validate() error {
	if p.Room == "" {
		return ErrMissingRoom
	}
	if p.Author == "" {
		return ErrMissingAuthor
	}
	return nil
}

// ReadReceiptPayload is the payload for message_read.
type ReadReceiptPayload struct {
	Room      string `json:"room"`
	MessageID string `json:"messageId"`
	Reader    string `json:"reader"`
}

// Validate checks required fields.
func (p ReadReceiptPayload) Validate() error {
	if p.Room == "" {
		return ErrMissingRoom
	}
	if p.MessageID == "" {
		return ErrMissingMessageID
	}
	if p.Reader == "" {
		return ErrMissingReader
	}
	return nil
}

// ReactionPayload is the payload for react_message.
type ReactionPayload struct {
	Room      string `json:"room"`
	MessageID string `json:"messageId"`
	Emoji     string `json:"emoji"`
	Reactor   string `json:"reactor"`
}

// Validate checks required fields.
func (p ReactionPayload) Validate() error {
	if p.Room == "" {
		return ErrMissingRoom
	}
	if p.MessageID == "" {
		return ErrMissingMessageID
	}
	if p.Emoji == "" {
		return ErrMissingEmoji
	}
	if p.Reactor == "" {
		return ErrMissingReactor
	}
	return nil
}

// PrivateMessagePayload is the payload for private_message.
type PrivateMessagePayload struct {
	ToSocketID string             `json:"toSocketId"`
	Message    domain.ChatMessage `json:"message"`
}

// Validate checks required fields.
func (p PrivateMessagePayload) Validate() error {
	if p.ToSocketID == "" {
		return ErrMissingTarget
	}
	return nil
}

// ValidateMessage checks required fields of an inbound chat message.
func ValidateMessage(msg domain.ChatMessage) error {
	if msg.Room == "" {
		return ErrMissingRoom
	}
	if msg.Author == "" {
		return ErrMissingAuthor
	}
	if msg.Message == "" {
		return ErrMissingMessage
	}
	return nil
}

// StatusPayload is sent on authorization failure.
type StatusPayload struct {
	Status string `json:"status"`
}

// UserJoinedPayload accompanies every online_users refresh triggered by
// a join. Users is the author -> connectionId mapping.
type UserJoinedPayload struct {
	Author   string            `json:"author"`
	SocketID string            `json:"socketId"`
	Users    map[string]string `json:"users"`
}

// UserLeftPayload accompanies every online_users refresh triggered by a
// disconnect.
type UserLeftPayload struct {
	Author string            `json:"author"`
	Users  map[string]string `json:"users"`
}

// ReadReceiptUpdate is the update_read_receipts payload.
type ReadReceiptUpdate struct {
	MessageID string `json:"messageId"`
	Reader    string `json:"reader"`
}

// ReactionUpdate is the update_reactions payload.
type ReactionUpdate struct {
	MessageID string `json:"messageId"`
	Emoji     string `json:"emoji"`
	Reactor   string `json:"reactor"`
}
