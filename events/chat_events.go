package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// MessageSentEvent is emitted when a message is fanned out to a room.
type MessageSentEvent struct {
	MessageID string    `json:"message_id"`
	Room      string    `json:"room"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

// UserJoinedEvent is emitted when a connection joins a room.
type UserJoinedEvent struct {
	Room         string    `json:"room"`
	Author       string    `json:"author"`
	ConnectionID string    `json:"connection_id"`
	Timestamp    time.Time `json:"timestamp"`
}

// UserLeftEvent is emitted when a connection leaves its room on disconnect.
type UserLeftEvent struct {
	Room         string    `json:"room"`
	Author       string    `json:"author"`
	ConnectionID string    `json:"connection_id"`
	Timestamp    time.Time `json:"timestamp"`
}

// PrivateMessageSentEvent is emitted when a private message is relayed.
type PrivateMessageSentEvent struct {
	FromConnectionID string    `json:"from_connection_id"`
	ToConnectionID   string    `json:"to_connection_id"`
	Timestamp        time.Time `json:"timestamp"`
}

// Event definitions for the chat domain.
var (
	MessageSentV1 = helper.EventDefinition[MessageSentEvent](
		"chat",
		"MessageSent",
		"v1",
	)

	UserJoinedV1 = helper.EventDefinition[UserJoinedEvent](
		"chat",
		"UserJoined",
		"v1",
	)

	UserLeftV1 = helper.EventDefinition[UserLeftEvent](
		"chat",
		"UserLeft",
		"v1",
	)

	PrivateMessageSentV1 = helper.EventDefinition[PrivateMessageSentEvent](
		"chat",
		"PrivateMessageSent",
		"v1",
	)
)
