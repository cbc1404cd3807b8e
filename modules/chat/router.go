package chat

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/go-monolith/mono"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	domain "github.com/example/chat-gateway/domain/chat"
	"github.com/example/chat-gateway/events"
	"github.com/example/chat-gateway/modules/auth"
	"github.com/example/chat-gateway/modules/hub"
)

// Router dispatches inbound chat events to their handlers. Every event
// passes the auth gate first; room-fanout relays exclude their sender,
// presence broadcasts do not.
type Router struct {
	hub      *hub.Hub
	verifier auth.TokenVerifier
	eventBus mono.EventBus
	logger   *slog.Logger
}

// NewRouter creates a new router over the given connection table.
func NewRouter(h *hub.Hub, verifier auth.TokenVerifier) *Router {
	return &Router{
		hub:      h,
		verifier: verifier,
		logger:   slog.Default(),
	}
}

// HandleConnection is the websocket handler for one client session. It
// registers the connection, pumps inbound frames through Dispatch, and
// reconciles room presence when the transport closes.
func (r *Router) HandleConnection(c *websocket.Conn) {
	clientID := uuid.New().String()
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.Headers("Authorization"), "Bearer ")
	}

	r.hub.Register(&hub.Client{
		ID:    clientID,
		Token: token,
		Conn:  c,
	})

	defer r.Disconnect(clientID)

	r.logger.Info("WebSocket connected", "clientID", clientID)

	for {
		_, msgBytes, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				r.logger.Error("WebSocket error", "clientID", clientID, "error", err)
			}
			break
		}

		var env hub.Envelope
		if err := json.Unmarshal(msgBytes, &env); err != nil {
			r.logger.Debug("Dropping malformed frame", "clientID", clientID)
			continue
		}

		if !r.Dispatch(clientID, env) {
			break
		}
	}

	r.logger.Info("WebSocket disconnected", "clientID", clientID)
}

// Dispatch authorizes and routes one inbound event. It returns false
// when the connection was terminated by the auth gate and no further
// events should be read for it.
func (r *Router) Dispatch(clientID string, env hub.Envelope) bool {
	client := r.hub.Get(clientID)
	if client == nil {
		return false
	}

	// The token is re-verified on every event, not just at handshake.
	if !r.authorize(client) {
		return false
	}

	switch env.Type {
	case EventJoinRoom:
		r.handleJoin(client, env.Payload)
	case EventSendMessage:
		r.handleSendMessage(client, env.Payload)
	case EventTyping:
		r.handleTyping(client, env.Payload, EventUserTyping)
	case EventStopTyping:
		r.handleTyping(client, env.Payload, EventUserStopTyping)
	case EventMessageRead:
		r.handleMessageRead(client, env.Payload)
	case EventReactMessage:
		r.handleReaction(client, env.Payload)
	case EventPrivateMessage:
		r.handlePrivateMessage(client, env.Payload)
	default:
		r.logger.Debug("Unknown event type", "clientID", clientID, "type", env.Type)
	}
	return true
}

// authorize runs the auth gate. Failure is terminal for the connection:
// one status event, then close.
func (r *Router) authorize(client *hub.Client) bool {
	if _, err := r.verifier.Verify(client.Token); err != nil {
		r.logger.Warn("Unauthorized event", "clientID", client.ID, "error", err)
		r.hub.EmitToClient(client.ID, EventStatus, StatusPayload{Status: StatusUnauthorized})
		_ = client.Conn.Close()
		return false
	}
	return true
}

// handleJoin sets the client's room and author, then broadcasts the
// refreshed roster. Joining a new room overwrites the previous one with
// no user_left for the abandoned room.
func (r *Router) handleJoin(client *hub.Client, payload json.RawMessage) {
	var req JoinPayload
	if err := unmarshalPayload(payload, &req); err != nil {
		r.drop(client.ID, EventJoinRoom, err)
		return
	}

	if !r.hub.SetRoom(client.ID, req.Room, req.Author) {
		return
	}

	users := r.refreshPresence(req.Room)
	r.hub.EmitToRoom(req.Room, EventUserJoined, UserJoinedPayload{
		Author:   req.Author,
		SocketID: client.ID,
		Users:    users,
	}, "")

	r.publish(func() error {
		return events.UserJoinedV1.Publish(r.eventBus, events.UserJoinedEvent{
			Room:         req.Room,
			Author:       req.Author,
			ConnectionID: client.ID,
			Timestamp:    time.Now(),
		}, nil)
	})
}

// handleSendMessage relays the message payload unchanged to the room,
// excluding the sender.
func (r *Router) handleSendMessage(client *hub.Client, payload json.RawMessage) {
	var msg domain.ChatMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		r.drop(client.ID, EventSendMessage, err)
		return
	}
	if err := ValidateMessage(msg); err != nil {
		r.drop(client.ID, EventSendMessage, err)
		return
	}

	// Relay the payload bytes unchanged rather than re-marshaling.
	r.hub.EmitToRoom(msg.Room, EventReceiveMessage, payload, client.ID)

	r.publish(func() error {
		return events.MessageSentV1.Publish(r.eventBus, events.MessageSentEvent{
			MessageID: msg.MessageID,
			Room:      msg.Room,
			Author:    msg.Author,
			Timestamp: time.Now(),
		}, nil)
	})
}

// handleTyping relays the author name for typing and stop_typing.
func (r *Router) handleTyping(client *hub.Client, payload json.RawMessage, outEvent string) {
	var req TypingPayload
	if err := unmarshalPayload(payload, &req); err != nil {
		r.drop(client.ID, outEvent, err)
		return
	}
	r.hub.EmitToRoom(req.Room, outEvent, req.Author, client.ID)
}

func (r *Router) handleMessageRead(client *hub.Client, payload json.RawMessage) {
	var req ReadReceiptPayload
	if err := unmarshalPayload(payload, &req); err != nil {
		r.drop(client.ID, EventMessageRead, err)
		return
	}
	r.hub.EmitToRoom(req.Room, EventUpdateReadReceipts, ReadReceiptUpdate{
		MessageID: req.MessageID,
		Reader:    req.Reader,
	}, client.ID)
}

func (r *Router) handleReaction(client *hub.Client, payload json.RawMessage) {
	var req ReactionPayload
	if err := unmarshalPayload(payload, &req); err != nil {
		r.drop(client.ID, EventReactMessage, err)
		return
	}
	r.hub.EmitToRoom(req.Room, EventUpdateReactions, ReactionUpdate{
		MessageID: req.MessageID,
		Emoji:     req.Emoji,
		Reactor:   req.Reactor,
	}, client.ID)
}

// handlePrivateMessage relays the message verbatim to exactly one
// connection. An unknown target is a silent no-op, not an error.
func (r *Router) handlePrivateMessage(client *hub.Client, payload json.RawMessage) {
	var req PrivateMessagePayload
	if err := unmarshalPayload(payload, &req); err != nil {
		r.drop(client.ID, EventPrivateMessage, err)
		return
	}

	if r.hub.Get(req.ToSocketID) == nil {
		return
	}
	r.hub.EmitToClient(req.ToSocketID, EventReceivePrivateMessage, req.Message)

	r.publish(func() error {
		return events.PrivateMessageSentV1.Publish(r.eventBus, events.PrivateMessageSentEvent{
			FromConnectionID: client.ID,
			ToConnectionID:   req.ToSocketID,
			Timestamp:        time.Now(),
		}, nil)
	})
}

// Disconnect removes the client from the table, then re-broadcasts
// presence computed over the post-removal membership. A client that
// never joined a room triggers no broadcast.
func (r *Router) Disconnect(clientID string) {
	client := r.hub.Unregister(clientID)
	if client == nil || client.Room == "" {
		return
	}

	users := r.refreshPresence(client.Room)
	r.hub.EmitToRoom(client.Room, EventUserLeft, UserLeftPayload{
		Author: client.Author,
		Users:  users,
	}, "")

	r.publish(func() error {
		return events.UserLeftV1.Publish(r.eventBus, events.UserLeftEvent{
			Room:         client.Room,
			Author:       client.Author,
			ConnectionID: client.ID,
			Timestamp:    time.Now(),
		}, nil)
	})
}

// drop logs and discards an event that failed validation. The connection
// is unaffected.
func (r *Router) drop(clientID, event string, err error) {
	r.logger.Debug("Dropping invalid event", "clientID", clientID, "event", event, "error", err)
}

// publish emits a domain event on the bus when one is attached.
func (r *Router) publish(fn func() error) {
	if r.eventBus == nil {
		return
	}
	if err := fn(); err != nil {
		slog.Warn("Failed to publish chat event", "error", err)
	}
}

type validator interface {
	Validate() error
}

func unmarshalPayload(payload json.RawMessage, v validator) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return err
	}
	return v.Validate()
}
