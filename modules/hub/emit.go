package hub

import (
	"encoding/json"
	"log"

	"github.com/gofiber/contrib/websocket"
)

// Envelope is the framing for every websocket message, multiplexing
// named events over one connection.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// EmitToRoom sends an event to every client in a room. When excludeID is
// non-empty, that client is skipped (sender self-exclusion).
func (h *Hub) EmitToRoom(room, event string, payload any, excludeID string) {
	data, err := marshalEnvelope(event, payload)
	if err != nil {
		log.Printf("[hub] Failed to marshal %s event: %v", event, err)
		return
	}

	for _, client := range h.clientsIn(room) {
		if client.ID == excludeID {
			continue
		}
		h.send(client, data)
	}
}

// EmitToClient sends an event to exactly one client. Unknown targets are
// a silent no-op.
func (h *Hub) EmitToClient(clientID, event string, payload any) {
	client := h.Get(clientID)
	if client == nil {
		return
	}

	data, err := marshalEnvelope(event, payload)
	if err != nil {
		log.Printf("[hub] Failed to marshal %s event: %v", event, err)
		return
	}
	h.send(client, data)
}

// send writes one frame, serialized per connection: broadcasts run on
// the emitting connection's goroutine, so two of them can target the
// same client at once.
func (h *Hub) send(client *Client, data []byte) {
	client.writeMu.Lock()
	defer client.writeMu.Unlock()
	if err := client.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("[hub] Failed to send to client %s: %v", client.ID, err)
	}
}

func marshalEnvelope(event string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: event, Payload: raw})
}
