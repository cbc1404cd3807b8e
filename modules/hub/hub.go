package hub

import (
	"log"
	"sync"
)

// Conn is the subset of a websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client represents one live connection and its chat attributes.
// Room and Author are empty until the first join_room event; they are
// mutated only under the table lock, so readers outside the hub get
// Member snapshots instead of these records.
type Client struct {
	ID     string
	Token  string
	Room   string
	Author string
	Conn   Conn

	// writeMu serializes frames to Conn; the underlying websocket
	// connection forbids concurrent writers.
	writeMu sync.Mutex
}

// Member is a point-in-time snapshot of one connection's chat
// attributes, safe to read after the table lock is released.
type Member struct {
	ID     string
	Room   string
	Author string
}

// Hub is the connection table. Room membership is not stored anywhere;
// a room is the set of clients whose Room field matches, computed fresh
// by MembersOf on every query.
type Hub struct {
	clients map[string]*Client // clientID -> Client
	mu      sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a client to the table.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client
	log.Printf("[hub] Client %s registered", client.ID)
}

// Unregister removes a client from the table and returns the removed
// record, or nil if the client was unknown. After Unregister returns the
// client no longer matches any membership query.
func (h *Hub) Unregister(clientID string) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[clientID]
	if !ok {
		return nil
	}
	delete(h.clients, clientID)
	log.Printf("[hub] Client %s unregistered", clientID)
	return client
}

// Get returns a client by ID.
func (h *Hub) Get(clientID string) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[clientID]
}

// SetRoom records a join: it overwrites the client's room and author.
// There is no explicit leave; the client simply stops matching the old
// room's membership query. It reports whether the client is known.
func (h *Hub) SetRoom(clientID, room, author string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[clientID]
	if !ok {
		return false
	}
	client.Room = room
	client.Author = author
	log.Printf("[hub] Client %s joined room %s", clientID, room)
	return true
}

// MembersOf returns snapshots of the clients currently in a room, live
// at call time.
func (h *Hub) MembersOf(room string) []Member {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var members []Member
	for _, client := range h.clients {
		if client.Room == room {
			members = append(members, Member{
				ID:     client.ID,
				Room:   client.Room,
				Author: client.Author,
			})
		}
	}
	return members
}

// clientsIn returns the live records for a room. Emit paths only; the
// mutable Room/Author fields must not be read off these outside the
// table lock.
func (h *Hub) clientsIn(room string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var clients []*Client
	for _, client := range h.clients {
		if client.Room == room {
			clients = append(clients, client)
		}
	}
	return clients
}

// ClientCount returns the total number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// CloseAll closes every connection and clears the table.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		_ = client.Conn.Close()
	}
	h.clients = make(map[string]*Client)
}
