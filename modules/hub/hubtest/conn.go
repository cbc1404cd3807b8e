// Package hubtest provides a fake connection for testing hub-backed
// components.
package hubtest

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/example/chat-gateway/modules/hub"
)

// FakeConn records every frame written to it and satisfies hub.Conn.
type FakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

// WriteMessage records the frame.
func (c *FakeConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	c.frames = append(c.frames, buf)
	return nil
}

// Close marks the connection closed.
func (c *FakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Closed reports whether Close was called.
func (c *FakeConn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// FrameCount returns the number of frames received so far.
func (c *FakeConn) FrameCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

// Envelopes decodes every received frame.
func (c *FakeConn) Envelopes(t *testing.T) []hub.Envelope {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()

	envs := make([]hub.Envelope, 0, len(c.frames))
	for _, frame := range c.frames {
		var env hub.Envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			t.Fatalf("Failed to unmarshal frame %q: %v", frame, err)
		}
		envs = append(envs, env)
	}
	return envs
}

// ByType returns the payloads of every received envelope of one type.
func (c *FakeConn) ByType(t *testing.T, eventType string) []json.RawMessage {
	t.Helper()

	var payloads []json.RawMessage
	for _, env := range c.Envelopes(t) {
		if env.Type == eventType {
			payloads = append(payloads, env.Payload)
		}
	}
	return payloads
}
