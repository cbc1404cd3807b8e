package hub_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/example/chat-gateway/modules/hub"
	"github.com/example/chat-gateway/modules/hub/hubtest"
)

func register(h *hub.Hub, id, room, author string) *hubtest.FakeConn {
	conn := &hubtest.FakeConn{}
	h.Register(&hub.Client{ID: id, Room: room, Author: author, Conn: conn})
	return conn
}

func TestHub_MembersOfIsLiveQuery(t *testing.T) {
	h := hub.NewHub()
	register(h, "c1", "general", "alice")
	register(h, "c2", "general", "bob")
	register(h, "c3", "random", "carol")

	if got := len(h.MembersOf("general")); got != 2 {
		t.Errorf("MembersOf(general) count = %d, want 2", got)
	}
	if got := len(h.MembersOf("random")); got != 1 {
		t.Errorf("MembersOf(random) count = %d, want 1", got)
	}
	if got := len(h.MembersOf("empty")); got != 0 {
		t.Errorf("MembersOf(empty) count = %d, want 0", got)
	}

	// Membership changes as a side effect of mutating the client record.
	h.Unregister("c2")
	if got := len(h.MembersOf("general")); got != 1 {
		t.Errorf("MembersOf(general) after unregister = %d, want 1", got)
	}
}

func TestHub_MembersOfReturnsSnapshots(t *testing.T) {
	h := hub.NewHub()
	register(h, "c1", "general", "alice")

	members := h.MembersOf("general")
	if len(members) != 1 {
		t.Fatalf("MembersOf(general) count = %d, want 1", len(members))
	}

	// A later join must not show through a snapshot taken earlier.
	h.SetRoom("c1", "random", "alice2")
	if members[0].Room != "general" || members[0].Author != "alice" {
		t.Errorf("snapshot = %q/%q, want general/alice", members[0].Room, members[0].Author)
	}
}

func TestHub_SetRoomOverwritesPreviousRoom(t *testing.T) {
	h := hub.NewHub()
	register(h, "c1", "", "")

	if !h.SetRoom("c1", "general", "alice") {
		t.Fatal("SetRoom() returned false for known client")
	}
	if got := len(h.MembersOf("general")); got != 1 {
		t.Fatalf("MembersOf(general) count = %d, want 1", got)
	}

	// A second join simply stops the client matching the old room query.
	h.SetRoom("c1", "random", "alice")
	if got := len(h.MembersOf("general")); got != 0 {
		t.Errorf("MembersOf(general) after re-join = %d, want 0", got)
	}
	if got := len(h.MembersOf("random")); got != 1 {
		t.Errorf("MembersOf(random) after re-join = %d, want 1", got)
	}

	if h.SetRoom("unknown", "general", "bob") {
		t.Error("SetRoom() should return false for unknown client")
	}
}

func TestHub_UnregisterReturnsRemovedClient(t *testing.T) {
	h := hub.NewHub()
	register(h, "c1", "general", "alice")

	client := h.Unregister("c1")
	if client == nil {
		t.Fatal("Unregister() returned nil for known client")
	}
	if client.Room != "general" || client.Author != "alice" {
		t.Errorf("Unregister() client = %q/%q, want general/alice", client.Room, client.Author)
	}

	if h.Unregister("c1") != nil {
		t.Error("second Unregister() should return nil")
	}
	if h.Get("c1") != nil {
		t.Error("Get() should return nil after unregister")
	}
}

func TestHub_EmitToRoomExcludesSender(t *testing.T) {
	h := hub.NewHub()
	alice := register(h, "c1", "general", "alice")
	bob := register(h, "c2", "general", "bob")
	carol := register(h, "c3", "random", "carol")

	h.EmitToRoom("general", "receive_message", map[string]string{"message": "hi"}, "c1")

	if got := alice.FrameCount(); got != 0 {
		t.Errorf("excluded sender received %d frames, want 0", got)
	}

	envs := bob.Envelopes(t)
	if len(envs) != 1 {
		t.Fatalf("room member received %d frames, want 1", len(envs))
	}
	if envs[0].Type != "receive_message" {
		t.Errorf("envelope type = %q, want receive_message", envs[0].Type)
	}

	if got := carol.FrameCount(); got != 0 {
		t.Errorf("other room received %d frames, want 0", got)
	}
}

func TestHub_EmitToRoomWithoutExclusion(t *testing.T) {
	h := hub.NewHub()
	alice := register(h, "c1", "general", "alice")
	bob := register(h, "c2", "general", "bob")

	h.EmitToRoom("general", "online_users", []string{"alice", "bob"}, "")

	for name, conn := range map[string]*hubtest.FakeConn{"alice": alice, "bob": bob} {
		if got := conn.FrameCount(); got != 1 {
			t.Errorf("%s received %d frames, want 1", name, got)
		}
	}
}

func TestHub_EmitToClientUnknownTargetIsNoop(t *testing.T) {
	h := hub.NewHub()
	alice := register(h, "c1", "general", "alice")

	h.EmitToClient("ghost", "receive_private_message", map[string]string{"message": "hi"})

	if got := alice.FrameCount(); got != 0 {
		t.Errorf("bystander received %d frames, want 0", got)
	}
}

func TestHub_CloseAllClosesConnections(t *testing.T) {
	h := hub.NewHub()
	alice := register(h, "c1", "general", "alice")
	bob := register(h, "c2", "random", "bob")

	if got := h.ClientCount(); got != 2 {
		t.Fatalf("ClientCount() = %d, want 2", got)
	}

	h.CloseAll()

	if !alice.Closed() || !bob.Closed() {
		t.Error("CloseAll() should close every connection")
	}
	if got := h.ClientCount(); got != 0 {
		t.Errorf("ClientCount() after CloseAll = %d, want 0", got)
	}
}

// overlapConn trips when two writers enter WriteMessage concurrently,
// mimicking the underlying websocket connection's single-writer rule.
type overlapConn struct {
	active  atomic.Int32
	overlap atomic.Bool
}

func (c *overlapConn) WriteMessage(_ int, _ []byte) error {
	if c.active.Add(1) > 1 {
		c.overlap.Store(true)
	}
	time.Sleep(time.Millisecond)
	c.active.Add(-1)
	return nil
}

func (c *overlapConn) Close() error { return nil }

func TestHub_EmitSerializesWritesPerConnection(t *testing.T) {
	h := hub.NewHub()
	target := &overlapConn{}
	h.Register(&hub.Client{ID: "c1", Room: "general", Author: "alice", Conn: target})

	// Broadcasts run on each sender's goroutine; frames to one client
	// must still go out one at a time.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				h.EmitToRoom("general", "receive_message", map[string]string{"message": "hi"}, "")
			}
		}()
	}
	wg.Wait()

	if target.overlap.Load() {
		t.Error("two goroutines entered WriteMessage on the same connection concurrently")
	}
}

func TestHub_MembersOfSafeDuringConcurrentJoins(t *testing.T) {
	h := hub.NewHub()
	register(h, "c1", "general", "alice")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			h.SetRoom("c1", "general", "alice")
			h.SetRoom("c1", "random", "bob")
		}
	}()

	// Snapshot fields stay readable while the client record is rewritten.
	for i := 0; i < 200; i++ {
		for _, member := range h.MembersOf("general") {
			if member.Author != "alice" {
				t.Fatalf("member.Author = %q, want alice", member.Author)
			}
		}
	}
	<-done
}
