package hub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"quiz-service/domain"
)

type recordingHandler struct {
	disconnects chan string
}

func (h *recordingHandler) HandleEvent(context.Context, *domain.Client, domain.Envelope) {}

func (h *recordingHandler) Disconnect(_ context.Context, clientID string) {
	h.disconnects <- clientID
}

func newTestHub(t *testing.T) (*Hub, *recordingHandler) {
	t.Helper()
	h := NewHub()
	rh := &recordingHandler{disconnects: make(chan string, 8)}
	h.SetEventHandler(rh)
	return h, rh
}

func connect(h *Hub, id string) *domain.Client {
	c := domain.NewClient(id, nil, 8, nil)
	h.registerClient(c)
	return c
}

func connected(h *Hub, clientID string) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	_, ok := h.clients[clientID]
	return ok
}

func roomSize(h *Hub, roomCode string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.rooms[roomCode])
}

func receive(t *testing.T, c *domain.Client) domain.Message {
	t.Helper()
	select {
	case payload := <-c.Send:
		var msg domain.Message
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return msg
	default:
		t.Fatalf("client %s has no pending message", c.ID)
		return domain.Message{}
	}
}

func TestSendToClient(t *testing.T) {
	h, _ := newTestHub(t)
	ana := connect(h, "ana")
	budi := connect(h, "budi")

	h.SendToClient("ana", &domain.Message{Type: "hello", Content: "hi"})

	if msg := receive(t, ana); msg.Type != "hello" || msg.Content != "hi" {
		t.Fatalf("message = %+v", msg)
	}
	if len(budi.Send) != 0 {
		t.Fatal("unicast leaked to another client")
	}
	// unknown clients are ignored
	h.SendToClient("nobody", &domain.Message{Type: "hello"})
}

func TestBroadcastToRoom(t *testing.T) {
	h, _ := newTestHub(t)
	teacher := connect(h, "teacher")
	ana := connect(h, "ana")
	outsider := connect(h, "outsider")

	h.JoinRoom("ABC12", "teacher")
	h.JoinRoom("ABC12", "ana")
	h.BroadcastToRoom("ABC12", &domain.Message{Type: domain.EventLeaderboardUpdate, Content: []int{}})

	if receive(t, teacher).Type != domain.EventLeaderboardUpdate || receive(t, ana).Type != domain.EventLeaderboardUpdate {
		t.Fatal("room members did not receive the broadcast")
	}
	if len(outsider.Send) != 0 {
		t.Fatal("broadcast leaked outside the room")
	}
	if n := roomSize(h, "ABC12"); n != 2 {
		t.Fatalf("room clients = %d", n)
	}

	h.CloseRoom("ABC12")
	h.BroadcastToRoom("ABC12", &domain.Message{Type: "late"})
	if len(teacher.Send) != 0 {
		t.Fatal("closed room still broadcasts")
	}
	if !connected(h, "teacher") {
		t.Fatal("closing a room must keep connections")
	}
}

func TestSendDropsWhenBufferFull(t *testing.T) {
	h, _ := newTestHub(t)
	c := domain.NewClient("slow", nil, 1, nil)
	h.registerClient(c)

	h.SendToClient("slow", &domain.Message{Type: "one"})
	h.SendToClient("slow", &domain.Message{Type: "two"})

	if msg := receive(t, c); msg.Type != "one" {
		t.Fatalf("first message = %s", msg.Type)
	}
	if len(c.Send) != 0 {
		t.Fatal("overflow message was queued")
	}
}

func TestUnregisterClient(t *testing.T) {
	h, rh := newTestHub(t)
	ana := connect(h, "ana")
	h.JoinRoom("ABC12", "ana")

	h.unregisterClient(ana)

	if connected(h, "ana") || len(h.clients) != 0 {
		t.Fatal("client still registered")
	}
	if roomSize(h, "ABC12") != 0 {
		t.Fatal("membership survived unregister")
	}
	select {
	case <-ana.Done:
	default:
		t.Fatal("client not closed")
	}
	select {
	case id := <-rh.disconnects:
		if id != "ana" {
			t.Fatalf("disconnect for %s", id)
		}
	case <-time.After(time.Second):
		t.Fatal("disconnect callback not called")
	}

	// second unregister from the other pump is a no-op
	h.unregisterClient(ana)
	select {
	case id := <-rh.disconnects:
		t.Fatalf("second disconnect for %s", id)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnregisterStaleClientKeepsReconnect(t *testing.T) {
	h, _ := newTestHub(t)
	old := connect(h, "ana")
	fresh := connect(h, "ana")

	h.unregisterClient(old)
	if !connected(h, "ana") {
		t.Fatal("stale unregister removed the new connection")
	}
	h.SendToClient("ana", &domain.Message{Type: "hello"})
	if receive(t, fresh).Type != "hello" {
		t.Fatal("new connection lost messages")
	}
}

func TestDecodeEnvelope(t *testing.T) {
	env, err := decodeEnvelope([]byte(`{"type":"join_room","content":{"roomCode":"ABC12","name":"Ana"}}`))
	if err != nil {
		t.Fatalf("decodeEnvelope: %v", err)
	}
	if env.Type != domain.EventJoinRoom || len(env.Content) == 0 {
		t.Fatalf("envelope = %+v", env)
	}

	for _, bad := range []string{`not json`, `{"content":{}}`, `{"type":""}`} {
		if _, err := decodeEnvelope([]byte(bad)); err == nil {
			t.Errorf("decodeEnvelope(%s) succeeded", bad)
		}
	}
}

func TestRunStopsWithContext(t *testing.T) {
	h, _ := newTestHub(t)
	c := connect(h, "ana")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
	select {
	case <-c.Done:
	default:
		t.Fatal("clients not closed on shutdown")
	}
}
