package ws

import (
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"
)

func waitForMessage(t *testing.T, ch chan []byte) ([]byte, bool) {
	t.Helper()
	select {
	case data, ok := <-ch:
		return data, ok
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting on send channel")
		return nil, false
	}
}

func TestHubBroadcastReachesAllListeners(t *testing.T) {
	hub := NewHub(zap.NewNop())

	first := &Connection{SessionID: "s1", Send: make(chan []byte, 8), Hub: hub}
	second := &Connection{SessionID: "s1", Send: make(chan []byte, 8), Hub: hub}
	other := &Connection{SessionID: "s2", Send: make(chan []byte, 8), Hub: hub}
	hub.Register(first)
	hub.Register(second)
	hub.Register(other)

	hub.BroadcastToSession("s1", string(MsgRoundReady), map[string]int{"roundNumber": 2})

	for _, conn := range []*Connection{first, second} {
		data, ok := waitForMessage(t, conn.Send)
		if !ok {
			t.Fatal("send channel closed unexpectedly")
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("bad envelope: %v", err)
		}
		if msg.Type != MsgRoundReady {
			t.Errorf("type = %s, want %s", msg.Type, MsgRoundReady)
		}
	}

	select {
	case data := <-other.Send:
		t.Errorf("listener of another session received %s", data)
	default:
	}
}

func TestHubDisconnectDeliversQueuedMessagesFirst(t *testing.T) {
	hub := NewHub(zap.NewNop())

	conn := &Connection{SessionID: "s1", Send: make(chan []byte, 8), Hub: hub}
	hub.Register(conn)

	hub.BroadcastToSession("s1", string(MsgSessionReset), nil)
	hub.DisconnectSession("s1")

	data, ok := waitForMessage(t, conn.Send)
	if !ok {
		t.Fatal("channel closed before the queued message arrived")
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	if msg.Type != MsgSessionReset {
		t.Errorf("type = %s, want %s", msg.Type, MsgSessionReset)
	}

	if _, ok := waitForMessage(t, conn.Send); ok {
		t.Error("send channel still open after disconnect")
	}
}
