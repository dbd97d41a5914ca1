package websocket

import (
	"encoding/json"
	"testing"
	"time"
)

func testClient(h *Hub) *Client {
	return &Client{hub: h, send: make(chan []byte, 8)}
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	h := NewHub()
	go h.Run()

	c1 := testClient(h)
	c2 := testClient(h)
	h.register <- c1
	h.register <- c2

	h.Broadcast([]byte("turn-complete"))

	for i, c := range []*Client{c1, c2} {
		select {
		case msg := <-c.send:
			if string(msg) != "turn-complete" {
				t.Errorf("Client %d got %q", i, msg)
			}
		case <-time.After(time.Second):
			t.Fatalf("Client %d never received the broadcast", i)
		}
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := NewHub()
	go h.Run()

	c := testClient(h)
	h.register <- c
	h.unregister <- c

	select {
	case _, ok := <-c.send:
		if ok {
			t.Error("Expected send channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("Send channel never closed")
	}
}

func TestHub_SlowConsumerDropped(t *testing.T) {
	h := NewHub()
	go h.Run()

	slow := &Client{hub: h, send: make(chan []byte)} // unbuffered, never read
	h.register <- slow

	// The broadcast finds no room on the channel and evicts the client.
	h.Broadcast([]byte("one"))

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-slow.send:
			if !ok {
				return // evicted
			}
		case <-deadline:
			t.Fatal("Slow consumer was never dropped")
		}
	}
}

func TestTurnEvent_Marshal(t *testing.T) {
	ev := TurnEvent{
		SessionID: "abc",
		Status:    "NEED_INPUT",
		Response:  "Where will you travel from?",
		Timestamp: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}

	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var back TurnEvent
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.SessionID != "abc" || back.Status != "NEED_INPUT" {
		t.Errorf("Round trip lost fields: %+v", back)
	}
}
