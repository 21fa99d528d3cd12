package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient(hub, nil)
	hub.Register <- client

	hub.BroadcastMessage(Message{Action: "blog.created", Payload: map[string]string{"_id": "1"}})

	select {
	case msg := <-client.Send:
		assert.Contains(t, string(msg), `"action":"blog.created"`)
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
	}

	hub.Unregister <- client

	select {
	case _, ok := <-client.Send:
		assert.False(t, ok, "send channel is closed on unregister")
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
}

func TestHubDropsSlowClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	slow := NewClient(hub, nil)
	// Fill the buffered channel so the next broadcast cannot be queued.
	for i := 0; i < cap(slow.Send); i++ {
		slow.Send <- []byte("x")
	}
	hub.Register <- slow

	hub.BroadcastMessage(Message{Action: "blog.updated"})

	// Drain the backlog; the channel must end up closed.
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-slow.Send:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("slow client was not dropped")
		}
	}
}
