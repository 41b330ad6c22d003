package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub) *Client {
	return &Client{
		ID:   generateClientID(),
		Hub:  hub,
		Send: make(chan Message, 16),
	}
}

func TestHubBroadcastsToAllClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := newTestClient(hub)
	second := newTestClient(hub)
	hub.Register <- first
	hub.Register <- second

	hub.BroadcastItemUpdate(map[string]interface{}{"item_key": "ingredient:1|kg", "checked": true})

	for _, client := range []*Client{first, second} {
		select {
		case msg := <-client.Send:
			assert.Equal(t, MessageTypeItemUpdate, msg.Type)
		case <-time.After(time.Second):
			t.Fatalf("client %s did not receive broadcast", client.ID)
		}
	}
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub)
	hub.Register <- client
	hub.Unregister <- client

	hub.BroadcastListUpdate(map[string]interface{}{"shop_id": 1})

	// The channel is closed on unregister; a receive yields the zero value
	msg, open := <-client.Send
	require.False(t, open)
	assert.Empty(t, msg.Type)
}

func TestGenerateClientIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := generateClientID()
		require.False(t, seen[id], "duplicate client id %s", id)
		seen[id] = true
	}
}
