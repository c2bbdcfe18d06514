package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"unilink/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastsAndDropsStalledClients(t *testing.T) {
	hub := NewHub()
	go hub.Start()

	fast := &Client{send: make(chan []byte, 1), hub: hub}
	// No buffer and no reader: the broadcast sweep must drop this one.
	stalled := &Client{send: make(chan []byte), hub: hub}

	hub.register <- fast
	hub.register <- stalled
	require.Eventually(t, func() bool {
		return hub.ConnectedClients() == 2
	}, time.Second, 10*time.Millisecond)

	hub.Publish(services.Event{Type: "post.liked", PostID: "p1", ActorID: "u1"})

	select {
	case msg := <-fast.send:
		var envelope struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(msg, &envelope))
		assert.Equal(t, "post.liked", envelope.Type)
	case <-time.After(time.Second):
		t.Fatal("fast client did not receive the broadcast")
	}

	require.Eventually(t, func() bool {
		return hub.ConnectedClients() == 1
	}, time.Second, 10*time.Millisecond)

	// Dropped client's channel is closed
	_, open := <-stalled.send
	assert.False(t, open)
}
