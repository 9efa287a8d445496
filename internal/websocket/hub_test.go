package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubClient(teamID string) *Client {
	return &Client{
		ID:     "client-" + teamID,
		TeamID: teamID,
		Send:   make(chan []byte, 4),
	}
}

func register(t *testing.T, hub *Hub, client *Client) {
	select {
	case hub.Register <- client:
	case <-time.After(time.Second):
		t.Fatal("register timed out")
	}
}

func receive(t *testing.T, client *Client) BoardEvent {
	select {
	case payload := <-client.Send:
		var event BoardEvent
		require.NoError(t, json.Unmarshal(payload, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("expected an event, got none")
		return BoardEvent{}
	}
}

func assertNoEvent(t *testing.T, client *Client) {
	select {
	case payload := <-client.Send:
		t.Fatalf("unexpected event delivered: %s", payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_TeamScopedDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	teamA := newHubClient("team-1")
	teamB := newHubClient("team-2")
	manager := newHubClient("")
	register(t, hub, teamA)
	register(t, hub, teamB)
	register(t, hub, manager)

	hub.PublishEvent(BoardEvent{
		Type:       "status_changed",
		RequestID:  "req-1",
		TeamID:     "team-1",
		OldStatus:  "New",
		NewStatus:  "In Progress",
		OccurredAt: time.Now(),
	})

	// 订阅 team-1 的客户端与未指定团队的客户端收到事件
	got := receive(t, teamA)
	assert.Equal(t, "req-1", got.RequestID)
	assert.Equal(t, "team-1", got.TeamID)
	assert.Equal(t, "In Progress", got.NewStatus)

	got = receive(t, manager)
	assert.Equal(t, "req-1", got.RequestID)

	// 订阅其他团队的客户端不收到
	assertNoEvent(t, teamB)
}

func TestHub_PublishEventNonBlocking(t *testing.T) {
	hub := NewHub()
	// Run 未启动,缓冲填满后多余事件被丢弃而不是阻塞调用方
	for i := 0; i < 100; i++ {
		hub.PublishEvent(BoardEvent{Type: "created", RequestID: "req-1", TeamID: "team-1"})
	}
	assert.Len(t, hub.Broadcast, 64)
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newHubClient("team-1")
	register(t, hub, client)

	select {
	case hub.Unregister <- client:
	case <-time.After(time.Second):
		t.Fatal("unregister timed out")
	}

	select {
	case _, open := <-client.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}
	assert.Equal(t, 0, hub.ClientCount())
}
