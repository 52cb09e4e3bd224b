package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient captures sent messages; full makes Send behave like a stalled browser
type mockClient struct {
	id          string
	workspaceID int32
	messages    [][]byte
	mu          sync.Mutex
	closed      bool
	full        bool
}

func newMockClient(id string, workspaceID int32) *mockClient {
	return &mockClient{id: id, workspaceID: workspaceID}
}

func (m *mockClient) ID() string {
	return m.id
}

func (m *mockClient) WorkspaceID() int32 {
	return m.workspaceID
}

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClientClosed
	}
	if m.full {
		return ErrClientTooSlow
	}
	m.messages = append(m.messages, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// events decodes everything the client received after its ready greeting
func (m *mockClient) events(t *testing.T) []Event {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()

	var events []Event
	for _, raw := range m.messages {
		var e Event
		require.NoError(t, json.Unmarshal(raw, &e))
		if e.Entity == EntityTypeConnection {
			continue
		}
		events = append(events, e)
	}
	return events
}

func TestHub_RegisterSendsReady(t *testing.T) {
	hub := NewHub()
	client := newMockClient("client-1", 4)
	hub.Register(client)

	require.Len(t, client.messages, 1)
	var ready struct {
		Type    string       `json:"type"`
		Payload ReadyPayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(client.messages[0], &ready))
	assert.Equal(t, "connection.ready", ready.Type)
	assert.Equal(t, ReadyPayload{ClientID: "client-1", WorkspaceID: 4}, ready.Payload)
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()
	client1 := newMockClient("client-1", 1)
	client2 := newMockClient("client-2", 1)
	client3 := newMockClient("client-3", 2)

	hub.Register(client1)
	hub.Register(client2)
	hub.Register(client3)

	assert.Equal(t, 2, hub.ClientCount(1))
	assert.Equal(t, 1, hub.ClientCount(2))
	assert.Equal(t, 0, hub.ClientCount(999))
	assert.Equal(t, 3, hub.TotalClientCount())

	hub.Unregister(client1)
	assert.Equal(t, 1, hub.ClientCount(1))

	hub.Unregister(client2)
	hub.Unregister(client3)
	assert.Zero(t, hub.TotalClientCount())

	// Unknown clients are ignored
	require.NotPanics(t, func() { hub.Unregister(newMockClient("never", 1)) })
}

func TestHub_Broadcast_WorkspaceIsolation(t *testing.T) {
	hub := NewHub()
	broker1a := newMockClient("client-1a", 1)
	broker1b := newMockClient("client-1b", 1)
	otherBrokerage := newMockClient("client-2", 2)
	hub.Register(broker1a)
	hub.Register(broker1b)
	hub.Register(otherBrokerage)

	hub.Publish(1, PolicyCreated(map[string]interface{}{"id": float64(42)}))

	for _, c := range []*mockClient{broker1a, broker1b} {
		events := c.events(t)
		require.Len(t, events, 1)
		assert.Equal(t, "policy.created", events[0].Type)
	}
	assert.Empty(t, otherBrokerage.events(t), "events never cross workspaces")
}

func TestHub_Broadcast_EvictsSlowClient(t *testing.T) {
	hub := NewHub()
	healthy := newMockClient("healthy", 1)
	stalled := newMockClient("stalled", 1)
	hub.Register(healthy)
	hub.Register(stalled)
	stalled.full = true

	hub.Broadcast(1, AgentUpdated(map[string]interface{}{"id": float64(3)}))

	assert.Len(t, healthy.events(t), 1)
	assert.True(t, stalled.IsClosed())
	assert.Equal(t, 1, hub.ClientCount(1))
}

func TestHub_Shutdown(t *testing.T) {
	hub := NewHub()
	clients := []*mockClient{newMockClient("a", 1), newMockClient("b", 2), newMockClient("c", 2)}
	for _, c := range clients {
		hub.Register(c)
	}

	assert.Equal(t, 3, hub.Shutdown())
	assert.Zero(t, hub.TotalClientCount())
	for _, c := range clients {
		assert.True(t, c.IsClosed())
	}
}

func TestHub_ConcurrentAccess(t *testing.T) {
	hub := NewHub()
	var wg sync.WaitGroup
	clientCount := 50

	clients := make([]*mockClient, clientCount)
	for i := range clients {
		clients[i] = newMockClient(fmt.Sprintf("client-%d", i), int32(i%5))
	}

	for _, c := range clients {
		wg.Add(1)
		go func(c *mockClient) {
			defer wg.Done()
			hub.Register(c)
		}(c)
	}
	wg.Wait()
	assert.Equal(t, clientCount, hub.TotalClientCount())

	for i, c := range clients {
		wg.Add(2)
		go func(idx int) {
			defer wg.Done()
			hub.Broadcast(int32(idx%5), PolicyUpdated(map[string]interface{}{"id": float64(idx)}))
		}(i)
		go func(c *mockClient) {
			defer wg.Done()
			hub.Unregister(c)
		}(c)
	}
	wg.Wait()

	assert.Zero(t, hub.TotalClientCount())
}

func TestNoOpPublisher_Publish(t *testing.T) {
	var publisher EventPublisher = NoOpPublisher{}
	assert.NotPanics(t, func() {
		publisher.Publish(1, PolicyDeleted(1))
	})
}

func TestHub_BroadcastToEmptyWorkspace(t *testing.T) {
	require.NotPanics(t, func() {
		NewHub().Broadcast(999, PolicyCreated(map[string]interface{}{"id": float64(1)}))
	})
}
