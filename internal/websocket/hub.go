package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	// ErrClientClosed is returned when attempting to send to a closed client
	ErrClientClosed = errors.New("client is closed")
	// ErrClientTooSlow is returned when a client's send buffer is full
	ErrClientTooSlow = errors.New("client send buffer full")
)

// ClientInterface is a connection the hub can deliver events to
type ClientInterface interface {
	ID() string
	WorkspaceID() int32
	Send(data []byte) error
	Close() error
}

// EventPublisher delivers events to the clients of a workspace
type EventPublisher interface {
	Publish(workspaceID int32, event Event)
}

// NoOpPublisher discards events; used when realtime updates are disabled
type NoOpPublisher struct{}

// Publish does nothing
func (NoOpPublisher) Publish(workspaceID int32, event Event) {}

var (
	_ EventPublisher = (*Hub)(nil)
	_ EventPublisher = NoOpPublisher{}
)

// Hub tracks connected clients per workspace. Events never cross workspaces.
type Hub struct {
	workspaces map[int32]map[string]ClientInterface
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		workspaces: make(map[int32]map[string]ClientInterface),
	}
}

// Register adds a client under its workspace and greets it with a ready event
func (h *Hub) Register(client ClientInterface) {
	workspaceID := client.WorkspaceID()

	h.mu.Lock()
	if h.workspaces[workspaceID] == nil {
		h.workspaces[workspaceID] = make(map[string]ClientInterface)
	}
	h.workspaces[workspaceID][client.ID()] = client
	h.mu.Unlock()

	log.Debug().
		Int32("workspace_id", workspaceID).
		Str("client_id", client.ID()).
		Msg("WebSocket client registered")

	if data, err := ConnectionReady(client.ID(), workspaceID).ToJSON(); err == nil {
		if err := client.Send(data); err != nil {
			h.evict(client, err)
		}
	}
}

// Unregister removes a client from the hub. Unknown clients are ignored.
func (h *Hub) Unregister(client ClientInterface) {
	if h.remove(client) {
		log.Debug().
			Int32("workspace_id", client.WorkspaceID()).
			Str("client_id", client.ID()).
			Msg("WebSocket client unregistered")
	}
}

func (h *Hub) remove(client ClientInterface) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	workspaceID := client.WorkspaceID()
	clients, ok := h.workspaces[workspaceID]
	if !ok {
		return false
	}
	if _, exists := clients[client.ID()]; !exists {
		return false
	}
	delete(clients, client.ID())
	if len(clients) == 0 {
		delete(h.workspaces, workspaceID)
	}
	return true
}

// evict drops a client that can no longer keep up; it reconnects and refetches
func (h *Hub) evict(client ClientInterface, cause error) {
	log.Warn().
		Err(cause).
		Int32("workspace_id", client.WorkspaceID()).
		Str("client_id", client.ID()).
		Msg("Evicting WebSocket client")
	h.remove(client)
	_ = client.Close()
}

// Publish implements EventPublisher
func (h *Hub) Publish(workspaceID int32, event Event) {
	h.Broadcast(workspaceID, event)
}

// Broadcast queues an event on every client of the workspace. Send never
// blocks, so a stalled client cannot hold up the others.
func (h *Hub) Broadcast(workspaceID int32, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().
			Err(err).
			Int32("workspace_id", workspaceID).
			Str("event_type", event.Type).
			Msg("Failed to serialize event")
		return
	}

	h.mu.RLock()
	recipients := make([]ClientInterface, 0, len(h.workspaces[workspaceID]))
	for _, client := range h.workspaces[workspaceID] {
		recipients = append(recipients, client)
	}
	h.mu.RUnlock()

	if len(recipients) == 0 {
		return
	}

	delivered := 0
	for _, client := range recipients {
		if err := client.Send(data); err != nil {
			h.evict(client, err)
			continue
		}
		delivered++
	}

	log.Debug().
		Int32("workspace_id", workspaceID).
		Str("event_type", event.Type).
		Int("delivered", delivered).
		Msg("Broadcast event")
}

// Shutdown closes every connection; used on server shutdown
func (h *Hub) Shutdown() int {
	h.mu.Lock()
	all := make([]ClientInterface, 0)
	for _, clients := range h.workspaces {
		for _, client := range clients {
			all = append(all, client)
		}
	}
	h.workspaces = make(map[int32]map[string]ClientInterface)
	h.mu.Unlock()

	for _, client := range all {
		_ = client.Close()
	}
	return len(all)
}

// ClientCount returns the number of clients connected to a workspace
func (h *Hub) ClientCount(workspaceID int32) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.workspaces[workspaceID])
}

// TotalClientCount returns the number of connected clients across all workspaces
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.workspaces {
		total += len(clients)
	}
	return total
}
