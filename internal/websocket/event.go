package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType is what happened to an entity
type EventType string

const (
	EventTypeCreated       EventType = "created"
	EventTypeUpdated       EventType = "updated"
	EventTypeDeleted       EventType = "deleted"
	EventTypeStatusChanged EventType = "status_changed"
	EventTypeReady         EventType = "ready"
)

// EntityType is the kind of entity an event is about
type EntityType string

const (
	EntityTypeProvider     EntityType = "provider"
	EntityTypeVehicleClass EntityType = "vehicle_class"
	EntityTypeAgent        EntityType = "agent"
	EntityTypePolicy       EntityType = "policy"
	EntityTypeDocument     EntityType = "policy_document"
	EntityTypeConnection   EntityType = "connection"
)

// Event is the message pushed to clients: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`    // e.g. "policy.created"
	Entity    EntityType  `json:"entity"`  // e.g. "policy"
	Payload   interface{} `json:"payload"` // full entity, or ids for deletions
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// DeletedPayload is the payload of every *.deleted event
type DeletedPayload struct {
	ID int32 `json:"id"`
}

// StatusChangedPayload lists the policies whose cached status was corrected
type StatusChangedPayload struct {
	PolicyIDs []int32 `json:"policyIds"`
}

// ReadyPayload tells a freshly connected client which workspace it is subscribed to
type ReadyPayload struct {
	ClientID    string `json:"clientId"`
	WorkspaceID int32  `json:"workspaceId"`
}

// ConnectionReady is sent to a client once it is registered. Clients that
// reconnect refetch their data on receipt, since events may have been missed.
func ConnectionReady(clientID string, workspaceID int32) Event {
	return NewEvent(EventTypeReady, EntityTypeConnection, ReadyPayload{ClientID: clientID, WorkspaceID: workspaceID})
}

func ProviderCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeProvider, payload)
}

func ProviderUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeProvider, payload)
}

func ProviderDeleted(id int32) Event {
	return NewEvent(EventTypeDeleted, EntityTypeProvider, DeletedPayload{ID: id})
}

func VehicleClassCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeVehicleClass, payload)
}

func VehicleClassUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeVehicleClass, payload)
}

func VehicleClassDeleted(id int32) Event {
	return NewEvent(EventTypeDeleted, EntityTypeVehicleClass, DeletedPayload{ID: id})
}

func AgentCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeAgent, payload)
}

func AgentUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeAgent, payload)
}

func AgentDeleted(id int32) Event {
	return NewEvent(EventTypeDeleted, EntityTypeAgent, DeletedPayload{ID: id})
}

// PolicyCreated creates a policy.created event
func PolicyCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypePolicy, payload)
}

// PolicyUpdated creates a policy.updated event
func PolicyUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypePolicy, payload)
}

// PolicyDeleted creates a policy.deleted event
func PolicyDeleted(id int32) Event {
	return NewEvent(EventTypeDeleted, EntityTypePolicy, DeletedPayload{ID: id})
}

// PolicyStatusChanged creates a policy.status_changed event
func PolicyStatusChanged(policyIDs []int32) Event {
	return NewEvent(EventTypeStatusChanged, EntityTypePolicy, StatusChangedPayload{PolicyIDs: policyIDs})
}

func DocumentCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeDocument, payload)
}

func DocumentDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeDocument, payload)
}
