package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the kind of change an event describes
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
	EventTypePaid    EventType = "paid"
)

// EntityType represents the entity an event is about
type EntityType string

const (
	EntityTypeTransaction EntityType = "transaction"
	EntityTypeLoan        EntityType = "loan"
	EntityTypePolicy      EntityType = "policy"
	EntityTypeAsset       EntityType = "asset"
	EntityTypeLiability   EntityType = "liability"
	EntityTypeProfile     EntityType = "profile"
)

// Event is a message pushed to connected clients.
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`   // combined, e.g. "transaction.created"
	Entity    EntityType  `json:"entity"` // e.g. "transaction"
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates an event with the combined type string
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event for the wire
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
