package history

import (
	"time"

	"github.com/google/uuid"
)

// EventType classifies a user interaction.
type EventType string

// Interaction types recorded in a user's history.
const (
	Search   EventType = "search"
	View     EventType = "view"
	Purchase EventType = "purchase"
	Cart     EventType = "cart"
	Chatbot  EventType = "chatbot"
)

// IsKnown reports whether t is one of the predefined interaction types.
func (t EventType) IsKnown() bool {
	switch t {
	case Search, View, Purchase, Cart, Chatbot:
		return true
	default:
		return false
	}
}

// SignalsAffinity reports whether events of this type count towards category affinity.
func (t EventType) SignalsAffinity() bool {
	return t == View || t == Purchase
}

// Event is a single append-only entry in a user's history.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Query     string    `json:"query,omitempty"`
	ProductID string    `json:"productId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewQueryEvent creates a search or chatbot event.
func NewQueryEvent(t EventType, query string, at time.Time) Event {
	return Event{ID: uuid.NewString(), Type: t, Query: query, Timestamp: at.UTC()}
}

// NewProductEvent creates an event that references a product.
func NewProductEvent(t EventType, productID string, at time.Time) Event {
	return Event{ID: uuid.NewString(), Type: t, ProductID: productID, Timestamp: at.UTC()}
}
