package shopsense

import "time"

// EventType classifies a tracked interaction.
type EventType string

// Interaction types. View and purchase events drive category affinity.
const (
	EventView     EventType = "view"
	EventPurchase EventType = "purchase"
	EventCart     EventType = "cart"
)

// Product is a catalog entry supplied with WithProducts or returned by lookups.
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	Subcategory string
	Price       float64
	Stock       int
	Images      []string
	Colors      []string
	Sizes       []string
	Tag         string
	CreatedAt   time.Time
}

// SearchResult is a ranked product.
type SearchResult struct {
	ID       string
	Name     string
	Category string
	Price    float64
	Image    string // first image, empty when the product has none
	Score    float64
	Colors   []string
	Sizes    []string
}

// Recommendation is a suggested product and the pass that produced it.
type Recommendation struct {
	ID       string
	Name     string
	Category string
	Price    float64
	Image    string
	Reason   string
}

// ChatReply is the assistant's answer.
type ChatReply struct {
	Message  string
	Products []SearchResult
}

// Term is a lexicon entry for WithColors and WithCategories.
type Term struct {
	Canonical string
	Synonyms  []string
}

// HealthStatus represents the aggregated engine health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}
