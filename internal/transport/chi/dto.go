package chi

import (
	"errors"
	"time"

	"github.com/kailas-cloud/shopsense/internal/domain"
	"github.com/kailas-cloud/shopsense/internal/domain/product"
	"github.com/kailas-cloud/shopsense/internal/domain/search/result"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest       = "bad_request"
	CodeValidationFailed = "validation_failed"
	CodeProductNotFound  = "product_not_found"
	CodeUnauthorized     = "unauthorized"
	CodeRateLimited      = "rate_limited"
	CodeInternalError    = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Query  string `json:"query" validate:"notblank,maxbytes=4096"`
	UserID string `json:"userId" validate:"max=256"`
}

// SearchResponse is the body returned by POST /api/search.
type SearchResponse struct {
	Results []SearchItem `json:"results"`
}

// SearchItem is one ranked product.
type SearchItem struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	RelevanceScore float64 `json:"relevanceScore"`
	Price          float64 `json:"price"`
	Image          *string `json:"image"`
	Category       string  `json:"category"`
}

// RecommendRequest is the body of POST /api/recommendations.
type RecommendRequest struct {
	UserID    string `json:"userId" validate:"max=256"`
	ProductID string `json:"productId" validate:"max=256"`
}

// RecommendResponse is the body returned by POST /api/recommendations.
type RecommendResponse struct {
	Recommendations []RecommendItem `json:"recommendations"`
}

// RecommendItem is one recommended product and why it was picked.
type RecommendItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    *string `json:"image"`
	Category string  `json:"category"`
	Reason   string  `json:"reason"`
}

// TrackRequest is the body of POST /api/track.
type TrackRequest struct {
	UserID    string `json:"userId" validate:"max=256"`
	Type      string `json:"type" validate:"notblank,max=64"`
	ProductID string `json:"productId" validate:"notblank,max=256"`
}

// TrackResponse acknowledges a recorded event.
type TrackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ChatRequest is the body of POST /api/chatbot.
type ChatRequest struct {
	Query  string `json:"query" validate:"notblank,maxbytes=4096"`
	UserID string `json:"userId" validate:"max=256"`
}

// ChatResponse is the assistant reply with its products.
type ChatResponse struct {
	Message  string     `json:"message"`
	Products []ChatItem `json:"products"`
}

// ChatItem is a ranked product with its variant attributes.
type ChatItem struct {
	SearchItem
	Colors []string `json:"colors"`
	Sizes  []string `json:"sizes"`
}

// ProductResponse is the full catalog entry.
type ProductResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
	Tag         string   `json:"tag,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

// HealthResponse reports aggregated and per-component health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func imageOf(p *product.Product) *string {
	if img := p.PrimaryImage(); img != "" {
		return &img
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func searchItem(r *result.Result) SearchItem {
	p := r.Product()
	return SearchItem{
		ID:             p.ID(),
		Name:           p.Name(),
		RelevanceScore: r.Score(),
		Price:          p.Price(),
		Image:          imageOf(&p),
		Category:       p.Category(),
	}
}

func searchItems(results []result.Result) []SearchItem {
	items := make([]SearchItem, len(results))
	for i := range results {
		items[i] = searchItem(&results[i])
	}
	return items
}

func recommendItems(results []result.Result) []RecommendItem {
	items := make([]RecommendItem, len(results))
	for i := range results {
		p := results[i].Product()
		items[i] = RecommendItem{
			ID:       p.ID(),
			Name:     p.Name(),
			Price:    p.Price(),
			Image:    imageOf(&p),
			Category: p.Category(),
			Reason:   results[i].Reason(),
		}
	}
	return items
}

func chatItems(results []result.Result) []ChatItem {
	items := make([]ChatItem, len(results))
	for i := range results {
		p := results[i].Product()
		items[i] = ChatItem{
			SearchItem: searchItem(&results[i]),
			Colors:     nonNil(p.Colors()),
			Sizes:      nonNil(p.Sizes()),
		}
	}
	return items
}

func productResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		Category:    p.Category(),
		Subcategory: p.Subcategory(),
		Stock:       p.Stock(),
		Images:      nonNil(p.Images()),
		Colors:      nonNil(p.Colors()),
		Sizes:       nonNil(p.Sizes()),
		Tag:         p.Tag(),
		CreatedAt:   formatTime(p.CreatedAt()),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// validationMessage renders a client-safe message for a validation failure.
func validationMessage(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Field + " " + ve.Reason
	}
	return domain.ErrValidation.Error()
}
