// Package track records explicit user interactions (views, purchases, carts).
package track

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/shopsense/internal/domain"
	"github.com/kailas-cloud/shopsense/internal/domain/history"
	"github.com/kailas-cloud/shopsense/internal/metrics"
)

// Service appends interaction events.
type Service struct {
	history Recorder
	now     func() time.Time
}

// New creates a tracking service.
func New(history Recorder) *Service {
	return &Service{history: history, now: time.Now}
}

// Track validates and appends one event. Type and productID are required;
// types outside the predefined set are stored but never affect affinity.
func (s *Service) Track(ctx context.Context, userID, eventType, productID string) (err error) {
	start := s.now()
	defer func() { metrics.ObservePipeline("track", start, 0, err) }()

	if strings.TrimSpace(eventType) == "" {
		return domain.NewValidationError("type", "is required")
	}
	if strings.TrimSpace(productID) == "" {
		return domain.NewValidationError("productId", "is required")
	}

	ev := history.NewProductEvent(history.EventType(eventType), productID, s.now())
	if err = s.history.Record(ctx, domain.UserIDOrDefault(userID), ev); err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}
