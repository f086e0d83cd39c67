package track

import (
	"context"

	"github.com/kailas-cloud/shopsense/internal/domain/history"
)

// Recorder appends events to a user's history.
type Recorder interface {
	Record(ctx context.Context, userID string, ev history.Event) error
}
