package history

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/kailas-cloud/shopsense/internal/domain"
	"github.com/kailas-cloud/shopsense/internal/domain/history"
)

// store is the consumer interface over a list-capable backend.
type store interface {
	Ping(ctx context.Context) error
	RPush(ctx context.Context, key string, values ...[]byte) (int64, error)
	LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)
}

// Repo stores each user's log as one list of JSON-encoded events.
type Repo struct {
	store  store
	prefix string
}

// New creates a list-backed history repository.
// An empty prefix defaults to "shopsense:history:".
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.KeyPrefix + "history:"
	}
	return &Repo{store: s, prefix: prefix}
}

// Record appends ev to the tail of the user's list.
func (r *Repo) Record(ctx context.Context, userID string, ev history.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := r.store.RPush(ctx, r.key(userID), data); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// Read decodes the user's full list. Unknown users yield an empty log.
func (r *Repo) Read(ctx context.Context, userID string) ([]history.Event, error) {
	items, err := r.store.LRange(ctx, r.key(userID), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}

	out := make([]history.Event, 0, len(items))
	for i, raw := range items {
		var ev history.Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("decode event %d for %s: %w", i, userID, err)
		}
		out = append(out, ev)
	}
	return out, nil
}

// Ping checks the backend.
func (r *Repo) Ping(ctx context.Context) error {
	return r.store.Ping(ctx) //nolint:wrapcheck // health reports the raw backend error
}

func (r *Repo) key(userID string) string {
	return r.prefix + userID
}
