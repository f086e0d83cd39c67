package health

import "context"

// HistoryPinger checks history backend availability.
type HistoryPinger interface {
	Ping(ctx context.Context) error
}

// IndexInfo exposes the size of the loaded catalog index.
type IndexInfo interface {
	Len() int
}
