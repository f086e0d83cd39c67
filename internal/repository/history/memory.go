// Package history persists per-user interaction logs.
package history

import (
	"context"
	"sync"

	"github.com/kailas-cloud/shopsense/internal/domain/history"
)

// Memory keeps logs in process memory. Logs are never evicted.
type Memory struct {
	mu   sync.RWMutex
	logs map[string][]history.Event
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{logs: make(map[string][]history.Event)}
}

// Record appends ev to the user's log, creating it on first use.
func (m *Memory) Record(_ context.Context, userID string, ev history.Event) error {
	m.mu.Lock()
	m.logs[userID] = append(m.logs[userID], ev)
	m.mu.Unlock()
	return nil
}

// Read returns a copy of the user's log in insertion order.
func (m *Memory) Read(_ context.Context, userID string) ([]history.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	log := m.logs[userID]
	out := make([]history.Event, len(log))
	copy(out, log)
	return out, nil
}

// Ping always succeeds.
func (m *Memory) Ping(_ context.Context) error { return nil }
