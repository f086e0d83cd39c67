package history

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/shopsense/internal/domain/history"
	"github.com/kailas-cloud/shopsense/internal/metrics"
)

// Store is the history contract shared by every backend.
type Store interface {
	Record(ctx context.Context, userID string, ev history.Event) error
	Read(ctx context.Context, userID string) ([]history.Event, error)
	Ping(ctx context.Context) error
}

// Instrumented wraps a Store with metrics and debug logging.
type Instrumented struct {
	inner  Store
	driver string
	logger *zap.Logger
}

// NewInstrumented wraps inner. driver labels the metrics ("memory", "redis", ...).
func NewInstrumented(inner Store, driver string, logger *zap.Logger) *Instrumented {
	return &Instrumented{inner: inner, driver: driver, logger: logger}
}

// Record delegates and counts the event by type.
func (s *Instrumented) Record(ctx context.Context, userID string, ev history.Event) error {
	start := time.Now()
	err := s.inner.Record(ctx, userID, ev)
	s.observe("record", start, err)
	if err != nil {
		s.logger.Error("History record failed",
			zap.String("driver", s.driver),
			zap.String("user_id", userID),
			zap.String("type", string(ev.Type)),
			zap.Error(err),
		)
		return err
	}

	metrics.HistoryEventsTotal.WithLabelValues(string(ev.Type)).Inc()
	s.logger.Debug("History event recorded",
		zap.String("driver", s.driver),
		zap.String("user_id", userID),
		zap.String("type", string(ev.Type)),
	)
	return nil
}

// Read delegates and times the lookup.
func (s *Instrumented) Read(ctx context.Context, userID string) ([]history.Event, error) {
	start := time.Now()
	events, err := s.inner.Read(ctx, userID)
	s.observe("read", start, err)
	if err != nil {
		s.logger.Error("History read failed",
			zap.String("driver", s.driver),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	return events, nil
}

// Ping delegates without instrumentation.
func (s *Instrumented) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

func (s *Instrumented) observe(op string, start time.Time, err error) {
	metrics.HistoryStoreDuration.WithLabelValues(s.driver, op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.HistoryStoreErrorsTotal.WithLabelValues(s.driver, op).Inc()
	}
}
