package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the history backend is unavailable; ranking still works.
	Degraded Status = "degraded"
	// Unhealthy indicates no index is loaded.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	history HistoryPinger
	index   IndexInfo
}

// New creates a Service.
func New(history HistoryPinger, index IndexInfo) *Service {
	return &Service{history: history, index: index}
}

// Check pings the history backend and verifies the index holds products.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)

	if s.index == nil || s.index.Len() == 0 {
		checks["index"] = CheckError
	} else {
		checks["index"] = CheckOK
	}

	if err := s.history.Ping(ctx); err != nil {
		checks["history"] = CheckError
	} else {
		checks["history"] = CheckOK
	}

	status := Healthy
	switch {
	case checks["index"] == CheckError:
		status = Unhealthy
	case checks["history"] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
