package feasibility

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Evaluation bundles the summary and cashflow projection of one scenario.
type Evaluation struct {
	Name       string             `json:"name"`
	Summary    FeasibilitySummary `json:"summary"`
	Projection Projection         `json:"projection"`
}

// Engine evaluates snapshots and logs what it computed. It holds no state
// besides its logger and clock, so one Engine may be shared across
// goroutines.
type Engine struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewEngine creates a new engine with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, now: time.Now}
}

// WithClock returns a copy of the engine that anchors undated scenarios to
// the time returned by now.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	clone := *e
	if now != nil {
		clone.now = now
	}
	return &clone
}

// Evaluate computes the summary and cashflow projection for one snapshot.
func (e *Engine) Evaluate(s Snapshot) Evaluation {
	result := Evaluation{
		Name:       s.Scenario.Name,
		Summary:    ComputeSummary(s),
		Projection: ProjectCashflow(s, e.now()),
	}

	e.logger.Debug(fmt.Sprintf("evaluated scenario %s", s.Scenario.Name),
		zap.String("op", "feasibility.Evaluate"),
		zap.Int64("totalCosts", result.Summary.TotalCosts),
		zap.Int64("totalRevenueExGst", result.Summary.TotalRevenueExGst),
		zap.Int64("profit", result.Summary.Profit),
		zap.Int("months", len(result.Projection.Months)),
	)

	for _, entry := range result.Projection.Dropped {
		e.logger.Warn(fmt.Sprintf("dropped %s placement for %s outside the project horizon", entry.Source, entry.Name),
			zap.String("op", "feasibility.Evaluate"),
			zap.String("scenario", s.Scenario.Name),
			zap.Int("month", entry.Month),
			zap.Int64("amount", entry.Amount),
		)
	}

	return result
}

// EvaluateAll evaluates every snapshot in order.
func (e *Engine) EvaluateAll(snapshots []Snapshot) []Evaluation {
	results := make([]Evaluation, 0, len(snapshots))
	for _, s := range snapshots {
		results = append(results, e.Evaluate(s))
	}
	return results
}
