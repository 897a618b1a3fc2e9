package evaluation

import (
	"context"
	"time"

	"github.com/ysato/planc/internal/allocation"
	"github.com/ysato/planc/internal/contracts"
	"github.com/ysato/planc/internal/signals"
	"github.com/ysato/planc/pkg/logger"
)

// Service runs one full monthly evaluation: observe the market, decide the
// crash state per market, and compute the regular and additional purchases.
type Service struct {
	builder *signals.Builder
	base    *allocation.BaseAllocator
	crash   *allocation.CrashAllocator
	logger  *logger.Logger

	now func() time.Time
}

// NewService wires the evaluation pipeline.
func NewService(
	builder *signals.Builder,
	base *allocation.BaseAllocator,
	crash *allocation.CrashAllocator,
	log *logger.Logger,
) *Service {
	return &Service{
		builder: builder,
		base:    base,
		crash:   crash,
		logger:  log,
		now:     time.Now,
	}
}

// Evaluate produces the investment decision for the given base budget.
// Signal observation failures do not abort the run; they degrade the affected
// signals to false and are listed in the result.
func (s *Service) Evaluate(ctx context.Context, budget contracts.Money) (*contracts.EvaluationResult, error) {
	regular, err := s.base.Allocate(budget)
	if err != nil {
		return nil, err
	}

	sigs, readings, degraded := s.builder.Build(ctx)
	verdict := signals.Verdict(sigs[contracts.MarketHome], sigs[contracts.MarketForeign])

	additional, err := s.crash.Allocate(verdict, budget, regular)
	if err != nil {
		return nil, err
	}

	result := &contracts.EvaluationResult{
		Date:            s.now(),
		BaseBudget:      budget,
		Regular:         regular,
		Signals:         sigs,
		Readings:        readings,
		Verdict:         verdict,
		Pattern:         verdict.Pattern(),
		Additional:      additional,
		TotalInvestment: allocation.TotalInvestment(regular, additional),
		Degraded:        degraded,
	}

	s.logger.WithFields(map[string]interface{}{
		"pattern":          result.Pattern,
		"total_investment": result.TotalInvestment,
		"degraded":         result.IsDegraded(),
	}).Info("Evaluation completed")

	return result, nil
}
