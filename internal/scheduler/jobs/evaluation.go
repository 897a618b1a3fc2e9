package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/ysato/planc/internal/contracts"
	"github.com/ysato/planc/internal/evaluation"
	"github.com/ysato/planc/internal/external/line"
	"github.com/ysato/planc/internal/report"
	"github.com/ysato/planc/pkg/config"
	"github.com/ysato/planc/pkg/logger"
)

// MonthlyEvaluationJob runs the full evaluation on investment day and pushes
// the decision as a notification.
type MonthlyEvaluationJob struct {
	service  *evaluation.Service
	notifier contracts.NotificationSink
	config   *config.Config
	logger   *logger.Logger
}

// NewMonthlyEvaluationJob creates the monthly evaluation job.
func NewMonthlyEvaluationJob(
	service *evaluation.Service,
	notifier contracts.NotificationSink,
	cfg *config.Config,
	log *logger.Logger,
) *MonthlyEvaluationJob {
	return &MonthlyEvaluationJob{
		service:  service,
		notifier: notifier,
		config:   cfg,
		logger:   log,
	}
}

// Name returns the job name.
func (j *MonthlyEvaluationJob) Name() string {
	return "monthly_evaluation"
}

// Schedule returns the cron schedule for investment day.
func (j *MonthlyEvaluationJob) Schedule() string {
	return j.config.Scheduler.EvaluationSpec
}

// Run executes the monthly evaluation and delivers the notification. A
// missing notification token is not a failure; the decision is still logged.
func (j *MonthlyEvaluationJob) Run(ctx context.Context) error {
	j.logger.Info("Starting monthly evaluation")

	result, err := j.service.Evaluate(ctx, contracts.Money(j.config.BaseBudget))
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"pattern":          result.Pattern,
		"total_investment": result.TotalInvestment,
		"degraded":         result.IsDegraded(),
	}).Info("Monthly evaluation completed")

	if err := j.notifier.Send(ctx, report.NotifyMessage(result)); err != nil {
		if errors.Is(err, line.ErrNotConfigured) {
			j.logger.Warn("Notification skipped: no token configured")
			return nil
		}
		return fmt.Errorf("send notification: %w", err)
	}

	return nil
}
