// Package scheduler runs the daily payment reminder job. It logs tax
// installments and planned expense occurrences that are due soon so an
// operator tailing the logs (or a log shipper) can pick them up.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/prospel/prospel_backend/internal/core/domain"
	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
)

// reminderWindowDays is how far ahead the job looks for upcoming payments.
const reminderWindowDays = 7

// Scheduler owns the cron runner.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New builds the scheduler with the reminder job registered on spec.
func New(spec string, logger *slog.Logger, obligations portssvc.ObligationSvcFacade, planned portssvc.PlannedExpenseSvcFacade) (*Scheduler, error) {
	c := cron.New()
	job := &reminderJob{
		logger:      logger,
		obligations: obligations,
		planned:     planned,
	}
	if _, err := c.AddJob(spec, job); err != nil {
		return nil, fmt.Errorf("failed to schedule reminder job with spec %q: %w", spec, err)
	}
	return &Scheduler{cron: c, logger: logger}, nil
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.logger.Info("Starting reminder scheduler")
	s.cron.Start()
}

// Stop halts the cron runner and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Reminder scheduler stopped")
}

type reminderJob struct {
	logger      *slog.Logger
	obligations portssvc.ObligationSvcFacade
	planned     portssvc.PlannedExpenseSvcFacade
}

func (j *reminderJob) Run() {
	ctx := context.Background()
	today := domain.Today()
	until := today.AddDays(reminderWindowDays)

	// Warms the current-year schedule so ListUnpaid sees months that no one
	// has opened through the API yet.
	if _, err := j.obligations.GetSchedule(ctx, today.Year(), ""); err != nil {
		j.logger.Error("Reminder job failed to warm obligation schedule", slog.String("error", err.Error()))
	}

	unpaid, err := j.obligations.ListUnpaid(ctx, until)
	if err != nil {
		j.logger.Error("Reminder job failed to list unpaid obligations", slog.String("error", err.Error()))
	} else {
		for _, o := range unpaid {
			level := slog.LevelInfo
			if o.Deadline.Before(today) {
				level = slog.LevelWarn
			}
			j.logger.Log(ctx, level, "Tax installment due",
				slog.String("obligation_id", o.ObligationID),
				slog.Int("year", o.Year),
				slog.Int("month", int(o.Month)),
				slog.String("amount", o.Amount.String()),
				slog.String("deadline", o.Deadline.String()),
			)
		}
	}

	occurrences, err := j.planned.ListOccurrences(ctx, today, until)
	if err != nil {
		j.logger.Error("Reminder job failed to list planned occurrences", slog.String("error", err.Error()))
		return
	}
	for _, o := range occurrences {
		if o.IsPaid {
			continue
		}
		j.logger.Info("Planned expense due",
			slog.String("planned_expense_id", o.PlannedExpenseID),
			slog.String("name", o.Name),
			slog.String("amount", o.Amount.String()),
			slog.String("due_date", o.DueDate.String()),
		)
	}
}
