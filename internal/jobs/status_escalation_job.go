package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tracking/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StatusEscalationJob runs the staleness escalation sweep on a fixed interval.
// Each tick reclassifies the severity of every active in-transit order based
// on the elapsed time since its last update.
type StatusEscalationJob struct {
	handler  commands.EscalateStaleOrdersCommandHandler
	cron     *cron.Cron
	interval time.Duration
	logger   *slog.Logger
}

// NewStatusEscalationJob creates a new escalation sweep job.
// interval controls the tick frequency; each tick observes the wall clock at
// the moment it fires.
func NewStatusEscalationJob(
	handler commands.EscalateStaleOrdersCommandHandler,
	interval time.Duration,
	logger *slog.Logger,
) *StatusEscalationJob {
	return &StatusEscalationJob{
		handler:  handler,
		cron:     cron.New(),
		interval: interval,
		logger:   logger.With("component", "status_escalation_job"),
	}
}

// Start begins the escalation sweep on the configured interval.
// A tick that fails is logged and skipped; the schedule keeps running.
func (j *StatusEscalationJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewEscalateStaleOrdersCommand(time.Now().UTC())
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Escalation sweep command rejected", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Escalation sweep tick failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status escalation job started", "interval", j.interval.String())
	return nil
}

// Stop stops the escalation sweep. A tick already in flight finishes.
func (j *StatusEscalationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Status escalation job stopped")
}
