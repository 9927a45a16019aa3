package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-triage/internal/service"
	apperrors "github.com/spec-kit/helpdesk-triage/pkg/util"
)

// StartSweepWorker runs periodic triage sweeps until ctx is cancelled. A zero
// or negative interval disables the worker.
func StartSweepWorker(ctx context.Context, triage *service.TriageService, interval time.Duration, logger *zap.Logger) {
	if triage == nil || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		logger.Info("sweep worker started", zap.Duration("interval", interval))
		for {
			select {
			case <-ctx.Done():
				logger.Info("sweep worker stopped")
				return
			case <-ticker.C:
				counts, err := triage.Sweep(ctx)
				if err != nil {
					if de := apperrors.ToDomainError(err); de.Code == "CONFLICT" {
						logger.Debug("scheduled sweep skipped, another sweep in flight")
						continue
					}
					logger.Error("scheduled sweep failed", zap.Error(err))
					continue
				}
				logger.Debug("scheduled sweep finished",
					zap.Int("closed_by_ai", counts.ClosedByAI),
					zap.Int("assigned", counts.Assigned),
					zap.Int("skipped", counts.Skipped))
			}
		}
	}()
}
