package cron

import (
	"context"
	"errors"
	"fmt"

	"blinno/models"
	"blinno/services/onboarding"
	"blinno/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const defaultSweepBatch = 500

// Enqueuer is the part of *asynq.Client the sweep needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// VersionSweeper queues a version check for every completed seller whose
// onboarding version is behind the required one.
type VersionSweeper struct {
	Service   onboarding.OnboardingService
	Queue     Enqueuer
	BatchSize int64
	Logger    *zap.Logger
}

func NewVersionSweeper(svc onboarding.OnboardingService, queue Enqueuer, logger *zap.Logger) *VersionSweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VersionSweeper{
		Service:   svc,
		Queue:     queue,
		BatchSize: defaultSweepBatch,
		Logger:    logger,
	}
}

// Sweep enqueues one task per outdated seller. Sellers already queued for the
// current version are counted as skipped.
func (s *VersionSweeper) Sweep(ctx context.Context) (models.SweepResult, error) {
	var res models.SweepResult

	batch := s.BatchSize
	if batch <= 0 {
		batch = defaultSweepBatch
	}
	userIDs, err := s.Service.OutdatedSellers(ctx, batch)
	if err != nil {
		return res, err
	}
	res.Found = len(userIDs)

	version := s.Service.RequiredVersion()
	for _, userID := range userIDs {
		task, opts, err := tasks.NewVersionCheckTask(models.VersionCheckPayload{
			UserID:          userID,
			RequiredVersion: version,
			Trigger:         tasks.TriggerSweep,
		})
		if err != nil {
			return res, err
		}
		if _, err := s.Queue.EnqueueContext(ctx, task, opts...); err != nil {
			if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("failed to enqueue version check for %s: %w", userID, err)
		}
		res.Enqueued++
	}

	s.Logger.Info("Onboarding version sweep finished",
		zap.Int("requiredVersion", version),
		zap.Int("found", res.Found),
		zap.Int("enqueued", res.Enqueued),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}
