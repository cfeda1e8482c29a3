package cron

import (
	"context"
	"fmt"
	"time"

	"blinno/config"
	"blinno/services/onboarding"
	"blinno/services/tasks"
	"blinno/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitVersionWorker runs the onboarding version worker in background.
// The returned server is shut down by the caller.
func InitVersionWorker(svc onboarding.OnboardingService, sweeper *VersionSweeper) *asynq.Server {
	logger := utils.GetLogger()

	concurrency := config.AppConfig.SweepConcurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(
		utils.QueueRedisOpt(),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeVersionCheck, handleVersionCheckTask(svc, logger))
	mux.HandleFunc(tasks.TypeVersionSweep, handleVersionSweepTask(sweeper))

	go func() {
		logger.Info("Starting onboarding version worker", zap.Int("concurrency", concurrency))
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				break
			}
			logger.Error("Version worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				logger.Fatal("Version worker gave up after max retry attempts")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

// InitVersionSweepScheduler registers the periodic sweep. An empty spec disables it.
func InitVersionSweepScheduler(spec string) *asynq.Scheduler {
	if spec == "" {
		return nil
	}
	logger := utils.GetLogger()

	scheduler := asynq.NewScheduler(utils.QueueRedisOpt(), &asynq.SchedulerOpts{
		Logger: logger.Sugar(),
	})
	if _, err := scheduler.Register(spec, tasks.NewVersionSweepTask(), asynq.Unique(time.Hour)); err != nil {
		logger.Error("Invalid version sweep schedule", zap.String("spec", spec), zap.Error(err))
		return nil
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Error("Version sweep scheduler stopped", zap.Error(err))
		}
	}()
	return scheduler
}

func handleVersionCheckTask(svc onboarding.OnboardingService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseVersionCheckPayload(task)
		if err != nil {
			logger.Error("Invalid version check payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		// A check queued for an older required version is still valid; the
		// service compares against its own current version.
		reset := svc.CheckAndForceVersionUpdate(ctx, p.UserID)
		logger.Info("Onboarding version checked",
			zap.String("userID", p.UserID),
			zap.String("trigger", p.Trigger),
			zap.Bool("reset", reset),
		)
		return nil
	}
}

func handleVersionSweepTask(sweeper *VersionSweeper) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		_, err := sweeper.Sweep(ctx)
		return err
	}
}
