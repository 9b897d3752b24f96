package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"partnerhub/config"
	"partnerhub/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeMonthlyGifts is the asynq task type that runs the tier-3 monthly gift batch.
const TypeMonthlyGifts = "commercial:monthly-gifts"

const monthlyGiftMaxRetry = 3

// MonthlyGiftPayload records what enqueued a batch run.
type MonthlyGiftPayload struct {
	Trigger     string    `json:"trigger"`
	RequestedAt time.Time `json:"requestedAt"`
}

// MonthlyGiftRunner is the part of the progression engine the worker needs.
type MonthlyGiftRunner interface {
	RunMonthlyGifts(ctx context.Context) (*models.MonthlyGiftRun, error)
}

// NewMonthlyGiftTask builds a batch task. Re-running a batch within the same month
// only gifts the partners a previous run missed.
func NewMonthlyGiftTask(trigger string, at time.Time) (*asynq.Task, error) {
	b, err := json.Marshal(MonthlyGiftPayload{Trigger: trigger, RequestedAt: at})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal monthly gift payload: %w", err)
	}
	return asynq.NewTask(TypeMonthlyGifts, b, asynq.MaxRetry(monthlyGiftMaxRetry)), nil
}

func redisOpt(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

// InitMonthlyGiftScheduler registers the batch on MONTHLY_GIFT_CRON (UTC) and starts
// the scheduler. Callers stop it with Shutdown.
func InitMonthlyGiftScheduler(cfg config.Config, logger *zap.Logger) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(redisOpt(cfg), &asynq.SchedulerOpts{
		Location: time.UTC,
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				logger.Error("failed to enqueue monthly gift batch", zap.Error(err))
				return
			}
			logger.Info("monthly gift batch enqueued", zap.String("taskId", info.ID))
		},
	})

	task, err := NewMonthlyGiftTask("schedule", time.Time{})
	if err != nil {
		return nil, err
	}
	entryID, err := scheduler.Register(cfg.MonthlyGiftCron, task, asynq.Unique(time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to register monthly gift schedule %q: %w", cfg.MonthlyGiftCron, err)
	}
	if err := scheduler.Start(); err != nil {
		return nil, fmt.Errorf("failed to start scheduler: %w", err)
	}
	logger.Info("monthly gift scheduler started", zap.String("cron", cfg.MonthlyGiftCron), zap.String("entryId", entryID))
	return scheduler, nil
}

// InitMonthlyGiftWorker starts the asynq server processing monthly gift tasks in the
// background, retrying startup with backoff. Callers stop it with Shutdown.
func InitMonthlyGiftWorker(cfg config.Config, runner MonthlyGiftRunner, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeMonthlyGifts, HandleMonthlyGiftTask(runner, logger))

	go func() {
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				logger.Info("monthly gift worker started")
				return
			}
			logger.Warn("monthly gift worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
		logger.Error("monthly gift worker not started: max retry attempts reached")
	}()
	return srv
}

// HandleMonthlyGiftTask runs the batch. A run with per-partner failures is reported
// as an error so asynq retries it.
func HandleMonthlyGiftTask(runner MonthlyGiftRunner, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p MonthlyGiftPayload
		if len(task.Payload()) > 0 {
			if err := json.Unmarshal(task.Payload(), &p); err != nil {
				logger.Error("invalid monthly gift payload", zap.Error(err))
				return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
			}
		}

		run, err := runner.RunMonthlyGifts(ctx)
		if err != nil {
			return fmt.Errorf("monthly gift batch failed: %w", err)
		}
		logger.Info("monthly gift task done",
			zap.String("trigger", p.Trigger),
			zap.String("month", run.Month),
			zap.Int("gifted", run.Gifted),
			zap.Int("failures", len(run.Failures)))
		if len(run.Failures) > 0 {
			return fmt.Errorf("monthly gift batch: %d of %d partners failed", len(run.Failures), run.Processed)
		}
		return nil
	}
}
