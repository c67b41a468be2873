package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const janitorLockKey = "trash-janitor"

// TrashPurger removes expired trash snapshots.
type TrashPurger interface {
	CleanOld(ctx context.Context) (int64, error)
}

// Locker guards a job across replicas. A nil Locker runs every tick.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, ok bool, err error)
}

// JanitorConfig controls the purge schedule.
type JanitorConfig struct {
	// Schedule is a cron expression with optional seconds, or a descriptor
	// such as "@daily" or "@every 1h".
	Schedule string
	Timeout  time.Duration
}

// TrashJanitor runs the trash purge on a cron schedule.
type TrashJanitor struct {
	purger TrashPurger
	locker Locker
	logger *zap.Logger
	cron   *cron.Cron
	cfg    JanitorConfig
}

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func NewTrashJanitor(purger TrashPurger, locker Locker, logger *zap.Logger, cfg JanitorConfig) (*TrashJanitor, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	j := &TrashJanitor{
		purger: purger,
		locker: locker,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithParser(cronParser)),
	}

	if _, err := j.cron.AddFunc(cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.Error("trash purge failed", zap.Error(err))
		}
	}); err != nil {
		return nil, fmt.Errorf("invalid TRASH_PURGE_SCHEDULE %q: %w", cfg.Schedule, err)
	}

	return j, nil
}

// Start launches the cron scheduler.
func (j *TrashJanitor) Start() {
	if j == nil || j.cron == nil {
		return
	}
	j.cron.Start()
	j.logger.Info("trash janitor started", zap.String("schedule", j.cfg.Schedule))
}

// Stop waits for a running purge or ctx, whichever ends first.
func (j *TrashJanitor) Stop(ctx context.Context) {
	if j == nil || j.cron == nil {
		return
	}
	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	j.logger.Info("trash janitor stopped")
}

// RunOnce purges now. It reports ran=false when another replica holds the lock.
func (j *TrashJanitor) RunOnce(ctx context.Context) (ran bool, err error) {
	if j.locker != nil {
		release, ok, err := j.locker.TryLock(ctx, janitorLockKey, j.cfg.Timeout)
		if err != nil {
			return false, err
		}
		if !ok {
			j.logger.Debug("trash purge skipped, lock held elsewhere")
			return false, nil
		}
		defer func() {
			if relErr := release(context.Background()); relErr != nil {
				j.logger.Warn("failed to release trash janitor lock", zap.Error(relErr))
			}
		}()
	}

	n, err := j.purger.CleanOld(ctx)
	if err != nil {
		return true, err
	}
	j.logger.Debug("trash purge finished", zap.Int64("removed", n))
	return true, nil
}
