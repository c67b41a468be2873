package trash

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/repository"
)

type UseCase struct {
	items     repository.TrashRepository
	retention time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func New(items repository.TrashRepository, retention time.Duration, logger *zap.Logger) *UseCase {
	if retention <= 0 {
		retention = domain.TrashRetention
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{items: items, retention: retention, now: time.Now, logger: logger}
}

// CleanOld purges snapshots older than the retention window and returns how
// many were removed.
func (uc *UseCase) CleanOld(ctx context.Context) (int64, error) {
	cutoff := uc.now().UTC().Add(-uc.retention)
	n, err := uc.items.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		uc.logger.Info("purged trash", zap.Int64("count", n), zap.Time("cutoff", cutoff))
	}
	return n, nil
}
