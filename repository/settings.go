package repository

import (
	"context"

	"github.com/fastygo/alle/domain"
)

type SettingsRepository interface {
	// Get returns the singleton row, creating it with defaults when absent.
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, patch domain.SettingsPatch) (*domain.Settings, error)
}
