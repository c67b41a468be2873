// Package app holds the composition root shared by the GraphQL resolvers and
// the REST handlers.
package app

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fastygo/alle/internal/config"
	"github.com/fastygo/alle/internal/infrastructure/storage"
	"github.com/fastygo/alle/repository"
	"github.com/fastygo/alle/repository/sqlstore"
	attachmentUC "github.com/fastygo/alle/usecase/attachment"
	taskUC "github.com/fastygo/alle/usecase/task"
	trashUC "github.com/fastygo/alle/usecase/trash"
)

// Container owns one instance of every repository and service for the
// lifetime of the process. It is built once and only read afterwards.
type Container struct {
	Tasks        repository.TaskRepository
	SomedayLists repository.SomedayListRepository
	SomedayTasks repository.SomedayTaskRepository
	Tags         repository.TaskTagRepository
	Links        repository.TaskLinkRepository
	Attachments  repository.AttachmentRepository
	TagPresets   repository.TagPresetRepository
	ColorPresets repository.ColorPresetRepository
	Settings     repository.SettingsRepository
	Trash        repository.TrashRepository

	Storage storage.Store

	TaskService       *taskUC.UseCase
	AttachmentService *attachmentUC.Service
	TrashService      *trashUC.UseCase

	Logger *zap.Logger
}

// Options tunes the services built by New.
type Options struct {
	PresignExpiry  time.Duration
	TrashRetention time.Duration
	Clock          sqlstore.Clock
}

// OptionsFromConfig picks the container settings out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		PresignExpiry:  cfg.Storage.PresignExpiry,
		TrashRetention: cfg.Trash.Retention,
	}
}

// New wires gorm-backed repositories and the services on top of them.
func New(db *gorm.DB, store storage.Store, opts Options, logger *zap.Logger) *Container {
	if logger == nil {
		logger = zap.NewNop()
	}
	var repoOpts []sqlstore.Option
	if opts.Clock != nil {
		repoOpts = append(repoOpts, sqlstore.WithClock(opts.Clock))
	}

	c := &Container{
		Tasks:        sqlstore.NewTaskRepository(db, repoOpts...),
		SomedayLists: sqlstore.NewSomedayListRepository(db, repoOpts...),
		SomedayTasks: sqlstore.NewSomedayTaskRepository(db, repoOpts...),
		Tags:         sqlstore.NewTaskTagRepository(db, repoOpts...),
		Links:        sqlstore.NewTaskLinkRepository(db, repoOpts...),
		Attachments:  sqlstore.NewAttachmentRepository(db, repoOpts...),
		TagPresets:   sqlstore.NewTagPresetRepository(db, repoOpts...),
		ColorPresets: sqlstore.NewColorPresetRepository(db, repoOpts...),
		Settings:     sqlstore.NewSettingsRepository(db, repoOpts...),
		Trash:        sqlstore.NewTrashRepository(db, repoOpts...),
		Storage:      store,
		Logger:       logger,
	}

	c.AttachmentService = attachmentUC.New(c.Attachments, c.Tasks, store, opts.PresignExpiry, logger.Named("attachments"))
	c.TaskService = taskUC.New(c.Tasks, c.SomedayTasks, c.AttachmentService, logger.Named("tasks"))
	c.TrashService = trashUC.New(c.Trash, opts.TrashRetention, logger.Named("trash"))
	return c
}
