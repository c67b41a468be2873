package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/fastygo/alle/api/graphql"
	apiHandler "github.com/fastygo/alle/api/handler"
	"github.com/fastygo/alle/internal/app"
	"github.com/fastygo/alle/internal/config"
	"github.com/fastygo/alle/internal/infrastructure/database"
	"github.com/fastygo/alle/internal/infrastructure/migrations"
	"github.com/fastygo/alle/internal/infrastructure/monitor"
	redisInfra "github.com/fastygo/alle/internal/infrastructure/redis"
	"github.com/fastygo/alle/internal/infrastructure/storage"
	"github.com/fastygo/alle/internal/middleware"
	"github.com/fastygo/alle/internal/router"
	"github.com/fastygo/alle/internal/services"
	"github.com/fastygo/alle/internal/services/lifecycle"
	"github.com/fastygo/alle/pkg/httpcontext"
	"github.com/fastygo/alle/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	// the schema must be final before anything can query it
	if err := migrations.Run(cfg, zapLogger.Named("migrations")); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	db, err := database.Open(appCtx, cfg.Database, zapLogger.Named("database"))
	if err != nil {
		zapLogger.Fatal("database connection failed", zap.Error(err), zap.String("url", cfg.Database.SanitizedURL()))
	}
	manager.Closer("database", db.Close)

	store, err := storage.New(appCtx, cfg.Storage, cfg.HTTP.PublicBaseURL, zapLogger.Named("storage"))
	if err != nil {
		zapLogger.Fatal("object storage unavailable", zap.Error(err), zap.String("driver", cfg.Storage.Driver))
	}
	manager.Closer("storage", store.Close)

	redisClient, err := redisInfra.NewClient(appCtx, cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	if redisClient != nil {
		manager.Closer("redis", redisClient.Close)
	}

	mon := monitor.New(cfg.Monitor.Interval, zapLogger.Named("monitor"))
	mon.Register("database", db)
	mon.Register("storage", store)
	if redisClient != nil {
		mon.Register("redis", redisInfra.Pinger{Client: redisClient})
	}
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	container := app.New(db.Gorm, store, app.OptionsFromConfig(cfg), zapLogger)

	if cfg.Trash.PurgeSchedule != "" {
		var locker services.Locker
		if redisClient != nil {
			locker = redisInfra.NewLocker(redisClient, cfg.AppName+":lock:")
		}
		janitor, err := services.NewTrashJanitor(container.TrashService, locker, zapLogger.Named("trash_janitor"), services.JanitorConfig{
			Schedule: cfg.Trash.PurgeSchedule,
		})
		if err != nil {
			zapLogger.Fatal("trash janitor misconfigured", zap.Error(err))
		}
		janitor.Start()
		manager.Register("trash_janitor", func(ctx context.Context) error {
			janitor.Stop(ctx)
			return nil
		})
	}

	schema, err := graphql.NewSchema(container, graphql.Options{
		MaxDepth:       cfg.HTTP.GraphQLMaxDepth,
		MaxParallelism: cfg.HTTP.GraphQLMaxParallel,
		Logger:         zapLogger.Named("graphql"),
	})
	if err != nil {
		zapLogger.Fatal("graphql schema invalid", zap.Error(err))
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		GraphQL: graphql.NewHandler(schema, ctxAdapter, cfg.HTTP.EnablePlayground, zapLogger.Named("graphql")),
		Upload:  apiHandler.NewUploadHandler(container.AttachmentService, cfg.HTTP.MaxUploadBytes, ctxAdapter, zapLogger),
		Task:    apiHandler.NewTaskHandler(container.TaskService, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}
	if blobs, ok := store.(*storage.BoltStore); ok {
		handlers.Blob = apiHandler.NewBlobHandler(blobs, ctxAdapter, zapLogger)
	}
	if cfg.HTTP.EnableMetrics {
		handlers.Metrics = middleware.NewMetrics()
	}

	r := router.New(handlers)
	server := router.NewServer(cfg, router.Handler(r, handlers, cfg.CORS, zapLogger.Named("http")), zapLogger)

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("environment", cfg.Environment),
			zap.String("storage", cfg.Storage.Driver),
			zap.String("database", string(db.Backend)),
		)
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
