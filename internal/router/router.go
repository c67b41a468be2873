package router

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/alle/api/graphql"
	apiHandler "github.com/fastygo/alle/api/handler"
	"github.com/fastygo/alle/api/transport"
	"github.com/fastygo/alle/internal/config"
	"github.com/fastygo/alle/internal/middleware"
)

// Handlers groups every endpoint. Blob and Metrics are optional.
type Handlers struct {
	GraphQL *graphql.Handler
	Upload  *apiHandler.UploadHandler
	Blob    *apiHandler.BlobHandler
	Task    *apiHandler.TaskHandler
	Health  *apiHandler.HealthHandler
	Metrics *middleware.Metrics
}

func New(handlers Handlers) *router.Router {
	r := router.New()
	r.SaveMatchedRoutePath = true

	r.GET("/health", handlers.Health.Check)
	if handlers.Metrics != nil {
		r.GET("/metrics", handlers.Metrics.Handler())
	}

	r.POST("/graphql", handlers.GraphQL.Serve)
	r.GET("/graphql", handlers.GraphQL.Playground)

	r.POST("/api/upload", handlers.Upload.Upload)
	if handlers.Blob != nil {
		r.GET("/api/blobs/{key:*}", handlers.Blob.Download)
	}

	r.GET("/api/tasks", handlers.Task.GetTasks)
	r.POST("/api/tasks", handlers.Task.CreateTask)
	r.GET("/api/tasks/incomplete", handlers.Task.GetIncompleteTasks)
	r.GET("/api/tasks/{id}", handlers.Task.GetTask)
	r.PUT("/api/tasks/{id}", handlers.Task.UpdateTask)
	r.DELETE("/api/tasks/{id}", handlers.Task.DeleteTask)

	return r
}

// Handler wraps the router with the cross-cutting middleware. CORS runs
// first so preflight requests never reach the routes.
func Handler(r *router.Router, handlers Handlers, cfg config.CORSConfig, logger *zap.Logger) fasthttp.RequestHandler {
	chain := []func(fasthttp.RequestHandler) fasthttp.RequestHandler{
		middleware.CORS(cfg),
		middleware.RequestLogger(logger),
	}
	if handlers.Metrics != nil {
		chain = append(chain, handlers.Metrics.Middleware)
	}
	return middleware.Chain(r.Handler, chain...)
}

// NewServer configures fasthttp with a body limit a little above the upload
// ceiling so the upload handler can answer with its own message.
func NewServer(cfg *config.Config, handler fasthttp.RequestHandler, logger *zap.Logger) *fasthttp.Server {
	return &fasthttp.Server{
		Handler:            handler,
		ErrorHandler:       ErrorHandler(cfg.HTTP.MaxUploadBytes, logger),
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		WriteTimeout:       cfg.HTTP.WriteTimeout,
		IdleTimeout:        cfg.HTTP.IdleTimeout,
		MaxConnsPerIP:      cfg.HTTP.MaxConn,
		MaxRequestBodySize: cfg.HTTP.MaxUploadBytes + 1024*1024,
		Name:               cfg.AppName,
	}
}

// ErrorHandler answers requests fasthttp could not parse.
func ErrorHandler(maxUploadBytes int, logger *zap.Logger) func(*fasthttp.RequestCtx, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx *fasthttp.RequestCtx, err error) {
		status := http.StatusBadRequest
		message := "malformed request"
		if errors.Is(err, fasthttp.ErrBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
			message = apiHandler.TooLargeMessage(maxUploadBytes)
		}
		logger.Warn("request rejected before routing", zap.Int("status", status), zap.Error(err))

		body, _ := json.Marshal(transport.ErrorBody{Error: message})
		ctx.Response.Header.SetContentType("application/json")
		ctx.SetStatusCode(status)
		ctx.SetBody(body)
	}
}
