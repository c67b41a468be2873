package graphql

import (
	"encoding/json"
	"net/http"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/alle/pkg/httpcontext"
	appLogger "github.com/fastygo/alle/pkg/logger"
)

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler executes GraphQL requests over fasthttp.
type Handler struct {
	schema     *graphqlgo.Schema
	adapter    *httpcontext.Adapter
	playground bool
	logger     *zap.Logger
}

func NewHandler(schema *graphqlgo.Schema, adapter *httpcontext.Adapter, playground bool, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		schema:     schema,
		adapter:    adapter,
		playground: playground,
		logger:     logger,
	}
}

// Serve handles POST /graphql. Resolver errors travel in the errors array of
// a 200 response; only an unreadable body is rejected with 400.
func (h *Handler) Serve(ctx *fasthttp.RequestCtx) {
	var req request
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Query == "" {
		ctx.Response.Header.SetContentType("application/json")
		ctx.SetStatusCode(http.StatusBadRequest)
		body, _ := json.Marshal(map[string]string{"error": "request body must be JSON with a query"})
		ctx.SetBody(body)
		return
	}

	stdCtx, cancel := h.adapter.Attach(ctx)
	defer cancel()

	resp := h.schema.Exec(stdCtx, req.Query, req.OperationName, req.Variables)
	if len(resp.Errors) > 0 {
		appLogger.WithRequestID(stdCtx, h.logger).Debug("graphql errors",
			zap.String("operation", req.OperationName),
			zap.Int("count", len(resp.Errors)),
			zap.String("first", resp.Errors[0].Message))
	}

	body, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error("failed to encode graphql response", zap.Error(err))
		ctx.SetStatusCode(http.StatusInternalServerError)
		return
	}
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(body)
}

// Playground handles GET /graphql with an interactive GraphiQL page.
func (h *Handler) Playground(ctx *fasthttp.RequestCtx) {
	if !h.playground {
		ctx.SetStatusCode(http.StatusNotFound)
		return
	}
	ctx.Response.Header.SetContentType("text/html; charset=utf-8")
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBodyString(graphiQLPage)
}

const graphiQLPage = `<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8" />
	<title>alle GraphQL</title>
	<link rel="stylesheet" href="https://unpkg.com/graphiql@3/graphiql.min.css" />
	<style>body { margin: 0; height: 100vh; } #graphiql { height: 100vh; }</style>
</head>
<body>
	<div id="graphiql">Loading...</div>
	<script crossorigin src="https://unpkg.com/react@18/umd/react.production.min.js"></script>
	<script crossorigin src="https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"></script>
	<script crossorigin src="https://unpkg.com/graphiql@3/graphiql.min.js"></script>
	<script>
		const fetcher = GraphiQL.createFetcher({ url: window.location.pathname });
		ReactDOM.createRoot(document.getElementById('graphiql')).render(React.createElement(GraphiQL, { fetcher }));
	</script>
</body>
</html>
`
