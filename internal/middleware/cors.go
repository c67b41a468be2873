package middleware

import (
	"strconv"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/alle/internal/config"
	"github.com/fastygo/alle/pkg/httpcontext"
)

const (
	corsMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsHeaders = "Content-Type, Authorization, " + httpcontext.RequestIDHeader
)

// CORS adds access-control headers for allowed origins and answers
// preflight requests with 204.
func CORS(cfg config.CORSConfig) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	maxAge := strconv.Itoa(int(cfg.MaxAge.Seconds()))
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			origin := string(ctx.Request.Header.Peek("Origin"))
			if cfg.IsAllowed(origin) {
				h := &ctx.Response.Header
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", corsMethods)
				h.Set("Access-Control-Allow-Headers", corsHeaders)
				h.Set("Access-Control-Expose-Headers", httpcontext.RequestIDHeader)
				h.Set("Access-Control-Max-Age", maxAge)
				h.Add("Vary", "Origin")
			}
			if ctx.IsOptions() {
				ctx.SetStatusCode(fasthttp.StatusNoContent)
				return
			}
			next(ctx)
		}
	}
}
